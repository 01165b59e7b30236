package parser

import "fmt"

// Position locates a span of source text: a 1-based line, 1-based inclusive start and end columns
// (EndCol is the token's last column; StartCol <= EndCol, per the lexer's token invariant), and the byte
// offset where that line began — kept so a diagnostic renderer can reopen the source file and
// recover the full line without the lexer needing to retain it.
type Position struct {
	Path            string
	Line            int
	StartCol        int
	EndCol          int
	LineStartOffset int64
}

func (p Position) String() string {
	return fmt.Sprintf("%s(%d,%d)", p.Path, p.Line, p.StartCol)
}

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// ErrorMessage is one diagnostic record, tied to the token that produced it so a renderer can
// recover position and a caret span without the producing pass keeping anything else around.
type ErrorMessage struct {
	Message  string
	Token    Token
	Severity Severity
}

func (e ErrorMessage) String() string {
	return fmt.Sprintf("%s(%d,%d): %s: %s", e.Token.Pos.Path, e.Token.Pos.Line, e.Token.Pos.StartCol, e.Severity, e.Message)
}

// ErrorList accumulates diagnostics for one parse or pass. It is not an error sink in the
// io-surface sense — it is the in-memory collection every core package returns alongside its
// result; only the CLI boundary (package diag) turns it into rendered output or an exit code.
type ErrorList struct {
	messages []ErrorMessage
}

// Add records a diagnostic.
func (el *ErrorList) Add(msg ErrorMessage) {
	el.messages = append(el.messages, msg)
}

// Errorf records an Error-severity diagnostic anchored to tok.
func (el *ErrorList) Errorf(tok Token, format string, args ...interface{}) {
	el.Add(ErrorMessage{Message: fmt.Sprintf(format, args...), Token: tok, Severity: SeverityError})
}

// Warnf records a Warning-severity diagnostic anchored to tok.
func (el *ErrorList) Warnf(tok Token, format string, args ...interface{}) {
	el.Add(ErrorMessage{Message: fmt.Sprintf(format, args...), Token: tok, Severity: SeverityWarning})
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (el *ErrorList) HasErrors() bool {
	for _, m := range el.messages {
		if m.Severity == SeverityError {
			return true
		}
	}
	return false
}

// All returns every diagnostic recorded, in recording order.
func (el *ErrorList) All() []ErrorMessage {
	return el.messages
}

// Extend appends another list's messages onto this one, preserving order.
func (el *ErrorList) Extend(other *ErrorList) {
	if other == nil {
		return
	}
	el.messages = append(el.messages, other.messages...)
}
