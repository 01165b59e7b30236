// Package diag renders diagnostics produced anywhere in the core pipeline (lexer, parser,
// assembler) against their originating source text. The core packages never format a diagnostic
// themselves — they only accumulate parser.ErrorMessage values — so this is the one place output
// formatting lives, kept separate so the core can be driven from a test without ever touching it.
package diag

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/snesdev/zealgo/parser"
)

// Renderer formats diagnostics against source reopened through a parser.SourceProvider.
type Renderer struct {
	source parser.SourceProvider
	color  bool
}

// NewRenderer returns a Renderer that reopens source files through source. Set color to enable
// ANSI severity coloring, mirroring the teacher's own --color config knob.
func NewRenderer(source parser.SourceProvider, color bool) *Renderer {
	return &Renderer{source: source, color: color}
}

// Render writes one formatted diagnostic to w, in the form:
//
//	path(line,col): severity: message
//	    <source line>
//	    <caret underline>
func (r *Renderer) Render(w io.Writer, msg parser.ErrorMessage) error {
	pos := msg.Token.Pos
	severity := msg.Severity.String()
	if r.color {
		severity = colorize(msg.Severity, severity)
	}
	fmt.Fprintf(w, "%s(%d,%d): %s: %s\n", pos.Path, pos.Line, pos.StartCol, severity, msg.Message)

	line, ok := r.sourceLine(pos)
	if !ok {
		return nil
	}
	fmt.Fprintf(w, "    %s\n", line)
	fmt.Fprintf(w, "    %s\n", caret(pos, line))
	return nil
}

// RenderAll writes every diagnostic in msgs to w, in recording order.
func (r *Renderer) RenderAll(w io.Writer, msgs []parser.ErrorMessage) error {
	for _, m := range msgs {
		if err := r.Render(w, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) sourceLine(pos parser.Position) (string, bool) {
	src, err := r.source.Read(pos.Path)
	if err != nil {
		return "", false
	}
	scanner := bufio.NewScanner(strings.NewReader(src))
	n := 0
	for scanner.Scan() {
		n++
		if n == pos.Line {
			return scanner.Text(), true
		}
	}
	return "", false
}

func caret(pos parser.Position, line string) string {
	width := pos.EndCol - pos.StartCol + 1
	if width < 1 {
		width = 1
	}
	col := pos.StartCol - 1
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	return strings.Repeat(" ", col) + strings.Repeat("^", width)
}

func colorize(sev parser.Severity, text string) string {
	const (
		red    = "\x1b[31m"
		yellow = "\x1b[33m"
		reset  = "\x1b[0m"
	)
	if sev == parser.SeverityWarning {
		return yellow + text + reset
	}
	return red + text + reset
}
