package parser

import (
	"fmt"

	"github.com/snesdev/zealgo/system"
)

// Parser turns one or more source files into a flat []Node, following `include` directives by
// pushing a new Lexer onto a stack rather than recursing through a separate parser instance —
// diagnostics always carry the Position of the lexer that was active when a token was produced,
// so an error inside an included file still reports the included file's own path.
type Parser struct {
	source  SourceProvider
	target  *system.SystemDefinition
	errors  ErrorList
	stack   []*Lexer
	visited map[string]bool // paths currently open anywhere on the stack — include-cycle guard
	nodes   []Node
}

// NewParser returns a parser that resolves include/incbin paths through source and classifies
// mnemonics/registers against target.
func NewParser(source SourceProvider, target *system.SystemDefinition) *Parser {
	return &Parser{
		source:  source,
		target:  target,
		visited: make(map[string]bool),
	}
}

// ParseFile parses path (and everything it transitively includes) into a flat node list. Parse
// errors are accumulated in the returned ErrorList rather than aborting; callers should check
// HasErrors before handing the result to the assembler.
func (p *Parser) ParseFile(path string) ([]Node, *ErrorList) {
	if err := p.pushFile(path); err != nil {
		p.errors.Add(ErrorMessage{Message: err.Error(), Token: Token{Pos: Position{Path: path, Line: 1, StartCol: 1}}, Severity: SeverityError})
		return p.nodes, &p.errors
	}
	p.run()
	return p.nodes, &p.errors
}

func (p *Parser) pushFile(path string) error {
	if p.visited[path] {
		return fmt.Errorf("include cycle detected at %s", path)
	}
	src, err := p.source.Read(path)
	if err != nil {
		return err
	}
	p.visited[path] = true
	p.stack = append(p.stack, NewLexer(src, path, p.target))
	return nil
}

func (p *Parser) popFile() {
	top := p.stack[len(p.stack)-1]
	delete(p.visited, top.Path())
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *Parser) lex() *Lexer { return p.stack[len(p.stack)-1] }

func (p *Parser) peek(n int) Token { return p.lex().Lookahead(n) }

func (p *Parser) next() Token { return p.lex().Next() }

func (p *Parser) currentPath() string { return p.lex().Path() }

// run drives the top-level grammar: { TopLevelItem } across the whole lexer stack.
func (p *Parser) run() {
	for len(p.stack) > 0 {
		tok := p.peek(1)
		if tok.Type == TokenEOF {
			p.popFile()
			continue
		}
		item := p.parseTopLevel()
		if item != nil {
			p.nodes = append(p.nodes, item)
		}
	}
}

// parseTopLevel parses exactly one TopLevelItem, or recovers to the next statement boundary and
// returns nil if the current token doesn't start one.
func (p *Parser) parseTopLevel() Node {
	tok := p.peek(1)
	switch tok.Type {
	case TokenKwOrigin:
		return p.parseOrigin()
	case TokenKwSnesMap:
		return p.parseSnesMap()
	case TokenKwInclude:
		p.parseInclude()
		return nil
	case TokenKwIncbin:
		return p.parseIncBin()
	case TokenOpcode:
		return p.parseInstruction()
	case TokenIdentifier:
		if p.peek(2).Type == TokenColon {
			return p.parseLabelDef()
		}
		p.errors.Errorf(tok, "unexpected identifier %q: expected a label definition, directive or instruction", tok.Literal)
		p.recover()
		return nil
	default:
		p.errors.Errorf(tok, "unexpected token %s", tok.Type)
		p.recover()
		return nil
	}
}

// recover discards tokens up to (but not including) the next plausible statement start, so a
// single malformed line produces one diagnostic instead of a cascade.
func (p *Parser) recover() {
	for {
		tok := p.peek(1)
		switch tok.Type {
		case TokenEOF, TokenOpcode, TokenKwInclude, TokenKwIncbin, TokenKwOrigin, TokenKwSnesMap:
			return
		case TokenIdentifier:
			if p.peek(2).Type == TokenColon {
				return
			}
		}
		p.next()
	}
}

func (p *Parser) parseLabelDef() Node {
	name := p.next() // identifier
	p.next()         // colon
	return LabelDef{baseNode: baseNode{pos: name.Pos}, Name: name.Literal}
}

func (p *Parser) parseOrigin() Node {
	kw := p.next()
	val := p.next()
	if val.Type != TokenNumber {
		p.errors.Errorf(val, "origin expects a numeric address, got %s", val.Type)
		return OriginDirective{baseNode: baseNode{pos: kw.Pos}}
	}
	return OriginDirective{baseNode: baseNode{pos: kw.Pos}, Address: val.Number}
}

func (p *Parser) parseSnesMap() Node {
	kw := p.next()
	mode := p.next()
	if mode.Type != TokenIdentifier {
		p.errors.Errorf(mode, "snesmap expects a mode identifier (lorom, hirom, identity), got %s", mode.Type)
		return SnesMapDirective{baseNode: baseNode{pos: kw.Pos}}
	}
	switch mode.Literal {
	case "lorom", "hirom", "identity":
	default:
		p.errors.Errorf(mode, "snesmap expects a mode identifier (lorom, hirom, identity), got %q", mode.Literal)
		return SnesMapDirective{baseNode: baseNode{pos: kw.Pos}}
	}
	return SnesMapDirective{baseNode: baseNode{pos: kw.Pos}, Mode: mode.Literal}
}

func (p *Parser) parseInclude() {
	kw := p.next()
	pathTok := p.next()
	if pathTok.Type != TokenString {
		p.errors.Errorf(pathTok, "include expects a quoted path, got %s", pathTok.Type)
		return
	}
	resolved, err := p.source.Resolve(p.currentPath(), pathTok.Literal)
	if err != nil {
		p.errors.Errorf(kw, "%v", err)
		return
	}
	if err := p.pushFile(resolved); err != nil {
		p.errors.Errorf(kw, "%v", err)
	}
}

func (p *Parser) parseIncBin() Node {
	kw := p.next()
	pathTok := p.next()
	if pathTok.Type != TokenString {
		p.errors.Errorf(pathTok, "incbin expects a quoted path, got %s", pathTok.Type)
		return IncBinNode{baseNode: baseNode{pos: kw.Pos}}
	}
	resolved, err := p.source.Resolve(p.currentPath(), pathTok.Literal)
	if err != nil {
		p.errors.Errorf(kw, "%v", err)
		return IncBinNode{baseNode: baseNode{pos: kw.Pos}}
	}
	return IncBinNode{baseNode: baseNode{pos: kw.Pos}, Path: resolved}
}

// parseInstruction parses one mnemonic plus its operand, dispatching purely on the punctuation
// and token shapes that follow — the addressing mode itself is not decided here (that's pass 3's
// job, once label sizes are known); this stage only records the syntactic shape of the operand.
func (p *Parser) parseInstruction() Node {
	op := p.next()

	if !p.startsOperand() {
		return NewInstruction(op.Pos, op.Literal, ImpliedExpr{baseNode: baseNode{pos: op.Pos}})
	}

	switch p.peek(1).Type {
	case TokenImmediate:
		return p.parseImmediate(op)
	case TokenLParen:
		return p.parseParenOperand(op)
	case TokenLBracket:
		return p.parseBracketOperand(op)
	default:
		return p.parseBareOperand(op)
	}
}

// startsOperand reports whether the upcoming token could begin an operand, as opposed to the
// next statement (an implied instruction has no operand at all).
func (p *Parser) startsOperand() bool {
	switch p.peek(1).Type {
	case TokenImmediate, TokenLParen, TokenLBracket, TokenNumber:
		return true
	case TokenIdentifier:
		return p.peek(2).Type != TokenColon
	default:
		return false
	}
}

func (p *Parser) parseImmediate(op Token) Node {
	p.next() // '#'
	val := p.next()
	if val.Type != TokenNumber {
		p.errors.Errorf(val, "immediate operand expects a numeric literal, got %s", val.Type)
		return NewInstruction(op.Pos, op.Literal, ImmediateExpr{baseNode: baseNode{pos: op.Pos}})
	}
	return NewInstruction(op.Pos, op.Literal, ImmediateExpr{baseNode: baseNode{pos: op.Pos}, Value: val.Number})
}

// operandValue consumes one operand token that is either a numeric literal or a label reference,
// returning the literal (zeroed if it was a label — pass 2 fills in the label's address) and the
// label name, empty when the operand was a literal.
func (p *Parser) operandValue() (system.NumberLiteral, string) {
	tok := p.next()
	if tok.Type == TokenIdentifier {
		return system.NumberLiteral{Size: p.target.LabelSize}, tok.Literal
	}
	if tok.Type != TokenNumber {
		p.errors.Errorf(tok, "expected a numeric literal or label, got %s", tok.Type)
		return system.NumberLiteral{}, ""
	}
	return tok.Number, ""
}

func (p *Parser) expectRegister() string {
	tok := p.next()
	if tok.Type != TokenRegister {
		p.errors.Errorf(tok, "expected a register, got %s", tok.Type)
		return ""
	}
	return tok.Literal
}

func (p *Parser) expectComma() {
	tok := p.next()
	if tok.Type != TokenComma {
		p.errors.Errorf(tok, "expected ',', got %s", tok.Type)
	}
}

// parseParenOperand handles every `(` ... `)` shaped operand: indirect, indexed-indirect
// (value,X), indirect-indexed (value),Y, and stack-relative-indirect-indexed (value,S),Y.
func (p *Parser) parseParenOperand(op Token) Node {
	lp := p.next() // '('
	value, label := p.operandValue()

	if p.peek(1).Type == TokenComma {
		p.next() // ','
		reg := p.expectRegister()
		closeTok := p.next() // ')'
		if closeTok.Type != TokenRParen {
			p.errors.Errorf(closeTok, "expected ')', got %s", closeTok.Type)
		}
		if reg == "s" {
			p.expectComma()
			p.expectRegister() // 'y', already implied by the addressing mode's name
			return NewInstruction(op.Pos, op.Literal, StackRelativeIndirectIndexedExpr{
				baseNode: baseNode{pos: lp.Pos}, Value: value, Label: label,
			})
		}
		return NewInstruction(op.Pos, op.Literal, IndexedIndirectExpr{
			baseNode: baseNode{pos: lp.Pos}, Value: value, Label: label, Index: reg,
		})
	}

	closeTok := p.next() // ')'
	if closeTok.Type != TokenRParen {
		p.errors.Errorf(closeTok, "expected ')', got %s", closeTok.Type)
	}

	if p.peek(1).Type == TokenComma {
		p.next()
		reg := p.expectRegister()
		return NewInstruction(op.Pos, op.Literal, IndirectIndexedExpr{
			baseNode: baseNode{pos: lp.Pos}, Value: value, Label: label, Index: reg,
		})
	}

	return NewInstruction(op.Pos, op.Literal, IndirectExpr{baseNode: baseNode{pos: lp.Pos}, Value: value, Label: label})
}

// parseBracketOperand handles `[value]` and `[value],Y` — 24-bit long indirection.
func (p *Parser) parseBracketOperand(op Token) Node {
	lb := p.next() // '['
	value, label := p.operandValue()
	closeTok := p.next() // ']'
	if closeTok.Type != TokenRBracket {
		p.errors.Errorf(closeTok, "expected ']', got %s", closeTok.Type)
	}

	if p.peek(1).Type == TokenComma {
		p.next()
		p.expectRegister()
		return NewInstruction(op.Pos, op.Literal, IndirectIndexedLongExpr{
			baseNode: baseNode{pos: lb.Pos}, Value: value, Label: label, Index: "y",
		})
	}
	return NewInstruction(op.Pos, op.Literal, IndirectLongExpr{baseNode: baseNode{pos: lb.Pos}, Value: value, Label: label})
}

// parseBareOperand handles an operand with no surrounding punctuation: a plain value, a
// value,register pair (indexed), a value,value pair (block move), or a bare label reference
// (branch target or absolute reference — pass 3 decides which once the mnemonic's table entry is
// known).
func (p *Parser) parseBareOperand(op Token) Node {
	start := p.peek(1)
	value, label := p.operandValue()

	if p.peek(1).Type != TokenComma {
		if label != "" {
			return NewInstruction(op.Pos, op.Literal, LabelExpr{baseNode: baseNode{pos: start.Pos}, Name: label})
		}
		return NewInstruction(op.Pos, op.Literal, SingleArgumentExpr{baseNode: baseNode{pos: start.Pos}, Value: value})
	}

	p.next() // ','
	second := p.peek(1)
	if second.Type == TokenNumber {
		dst := p.next()
		return NewInstruction(op.Pos, op.Literal, BlockMoveExpr{baseNode: baseNode{pos: start.Pos}, Src: value, Dst: dst.Number})
	}

	reg := p.expectRegister()
	return NewInstruction(op.Pos, op.Literal, IndexedExpr{baseNode: baseNode{pos: start.Pos}, Value: value, Label: label, Index: reg})
}
