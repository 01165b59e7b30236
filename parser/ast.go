package parser

import "github.com/snesdev/zealgo/system"

// Node is one top-level element of a parsed source file, in source order. The parser produces a
// flat []Node; there is no tree to walk — pass 1 through pass 3 each make one linear sweep over
// it, mutating or replacing entries as label addresses resolve.
type Node interface {
	isNode()
	Pos() Position
}

// Expr is an instruction expression — the addressing-mode-specific operand shape attached to one
// mnemonic, in the form the parser built it from source syntax (as opposed to the Final* variants
// pass 3 produces once the opcode is known).
type Expr interface {
	Node
	isExpr()
}

// baseNode carries the position every node anchors its diagnostics to.
type baseNode struct {
	pos Position
}

func (b baseNode) Pos() Position { return b.pos }
func (b baseNode) isNode()       {}

// Instruction pairs a mnemonic with its parsed argument expression. It is the Node the parser
// emits for every mnemonic line; pass 3 keeps the Instruction and replaces its Arg with a Final*
// expression once the opcode and byte layout are known.
type Instruction struct {
	baseNode
	Mnemonic string
	Arg      Expr
}

func (Instruction) isExpr() {}

// LabelDef is a `name:` label definition. Pass 1 records its address in the symbol table; the
// node itself carries no resolved value.
type LabelDef struct {
	baseNode
	Name string
}

// OriginDirective is an `origin $addr` directive, setting the program counter pass 1 assigns
// subsequent addresses from.
type OriginDirective struct {
	baseNode
	Address system.NumberLiteral
}

// SnesMapDirective is a `snesmap lorom|hirom|identity` directive naming the emitter's address
// translation. Pass 1 keeps only the mode of the last such directive (Result.MapMode), and the
// emitter translates every unit of the program through that one mode; a directive does not
// change the translation of just the units that follow it.
type SnesMapDirective struct {
	baseNode
	Mode string
}

// IncBinNode is an `incbin "path"` directive: the named file's bytes are copied into the output
// verbatim at the current address, with no interpretation.
type IncBinNode struct {
	baseNode
	Path string
}

// --- Expr variants, one per addressing-mode family named in the data model. ---

// ImpliedExpr is a no-operand instruction (e.g. `nop`, `clc`).
type ImpliedExpr struct{ baseNode }

func (ImpliedExpr) isExpr() {}

// ImmediateExpr is `#value` — an immediate operand, sized by the literal's own syntax.
type ImmediateExpr struct {
	baseNode
	Value system.NumberLiteral
}

func (ImmediateExpr) isExpr() {}

// SingleArgumentExpr is a bare operand with no addressing decoration — direct page, absolute, or
// absolute-long, disambiguated purely by the operand's own size.
type SingleArgumentExpr struct {
	baseNode
	Value system.NumberLiteral
	Label string // non-empty when the operand was an identifier rather than a literal
}

func (SingleArgumentExpr) isExpr() {}

// IndexedExpr is `value,X` / `value,Y` — a direct/absolute operand plus an index register.
type IndexedExpr struct {
	baseNode
	Value system.NumberLiteral
	Label string
	Index string
}

func (IndexedExpr) isExpr() {}

// IndirectExpr is `(value)` — indirect through a direct-page or absolute pointer.
type IndirectExpr struct {
	baseNode
	Value system.NumberLiteral
	Label string
}

func (IndirectExpr) isExpr() {}

// IndirectLongExpr is `[value]` — indirect through a 24-bit pointer.
type IndirectLongExpr struct {
	baseNode
	Value system.NumberLiteral
	Label string
}

func (IndirectLongExpr) isExpr() {}

// IndexedIndirectExpr is `(value,X)` — indexed before the indirection.
type IndexedIndirectExpr struct {
	baseNode
	Value system.NumberLiteral
	Label string
	Index string
}

func (IndexedIndirectExpr) isExpr() {}

// IndirectIndexedExpr is `(value),Y` — indirection, then indexed.
type IndirectIndexedExpr struct {
	baseNode
	Value system.NumberLiteral
	Label string
	Index string
}

func (IndirectIndexedExpr) isExpr() {}

// IndirectIndexedLongExpr is `[value],Y` — long indirection, then indexed.
type IndirectIndexedLongExpr struct {
	baseNode
	Value system.NumberLiteral
	Label string
	Index string
}

func (IndirectIndexedLongExpr) isExpr() {}

// BlockMoveExpr is `src,dst` for mvn/mvp — two bank-byte operands, not addresses.
type BlockMoveExpr struct {
	baseNode
	Src system.NumberLiteral
	Dst system.NumberLiteral
}

func (BlockMoveExpr) isExpr() {}

// StackRelativeIndirectIndexedExpr is `(value,S),Y`.
type StackRelativeIndirectIndexedExpr struct {
	baseNode
	Value system.NumberLiteral
	Label string
}

func (StackRelativeIndirectIndexedExpr) isExpr() {}

// LabelExpr is a bare identifier operand whose addressing shape (Relative displacement vs.
// SingleArgument absolute) is only known once the mnemonic's table entry is consulted — branches
// parse their target through this node, pass 2 resolves it into a SingleArgumentExpr holding
// either the label's address or, for a Relative mnemonic, the signed displacement (one byte, or
// two for brl), and pass 3 then selects the opcode.
type LabelExpr struct {
	baseNode
	Name string
}

func (LabelExpr) isExpr() {}

// --- Final* variants: pass 3 rewrites every resolved Instruction into one of these, carrying
// the opcode byte and fully-sized byte operands ready for the emitter. ---

// FinalImpliedExpr is a resolved no-operand instruction.
type FinalImpliedExpr struct {
	baseNode
	Opcode byte
}

func (FinalImpliedExpr) isExpr() {}

// NewFinalImpliedExpr builds a resolved no-operand instruction at pos.
func NewFinalImpliedExpr(pos Position, opcode byte) FinalImpliedExpr {
	return FinalImpliedExpr{baseNode: baseNode{pos: pos}, Opcode: opcode}
}

// FinalSingleArgExpr is a resolved instruction with exactly one operand, already truncated to
// its table-matched size.
type FinalSingleArgExpr struct {
	baseNode
	Opcode  byte
	Operand system.NumberLiteral
}

func (FinalSingleArgExpr) isExpr() {}

// NewFinalSingleArgExpr builds a resolved single-operand instruction at pos.
func NewFinalSingleArgExpr(pos Position, opcode byte, operand system.NumberLiteral) FinalSingleArgExpr {
	return FinalSingleArgExpr{baseNode: baseNode{pos: pos}, Opcode: opcode, Operand: operand}
}

// FinalTwoArgExpr is a resolved instruction with two operand bytes laid out independently (block
// move's src/dst bank bytes).
type FinalTwoArgExpr struct {
	baseNode
	Opcode byte
	First  byte
	Second byte
}

func (FinalTwoArgExpr) isExpr() {}

// NewFinalTwoArgExpr builds a resolved two-operand-byte instruction at pos.
func NewFinalTwoArgExpr(pos Position, opcode, first, second byte) FinalTwoArgExpr {
	return FinalTwoArgExpr{baseNode: baseNode{pos: pos}, Opcode: opcode, First: first, Second: second}
}

// NewInstruction builds an Instruction node at pos.
func NewInstruction(pos Position, mnemonic string, arg Expr) Instruction {
	return Instruction{baseNode: baseNode{pos: pos}, Mnemonic: mnemonic, Arg: arg}
}

// WithArg returns a copy of ins with its argument expression replaced — pass 2 and pass 3 rewrite
// an Instruction in place this way as each resolves further.
func (ins Instruction) WithArg(arg Expr) Instruction {
	ins.Arg = arg
	return ins
}

// Resolved turns a label reference into a plain single-operand expression once pass 2 has looked
// the label's address up — used for every non-Relative mnemonic that took a bare label operand.
func (e LabelExpr) Resolved(v system.NumberLiteral) SingleArgumentExpr {
	return SingleArgumentExpr{baseNode: e.baseNode, Value: v}
}

// ResolvedRelative turns a label reference into the signed displacement a Relative-addressing
// mnemonic encodes, already masked to size.
func (e LabelExpr) ResolvedRelative(v system.NumberLiteral) SingleArgumentExpr {
	return SingleArgumentExpr{baseNode: e.baseNode, Value: v}
}

// WithValue returns a copy of e with its operand resolved and its label reference cleared.
func (e SingleArgumentExpr) WithValue(v system.NumberLiteral) SingleArgumentExpr {
	e.Value = v
	e.Label = ""
	return e
}

// WithValue returns a copy of e with its operand resolved and its label reference cleared.
func (e IndexedExpr) WithValue(v system.NumberLiteral) IndexedExpr {
	e.Value = v
	e.Label = ""
	return e
}

// WithValue returns a copy of e with its operand resolved and its label reference cleared.
func (e IndirectExpr) WithValue(v system.NumberLiteral) IndirectExpr {
	e.Value = v
	e.Label = ""
	return e
}

// WithValue returns a copy of e with its operand resolved and its label reference cleared.
func (e IndirectLongExpr) WithValue(v system.NumberLiteral) IndirectLongExpr {
	e.Value = v
	e.Label = ""
	return e
}

// WithValue returns a copy of e with its operand resolved and its label reference cleared.
func (e IndexedIndirectExpr) WithValue(v system.NumberLiteral) IndexedIndirectExpr {
	e.Value = v
	e.Label = ""
	return e
}

// WithValue returns a copy of e with its operand resolved and its label reference cleared.
func (e IndirectIndexedExpr) WithValue(v system.NumberLiteral) IndirectIndexedExpr {
	e.Value = v
	e.Label = ""
	return e
}

// WithValue returns a copy of e with its operand resolved and its label reference cleared.
func (e IndirectIndexedLongExpr) WithValue(v system.NumberLiteral) IndirectIndexedLongExpr {
	e.Value = v
	e.Label = ""
	return e
}

// WithValue returns a copy of e with its operand resolved and its label reference cleared.
func (e StackRelativeIndirectIndexedExpr) WithValue(v system.NumberLiteral) StackRelativeIndirectIndexedExpr {
	e.Value = v
	e.Label = ""
	return e
}

// LabelOf returns the label name referenced by e, or "" if e carries a literal operand instead.
func LabelOf(e Expr) string {
	switch v := e.(type) {
	case LabelExpr:
		return v.Name
	case SingleArgumentExpr:
		return v.Label
	case IndexedExpr:
		return v.Label
	case IndirectExpr:
		return v.Label
	case IndirectLongExpr:
		return v.Label
	case IndexedIndirectExpr:
		return v.Label
	case IndirectIndexedExpr:
		return v.Label
	case IndirectIndexedLongExpr:
		return v.Label
	case StackRelativeIndirectIndexedExpr:
		return v.Label
	default:
		return ""
	}
}
