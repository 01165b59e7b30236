package assembler

import (
	"github.com/snesdev/zealgo/parser"
	"github.com/snesdev/zealgo/system"
)

// Unit is one byte-producing element of the assembled program: an instruction or an incbin
// block, at its final address, in source order. Nodes that contribute no bytes (labels, origin
// and snesmap directives) never get a Unit.
type Unit struct {
	Address uint32
	Size    int
	Index   int // index into Result.Nodes
}

// Result is the output of a full three-pass assemble: the node list with every Instruction
// rewritten to its Final* form, the byte-producing units in source order, the resolved symbol
// table, and the memory-map mode selected by the last snesmap directive seen (identity if none).
type Result struct {
	Nodes   []parser.Node
	Units   []Unit
	Symbols *parser.SymbolTable
	MapMode string
}

// Assemble runs the three passes over nodes in order and returns the Result. Each pass records
// all of its own diagnostics in errs; if pass 1 or pass 2 reported any error, Assemble returns
// after that pass without running the later ones. Callers must check errs.HasErrors() before
// handing Result to an emitter.
func Assemble(nodes []parser.Node, target *system.SystemDefinition, source parser.SourceProvider) (*Result, *parser.ErrorList) {
	errs := &parser.ErrorList{}

	res := &Result{
		Nodes:   append([]parser.Node(nil), nodes...),
		Symbols: parser.NewSymbolTable(),
		MapMode: "identity",
	}

	pass1(res, target, source, errs)
	if errs.HasErrors() {
		return res, errs
	}
	pass2(res, target, errs)
	if errs.HasErrors() {
		return res, errs
	}
	pass3(res, target, errs)
	return res, errs
}
