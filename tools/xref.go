// Package tools provides read-only analyses over a parsed program and its symbol table: a
// cross-reference report and a static lint pass, both run before (or instead of) a full assemble.
package tools

import (
	"fmt"
	"sort"

	"github.com/snesdev/zealgo/parser"
)

// RefKind distinguishes how a symbol was used at a given source location.
type RefKind int

const (
	RefDefinition RefKind = iota // the `name:` that defines the symbol
	RefBranch                    // operand of a Relative-addressing mnemonic
	RefOperand                   // any other operand referencing the label
)

func (k RefKind) String() string {
	switch k {
	case RefDefinition:
		return "definition"
	case RefBranch:
		return "branch"
	case RefOperand:
		return "operand"
	default:
		return "unknown"
	}
}

// Reference is one use (or definition) of a symbol at a source position.
type Reference struct {
	Kind RefKind
	Pos  parser.Position
}

// Symbol collects every reference to one name across a program.
type Symbol struct {
	Name       string
	Address    uint32
	Defined    bool
	References []Reference
}

// relativeChecker reports which mnemonics take a label operand as a branch target rather than an
// address, used only to classify a Reference as RefBranch for the report — the assembler itself
// resolves this distinction by calling target.IsRelative.
type relativeChecker interface {
	IsRelative(mnemonic string) bool
}

// CrossReference walks nodes in source order and builds one Symbol per name mentioned, either as
// a definition or as an operand/branch reference. Symbols never referenced, and labels referenced
// but never defined, are both represented — the caller (or tools.Lint) decides what to do with
// either case.
func CrossReference(nodes []parser.Node, symbols *parser.SymbolTable, target relativeChecker) []*Symbol {
	index := map[string]*Symbol{}
	var order []string

	get := func(name string) *Symbol {
		if s, ok := index[name]; ok {
			return s
		}
		s := &Symbol{Name: name}
		index[name] = s
		order = append(order, name)
		return s
	}

	for _, node := range nodes {
		switch n := node.(type) {
		case parser.LabelDef:
			s := get(n.Name)
			s.Defined = true
			if addr, ok := symbols.Lookup(n.Name); ok {
				s.Address = addr
			}
			s.References = append(s.References, Reference{Kind: RefDefinition, Pos: n.Pos()})

		case parser.Instruction:
			label := parser.LabelOf(n.Arg)
			if label == "" {
				continue
			}
			s := get(label)
			kind := RefOperand
			if target != nil && target.IsRelative(n.Mnemonic) {
				kind = RefBranch
			}
			s.References = append(s.References, Reference{Kind: kind, Pos: n.Pos()})
		}
	}

	out := make([]*Symbol, 0, len(order))
	for _, name := range order {
		out = append(out, index[name])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FormatXref renders a CrossReference result as a plain-text report, one symbol per block.
func FormatXref(symbols []*Symbol) string {
	var out string
	for _, s := range symbols {
		status := "undefined"
		if s.Defined {
			status = fmt.Sprintf("= $%06X", s.Address)
		}
		out += fmt.Sprintf("%s %s\n", s.Name, status)
		for _, ref := range s.References {
			out += fmt.Sprintf("    %s  %s(%d,%d)\n", ref.Kind, ref.Pos.Path, ref.Pos.Line, ref.Pos.StartCol)
		}
	}
	return out
}
