package tools_test

import (
	"fmt"
	"testing"

	"github.com/snesdev/zealgo/parser"
	"github.com/snesdev/zealgo/system"
	"github.com/snesdev/zealgo/tools"
)

type memSource struct {
	files map[string]string
}

func (m *memSource) Read(path string) (string, error) {
	src, ok := m.files[path]
	if !ok {
		return "", fmt.Errorf("no such file: %s", path)
	}
	return src, nil
}
func (m *memSource) ReadBinary(path string) ([]byte, error) { return nil, fmt.Errorf("not used") }
func (m *memSource) Resolve(fromPath, includePath string) (string, error) { return includePath, nil }

func parse(t *testing.T, src string) ([]parser.Node, *parser.SymbolTable) {
	t.Helper()
	source := &memSource{files: map[string]string{"main.asm": src}}
	p := parser.NewParser(source, system.SNES)
	nodes, errs := p.ParseFile("main.asm")
	if errs.HasErrors() {
		t.Fatalf("parse errors: %v", errs.All())
	}
	symbols := parser.NewSymbolTable()
	pc := uint32(0)
	for _, n := range nodes {
		if ld, ok := n.(parser.LabelDef); ok {
			symbols.Define(ld.Name, pc)
		}
		pc++
	}
	return nodes, symbols
}

func TestCrossReferenceTracksDefinitionAndBranch(t *testing.T) {
	nodes, symbols := parse(t, "bra target\nnop\ntarget:\nnop\n")

	refs := tools.CrossReference(nodes, symbols, system.SNES)
	if len(refs) != 1 {
		t.Fatalf("expected 1 symbol, got %d: %#v", len(refs), refs)
	}
	sym := refs[0]
	if sym.Name != "target" || !sym.Defined {
		t.Fatalf("expected target defined, got %#v", sym)
	}
	if len(sym.References) != 2 {
		t.Fatalf("expected 2 references (branch + definition), got %d", len(sym.References))
	}

	var sawBranch, sawDef bool
	for _, r := range sym.References {
		switch r.Kind {
		case tools.RefBranch:
			sawBranch = true
		case tools.RefDefinition:
			sawDef = true
		}
	}
	if !sawBranch || !sawDef {
		t.Errorf("expected both a branch and a definition reference, got %#v", sym.References)
	}
}

func TestCrossReferenceUndefinedLabel(t *testing.T) {
	nodes, symbols := parse(t, "jmp nowhere\n")
	refs := tools.CrossReference(nodes, symbols, system.SNES)
	if len(refs) != 1 || refs[0].Defined {
		t.Fatalf("expected one undefined symbol, got %#v", refs)
	}
}
