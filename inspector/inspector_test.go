package inspector_test

import (
	"fmt"
	"testing"

	"github.com/snesdev/zealgo/assembler"
	"github.com/snesdev/zealgo/inspector"
	"github.com/snesdev/zealgo/parser"
	"github.com/snesdev/zealgo/system"
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

// TestNewTUIConstructsWithoutATerminal verifies the inspector can be built and its panels
// populated from a completed assembly, without ever calling Run (no real terminal in CI).
func TestNewTUIConstructsWithoutATerminal(t *testing.T) {
	source := &memSource{files: map[string]string{"main.asm": "clc\nlda #$10\nbra here\nhere:\nnop\n"}}
	p := parser.NewParser(source, system.SNES)
	nodes, perrs := p.ParseFile("main.asm")
	if perrs.HasErrors() {
		t.Fatalf("parse errors: %v", perrs.All())
	}
	res, aerrs := assembler.Assemble(nodes, system.SNES, source)

	tui := inspector.NewTUI(res, aerrs)
	if tui == nil {
		t.Fatal("NewTUI returned nil")
	}

	tui.RefreshAll()

	if tui.SymbolView.GetText(true) == "" {
		t.Error("expected symbol view to be populated")
	}
	if tui.ListingView.GetText(true) == "" {
		t.Error("expected listing view to be populated")
	}
}

func TestNewTUIHandlesNilResult(t *testing.T) {
	tui := inspector.NewTUI(nil, nil)
	tui.RefreshAll()
}
