package diag_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/snesdev/zealgo/diag"
	"github.com/snesdev/zealgo/parser"
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

func TestRendererFormatsPositionAndCaret(t *testing.T) {
	source := &memSource{files: map[string]string{"main.asm": "lda #$zz\n"}}
	r := diag.NewRenderer(source, false)

	msg := parser.ErrorMessage{
		Message:  "invalid numeric literal",
		Severity: parser.SeverityError,
		Token: parser.Token{
			Pos: parser.Position{Path: "main.asm", Line: 1, StartCol: 6, EndCol: 7},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, msg); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "main.asm(1,6): error: invalid numeric literal") {
		t.Errorf("missing position/message line, got:\n%s", out)
	}
	if !strings.Contains(out, "lda #$zz") {
		t.Errorf("missing source line, got:\n%s", out)
	}
	if !strings.Contains(out, "^^") {
		t.Errorf("missing caret underline, got:\n%s", out)
	}
}

func TestRendererMissingSourceStillPrintsHeader(t *testing.T) {
	source := &memSource{files: map[string]string{}}
	r := diag.NewRenderer(source, false)

	msg := parser.ErrorMessage{
		Message:  "undefined label",
		Severity: parser.SeverityWarning,
		Token:    parser.Token{Pos: parser.Position{Path: "missing.asm", Line: 1, StartCol: 1, EndCol: 1}},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, msg); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "missing.asm(1,1): warning: undefined label") {
		t.Errorf("missing header line, got:\n%s", buf.String())
	}
}
