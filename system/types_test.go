package system_test

import (
	"testing"

	"github.com/snesdev/zealgo/system"
)

func TestSizeForValue(t *testing.T) {
	tests := []struct {
		name  string
		value uint32
		want  system.ArgumentSize
	}{
		{"zero", 0, system.W8},
		{"max w8", 0xFF, system.W8},
		{"min w16", 0x100, system.W16},
		{"max w16", 0xFFFF, system.W16},
		{"min w24", 0x10000, system.W24},
		{"max w24", 0xFFFFFF, system.W24},
		{"min w32", 0x1000000, system.W32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := system.SizeForValue(tt.value); got != tt.want {
				t.Errorf("SizeForValue(0x%X) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestArgumentSizeBytes(t *testing.T) {
	tests := []struct {
		size system.ArgumentSize
		want int
	}{
		{system.W8, 1},
		{system.W16, 2},
		{system.W24, 3},
		{system.W32, 4},
	}
	for _, tt := range tests {
		if got := tt.size.Bytes(); got != tt.want {
			t.Errorf("%s.Bytes() = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestNumberLiteralTruncated(t *testing.T) {
	n := system.NumberLiteral{Value: 0x1FF, Size: system.W8}
	if got := n.Truncated(); got != 0xFF {
		t.Errorf("Truncated() = 0x%X, want 0xFF", got)
	}
}

func TestSystemDefinitionFind(t *testing.T) {
	def := &system.SystemDefinition{
		ShortName: "test-cpu",
		Registers: []string{"x", "y"},
		Instructions: []system.InstructionInfo{
			{Mnemonic: "lda", Addressing: system.Immediate, Opcode: 0xA9, Arguments: []system.InstructionArgument{system.Numbers{Sizes: []system.ArgumentSize{system.W8, system.W16}}}},
			{Mnemonic: "lda", Addressing: system.SingleArgument, Opcode: 0xA5, Arguments: []system.InstructionArgument{system.Number{Size: system.W8}}},
			{Mnemonic: "lda", Addressing: system.SingleArgument, Opcode: 0xAD, Arguments: []system.InstructionArgument{system.Number{Size: system.W16}}},
			{Mnemonic: "lda", Addressing: system.Indexed, Opcode: 0xB5, Arguments: []system.InstructionArgument{system.Number{Size: system.W8}, system.Register{Name: "x"}}},
			{Mnemonic: "nop", Addressing: system.Implied, Opcode: 0xEA, Arguments: nil},
		},
	}

	t.Run("immediate w8 matches via Numbers", func(t *testing.T) {
		info, ok := def.Find("lda", map[system.AddressingMode]bool{system.Immediate: true}, []system.InstructionArgument{system.Number{Size: system.W8}})
		if !ok || info.Opcode != 0xA9 {
			t.Fatalf("expected opcode 0xA9, got %v ok=%v", info, ok)
		}
	})

	t.Run("single argument picks size-specific entry", func(t *testing.T) {
		info, ok := def.Find("lda", map[system.AddressingMode]bool{system.SingleArgument: true}, []system.InstructionArgument{system.Number{Size: system.W16}})
		if !ok || info.Opcode != 0xAD {
			t.Fatalf("expected opcode 0xAD, got %v ok=%v", info, ok)
		}
	})

	t.Run("indexed matches register by name", func(t *testing.T) {
		info, ok := def.Find("lda", map[system.AddressingMode]bool{system.Indexed: true}, []system.InstructionArgument{system.Number{Size: system.W8}, system.NotStaticRegister{Name: "x"}})
		if !ok || info.Opcode != 0xB5 {
			t.Fatalf("expected opcode 0xB5, got %v ok=%v", info, ok)
		}
	})

	t.Run("wrong register name does not match", func(t *testing.T) {
		_, ok := def.Find("lda", map[system.AddressingMode]bool{system.Indexed: true}, []system.InstructionArgument{system.Number{Size: system.W8}, system.NotStaticRegister{Name: "y"}})
		if ok {
			t.Fatalf("expected no match for register y against table entry for x")
		}
	})

	t.Run("implied with no arguments", func(t *testing.T) {
		info, ok := def.Find("nop", map[system.AddressingMode]bool{system.Implied: true}, nil)
		if !ok || info.Opcode != 0xEA {
			t.Fatalf("expected opcode 0xEA, got %v ok=%v", info, ok)
		}
	})

	t.Run("unknown mnemonic", func(t *testing.T) {
		_, ok := def.Find("xyz", map[system.AddressingMode]bool{system.Implied: true}, nil)
		if ok {
			t.Fatalf("expected no match for unknown mnemonic")
		}
	})
}

func TestHasRegisterAndIsMnemonic(t *testing.T) {
	if !system.SNES.HasRegister("x") {
		t.Errorf("expected SNES to have register x")
	}
	if system.SNES.HasRegister("a") {
		t.Errorf("did not expect SNES to have register a (accumulator is implicit, not a named operand)")
	}
	if !system.SNES.IsMnemonic("lda") {
		t.Errorf("expected SNES to recognize mnemonic lda")
	}
	if system.SNES.IsMnemonic("frobnicate") {
		t.Errorf("did not expect SNES to recognize mnemonic frobnicate")
	}
}

func TestIsRelative(t *testing.T) {
	if !system.SNES.IsRelative("bra") {
		t.Errorf("expected bra to be relative")
	}
	if system.SNES.IsRelative("lda") {
		t.Errorf("did not expect lda to be relative")
	}
}
