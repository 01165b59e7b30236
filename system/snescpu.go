package system

// snesRegisters are the index and stack registers usable as a bare operand or in an indexed/
// stack-relative addressing form. "a" (accumulator) never appears as a register operand —
// accumulator-mode shift/inc/dec forms are written without an operand and so fall under Implied.
var snesRegisters = []string{"x", "y", "s"}

// snesInstructions is the 65816 opcode table. Entries are grouped by mnemonic and ordered with
// the narrower operand sizes first; table order is the sole tiebreaker the pass-3 matcher uses,
// so within a mnemonic the direct-page form always precedes the absolute form which always
// precedes the absolute-long form, matching how a human reads an opcode reference card.
var snesInstructions = []InstructionInfo{
	// --- LDA ---
	{"lda", Immediate, 0xA9, []InstructionArgument{Numbers{[]ArgumentSize{W8, W16}}}},
	{"lda", SingleArgument, 0xA5, []InstructionArgument{Number{W8}}},
	{"lda", SingleArgument, 0xAD, []InstructionArgument{Number{W16}}},
	{"lda", SingleArgument, 0xAF, []InstructionArgument{Number{W24}}},
	{"lda", Indexed, 0xB5, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"lda", Indexed, 0xBD, []InstructionArgument{Number{W16}, Register{"x"}}},
	{"lda", Indexed, 0xB9, []InstructionArgument{Number{W16}, Register{"y"}}},
	{"lda", Indexed, 0xBF, []InstructionArgument{Number{W24}, Register{"x"}}},
	{"lda", Indirect, 0xB2, []InstructionArgument{Number{W8}}},
	{"lda", IndirectLong, 0xA7, []InstructionArgument{Number{W8}}},
	{"lda", IndexedIndirect, 0xA1, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"lda", IndirectIndexed, 0xB1, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"lda", IndirectIndexedLong, 0xB7, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"lda", StackRelativeIndirectIndexed, 0xB3, []InstructionArgument{Number{W8}}},

	// --- STA ---
	{"sta", SingleArgument, 0x85, []InstructionArgument{Number{W8}}},
	{"sta", SingleArgument, 0x8D, []InstructionArgument{Number{W16}}},
	{"sta", SingleArgument, 0x8F, []InstructionArgument{Number{W24}}},
	{"sta", Indexed, 0x95, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"sta", Indexed, 0x9D, []InstructionArgument{Number{W16}, Register{"x"}}},
	{"sta", Indexed, 0x99, []InstructionArgument{Number{W16}, Register{"y"}}},
	{"sta", Indexed, 0x9F, []InstructionArgument{Number{W24}, Register{"x"}}},
	{"sta", Indirect, 0x92, []InstructionArgument{Number{W8}}},
	{"sta", IndirectLong, 0x87, []InstructionArgument{Number{W8}}},
	{"sta", IndexedIndirect, 0x81, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"sta", IndirectIndexed, 0x91, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"sta", IndirectIndexedLong, 0x97, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"sta", StackRelativeIndirectIndexed, 0x83, []InstructionArgument{Number{W8}}},

	// --- LDX / LDY / STX / STY / STZ ---
	{"ldx", Immediate, 0xA2, []InstructionArgument{Numbers{[]ArgumentSize{W8, W16}}}},
	{"ldx", SingleArgument, 0xA6, []InstructionArgument{Number{W8}}},
	{"ldx", SingleArgument, 0xAE, []InstructionArgument{Number{W16}}},
	{"ldx", Indexed, 0xB6, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"ldx", Indexed, 0xBE, []InstructionArgument{Number{W16}, Register{"y"}}},

	{"ldy", Immediate, 0xA0, []InstructionArgument{Numbers{[]ArgumentSize{W8, W16}}}},
	{"ldy", SingleArgument, 0xA4, []InstructionArgument{Number{W8}}},
	{"ldy", SingleArgument, 0xAC, []InstructionArgument{Number{W16}}},
	{"ldy", Indexed, 0xB4, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"ldy", Indexed, 0xBC, []InstructionArgument{Number{W16}, Register{"x"}}},

	{"stx", SingleArgument, 0x86, []InstructionArgument{Number{W8}}},
	{"stx", SingleArgument, 0x8E, []InstructionArgument{Number{W16}}},
	{"stx", Indexed, 0x96, []InstructionArgument{Number{W8}, Register{"y"}}},

	{"sty", SingleArgument, 0x84, []InstructionArgument{Number{W8}}},
	{"sty", SingleArgument, 0x8C, []InstructionArgument{Number{W16}}},
	{"sty", Indexed, 0x94, []InstructionArgument{Number{W8}, Register{"x"}}},

	{"stz", SingleArgument, 0x64, []InstructionArgument{Number{W8}}},
	{"stz", SingleArgument, 0x9C, []InstructionArgument{Number{W16}}},
	{"stz", Indexed, 0x74, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"stz", Indexed, 0x9E, []InstructionArgument{Number{W16}, Register{"x"}}},

	// --- ADC / SBC ---
	{"adc", Immediate, 0x69, []InstructionArgument{Numbers{[]ArgumentSize{W8, W16}}}},
	{"adc", SingleArgument, 0x65, []InstructionArgument{Number{W8}}},
	{"adc", SingleArgument, 0x6D, []InstructionArgument{Number{W16}}},
	{"adc", SingleArgument, 0x6F, []InstructionArgument{Number{W24}}},
	{"adc", Indexed, 0x75, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"adc", Indexed, 0x7D, []InstructionArgument{Number{W16}, Register{"x"}}},
	{"adc", Indexed, 0x79, []InstructionArgument{Number{W16}, Register{"y"}}},
	{"adc", Indexed, 0x7F, []InstructionArgument{Number{W24}, Register{"x"}}},
	{"adc", Indirect, 0x72, []InstructionArgument{Number{W8}}},
	{"adc", IndirectLong, 0x67, []InstructionArgument{Number{W8}}},
	{"adc", IndexedIndirect, 0x61, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"adc", IndirectIndexed, 0x71, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"adc", IndirectIndexedLong, 0x77, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"adc", StackRelativeIndirectIndexed, 0x63, []InstructionArgument{Number{W8}}},

	{"sbc", Immediate, 0xE9, []InstructionArgument{Numbers{[]ArgumentSize{W8, W16}}}},
	{"sbc", SingleArgument, 0xE5, []InstructionArgument{Number{W8}}},
	{"sbc", SingleArgument, 0xED, []InstructionArgument{Number{W16}}},
	{"sbc", SingleArgument, 0xEF, []InstructionArgument{Number{W24}}},
	{"sbc", Indexed, 0xF5, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"sbc", Indexed, 0xFD, []InstructionArgument{Number{W16}, Register{"x"}}},
	{"sbc", Indexed, 0xF9, []InstructionArgument{Number{W16}, Register{"y"}}},
	{"sbc", Indexed, 0xFF, []InstructionArgument{Number{W24}, Register{"x"}}},
	{"sbc", Indirect, 0xF2, []InstructionArgument{Number{W8}}},
	{"sbc", IndirectLong, 0xE7, []InstructionArgument{Number{W8}}},
	{"sbc", IndexedIndirect, 0xE1, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"sbc", IndirectIndexed, 0xF1, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"sbc", IndirectIndexedLong, 0xF7, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"sbc", StackRelativeIndirectIndexed, 0xE3, []InstructionArgument{Number{W8}}},

	// --- AND / ORA / EOR ---
	{"and", Immediate, 0x29, []InstructionArgument{Numbers{[]ArgumentSize{W8, W16}}}},
	{"and", SingleArgument, 0x25, []InstructionArgument{Number{W8}}},
	{"and", SingleArgument, 0x2D, []InstructionArgument{Number{W16}}},
	{"and", SingleArgument, 0x2F, []InstructionArgument{Number{W24}}},
	{"and", Indexed, 0x35, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"and", Indexed, 0x3D, []InstructionArgument{Number{W16}, Register{"x"}}},
	{"and", Indexed, 0x39, []InstructionArgument{Number{W16}, Register{"y"}}},
	{"and", Indexed, 0x3F, []InstructionArgument{Number{W24}, Register{"x"}}},
	{"and", Indirect, 0x32, []InstructionArgument{Number{W8}}},
	{"and", IndirectLong, 0x27, []InstructionArgument{Number{W8}}},
	{"and", IndexedIndirect, 0x21, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"and", IndirectIndexed, 0x31, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"and", IndirectIndexedLong, 0x37, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"and", StackRelativeIndirectIndexed, 0x23, []InstructionArgument{Number{W8}}},

	{"ora", Immediate, 0x09, []InstructionArgument{Numbers{[]ArgumentSize{W8, W16}}}},
	{"ora", SingleArgument, 0x05, []InstructionArgument{Number{W8}}},
	{"ora", SingleArgument, 0x0D, []InstructionArgument{Number{W16}}},
	{"ora", SingleArgument, 0x0F, []InstructionArgument{Number{W24}}},
	{"ora", Indexed, 0x15, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"ora", Indexed, 0x1D, []InstructionArgument{Number{W16}, Register{"x"}}},
	{"ora", Indexed, 0x19, []InstructionArgument{Number{W16}, Register{"y"}}},
	{"ora", Indexed, 0x1F, []InstructionArgument{Number{W24}, Register{"x"}}},
	{"ora", Indirect, 0x12, []InstructionArgument{Number{W8}}},
	{"ora", IndirectLong, 0x07, []InstructionArgument{Number{W8}}},
	{"ora", IndexedIndirect, 0x01, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"ora", IndirectIndexed, 0x11, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"ora", IndirectIndexedLong, 0x17, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"ora", StackRelativeIndirectIndexed, 0x03, []InstructionArgument{Number{W8}}},

	{"eor", Immediate, 0x49, []InstructionArgument{Numbers{[]ArgumentSize{W8, W16}}}},
	{"eor", SingleArgument, 0x45, []InstructionArgument{Number{W8}}},
	{"eor", SingleArgument, 0x4D, []InstructionArgument{Number{W16}}},
	{"eor", SingleArgument, 0x4F, []InstructionArgument{Number{W24}}},
	{"eor", Indexed, 0x55, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"eor", Indexed, 0x5D, []InstructionArgument{Number{W16}, Register{"x"}}},
	{"eor", Indexed, 0x59, []InstructionArgument{Number{W16}, Register{"y"}}},
	{"eor", Indexed, 0x5F, []InstructionArgument{Number{W24}, Register{"x"}}},
	{"eor", Indirect, 0x52, []InstructionArgument{Number{W8}}},
	{"eor", IndirectLong, 0x47, []InstructionArgument{Number{W8}}},
	{"eor", IndexedIndirect, 0x41, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"eor", IndirectIndexed, 0x51, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"eor", IndirectIndexedLong, 0x57, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"eor", StackRelativeIndirectIndexed, 0x43, []InstructionArgument{Number{W8}}},

	// --- CMP / CPX / CPY ---
	{"cmp", Immediate, 0xC9, []InstructionArgument{Numbers{[]ArgumentSize{W8, W16}}}},
	{"cmp", SingleArgument, 0xC5, []InstructionArgument{Number{W8}}},
	{"cmp", SingleArgument, 0xCD, []InstructionArgument{Number{W16}}},
	{"cmp", SingleArgument, 0xCF, []InstructionArgument{Number{W24}}},
	{"cmp", Indexed, 0xD5, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"cmp", Indexed, 0xDD, []InstructionArgument{Number{W16}, Register{"x"}}},
	{"cmp", Indexed, 0xD9, []InstructionArgument{Number{W16}, Register{"y"}}},
	{"cmp", Indexed, 0xDF, []InstructionArgument{Number{W24}, Register{"x"}}},
	{"cmp", Indirect, 0xD2, []InstructionArgument{Number{W8}}},
	{"cmp", IndirectLong, 0xC7, []InstructionArgument{Number{W8}}},
	{"cmp", IndexedIndirect, 0xC1, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"cmp", IndirectIndexed, 0xD1, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"cmp", IndirectIndexedLong, 0xD7, []InstructionArgument{Number{W8}, Register{"y"}}},
	{"cmp", StackRelativeIndirectIndexed, 0xC3, []InstructionArgument{Number{W8}}},

	{"cpx", Immediate, 0xE0, []InstructionArgument{Numbers{[]ArgumentSize{W8, W16}}}},
	{"cpx", SingleArgument, 0xE4, []InstructionArgument{Number{W8}}},
	{"cpx", SingleArgument, 0xEC, []InstructionArgument{Number{W16}}},

	{"cpy", Immediate, 0xC0, []InstructionArgument{Numbers{[]ArgumentSize{W8, W16}}}},
	{"cpy", SingleArgument, 0xC4, []InstructionArgument{Number{W8}}},
	{"cpy", SingleArgument, 0xCC, []InstructionArgument{Number{W16}}},

	// --- BIT ---
	{"bit", Immediate, 0x89, []InstructionArgument{Numbers{[]ArgumentSize{W8, W16}}}},
	{"bit", SingleArgument, 0x24, []InstructionArgument{Number{W8}}},
	{"bit", SingleArgument, 0x2C, []InstructionArgument{Number{W16}}},
	{"bit", Indexed, 0x34, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"bit", Indexed, 0x3C, []InstructionArgument{Number{W16}, Register{"x"}}},

	// --- INC / DEC / shifts (direct-page, absolute, accumulator-implied) ---
	{"inc", Implied, 0x1A, nil},
	{"inc", SingleArgument, 0xE6, []InstructionArgument{Number{W8}}},
	{"inc", SingleArgument, 0xEE, []InstructionArgument{Number{W16}}},
	{"inc", Indexed, 0xF6, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"inc", Indexed, 0xFE, []InstructionArgument{Number{W16}, Register{"x"}}},

	{"dec", Implied, 0x3A, nil},
	{"dec", SingleArgument, 0xC6, []InstructionArgument{Number{W8}}},
	{"dec", SingleArgument, 0xCE, []InstructionArgument{Number{W16}}},
	{"dec", Indexed, 0xD6, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"dec", Indexed, 0xDE, []InstructionArgument{Number{W16}, Register{"x"}}},

	{"asl", Implied, 0x0A, nil},
	{"asl", SingleArgument, 0x06, []InstructionArgument{Number{W8}}},
	{"asl", SingleArgument, 0x0E, []InstructionArgument{Number{W16}}},
	{"asl", Indexed, 0x16, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"asl", Indexed, 0x1E, []InstructionArgument{Number{W16}, Register{"x"}}},

	{"lsr", Implied, 0x4A, nil},
	{"lsr", SingleArgument, 0x46, []InstructionArgument{Number{W8}}},
	{"lsr", SingleArgument, 0x4E, []InstructionArgument{Number{W16}}},
	{"lsr", Indexed, 0x56, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"lsr", Indexed, 0x5E, []InstructionArgument{Number{W16}, Register{"x"}}},

	{"rol", Implied, 0x2A, nil},
	{"rol", SingleArgument, 0x26, []InstructionArgument{Number{W8}}},
	{"rol", SingleArgument, 0x2E, []InstructionArgument{Number{W16}}},
	{"rol", Indexed, 0x36, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"rol", Indexed, 0x3E, []InstructionArgument{Number{W16}, Register{"x"}}},

	{"ror", Implied, 0x6A, nil},
	{"ror", SingleArgument, 0x66, []InstructionArgument{Number{W8}}},
	{"ror", SingleArgument, 0x6E, []InstructionArgument{Number{W16}}},
	{"ror", Indexed, 0x76, []InstructionArgument{Number{W8}, Register{"x"}}},
	{"ror", Indexed, 0x7E, []InstructionArgument{Number{W16}, Register{"x"}}},

	{"trb", SingleArgument, 0x14, []InstructionArgument{Number{W8}}},
	{"trb", SingleArgument, 0x1C, []InstructionArgument{Number{W16}}},
	{"tsb", SingleArgument, 0x04, []InstructionArgument{Number{W8}}},
	{"tsb", SingleArgument, 0x0C, []InstructionArgument{Number{W16}}},

	// --- control flow ---
	{"jmp", SingleArgument, 0x4C, []InstructionArgument{Number{W16}}},
	{"jmp", Indirect, 0x6C, []InstructionArgument{Number{W16}}},
	{"jmp", IndexedIndirect, 0x7C, []InstructionArgument{Number{W16}, Register{"x"}}},
	{"jml", SingleArgument, 0x5C, []InstructionArgument{Number{W24}}},
	{"jml", IndirectLong, 0xDC, []InstructionArgument{Number{W16}}},
	{"jsr", SingleArgument, 0x20, []InstructionArgument{Number{W16}}},
	{"jsr", IndexedIndirect, 0xFC, []InstructionArgument{Number{W16}, Register{"x"}}},
	{"jsl", SingleArgument, 0x22, []InstructionArgument{Number{W24}}},
	{"rts", Implied, 0x60, nil},
	{"rtl", Implied, 0x6B, nil},
	{"rti", Implied, 0x40, nil},

	{"bra", Relative, 0x80, []InstructionArgument{Number{W8}}},
	{"brl", Relative, 0x82, []InstructionArgument{Number{W16}}},
	{"bpl", Relative, 0x10, []InstructionArgument{Number{W8}}},
	{"bmi", Relative, 0x30, []InstructionArgument{Number{W8}}},
	{"bvc", Relative, 0x50, []InstructionArgument{Number{W8}}},
	{"bvs", Relative, 0x70, []InstructionArgument{Number{W8}}},
	{"bcc", Relative, 0x90, []InstructionArgument{Number{W8}}},
	{"bcs", Relative, 0xB0, []InstructionArgument{Number{W8}}},
	{"bne", Relative, 0xD0, []InstructionArgument{Number{W8}}},
	{"beq", Relative, 0xF0, []InstructionArgument{Number{W8}}},

	// --- stack / transfer / flag / misc implied ---
	{"pea", SingleArgument, 0xF4, []InstructionArgument{Number{W16}}},
	{"pei", Indirect, 0xD4, []InstructionArgument{Number{W8}}},
	{"per", SingleArgument, 0x62, []InstructionArgument{Number{W16}}},

	{"rep", Immediate, 0xC2, []InstructionArgument{Number{W8}}},
	{"sep", Immediate, 0xE2, []InstructionArgument{Number{W8}}},

	{"mvn", BlockMove, 0x54, []InstructionArgument{Number{W8}, Number{W8}}},
	{"mvp", BlockMove, 0x44, []InstructionArgument{Number{W8}, Number{W8}}},

	{"clc", Implied, 0x18, nil},
	{"cld", Implied, 0xD8, nil},
	{"cli", Implied, 0x58, nil},
	{"clv", Implied, 0xB8, nil},
	{"sec", Implied, 0x38, nil},
	{"sed", Implied, 0xF8, nil},
	{"sei", Implied, 0x78, nil},
	{"nop", Implied, 0xEA, nil},
	{"xce", Implied, 0xFB, nil},
	{"xba", Implied, 0xEB, nil},
	{"wai", Implied, 0xCB, nil},
	{"stp", Implied, 0xDB, nil},
	{"brk", Implied, 0x00, nil},
	{"cop", Immediate, 0x02, []InstructionArgument{Number{W8}}},

	{"tax", Implied, 0xAA, nil},
	{"tay", Implied, 0xA8, nil},
	{"txa", Implied, 0x8A, nil},
	{"tya", Implied, 0x98, nil},
	{"tsx", Implied, 0xBA, nil},
	{"txs", Implied, 0x9A, nil},
	{"txy", Implied, 0x9B, nil},
	{"tyx", Implied, 0xBB, nil},
	{"tcd", Implied, 0x5B, nil},
	{"tdc", Implied, 0x7B, nil},
	{"tcs", Implied, 0x1B, nil},
	{"tsc", Implied, 0x3B, nil},

	{"pha", Implied, 0x48, nil},
	{"phx", Implied, 0xDA, nil},
	{"phy", Implied, 0x5A, nil},
	{"phb", Implied, 0x8B, nil},
	{"phd", Implied, 0x0B, nil},
	{"phk", Implied, 0x4B, nil},
	{"php", Implied, 0x08, nil},
	{"pla", Implied, 0x68, nil},
	{"plx", Implied, 0xFA, nil},
	{"ply", Implied, 0x7A, nil},
	{"plb", Implied, 0xAB, nil},
	{"pld", Implied, 0x2B, nil},
	{"plp", Implied, 0x28, nil},

	{"dex", Implied, 0xCA, nil},
	{"dey", Implied, 0x88, nil},
	{"inx", Implied, 0xE8, nil},
	{"iny", Implied, 0xC8, nil},
}

// snesAddressingModeForSize names the SingleArgument-family addressing mode a literal or
// resolved label of the given size encodes as, for selection-failure diagnostics.
func snesAddressingModeForSize(size ArgumentSize) string {
	switch size {
	case W8:
		return "direct page"
	case W16:
		return "absolute"
	case W24:
		return "absolute long"
	default:
		return size.String()
	}
}

// SNES is the 65816 target definition for the Super Nintendo / Super Famicom.
var SNES = &SystemDefinition{
	ShortName:             "snes-cpu",
	Name:                  "Ricoh 5A22 (65816) — Super Nintendo / Super Famicom",
	BigEndian:             false,
	LabelSize:             W16,
	Registers:             snesRegisters,
	AddressingModeForSize: snesAddressingModeForSize,
	Instructions:          snesInstructions,
}
