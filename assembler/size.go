package assembler

import (
	"fmt"

	"github.com/snesdev/zealgo/parser"
	"github.com/snesdev/zealgo/system"
)

// instructionSize returns the total byte length (opcode plus operand) of mnemonic with the given
// parsed argument shape. It is computed purely from the argument's own syntax — for a label
// reference this means consulting the opcode table for the syntactic form's candidate addressing
// modes (never the label's eventual address), so pass 1 can lay out every address before any
// label is resolved.
func instructionSize(target *system.SystemDefinition, mnemonic string, arg parser.Expr) (int, error) {
	switch e := arg.(type) {
	case parser.ImpliedExpr:
		return 1, nil
	case parser.ImmediateExpr:
		return 1 + e.Value.Size.Bytes(), nil
	case parser.LabelExpr:
		return 1 + labelOperandSize(target, mnemonic, arg).Bytes(), nil
	case parser.SingleArgumentExpr:
		return 1 + e.Value.Size.Bytes(), nil
	case parser.IndexedExpr:
		if e.Label != "" {
			return 1 + labelOperandSize(target, mnemonic, arg).Bytes(), nil
		}
		return 1 + e.Value.Size.Bytes(), nil
	case parser.IndirectExpr:
		if e.Label != "" {
			return 1 + labelOperandSize(target, mnemonic, arg).Bytes(), nil
		}
		return 1 + e.Value.Size.Bytes(), nil
	case parser.IndirectLongExpr:
		if e.Label != "" {
			return 1 + labelOperandSize(target, mnemonic, arg).Bytes(), nil
		}
		return 1 + e.Value.Size.Bytes(), nil
	case parser.IndexedIndirectExpr:
		if e.Label != "" {
			return 1 + labelOperandSize(target, mnemonic, arg).Bytes(), nil
		}
		return 1 + e.Value.Size.Bytes(), nil
	case parser.IndirectIndexedExpr:
		if e.Label != "" {
			return 1 + labelOperandSize(target, mnemonic, arg).Bytes(), nil
		}
		return 1 + e.Value.Size.Bytes(), nil
	case parser.IndirectIndexedLongExpr:
		if e.Label != "" {
			return 1 + labelOperandSize(target, mnemonic, arg).Bytes(), nil
		}
		return 1 + e.Value.Size.Bytes(), nil
	case parser.StackRelativeIndirectIndexedExpr:
		if e.Label != "" {
			return 1 + labelOperandSize(target, mnemonic, arg).Bytes(), nil
		}
		return 1 + e.Value.Size.Bytes(), nil
	case parser.BlockMoveExpr:
		return 1 + 2, nil
	default:
		return 0, fmt.Errorf("assembler: unhandled expression type %T for mnemonic %q", arg, mnemonic)
	}
}

// labelFamilyFor returns the addressing-mode candidate set pass 3 will later query for this
// syntactic argument shape — the same set labelOperandSize consults so a label's size is picked
// from the table entry that will actually end up selected, rather than a generic fallback width.
func labelFamilyFor(arg parser.Expr) map[system.AddressingMode]bool {
	switch arg.(type) {
	case parser.LabelExpr, parser.SingleArgumentExpr:
		return family(system.SingleArgument, system.Relative)
	case parser.IndexedExpr:
		return family(system.Indexed)
	case parser.IndirectExpr:
		return family(system.Indirect)
	case parser.IndirectLongExpr:
		return family(system.IndirectLong)
	case parser.IndexedIndirectExpr:
		return family(system.IndexedIndirect)
	case parser.IndirectIndexedExpr:
		return family(system.IndirectIndexed)
	case parser.IndirectIndexedLongExpr:
		return family(system.IndirectIndexedLong)
	case parser.StackRelativeIndirectIndexedExpr:
		return family(system.StackRelativeIndirectIndexed)
	default:
		return nil
	}
}

// labelOperandSize picks the size a label operand will encode at: the first matching table
// entry's argument size for this syntactic form, falling back to the target's generic LabelSize
// only when no such entry exists — matching the original assembler's find_instruction_argument_size
// rather than always widening a label reference to LabelSize.
func labelOperandSize(target *system.SystemDefinition, mnemonic string, arg parser.Expr) system.ArgumentSize {
	if size, ok := target.LabelArgumentSize(mnemonic, labelFamilyFor(arg)); ok {
		return size
	}
	return target.LabelSize
}
