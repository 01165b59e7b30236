package assembler

import (
	"fmt"

	"github.com/snesdev/zealgo/parser"
	"github.com/snesdev/zealgo/system"
)

// pass3 walks every instruction unit and selects its opcode: it builds the addressing-mode
// family and operand query shape the expression implies, hands both to the target's Find, and
// rewrites the node to one of the Final* variants carrying the matched opcode and its byte-sized
// operand. Any expression the table has no match for is a size/addressing-combination error —
// pass 1 and pass 2 never report this: they consult the table only to pick a label operand's size.
func pass3(res *Result, target *system.SystemDefinition, errs *parser.ErrorList) {
	for _, u := range res.Units {
		ins, ok := res.Nodes[u.Index].(parser.Instruction)
		if !ok {
			continue // IncBinNode — nothing to select
		}

		final, err := selectOpcode(target, ins)
		if err != nil {
			errs.Errorf(parser.Token{Pos: ins.Pos()}, "%v", err)
			continue
		}
		res.Nodes[u.Index] = ins.WithArg(final)
	}
}

func family(modes ...system.AddressingMode) map[system.AddressingMode]bool {
	f := make(map[system.AddressingMode]bool, len(modes))
	for _, m := range modes {
		f[m] = true
	}
	return f
}

func noMatchError(mnemonic string, mode system.AddressingMode, query []system.InstructionArgument) error {
	return fmt.Errorf("%s: no %s form matches operand shape %v", mnemonic, mode, query)
}

// noSingleArgumentMatchError reports a SingleArgument/Relative selection failure the way the
// addressing-mode name implied by the operand's own size, e.g. "opcode 'lda' does not support
// absolute long addressing mode." — falling back to the generic shape-mismatch message if the
// target defines no AddressingModeForSize.
func noSingleArgumentMatchError(target *system.SystemDefinition, mnemonic string, size system.ArgumentSize) error {
	if target.AddressingModeForSize == nil {
		return noMatchError(mnemonic, system.SingleArgument, []system.InstructionArgument{system.Number{Size: size}})
	}
	return fmt.Errorf("opcode '%s' does not support %s addressing mode.", mnemonic, target.AddressingModeForSize(size))
}

// noStackRelativeMatchError reports an Indexed selection failure whose captured register was
// "s" — the 65816 has no stack-relative indexed form, only stack-relative indirect indexed, so
// this is always a distinct mistake from an ordinary unsupported index register.
func noStackRelativeMatchError(mnemonic string) error {
	return fmt.Errorf("opcode '%s' does not support stack relative mode.", mnemonic)
}

func unhandledExprError(mnemonic string) error {
	return fmt.Errorf("%s: unresolved operand reached opcode selection", mnemonic)
}

func selectOpcode(target *system.SystemDefinition, ins parser.Instruction) (parser.Expr, error) {
	pos := ins.Pos()

	switch e := ins.Arg.(type) {
	case parser.ImpliedExpr:
		info, ok := target.Find(ins.Mnemonic, family(system.Implied), nil)
		if !ok {
			return nil, noMatchError(ins.Mnemonic, system.Implied, nil)
		}
		return parser.NewFinalImpliedExpr(pos, info.Opcode), nil

	case parser.ImmediateExpr:
		query := []system.InstructionArgument{system.Number{Size: e.Value.Size}}
		info, ok := target.Find(ins.Mnemonic, family(system.Immediate), query)
		if !ok {
			return nil, noMatchError(ins.Mnemonic, system.Immediate, query)
		}
		return parser.NewFinalSingleArgExpr(pos, info.Opcode, e.Value), nil

	case parser.SingleArgumentExpr:
		if target.IsRelative(ins.Mnemonic) {
			query := []system.InstructionArgument{system.Number{Size: e.Value.Size}}
			info, ok := target.Find(ins.Mnemonic, family(system.Relative), query)
			if !ok {
				return nil, noSingleArgumentMatchError(target, ins.Mnemonic, e.Value.Size)
			}
			return parser.NewFinalSingleArgExpr(pos, info.Opcode, e.Value), nil
		}
		query := []system.InstructionArgument{system.Number{Size: e.Value.Size}}
		info, ok := target.Find(ins.Mnemonic, family(system.SingleArgument), query)
		if !ok {
			return nil, noSingleArgumentMatchError(target, ins.Mnemonic, e.Value.Size)
		}
		return parser.NewFinalSingleArgExpr(pos, info.Opcode, e.Value), nil

	case parser.IndexedExpr:
		query := []system.InstructionArgument{system.Number{Size: e.Value.Size}, system.NotStaticRegister{Name: e.Index}}
		info, ok := target.Find(ins.Mnemonic, family(system.Indexed), query)
		if !ok {
			if e.Index == "s" {
				return nil, noStackRelativeMatchError(ins.Mnemonic)
			}
			return nil, noMatchError(ins.Mnemonic, system.Indexed, query)
		}
		return parser.NewFinalSingleArgExpr(pos, info.Opcode, e.Value), nil

	case parser.IndirectExpr:
		query := []system.InstructionArgument{system.Number{Size: e.Value.Size}}
		info, ok := target.Find(ins.Mnemonic, family(system.Indirect), query)
		if !ok {
			return nil, noMatchError(ins.Mnemonic, system.Indirect, query)
		}
		return parser.NewFinalSingleArgExpr(pos, info.Opcode, e.Value), nil

	case parser.IndirectLongExpr:
		query := []system.InstructionArgument{system.Number{Size: e.Value.Size}}
		info, ok := target.Find(ins.Mnemonic, family(system.IndirectLong), query)
		if !ok {
			return nil, noMatchError(ins.Mnemonic, system.IndirectLong, query)
		}
		return parser.NewFinalSingleArgExpr(pos, info.Opcode, e.Value), nil

	case parser.IndexedIndirectExpr:
		query := []system.InstructionArgument{system.Number{Size: e.Value.Size}, system.NotStaticRegister{Name: e.Index}}
		info, ok := target.Find(ins.Mnemonic, family(system.IndexedIndirect), query)
		if !ok {
			return nil, noMatchError(ins.Mnemonic, system.IndexedIndirect, query)
		}
		return parser.NewFinalSingleArgExpr(pos, info.Opcode, e.Value), nil

	case parser.IndirectIndexedExpr:
		query := []system.InstructionArgument{system.Number{Size: e.Value.Size}, system.NotStaticRegister{Name: e.Index}}
		info, ok := target.Find(ins.Mnemonic, family(system.IndirectIndexed), query)
		if !ok {
			return nil, noMatchError(ins.Mnemonic, system.IndirectIndexed, query)
		}
		return parser.NewFinalSingleArgExpr(pos, info.Opcode, e.Value), nil

	case parser.IndirectIndexedLongExpr:
		query := []system.InstructionArgument{system.Number{Size: e.Value.Size}, system.NotStaticRegister{Name: e.Index}}
		info, ok := target.Find(ins.Mnemonic, family(system.IndirectIndexedLong), query)
		if !ok {
			return nil, noMatchError(ins.Mnemonic, system.IndirectIndexedLong, query)
		}
		return parser.NewFinalSingleArgExpr(pos, info.Opcode, e.Value), nil

	case parser.StackRelativeIndirectIndexedExpr:
		query := []system.InstructionArgument{system.Number{Size: e.Value.Size}}
		info, ok := target.Find(ins.Mnemonic, family(system.StackRelativeIndirectIndexed), query)
		if !ok {
			return nil, noMatchError(ins.Mnemonic, system.StackRelativeIndirectIndexed, query)
		}
		return parser.NewFinalSingleArgExpr(pos, info.Opcode, e.Value), nil

	case parser.BlockMoveExpr:
		query := []system.InstructionArgument{system.Number{Size: e.Src.Size}, system.Number{Size: e.Dst.Size}}
		info, ok := target.Find(ins.Mnemonic, family(system.BlockMove), query)
		if !ok {
			return nil, noMatchError(ins.Mnemonic, system.BlockMove, query)
		}
		return parser.NewFinalTwoArgExpr(pos, info.Opcode, byte(e.Src.Truncated()), byte(e.Dst.Truncated())), nil

	default:
		return nil, unhandledExprError(ins.Mnemonic)
	}
}
