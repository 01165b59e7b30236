package assembler

import (
	"github.com/snesdev/zealgo/parser"
	"github.com/snesdev/zealgo/system"
)

// pass2 resolves every label reference left behind by pass 1: it looks each one up in the symbol
// table built during pass 1, turns Relative-mnemonic references into a range-checked signed
// displacement, and turns every other reference into a plain resolved operand. Instructions with
// no label reference pass through untouched.
func pass2(res *Result, target *system.SystemDefinition, errs *parser.ErrorList) {
	for _, u := range res.Units {
		ins, ok := res.Nodes[u.Index].(parser.Instruction)
		if !ok {
			continue // IncBinNode — nothing to resolve
		}

		label := parser.LabelOf(ins.Arg)
		if label == "" {
			continue
		}

		addr, found := res.Symbols.Lookup(label)
		if !found {
			errs.Errorf(parser.Token{Pos: ins.Pos()}, "undefined label %q", label)
			continue
		}

		var resolved system.NumberLiteral
		if target.IsRelative(ins.Mnemonic) {
			size, _ := target.RelativeOperandSize(ins.Mnemonic)
			instrEnd := int64(u.Address) + int64(u.Size)
			disp := int64(addr) - instrEnd
			if err := checkDisplacementRange(disp, size); err != nil {
				errs.Errorf(parser.Token{Pos: ins.Pos()}, "%s: %v", ins.Mnemonic, err)
				disp = 0
			}
			resolved = system.NumberLiteral{Value: encodeSigned(disp, size), Size: size}
		} else {
			size := labelOperandSize(target, ins.Mnemonic, ins.Arg)
			resolved = system.NumberLiteral{Value: addr, Size: size}
			resolved.Value = resolved.Truncated()
		}

		res.Nodes[u.Index] = ins.WithArg(resolveArg(ins.Arg, resolved))
	}
}

// resolveArg rebuilds arg with its label reference replaced by resolved, preserving every other
// field (index register, etc.) the original expression carried.
func resolveArg(arg parser.Expr, resolved system.NumberLiteral) parser.Expr {
	switch e := arg.(type) {
	case parser.LabelExpr:
		return e.Resolved(resolved)
	case parser.SingleArgumentExpr:
		return e.WithValue(resolved)
	case parser.IndexedExpr:
		return e.WithValue(resolved)
	case parser.IndirectExpr:
		return e.WithValue(resolved)
	case parser.IndirectLongExpr:
		return e.WithValue(resolved)
	case parser.IndexedIndirectExpr:
		return e.WithValue(resolved)
	case parser.IndirectIndexedExpr:
		return e.WithValue(resolved)
	case parser.IndirectIndexedLongExpr:
		return e.WithValue(resolved)
	case parser.StackRelativeIndirectIndexedExpr:
		return e.WithValue(resolved)
	default:
		return arg
	}
}

func checkDisplacementRange(disp int64, size system.ArgumentSize) error {
	switch size {
	case system.W8:
		if disp < -128 || disp > 127 {
			return errDisplacementRange(disp, -128, 127)
		}
	case system.W16:
		if disp < -32768 || disp > 32767 {
			return errDisplacementRange(disp, -32768, 32767)
		}
	}
	return nil
}

func errDisplacementRange(disp int64, lo, hi int64) error {
	return &displacementRangeError{disp: disp, lo: lo, hi: hi}
}

type displacementRangeError struct {
	disp, lo, hi int64
}

func (e *displacementRangeError) Error() string {
	return rangeMessage(e.disp, e.lo, e.hi)
}

func rangeMessage(disp, lo, hi int64) string {
	return "branch displacement " + itoa(disp) + " out of range [" + itoa(lo) + "," + itoa(hi) + "]"
}

// itoa avoids pulling in strconv just for this one error path's signed formatting.
func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [24]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// encodeSigned masks a signed displacement into size's unsigned representation (two's complement).
func encodeSigned(v int64, size system.ArgumentSize) uint32 {
	switch size {
	case system.W8:
		return uint32(int8(v)) & 0xFF
	case system.W16:
		return uint32(int16(v)) & 0xFFFF
	default:
		return uint32(v)
	}
}
