package assembler

import (
	"github.com/snesdev/zealgo/parser"
	"github.com/snesdev/zealgo/system"
)

// pass1 walks the node list once, assigning every label its address and every byte-producing
// node its address and size. It never inspects a label's resolved value — addresses are derived
// purely from walking forward and accumulating sizes, which is why labels can be referenced
// before their definition appears in source order.
func pass1(res *Result, target *system.SystemDefinition, source parser.SourceProvider, errs *parser.ErrorList) {
	var pc uint32

	for i, node := range res.Nodes {
		switch n := node.(type) {
		case parser.OriginDirective:
			pc = n.Address.Value

		case parser.SnesMapDirective:
			res.MapMode = n.Mode

		case parser.LabelDef:
			res.Symbols.Define(n.Name, pc)

		case parser.IncBinNode:
			data, err := source.ReadBinary(n.Path)
			if err != nil {
				errs.Add(parser.ErrorMessage{Message: err.Error(), Token: parser.Token{Pos: n.Pos()}, Severity: parser.SeverityError})
				continue
			}
			res.Units = append(res.Units, Unit{Address: pc, Size: len(data), Index: i})
			pc += uint32(len(data))

		case parser.Instruction:
			size, err := instructionSize(target, n.Mnemonic, n.Arg)
			if err != nil {
				errs.Add(parser.ErrorMessage{Message: err.Error(), Token: parser.Token{Pos: n.Pos()}, Severity: parser.SeverityError})
				continue
			}
			res.Units = append(res.Units, Unit{Address: pc, Size: size, Index: i})
			pc += uint32(size)
		}
	}
}
