// Package emitter turns an assembled Result into bytes on disk, translating each unit's linear
// address through the selected SNES memory map before writing it.
package emitter

import (
	"fmt"
	"os"

	"github.com/snesdev/zealgo/assembler"
	"github.com/snesdev/zealgo/parser"
)

// MapMode selects how a unit's linear address is translated to a file offset before writing.
type MapMode int

const (
	// Identity writes each unit at its own address, unchanged.
	Identity MapMode = iota
	// LoROM applies the standard SNES LoROM bank-and-offset translation.
	LoROM
	// HiROM applies the standard SNES HiROM translation.
	HiROM
)

// ParseMapMode resolves a snesmap directive's mode string ("identity", "lorom", "hirom") to a
// MapMode, defaulting to Identity for anything else — an unrecognized mode is a diagnostic the
// caller should have already raised during parsing, not something the emitter re-validates.
func ParseMapMode(mode string) MapMode {
	switch mode {
	case "lorom":
		return LoROM
	case "hirom":
		return HiROM
	default:
		return Identity
	}
}

// Translate maps a linear address to the file offset it's written at under mode.
func Translate(mode MapMode, addr uint32) uint32 {
	switch mode {
	case LoROM:
		return ((addr & 0x7F0000) >> 1) | (addr & 0x7FFF)
	case HiROM:
		return addr & 0x3FFFFF
	default:
		return addr
	}
}

// OutputSink is the destination an emitted program is written to. Patch writes into an existing
// file at each unit's translated offset without truncating the rest of the file; Create always
// starts from an empty file. This mirrors an assembler that can either produce a fresh ROM image
// or patch bytes into one that already exists.
type OutputSink interface {
	// WriteAt writes data at the given file offset.
	WriteAt(offset uint32, data []byte) error
	// Close finalizes and releases the sink's resources.
	Close() error
}

// fileSink implements OutputSink over a local file, opened either fresh (truncated) or for
// in-place patching depending on patch.
type fileSink struct {
	f *os.File
}

// OpenFile opens path as an OutputSink. When patch is false the file is created/truncated; when
// patch is true an existing file is opened for read-write in place, matching the teacher's own
// "open for write, fall back to create" pattern from its loader, generalized to an assembler
// output rather than a debugger input.
func OpenFile(path string, patch bool) (OutputSink, error) {
	if patch {
		f, err := os.OpenFile(path, os.O_RDWR, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening %s for patching: %w", path, err)
		}
		return &fileSink{f: f}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &fileSink{f: f}, nil
}

func (s *fileSink) WriteAt(offset uint32, data []byte) error {
	if _, err := s.f.WriteAt(data, int64(offset)); err != nil {
		return fmt.Errorf("writing %d bytes at offset %d: %w", len(data), offset, err)
	}
	return nil
}

func (s *fileSink) Close() error {
	if err := s.f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

// Emit writes every unit of res to sink, translating addresses through mode. source is consulted
// again for incbin units, since pass 1 only needed their length, not their bytes.
func Emit(res *assembler.Result, mode MapMode, sink OutputSink, source parser.SourceProvider) error {
	for _, u := range res.Units {
		node := res.Nodes[u.Index]
		offset := Translate(mode, u.Address)

		switch n := node.(type) {
		case parser.IncBinNode:
			data, err := source.ReadBinary(n.Path)
			if err != nil {
				return err
			}
			if err := sink.WriteAt(offset, data); err != nil {
				return err
			}

		case parser.Instruction:
			data, err := instructionBytes(n)
			if err != nil {
				return err
			}
			if err := sink.WriteAt(offset, data); err != nil {
				return err
			}

		default:
			return fmt.Errorf("emitter: unit at 0x%06X is neither an instruction nor incbin", u.Address)
		}
	}
	return nil
}

func instructionBytes(ins parser.Instruction) ([]byte, error) {
	switch e := ins.Arg.(type) {
	case parser.FinalImpliedExpr:
		return []byte{e.Opcode}, nil

	case parser.FinalSingleArgExpr:
		out := make([]byte, 1+e.Operand.Size.Bytes())
		out[0] = e.Opcode
		writeLittleEndian(out[1:], e.Operand.Truncated())
		return out, nil

	case parser.FinalTwoArgExpr:
		return []byte{e.Opcode, e.First, e.Second}, nil

	default:
		return nil, fmt.Errorf("emitter: instruction %q was never resolved to a final form", ins.Mnemonic)
	}
}

// writeLittleEndian writes v's low len(out) bytes into out, least-significant byte first — the
// 65816's native byte order for every multi-byte operand.
func writeLittleEndian(out []byte, v uint32) {
	for i := range out {
		out[i] = byte(v >> (8 * uint(i)))
	}
}
