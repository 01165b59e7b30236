package parser

// SymbolTable maps label names to the addresses pass 1 assigned them. Redefinition is last-
// definition-wins: pass 1 never rejects a duplicate label, it simply overwrites the prior entry,
// matching the teacher's own symbol table discipline.
type SymbolTable struct {
	addresses map[string]uint32
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{addresses: make(map[string]uint32)}
}

// Define records name's address, overwriting any prior definition.
func (t *SymbolTable) Define(name string, address uint32) {
	t.addresses[name] = address
}

// Lookup returns name's address and whether it was ever defined. Callers that need to distinguish
// "defined at 0" from "never defined" must use Lookup, not Address.
func (t *SymbolTable) Lookup(name string) (uint32, bool) {
	addr, ok := t.addresses[name]
	return addr, ok
}

// Address returns name's address, or 0 if it was never defined. It exists only as a convenience
// for call sites that already proved the label exists (typically via a prior Lookup) — pass 2
// must never call Address on a label without first checking Lookup, or a missing label silently
// resolves to address 0 instead of producing a diagnostic.
func (t *SymbolTable) Address(name string) uint32 {
	return t.addresses[name]
}

// Names returns every defined label name, in no particular order — used by the inspector to
// list the symbol table.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.addresses))
	for n := range t.addresses {
		names = append(names, n)
	}
	return names
}
