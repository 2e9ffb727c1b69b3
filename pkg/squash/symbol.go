package squash

// Symbol is an interned, pointer-stable identity handle for a graph node.
// Two lookups of the same name through one SymbolTable yield the same
// *Symbol, so pointer equality is identity equality.
type Symbol struct {
	name string
}

// Name returns the string the symbol was interned under.
func (s *Symbol) Name() string { return s.name }

// SymbolTable interns node names to stable symbols. String keys and
// pointer keys resolve to the same registry entries because every string
// passes through Intern before it is used as a map key.
type SymbolTable struct {
	syms map[string]*Symbol
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{syms: make(map[string]*Symbol)}
}

// Intern returns the canonical symbol for name, creating it on first use.
func (t *SymbolTable) Intern(name string) *Symbol {
	if s, ok := t.syms[name]; ok {
		return s
	}
	s := &Symbol{name: name}
	t.syms[name] = s
	return s
}
