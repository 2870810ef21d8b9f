package lc3

import (
	"fmt"
	"iter"
	"maps"
)

// SymbolTable maps label names to bound 16-bit values. Position bindings and
// constant bindings share the one namespace and are indistinguishable once
// stored. Rebinding a name silently overwrites the prior value.
type SymbolTable map[string]int16

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() SymbolTable {
	return make(SymbolTable, 16)
}

// BindPosition binds a name to an instruction index.
func (st SymbolTable) BindPosition(name string, index int) {
	st[name] = int16(index)
}

// BindConstant binds a name to a constant value.
func (st SymbolTable) BindConstant(name string, value int16) {
	st[name] = value
}

// Resolve returns the value bound to a name.
func (st SymbolTable) Resolve(name string) (value int16, err error) {
	value, ok := st[name]
	if !ok {
		err = ErrLabelMissing(name)
		return
	}

	return
}

// Bound returns true if the name has a binding.
func (st SymbolTable) Bound(name string) bool {
	_, ok := st[name]
	return ok
}

// Clone returns a copy of the symbol table.
func (st SymbolTable) Clone() SymbolTable {
	return maps.Clone(st)
}

// Defines returns an iterator over the bindings, rendered as assembler
// predefines.
func (st SymbolTable) Defines() iter.Seq2[string, string] {
	return func(yield func(name string, value string) bool) {
		for name, value := range st {
			if !yield(name, fmt.Sprintf("%v", value)) {
				return
			}
		}
	}
}
