package symbols

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/pontaoski/rainyday/errors"
)

type Symbol interface {
	is_Symbol()
	SymbolName() string
}

type TypeSymbol struct {
	Name string
}

func (v *TypeSymbol) is_Symbol()         {}
func (v *TypeSymbol) SymbolName() string { return v.Name }
func (v *TypeSymbol) String() string     { return fmt.Sprintf("Type: %s", v.Name) }

// VariableSymbol's Type is nil when the declared type could not be resolved
// or inferred.
type VariableSymbol struct {
	Name string
	Type *TypeSymbol
}

func (v *VariableSymbol) is_Symbol()         {}
func (v *VariableSymbol) SymbolName() string { return v.Name }

func (v *VariableSymbol) String() string {
	if v.Type == nil {
		return fmt.Sprintf("Variable: %s : ?", v.Name)
	}
	return fmt.Sprintf("Variable: %s : %s", v.Name, v.Type.Name)
}

// Table maps names to symbols and remembers insertion order.
type Table struct {
	symbols *linkedhashmap.Map
}

func NewTable() *Table {
	return &Table{symbols: linkedhashmap.New()}
}

// Insert adds sym, refusing to replace a symbol of the same name.
func (t *Table) Insert(sym Symbol) error {
	if _, found := t.symbols.Get(sym.SymbolName()); found {
		return errors.DuplicateSymbol{Name: sym.SymbolName()}
	}
	t.symbols.Put(sym.SymbolName(), sym)
	return nil
}

// Lookup returns the symbol called name if it exists and is a T.
func Lookup[T Symbol](t *Table, name string) (T, bool) {
	var zero T
	v, found := t.symbols.Get(name)
	if !found {
		return zero, false
	}
	sym, ok := v.(T)
	if !ok {
		return zero, false
	}
	return sym, true
}

func (t *Table) Symbols() []Symbol {
	ret := make([]Symbol, 0, t.symbols.Size())
	it := t.symbols.Iterator()
	for it.Next() {
		ret = append(ret, it.Value().(Symbol))
	}
	return ret
}

func (t *Table) String() string {
	var b strings.Builder
	b.WriteString("Symbols:")
	for _, sym := range t.Symbols() {
		fmt.Fprintf(&b, "\n\t%s", sym)
	}
	return b.String()
}
