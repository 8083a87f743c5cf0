package interpreter

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Variable is one row of the environment: a declared name, its nominal
// type and its current value.
type Variable struct {
	Name  string
	Type  string
	Value Value
}

// Environment stores variables in declaration order. It is a stack of
// frames with the global frame at the bottom; lookups search from the
// innermost frame outwards. Only the global frame exists today.
type Environment struct {
	frames []*linkedhashmap.Map
}

func NewEnvironment() *Environment {
	return &Environment{frames: []*linkedhashmap.Map{linkedhashmap.New()}}
}

func (e *Environment) Lookup(name string) (*Variable, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if v, ok := e.frames[i].Get(name); ok {
			return v.(*Variable), true
		}
	}
	return nil, false
}

// Declare adds v to the innermost frame. It reports false, leaving the
// frame untouched, when the name is already visible.
func (e *Environment) Declare(v Variable) bool {
	if _, exists := e.Lookup(v.Name); exists {
		return false
	}
	e.frames[len(e.frames)-1].Put(v.Name, &v)
	return true
}

// Variables returns a snapshot of the global frame in declaration order.
func (e *Environment) Variables() []Variable {
	global := e.frames[0]
	ret := make([]Variable, 0, global.Size())
	it := global.Iterator()
	for it.Next() {
		ret = append(ret, *it.Value().(*Variable))
	}
	return ret
}
