package interpreter

//go:generate sh -c "cd ../tool && go run . ../interpreter/values.types ../interpreter/value_gen.go interpreter"

import (
	"strconv"

	"github.com/pontaoski/rainyday/types"
)

// Value is a runtime value. TypeName is the nominal tag compared against a
// variable's declared type.
type Value interface {
	value
	TypeName() string
	String() string
}

func (v Int32) TypeName() string { return types.Int32 }
func (v Int32) String() string   { return strconv.FormatInt(int64(v), 10) }

func (v Single) TypeName() string { return types.Single }
func (v Single) String() string   { return strconv.FormatFloat(float64(v), 'g', -1, 32) }

func (v String) TypeName() string { return types.String }
func (v String) String() string   { return string(v) }

func (v Character) TypeName() string { return types.Character }
func (v Character) String() string   { return string(rune(v)) }

func (v Boolean) TypeName() string { return types.Boolean }
func (v Boolean) String() string   { return strconv.FormatBool(bool(v)) }

// None is the value of a variable declared without an initializer.
type None struct{}

func (v None) is_value()        {}
func (v None) TypeName() string { return "None" }
func (v None) String() string   { return "" }
