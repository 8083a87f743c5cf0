package ast

import (
	"fmt"
	"strconv"
	"strings"
)

func (t TypeName) String() string {
	if t.Inferred {
		return "var"
	}
	return t.Name
}

func (o UnaryOperator) String() string {
	switch o {
	case Negate:
		return "-"
	case Not:
		return "!"
	}
	return fmt.Sprintf("UnaryOperator(%d)", int(o))
}

var binaryOperators = [...]string{
	Add:            "+",
	Subtract:       "-",
	Multiply:       "*",
	Divide:         "/",
	Greater:        ">",
	GreaterOrEqual: ">=",
	Less:           "<",
	LessOrEqual:    "<=",
	Equal:          "==",
	NotEqual:       "!=",
}

func (o BinaryOperator) String() string {
	if o >= 0 && int(o) < len(binaryOperators) {
		return binaryOperators[o]
	}
	return fmt.Sprintf("BinaryOperator(%d)", int(o))
}

func (v UnaryOp) String() string  { return fmt.Sprintf("%s%s", v.Op, v.Operand) }
func (v BinaryOp) String() string { return fmt.Sprintf("(%s %s %s)", v.Left, v.Op, v.Right) }

func (v PreIncrement) String() string  { return "++" + v.Variable.Name }
func (v PreDecrement) String() string  { return "--" + v.Variable.Name }
func (v PostIncrement) String() string { return v.Variable.Name + "++" }
func (v PostDecrement) String() string { return v.Variable.Name + "--" }
func (v VariableRef) String() string   { return v.Name }

func (v Integer) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Single) String() string    { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
func (v String) String() string    { return strconv.Quote(string(v)) }
func (v Character) String() string { return strconv.QuoteRune(rune(v)) }
func (v Boolean) String() string   { return strconv.FormatBool(bool(v)) }

func (v VariableDeclaration) String() string {
	s := fmt.Sprintf("%s %s", v.Type, strings.Join(v.Names, ", "))
	if v.Initializer != nil {
		s += fmt.Sprintf(" = %s", v.Initializer)
	}
	return s
}

func (v Assign) String() string         { return fmt.Sprintf("%s = %s", v.Target, v.Value) }
func (v CompoundAssign) String() string { return fmt.Sprintf("%s %s= %s", v.Target, v.Op, v.Value) }

func (v Return) String() string {
	if v.Value == nil {
		return "return"
	}
	return fmt.Sprintf("return %s", v.Value)
}

func (f Function) String() string {
	var args []string
	for _, arg := range f.Params {
		args = append(args, fmt.Sprintf("%s %s", arg.Type, arg.Name))
	}
	return fmt.Sprintf("%s %s(%s)", f.ReturnType, f.Name, strings.Join(args, ", "))
}
