package interpreter

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pontaoski/rainyday/ast"
	"github.com/pontaoski/rainyday/errors"
	"github.com/pontaoski/rainyday/types"
)

// Interpreter evaluates syntax trees against a single global environment.
// Errors accumulate across calls until ClearErrors; variables live as long
// as the Interpreter. It is not safe for concurrent use.
//
// Branches, returns and type-level declarations are parsed but not executed.
type Interpreter struct {
	env  *Environment
	errs []error
	log  *slog.Logger
}

type Option func(*Interpreter)

func WithLogger(l *slog.Logger) Option {
	return func(i *Interpreter) {
		i.log = l
	}
}

func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		env: NewEnvironment(),
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Interpreter) Errors() []error {
	return append([]error(nil), i.errs...)
}

func (i *Interpreter) ClearErrors() {
	i.errs = nil
}

// Variables lists every declared variable in declaration order.
func (i *Interpreter) Variables() []Variable {
	return i.env.Variables()
}

const cellSize = 16

// Describe renders the variables as a three column table.
func (i *Interpreter) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n\t%s\n\t%-*s| %-*s| Value", strings.Repeat("_", cellSize*3+3), cellSize, "Type", cellSize, "Variable")
	for _, v := range i.Variables() {
		fmt.Fprintf(&b, "\n\t%-*s| %-*s| %s", cellSize, v.Type, cellSize, v.Name, v.Value)
	}
	return b.String()
}

func (i *Interpreter) report(err error) {
	i.log.Debug("interpretation error", "error", err)
	i.errs = append(i.errs, err)
}

// Interpret runs node. Failures are recorded and evaluation carries on with
// the next statement.
func (i *Interpreter) Interpret(node ast.Node) {
	switch n := node.(type) {
	case ast.Expression:
		i.eval(n)
	case ast.Block:
		for _, child := range n.Children {
			i.Interpret(child)
		}
	case ast.VariableDeclaration:
		i.declare(n)
	case ast.Assign:
		i.assign(n)
	case ast.CompoundAssign:
		i.compoundAssign(n)
	case ast.NoOp:
	case ast.Branch:
		i.log.Debug("branch not executed")
	case ast.Return:
		i.log.Debug("return not executed")
	case ast.Script:
		i.log.Debug("script not executed", "module", n.Module.Name, "types", len(n.Types))
	case ast.TypeDefinition:
		i.log.Debug("type definition not executed", "type", n.Name)
	case ast.Import, ast.Module, ast.TypeBody, ast.Field, ast.Function,
		ast.Property, ast.PropertyBody, ast.Parameter:
		i.log.Debug("declaration not executed", "node", fmt.Sprintf("%T", n))
	default:
		panic(fmt.Sprintf("interpreter: unhandled node %T", node))
	}
}

func (i *Interpreter) declare(n ast.VariableDeclaration) {
	var (
		init      Value
		evaluated bool
	)

	for _, name := range n.Names {
		if _, exists := i.env.Lookup(name); exists {
			i.report(errors.Redeclared{Name: name})
			continue
		}

		if !evaluated && n.Initializer != nil {
			init = i.eval(n.Initializer)
			evaluated = true
		}

		typ := n.Type.Name
		switch {
		case n.Type.Inferred:
			if _, isNone := init.(None); init == nil || isNone {
				i.report(errors.CannotInferType{Name: name})
				return
			}
			typ = init.TypeName()
		case init == nil:
			init = None{}
		case init.TypeName() != typ:
			i.report(errors.TypeMismatch{Name: name, Declared: typ, Actual: init.TypeName()})
			continue
		}

		i.env.Declare(Variable{Name: name, Type: typ, Value: init})
	}
}

// target resolves the variable an assignment writes to.
func (i *Interpreter) target(expr ast.Expression) (*Variable, bool) {
	ref, ok := expr.(ast.VariableRef)
	if !ok {
		i.report(errors.InvalidAssignmentTarget{Target: fmt.Sprint(expr)})
		return nil, false
	}
	v, ok := i.env.Lookup(ref.Name)
	if !ok {
		i.report(errors.Undeclared{Name: ref.Name})
		return nil, false
	}
	return v, true
}

func (i *Interpreter) assign(n ast.Assign) {
	v, ok := i.target(n.Target)
	if !ok {
		return
	}

	value := i.eval(n.Value)
	if value == nil {
		return
	}
	if value.TypeName() != v.Type {
		i.report(errors.TypeMismatch{Name: v.Name, Declared: v.Type, Actual: value.TypeName()})
		return
	}
	v.Value = value
}

// compoundAssign applies the same nominal rule as assign: both operands and
// the result must carry the variable's declared type.
func (i *Interpreter) compoundAssign(n ast.CompoundAssign) {
	v, ok := i.target(n.Target)
	if !ok {
		return
	}

	value := i.eval(n.Value)
	if value == nil {
		return
	}
	if _, isNone := v.Value.(None); isNone {
		i.report(errors.Uninitialized{Name: v.Name})
		return
	}
	if value.TypeName() != v.Value.TypeName() {
		i.report(errors.TypeMismatch{Name: v.Name, Declared: v.Type, Actual: value.TypeName()})
		return
	}

	result, err := binary(n.Op, v.Value, value)
	if err != nil {
		i.report(err)
		return
	}
	if result.TypeName() != v.Type {
		i.report(errors.TypeMismatch{Name: v.Name, Declared: v.Type, Actual: result.TypeName()})
		return
	}
	v.Value = result
}

// eval returns nil when the expression has no value; the reason has
// already been reported.
func (i *Interpreter) eval(expr ast.Expression) Value {
	switch n := expr.(type) {
	case ast.Integer:
		return Int32(n)
	case ast.Single:
		return Single(n)
	case ast.String:
		return String(n)
	case ast.Character:
		return Character(n)
	case ast.Boolean:
		return Boolean(n)
	case ast.VariableRef:
		v, ok := i.env.Lookup(n.Name)
		if !ok {
			i.report(errors.Undeclared{Name: n.Name})
			return nil
		}
		return v.Value
	case ast.UnaryOp:
		value, err := unary(n.Op, i.eval(n.Operand))
		if err != nil {
			i.report(err)
			return nil
		}
		return value
	case ast.BinaryOp:
		left := i.eval(n.Left)
		right := i.eval(n.Right)
		value, err := binary(n.Op, left, right)
		if err != nil {
			i.report(err)
			return nil
		}
		return value
	case ast.PreIncrement:
		_, after := i.increment(n.Variable, 1)
		return after
	case ast.PreDecrement:
		_, after := i.increment(n.Variable, -1)
		return after
	case ast.PostIncrement:
		before, _ := i.increment(n.Variable, 1)
		return before
	case ast.PostDecrement:
		before, _ := i.increment(n.Variable, -1)
		return before
	}
	panic(fmt.Sprintf("interpreter: unhandled expression %T", expr))
}

// increment adds delta to a numeric variable and returns its value before
// and after the change.
func (i *Interpreter) increment(ref ast.VariableRef, delta int32) (before, after Value) {
	v, ok := i.env.Lookup(ref.Name)
	if !ok {
		i.report(errors.Undeclared{Name: ref.Name})
		return nil, nil
	}
	if !types.IsNumberType(v.Type) {
		i.report(errors.NotNumeric{Name: v.Name, Type: v.Type})
		return nil, nil
	}

	next, ok := step(v.Value, delta)
	if !ok {
		i.report(errors.Uninitialized{Name: v.Name})
		return nil, nil
	}
	before = v.Value
	v.Value = next
	return before, next
}
