package symbols

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pontaoski/rainyday/ast"
	"github.com/pontaoski/rainyday/errors"
	"github.com/pontaoski/rainyday/types"
)

// Builder walks a syntax tree and records every declared type and variable
// in one flat table, reporting uses of names that were never declared. It
// only diagnoses; nothing is evaluated.
type Builder struct {
	table *Table
	errs  []error
	log   *slog.Logger
}

type Option func(*Builder)

func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		b.log = l
	}
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		table: NewTable(),
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	for _, name := range types.PrimitiveTypes() {
		b.define(&TypeSymbol{Name: name})
	}
	return b
}

func (b *Builder) Table() *Table {
	return b.table
}

func (b *Builder) Errors() []error {
	return append([]error(nil), b.errs...)
}

func (b *Builder) ClearErrors() {
	b.errs = nil
}

func (b *Builder) String() string {
	return b.table.String()
}

func (b *Builder) report(err error) {
	b.errs = append(b.errs, err)
}

func (b *Builder) define(sym Symbol) {
	b.log.Debug("define", "symbol", sym.SymbolName())
	if err := b.table.Insert(sym); err != nil {
		b.report(err)
	}
}

func (b *Builder) Visit(node ast.Node) {
	switch n := node.(type) {
	case ast.Script:
		b.Visit(n.Imports)
		b.Visit(n.Module)
		for _, def := range n.Types {
			b.Visit(def)
		}
	case ast.Import:
		for _, module := range n.Modules {
			b.log.Debug("import", "module", module)
		}
	case ast.Module:
		b.log.Debug("module", "name", n.Name)
	case ast.TypeDefinition:
		b.define(&TypeSymbol{Name: n.Name})
		if n.Body != nil {
			b.Visit(*n.Body)
		}
	case ast.TypeBody:
		for _, member := range n.Members {
			b.Visit(member)
		}
	case ast.Function:
		b.log.Debug("function", "name", n.Name, "returns", n.ReturnType.String())
		for _, param := range n.Params {
			b.Visit(param)
		}
		b.Visit(n.Body)
	case ast.Parameter:
		b.log.Debug("parameter", "name", n.Name, "type", n.Type.String())
	case ast.Property:
		b.log.Debug("property", "name", n.Name, "type", n.Type.String())
		if n.Getter != nil {
			b.Visit(*n.Getter)
		}
		if n.Setter != nil {
			b.Visit(*n.Setter)
		}
	case ast.PropertyBody:
		b.Visit(n.Body)
	case ast.Field:
		b.log.Debug("field", "name", n.Name, "type", n.Type.String())
		if n.Initializer != nil {
			b.Visit(n.Initializer)
		}
	case ast.Block:
		for _, child := range n.Children {
			b.Visit(child)
		}
	case ast.VariableDeclaration:
		if n.Initializer != nil {
			b.Visit(n.Initializer)
		}
		typ := b.declaredType(n)
		for _, name := range n.Names {
			b.define(&VariableSymbol{Name: name, Type: typ})
		}
	case ast.Assign:
		b.Visit(n.Target)
		b.Visit(n.Value)
	case ast.CompoundAssign:
		b.Visit(n.Target)
		b.Visit(n.Value)
	case ast.Return:
		if n.Value != nil {
			b.Visit(n.Value)
		}
	case ast.Branch:
		b.Visit(n.Condition)
		if n.IfTrue != nil {
			b.Visit(n.IfTrue)
		}
		if n.IfFalse != nil {
			b.Visit(n.IfFalse)
		}
	case ast.UnaryOp:
		b.Visit(n.Operand)
	case ast.BinaryOp:
		b.Visit(n.Left)
		b.Visit(n.Right)
	case ast.PreIncrement:
		b.Visit(n.Variable)
	case ast.PreDecrement:
		b.Visit(n.Variable)
	case ast.PostIncrement:
		b.Visit(n.Variable)
	case ast.PostDecrement:
		b.Visit(n.Variable)
	case ast.VariableRef:
		b.log.Debug("lookup", "name", n.Name)
		if _, ok := Lookup[*VariableSymbol](b.table, n.Name); !ok {
			b.report(errors.Undeclared{Name: n.Name})
		}
	case ast.NoOp, ast.Integer, ast.Single, ast.String, ast.Character, ast.Boolean:
	default:
		panic(fmt.Sprintf("symbols: unhandled node %T", node))
	}
}

func (b *Builder) declaredType(n ast.VariableDeclaration) *TypeSymbol {
	name := n.Type.Name
	if n.Type.Inferred {
		name = b.staticType(n.Initializer)
		if name == "" {
			return nil
		}
	}

	typ, ok := Lookup[*TypeSymbol](b.table, name)
	if !ok {
		b.report(errors.UnknownType{Name: name})
		return nil
	}
	return typ
}

// staticType guesses the type an expression will have at run time from
// what the table already knows. It returns "" when it cannot tell.
func (b *Builder) staticType(expr ast.Expression) string {
	switch n := expr.(type) {
	case ast.Integer:
		return types.Int32
	case ast.Single:
		return types.Single
	case ast.String:
		return types.String
	case ast.Character:
		return types.Character
	case ast.Boolean:
		return types.Boolean
	case ast.VariableRef:
		return b.variableType(n)
	case ast.PreIncrement:
		return b.variableType(n.Variable)
	case ast.PreDecrement:
		return b.variableType(n.Variable)
	case ast.PostIncrement:
		return b.variableType(n.Variable)
	case ast.PostDecrement:
		return b.variableType(n.Variable)
	case ast.UnaryOp:
		return b.staticType(n.Operand)
	case ast.BinaryOp:
		if n.Op.IsComparison() {
			return types.Boolean
		}
		left, right := b.staticType(n.Left), b.staticType(n.Right)
		if n.Op == ast.Add && (left == types.String || right == types.String) {
			return types.String
		}
		return arithmeticType(left, right)
	}
	return ""
}

// arithmeticType mirrors operand promotion at run time: characters count as
// Int32, and Int32 meeting Single gives Single.
func arithmeticType(left, right string) string {
	numeric := func(name string) string {
		if name == types.Character {
			return types.Int32
		}
		return name
	}
	left, right = numeric(left), numeric(right)
	if !types.IsNumberType(left) || !types.IsNumberType(right) {
		return ""
	}
	if left == types.Single || right == types.Single {
		return types.Single
	}
	return types.Int32
}

func (b *Builder) variableType(v ast.VariableRef) string {
	sym, ok := Lookup[*VariableSymbol](b.table, v.Name)
	if !ok || sym.Type == nil {
		return ""
	}
	return sym.Type.Name
}
