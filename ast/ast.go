package ast

// Node is the closed set of syntax tree nodes. Only types in this package
// implement it.
type Node interface {
	is_Node()
}

type Statement interface {
	Node
	is_Statement()
}

// Expression nodes are also statements, evaluated for their side effects.
type Expression interface {
	Statement
	is_Expression()
}

type Member interface {
	Node
	is_Member()
	MemberName() string
}

// TypeName is a nominal type reference. Inferred marks `var` declarations
// whose type comes from the initializer at evaluation time.
type TypeName struct {
	Name     string
	Inferred bool
}

var InferredType = TypeName{Inferred: true}

// Structural nodes.

type Script struct {
	Imports Import
	Module  Module
	Types   []TypeDefinition
}

func (v Script) is_Node() {}

type Import struct {
	Modules []string
}

func (v Import) is_Node() {}

type Module struct {
	Name string
}

func (v Module) is_Node() {}

// TypeDefinition's Body is nil when the type was declared without braces.
type TypeDefinition struct {
	Name string
	Body *TypeBody
}

func (v TypeDefinition) is_Node() {}

type TypeBody struct {
	Members []Member
}

func (v TypeBody) is_Node() {}

type Field struct {
	Name        string
	Type        TypeName
	Initializer Expression
}

func (v Field) is_Node()           {}
func (v Field) is_Member()         {}
func (v Field) MemberName() string { return v.Name }

type Function struct {
	Name       string
	ReturnType TypeName
	Params     []Parameter
	Body       Block
}

func (v Function) is_Node()           {}
func (v Function) is_Member()         {}
func (v Function) MemberName() string { return v.Name }

type Property struct {
	Name   string
	Type   TypeName
	Getter *PropertyBody
	Setter *PropertyBody
}

func (v Property) is_Node()           {}
func (v Property) is_Member()         {}
func (v Property) MemberName() string { return v.Name }

// PropertyBody holds an accessor. A `=> statement;` accessor is stored as a
// block with that single statement.
type PropertyBody struct {
	Body Block
}

func (v PropertyBody) is_Node() {}

type Parameter struct {
	Name string
	Type TypeName
}

func (v Parameter) is_Node() {}

// Statements.

type Block struct {
	Children []Statement
}

func (v Block) is_Node()      {}
func (v Block) is_Statement() {}

// VariableDeclaration's Initializer is nil when none was written.
type VariableDeclaration struct {
	Names       []string
	Type        TypeName
	Initializer Expression
}

func (v VariableDeclaration) is_Node()      {}
func (v VariableDeclaration) is_Statement() {}

type Assign struct {
	Target Expression
	Value  Expression
}

func (v Assign) is_Node()      {}
func (v Assign) is_Statement() {}

// CompoundAssign's Op is one of Add, Subtract, Multiply or Divide.
type CompoundAssign struct {
	Op     BinaryOperator
	Target Expression
	Value  Expression
}

func (v CompoundAssign) is_Node()      {}
func (v CompoundAssign) is_Statement() {}

// Return's Value is nil for a bare `return`.
type Return struct {
	Value Expression
}

func (v Return) is_Node()      {}
func (v Return) is_Statement() {}

type Branch struct {
	Condition Expression
	IfTrue    Statement
	IfFalse   Statement
}

func (v Branch) is_Node()      {}
func (v Branch) is_Statement() {}

type NoOp struct{}

func (v NoOp) is_Node()      {}
func (v NoOp) is_Statement() {}

// Expressions.

type UnaryOperator int

const (
	Negate UnaryOperator = iota
	Not
)

type BinaryOperator int

const (
	Add BinaryOperator = iota
	Subtract
	Multiply
	Divide
	Greater
	GreaterOrEqual
	Less
	LessOrEqual
	Equal
	NotEqual
)

func (o BinaryOperator) IsComparison() bool {
	return o >= Greater
}

type UnaryOp struct {
	Op      UnaryOperator
	Operand Expression
}

func (v UnaryOp) is_Node()       {}
func (v UnaryOp) is_Statement()  {}
func (v UnaryOp) is_Expression() {}

type BinaryOp struct {
	Op    BinaryOperator
	Left  Expression
	Right Expression
}

func (v BinaryOp) is_Node()       {}
func (v BinaryOp) is_Statement()  {}
func (v BinaryOp) is_Expression() {}

type PreIncrement struct {
	Variable VariableRef
}

func (v PreIncrement) is_Node()       {}
func (v PreIncrement) is_Statement()  {}
func (v PreIncrement) is_Expression() {}

type PreDecrement struct {
	Variable VariableRef
}

func (v PreDecrement) is_Node()       {}
func (v PreDecrement) is_Statement()  {}
func (v PreDecrement) is_Expression() {}

type PostIncrement struct {
	Variable VariableRef
}

func (v PostIncrement) is_Node()       {}
func (v PostIncrement) is_Statement()  {}
func (v PostIncrement) is_Expression() {}

type PostDecrement struct {
	Variable VariableRef
}

func (v PostDecrement) is_Node()       {}
func (v PostDecrement) is_Statement()  {}
func (v PostDecrement) is_Expression() {}

type VariableRef struct {
	Name string
}

func (v VariableRef) is_Node()       {}
func (v VariableRef) is_Statement()  {}
func (v VariableRef) is_Expression() {}

// Literals.

type Integer int32

func (v Integer) is_Node()       {}
func (v Integer) is_Statement()  {}
func (v Integer) is_Expression() {}

type Single float32

func (v Single) is_Node()       {}
func (v Single) is_Statement()  {}
func (v Single) is_Expression() {}

type String string

func (v String) is_Node()       {}
func (v String) is_Statement()  {}
func (v String) is_Expression() {}

type Character rune

func (v Character) is_Node()       {}
func (v Character) is_Statement()  {}
func (v Character) is_Expression() {}

type Boolean bool

func (v Boolean) is_Node()       {}
func (v Boolean) is_Statement()  {}
func (v Boolean) is_Expression() {}
