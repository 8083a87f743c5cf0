package errors

import (
	"fmt"
	"strings"

	"github.com/pontaoski/rainyday/types"
)

// Lexical errors.

type UnexpectedCharacter struct {
	Char     rune
	Location types.Span
}

func (e UnexpectedCharacter) Error() string {
	return fmt.Sprintf("tokenization failed at character %q. %s", e.Char, e.Location)
}

type UnterminatedCharacter struct {
	Location types.Span
}

func (e UnterminatedCharacter) Error() string {
	return fmt.Sprintf("single quotes can only contain a single character. %s", e.Location)
}

type ReadFailure struct {
	Err      error
	Location types.Span
}

func (e ReadFailure) Error() string {
	return fmt.Sprintf("reading source: %s. %s", e.Err, e.Location)
}

func (e ReadFailure) Unwrap() error {
	return e.Err
}

// Parse errors.

type ExpectedKindGotKind struct {
	Expected types.TokenKind
	Got      types.TokenKind
	Location types.Span
}

func (e ExpectedKindGotKind) Error() string {
	return fmt.Sprintf("got a %s, expected a %s. %s", e.Got, e.Expected, e.Location)
}

type ExpectedOneOfKindGotKind struct {
	Expected []types.TokenKind
	Got      types.TokenKind
	Location types.Span
}

func (e ExpectedOneOfKindGotKind) Error() string {
	names := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		names[i] = k.String()
	}
	return fmt.Sprintf("got a %s, expected one of %s. %s", e.Got, strings.Join(names, ", "), e.Location)
}

type DuplicateField struct {
	Name     string
	Location types.Span
}

func (e DuplicateField) Error() string {
	return fmt.Sprintf("member %s specified more than once. %s", e.Name, e.Location)
}

type ImplicitTypeWithoutValue struct {
	Location types.Span
}

func (e ImplicitTypeWithoutValue) Error() string {
	return fmt.Sprintf("implicit types must be assigned to when declared. %s", e.Location)
}

type InvalidNumber struct {
	Literal  string
	Err      error
	Location types.Span
}

func (e InvalidNumber) Error() string {
	return fmt.Sprintf("invalid number %s: %s. %s", e.Literal, e.Err, e.Location)
}

func (e InvalidNumber) Unwrap() error {
	return e.Err
}

// Symbol errors.

type DuplicateSymbol struct {
	Name string
}

func (e DuplicateSymbol) Error() string {
	return fmt.Sprintf("symbol %s is already defined", e.Name)
}

type UnknownType struct {
	Name string
}

func (e UnknownType) Error() string {
	return fmt.Sprintf("type %s has not been declared", e.Name)
}

// Interpretation errors.

type Undeclared struct {
	Name string
}

func (e Undeclared) Error() string {
	return fmt.Sprintf("variable %q has not been declared", e.Name)
}

type Redeclared struct {
	Name string
}

func (e Redeclared) Error() string {
	return fmt.Sprintf("variable %q already declared in global scope", e.Name)
}

type CannotInferType struct {
	Name string
}

func (e CannotInferType) Error() string {
	return fmt.Sprintf("cannot infer the type of variable %q without a value", e.Name)
}

type TypeMismatch struct {
	Name     string
	Declared string
	Actual   string
}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: data of type %q cannot be assigned to variable %q of type %q", e.Actual, e.Name, e.Declared)
}

type InvalidAssignmentTarget struct {
	Target string
}

func (e InvalidAssignmentTarget) Error() string {
	return fmt.Sprintf("you can only assign values to variables, not %s", e.Target)
}

type InvalidOperand struct {
	Operator string
	Type     string
}

func (e InvalidOperand) Error() string {
	return fmt.Sprintf("operator %s cannot be applied to a value of type %s", e.Operator, e.Type)
}

type InvalidOperands struct {
	Operator string
	Left     string
	Right    string
}

func (e InvalidOperands) Error() string {
	return fmt.Sprintf("operator %s cannot be applied to operands of type %s and %s", e.Operator, e.Left, e.Right)
}

type DivisionByZero struct{}

func (e DivisionByZero) Error() string {
	return "attempted to divide by zero"
}

type Overflow struct {
	Operator string
}

func (e Overflow) Error() string {
	return fmt.Sprintf("arithmetic operation %s resulted in an overflow", e.Operator)
}

type NotNumeric struct {
	Name string
	Type string
}

func (e NotNumeric) Error() string {
	return fmt.Sprintf("you can only apply inc/dec operations (++,--) to numeric types, %q is %s", e.Name, e.Type)
}

type Uninitialized struct {
	Name string
}

func (e Uninitialized) Error() string {
	return fmt.Sprintf("variable %q has no value", e.Name)
}
