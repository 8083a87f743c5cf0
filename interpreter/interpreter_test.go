package interpreter

import (
	"math"
	"strings"
	"testing"

	"github.com/pontaoski/rainyday/ast"
	"github.com/pontaoski/rainyday/errors"
	"github.com/pontaoski/rainyday/lexer"
	"github.com/pontaoski/rainyday/parser"
)

func parse(t *testing.T, src string) ast.Statement {
	t.Helper()
	stmt, err := parser.NewParser(lexer.FromString(src)).ParseStatement()
	if err != nil {
		t.Fatalf("%s: %v", src, err)
	}
	return stmt
}

func run(t *testing.T, i *Interpreter, src string) {
	t.Helper()
	i.Interpret(parse(t, src))
}

func variable(t *testing.T, i *Interpreter, name string) Variable {
	t.Helper()
	v, ok := i.env.Lookup(name)
	if !ok {
		t.Fatalf("%s not declared", name)
	}
	return *v
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		src   string
		name  string
		typ   string
		value Value
	}{
		{"var x = 5;", "x", "Int32", Int32(5)},
		{"var x = 1; ++x;", "x", "Int32", Int32(2)},
		{"var x = 1; x++;", "x", "Int32", Int32(2)},
		{"var x = 1; --x;", "x", "Int32", Int32(0)},
		{"var f = 1.5; f++;", "f", "Single", Single(2.5)},
		{"var x = 2 + 3 * 4;", "x", "Int32", Int32(14)},
		{"var x = (2 + 3) * 4;", "x", "Int32", Int32(20)},
		{"var x = -7 / 2;", "x", "Int32", Int32(-3)},
		{"var f = 1 + 0.5;", "f", "Single", Single(1.5)},
		{`var s = "a" + 1;`, "s", "String", String("a1")},
		{"var c = 'c';", "c", "Character", Character('c')},
		{"var b = true;", "b", "Boolean", Boolean(true)},
		{"var b = !true;", "b", "Boolean", Boolean(false)},
		{"var b = 3 > 2;", "b", "Boolean", Boolean(true)},
		{`var b = "a" < "b";`, "b", "Boolean", Boolean(true)},
		{"int x = 1; x = 2;", "x", "Int32", Int32(2)},
		{"int x = 10; x -= 3;", "x", "Int32", Int32(7)},
		{"int x = 10; x *= 3;", "x", "Int32", Int32(30)},
		{"int x = 10; x /= 3;", "x", "Int32", Int32(3)},
		{"int x = 1; var y = x++;", "y", "Int32", Int32(1)},
		{"int x = 1; var y = ++x;", "y", "Int32", Int32(2)},
		{"string s;", "s", "String", None{}},
		{"Point p;", "p", "Point", None{}},
	}

	for _, test := range tests {
		i := New()
		run(t, i, test.src)
		if errs := i.Errors(); len(errs) != 0 {
			t.Errorf("%s: unexpected errors %v", test.src, errs)
			continue
		}
		v := variable(t, i, test.name)
		if v.Type != test.typ || v.Value != test.value {
			t.Errorf("%s: got %s %s = %#v, want %s %s = %#v", test.src, v.Type, v.Name, v.Value, test.typ, test.name, test.value)
		}
	}
}

func TestPreIncrementValue(t *testing.T) {
	i := New()
	run(t, i, "var x = 1;")
	got := i.eval(ast.PreIncrement{Variable: ast.VariableRef{Name: "x"}})
	if got != Int32(2) {
		t.Errorf("++x evaluated to %v", got)
	}
	got = i.eval(ast.PostDecrement{Variable: ast.VariableRef{Name: "x"}})
	if got != Int32(2) {
		t.Errorf("x-- evaluated to %v", got)
	}
	if v := variable(t, i, "x"); v.Value != Int32(1) {
		t.Errorf("x = %v", v.Value)
	}
}

func TestTypeMismatchKeepsValue(t *testing.T) {
	i := New()
	run(t, i, `var x = 5; x = "hi";`)
	errs := i.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %v", errs)
	}
	e, ok := errs[0].(errors.TypeMismatch)
	if !ok || e.Name != "x" || e.Declared != "Int32" || e.Actual != "String" {
		t.Errorf("got %#v", errs[0])
	}
	if v := variable(t, i, "x"); v.Value != Int32(5) {
		t.Errorf("x = %v", v.Value)
	}
}

func TestRedeclaration(t *testing.T) {
	i := New()
	run(t, i, "var x = 1; var x = 2;")
	errs := i.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %v", errs)
	}
	if e, ok := errs[0].(errors.Redeclared); !ok || e.Name != "x" {
		t.Errorf("got %#v", errs[0])
	}
	if v := variable(t, i, "x"); v.Value != Int32(1) {
		t.Errorf("x = %v", v.Value)
	}
}

func TestMultipleNamesShareInitializer(t *testing.T) {
	i := New()
	run(t, i, "int n = 0; int a, b = ++n;")
	if errs := i.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	for name, want := range map[string]Value{"n": Int32(1), "a": Int32(1), "b": Int32(1)} {
		if v := variable(t, i, name); v.Value != want {
			t.Errorf("%s = %v, want %v", name, v.Value, want)
		}
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		src   string
		check func(error) bool
	}{
		{"x = 1;", func(err error) bool { e, ok := err.(errors.Undeclared); return ok && e.Name == "x" }},
		{"var x = y;", func(err error) bool { e, ok := err.(errors.Undeclared); return ok && e.Name == "y" }},
		{"++x;", func(err error) bool { e, ok := err.(errors.Undeclared); return ok && e.Name == "x" }},
		{"int x = 1 / 0;", func(err error) bool { _, ok := err.(errors.DivisionByZero); return ok }},
		{`string s = "a" - 1;`, func(err error) bool { _, ok := err.(errors.InvalidOperands); return ok }},
		{"bool b = -true;", func(err error) bool { _, ok := err.(errors.InvalidOperand); return ok }},
		{"bool b = true < false;", func(err error) bool { _, ok := err.(errors.InvalidOperands); return ok }},
		{"int x = 1.5;", func(err error) bool { e, ok := err.(errors.TypeMismatch); return ok && e.Actual == "Single" }},
		{"int x; x += 1;", func(err error) bool { e, ok := err.(errors.Uninitialized); return ok && e.Name == "x" }},
		{"int x; ++x;", func(err error) bool { e, ok := err.(errors.Uninitialized); return ok && e.Name == "x" }},
		{"var f = 1.5; f += 1;", func(err error) bool { e, ok := err.(errors.TypeMismatch); return ok && e.Declared == "Single" }},
		{`var s = "a"; s++;`, func(err error) bool { e, ok := err.(errors.NotNumeric); return ok && e.Type == "String" }},
		{"int x; var y = x;", func(err error) bool { e, ok := err.(errors.CannotInferType); return ok && e.Name == "y" }},
	}

	for _, test := range tests {
		i := New()
		run(t, i, test.src)
		errs := i.Errors()
		if len(errs) != 1 {
			t.Errorf("%s: got %v", test.src, errs)
			continue
		}
		if !test.check(errs[0]) {
			t.Errorf("%s: got %#v", test.src, errs[0])
		}
	}
}

func TestFailedInitializerDeclaresNothing(t *testing.T) {
	i := New()
	run(t, i, "var x = 1 / 0;")
	if _, ok := i.env.Lookup("x"); ok {
		t.Errorf("x declared despite a failed initializer")
	}
	if len(i.Errors()) != 2 {
		t.Errorf("got %v", i.Errors())
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	i := New()
	i.Interpret(ast.Assign{Target: ast.Integer(1), Value: ast.Integer(2)})
	errs := i.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %v", errs)
	}
	if _, ok := errs[0].(errors.InvalidAssignmentTarget); !ok {
		t.Errorf("got %#v", errs[0])
	}
}

func TestIntegerOverflow(t *testing.T) {
	i := New()
	i.Interpret(ast.VariableDeclaration{
		Names:       []string{"x"},
		Type:        ast.InferredType,
		Initializer: ast.Integer(math.MaxInt32),
	})
	run(t, i, "x += 1;")
	if v := variable(t, i, "x"); v.Value != Int32(math.MinInt32) {
		t.Errorf("x = %v", v.Value)
	}

	run(t, i, "x /= -1;")
	errs := i.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %v", errs)
	}
	if _, ok := errs[0].(errors.Overflow); !ok {
		t.Errorf("got %#v", errs[0])
	}
}

func TestErrorsAreIndependentAcrossClears(t *testing.T) {
	i := New()
	run(t, i, "var x = 1; y = 2;")
	if len(i.Errors()) != 1 {
		t.Fatalf("got %v", i.Errors())
	}

	i.ClearErrors()
	run(t, i, "x = 3; z = 4;")
	errs := i.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %v", errs)
	}
	if e, ok := errs[0].(errors.Undeclared); !ok || e.Name != "z" {
		t.Errorf("got %#v", errs[0])
	}
	if v := variable(t, i, "x"); v.Value != Int32(3) {
		t.Errorf("variables did not persist, x = %v", v.Value)
	}
}

func TestUnexecutedStatements(t *testing.T) {
	i := New()
	run(t, i, "var x = 1; if (x) { x = 2; } return x;")
	if errs := i.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	if v := variable(t, i, "x"); v.Value != Int32(1) {
		t.Errorf("x = %v", v.Value)
	}
}

func TestDeclarationsAreSkipped(t *testing.T) {
	i := New()
	nodes := []ast.Node{
		ast.Import{Modules: []string{"System"}},
		ast.Module{Name: "Weather"},
		ast.TypeBody{},
		ast.Field{Name: "x", Type: ast.TypeName{Name: "Int32"}, Initializer: ast.Integer(1)},
		ast.Function{Name: "Sum", ReturnType: ast.TypeName{Name: "Int32"}},
		ast.Property{Name: "P", Type: ast.TypeName{Name: "Int32"}},
		ast.PropertyBody{},
		ast.Parameter{Name: "a", Type: ast.TypeName{Name: "Int32"}},
	}
	for _, n := range nodes {
		i.Interpret(n)
	}
	if len(i.Errors()) != 0 || len(i.Variables()) != 0 {
		t.Errorf("got errors %v, variables %v", i.Errors(), i.Variables())
	}
}

func TestDescribe(t *testing.T) {
	i := New()
	run(t, i, `var b = 1; var a = "two"; char c;`)

	vars := i.Variables()
	if len(vars) != 3 || vars[0].Name != "b" || vars[1].Name != "a" || vars[2].Name != "c" {
		t.Fatalf("got %v", vars)
	}

	lines := strings.Split(i.Describe(), "\n\t")
	if len(lines) != 6 {
		t.Fatalf("got %q", lines)
	}
	if lines[1] != strings.Repeat("_", 51) {
		t.Errorf("rule %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "Type            | Variable        | Value") {
		t.Errorf("header %q", lines[2])
	}
	if lines[3] != "Int32           | b               | 1" {
		t.Errorf("row %q", lines[3])
	}
	if lines[4] != "String          | a               | two" {
		t.Errorf("row %q", lines[4])
	}
	if lines[5] != "Character       | c               | " {
		t.Errorf("row %q", lines[5])
	}
}

func TestRestartForgetsVariables(t *testing.T) {
	i := New()
	run(t, i, "var x = 1;")
	i = New()
	if len(i.Variables()) != 0 {
		t.Errorf("got %v", i.Variables())
	}
	run(t, i, "var x = 2;")
	if len(i.Errors()) != 0 {
		t.Errorf("got %v", i.Errors())
	}
}
