package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/rainyday/ast"
	"github.com/pontaoski/rainyday/errors"
	"github.com/pontaoski/rainyday/lexer"
	"github.com/pontaoski/rainyday/types"
)

func parseStatement(t *testing.T, src string) ast.Statement {
	t.Helper()
	stmt, err := NewParser(lexer.FromString(src)).ParseStatement()
	if err != nil {
		t.Fatalf("%q: %s", src, err)
	}
	return stmt
}

func TestStatements(t *testing.T) {
	x := ast.VariableRef{Name: "x"}
	cases := []struct {
		src  string
		want ast.Statement
	}{
		{"var x = 5;", ast.VariableDeclaration{Names: []string{"x"}, Type: ast.InferredType, Initializer: ast.Integer(5)}},
		{"int a, b = 3", ast.VariableDeclaration{Names: []string{"a", "b"}, Type: ast.TypeName{Name: "Int32"}, Initializer: ast.Integer(3)}},
		{"Point p;", ast.VariableDeclaration{Names: []string{"p"}, Type: ast.TypeName{Name: "Point"}}},
		{"x = \"hi\";", ast.Assign{Target: x, Value: ast.String("hi")}},
		{"x += 2.5;", ast.CompoundAssign{Op: ast.Add, Target: x, Value: ast.Single(2.5)}},
		{"x /= 2;", ast.CompoundAssign{Op: ast.Divide, Target: x, Value: ast.Integer(2)}},
		{"++x;", ast.PreIncrement{Variable: x}},
		{"x--;", ast.PostDecrement{Variable: x}},
		{"x * 2 + 1", ast.BinaryOp{Op: ast.Add, Left: ast.BinaryOp{Op: ast.Multiply, Left: x, Right: ast.Integer(2)}, Right: ast.Integer(1)}},
		{"return x;", ast.Return{Value: x}},
		{"return;", ast.Return{}},
		{";", ast.NoOp{}},
		{"", ast.NoOp{}},
	}

	for _, c := range cases {
		got := parseStatement(t, c.src)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("%q:\ngot  %s\nwant %s", c.src, repr.String(got), repr.String(c.want))
		}
	}
}

func TestMultipleStatementsFormABlock(t *testing.T) {
	got := parseStatement(t, "var x = 1; ++x;")
	want := ast.Block{Children: []ast.Statement{
		ast.VariableDeclaration{Names: []string{"x"}, Type: ast.InferredType, Initializer: ast.Integer(1)},
		ast.PreIncrement{Variable: ast.VariableRef{Name: "x"}},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %s", repr.String(got))
	}
}

func TestExpressionPrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"var r = 1 + 2 * 3;", "(1 + (2 * 3))"},
		{"var r = (1 + 2) * 3;", "((1 + 2) * 3)"},
		{"var r = 1 - 2 - 3;", "((1 - 2) - 3)"},
		{"var r = 8 / 4 / 2;", "((8 / 4) / 2)"},
		{"var r = -a + !b;", "(-a + !b)"},
		{"var r = a++ * --b;", "(a++ * --b)"},
		{"var r = 1 + 2 >= 3;", "((1 + 2) >= 3)"},
		{"var r = 'c' != \"s\";", "('c' != \"s\")"},
	}

	for _, c := range cases {
		decl, ok := parseStatement(t, c.src).(ast.VariableDeclaration)
		if !ok {
			t.Fatalf("%q: not a declaration", c.src)
		}
		if got := decl.Initializer.(interface{ String() string }).String(); got != c.want {
			t.Errorf("%q: got %s, want %s", c.src, got, c.want)
		}
	}
}

func TestBranch(t *testing.T) {
	got := parseStatement(t, "if (a < 1) { b = 1; } else if (c) b = 2; else b = 3;")
	want := ast.Branch{
		Condition: ast.BinaryOp{Op: ast.Less, Left: ast.VariableRef{Name: "a"}, Right: ast.Integer(1)},
		IfTrue: ast.Block{Children: []ast.Statement{
			ast.Assign{Target: ast.VariableRef{Name: "b"}, Value: ast.Integer(1)},
			ast.NoOp{},
		}},
		IfFalse: ast.Branch{
			Condition: ast.VariableRef{Name: "c"},
			IfTrue:    ast.Assign{Target: ast.VariableRef{Name: "b"}, Value: ast.Integer(2)},
			IfFalse:   ast.Assign{Target: ast.VariableRef{Name: "b"}, Value: ast.Integer(3)},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %s", repr.String(got))
	}
}

func TestStatementAfterBranch(t *testing.T) {
	got := parseStatement(t, "if (a) b = 1; c = 2;")
	block, ok := got.(ast.Block)
	if !ok || len(block.Children) != 2 {
		t.Fatalf("got %s", repr.String(got))
	}
	if _, ok := block.Children[1].(ast.Assign); !ok {
		t.Fatalf("got %s", repr.String(block.Children[1]))
	}
}

const script = `
use System;
use Collections;
module Weather.Forecast;

// a day of weather
type Day : Base {
	int high = 20;
	string name;
	float Average(int low, float factor) {
		return high + low;
	}
	bool Rainy {
		get => return true;
		set { high = 0; }
	}
}

type Marker
`

func TestScript(t *testing.T) {
	got, err := NewParser(lexer.NewLexer(strings.NewReader(script), "day.rd")).ParseScript()
	if err != nil {
		tracerr.Print(err)
		t.Fatal(err)
	}

	if !reflect.DeepEqual(got.Imports.Modules, []string{"System", "Collections"}) {
		t.Errorf("imports: %v", got.Imports.Modules)
	}
	if got.Module.Name != "Weather.Forecast" {
		t.Errorf("module: %q", got.Module.Name)
	}
	if len(got.Types) != 2 || got.Types[0].Name != "Day" || got.Types[1].Name != "Marker" {
		t.Fatalf("types: %s", repr.String(got.Types))
	}
	if got.Types[1].Body != nil {
		t.Errorf("Marker should have no body")
	}

	members := got.Types[0].Body.Members
	if len(members) != 4 {
		t.Fatalf("members: %s", repr.String(members))
	}

	wantField := ast.Field{Name: "high", Type: ast.TypeName{Name: "Int32"}, Initializer: ast.Integer(20)}
	if !reflect.DeepEqual(members[0], wantField) {
		t.Errorf("field: %s", repr.String(members[0]))
	}
	if f, ok := members[1].(ast.Field); !ok || f.Initializer != nil || f.Type.Name != "String" {
		t.Errorf("field: %s", repr.String(members[1]))
	}

	fn, ok := members[2].(ast.Function)
	if !ok {
		t.Fatalf("function: %s", repr.String(members[2]))
	}
	if fn.String() != "Single Average(Int32 low, Single factor)" {
		t.Errorf("function: %s", fn)
	}

	prop, ok := members[3].(ast.Property)
	if !ok || prop.Getter == nil || prop.Setter == nil {
		t.Fatalf("property: %s", repr.String(members[3]))
	}
	if _, ok := prop.Getter.Body.Children[0].(ast.Return); !ok {
		t.Errorf("getter: %s", repr.String(prop.Getter))
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src    string
		script bool
		check  func(error) bool
	}{
		{"var x;", false, func(err error) bool { _, ok := err.(errors.ImplicitTypeWithoutValue); return ok }},
		{"x = (1 + 2;", false, func(err error) bool { _, ok := err.(errors.ExpectedKindGotKind); return ok }},
		{"x = 99999999999;", false, func(err error) bool { _, ok := err.(errors.InvalidNumber); return ok }},
		{"x = 'ab';", false, func(err error) bool { _, ok := err.(errors.UnterminatedCharacter); return ok }},
		{"type A { int a; int a; }", true, func(err error) bool { e, ok := err.(errors.DuplicateField); return ok && e.Name == "a" }},
		{"type A { int P { x } }", true, func(err error) bool { _, ok := err.(errors.ExpectedOneOfKindGotKind); return ok }},
		{"x = 1 y = 2;", false, func(err error) bool { e, ok := err.(errors.ExpectedKindGotKind); return ok && e.Got == types.IDENT }},
		{"var x = 5 6;", false, func(err error) bool { e, ok := err.(errors.ExpectedKindGotKind); return ok && e.Got == types.INT32 }},
		{"x.y = 1;", false, func(err error) bool { e, ok := err.(errors.ExpectedKindGotKind); return ok && e.Got == types.DOT }},
		{"var b = 1 < 2 < 3;", false, func(err error) bool { e, ok := err.(errors.ExpectedKindGotKind); return ok && e.Got == types.LESS }},
		{"else", false, func(err error) bool { e, ok := err.(errors.ExpectedKindGotKind); return ok && e.Expected == types.SCRIPTEND }},
		{"type A { } x = 1;", true, func(err error) bool { _, ok := err.(errors.ExpectedKindGotKind); return ok }},
	}

	for _, c := range cases {
		p := NewParser(lexer.FromString(c.src))
		var err error
		if c.script {
			_, err = p.ParseScript()
		} else {
			_, err = p.ParseStatement()
		}
		if err == nil {
			t.Errorf("%q: expected an error", c.src)
			continue
		}
		if !c.check(tracerr.Unwrap(err)) {
			t.Errorf("%q: unexpected error %T: %s", c.src, tracerr.Unwrap(err), err)
		}
	}
}
