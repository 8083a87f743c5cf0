// Command sumgen generates closed sum types from a small declaration
// language:
//
//	type Name = Other;
//	type Name = | Case of Kind | Case of Kind;
//
// A plain declaration becomes a named type. A sum becomes an interface with
// an is_Name marker, plus one named type per case that implements it.
//
// Usage: sumgen <in> <out> <package>
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type Declarations struct {
	Declarations []*Declaration `@@*`
}

type Case struct {
	Name string `@Ident "of"`
	Kind string `(@Ident | @String | @RawString)`
}

type Declaration struct {
	Name  string   `"type" @Ident "="`
	Plain *string  `(  (@Ident | @String | @RawString)`
	Cases *[]Case  ` | ("|" (@@))*)`
	End   struct{} `";"`
}

func (d *Declarations) IsSumType(name string) bool {
	for _, decl := range d.Declarations {
		if decl.Name == name && decl.Cases != nil {
			return true
		}
	}
	return false
}

// Check reports names declared more than once, either as a type or as a case.
func (d *Declarations) Check() error {
	seen := map[string]bool{}
	mark := func(name string) error {
		if seen[name] {
			return fmt.Errorf("%s declared more than once", name)
		}
		seen[name] = true
		return nil
	}

	for _, decl := range d.Declarations {
		if err := mark(decl.Name); err != nil {
			return err
		}
		if decl.Cases == nil {
			continue
		}
		for _, c := range *decl.Cases {
			if err := mark(c.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func Generate(pkgname string, d *Declarations) string {
	f := NewFile(pkgname)
	f.HeaderComment("Code generated by sumgen. DO NOT EDIT.")

	for _, decl := range d.Declarations {
		if decl.Plain != nil {
			f.Type().Id(decl.Name).Id(*decl.Plain)
			continue
		}

		marker := "is_" + decl.Name
		f.Type().Id(decl.Name).Interface(
			Id(marker).Params(),
		)

		for _, c := range *decl.Cases {
			if d.IsSumType(c.Kind) {
				f.Type().Id(c.Name).Struct(Id(c.Kind))
			} else {
				f.Type().Id(c.Name).Id(c.Kind)
			}

			f.Func().Params(Id("v").Id(c.Name)).Id(marker).Params().Block()
		}
	}

	return fmt.Sprintf("%#v", f)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: sumgen <in> <out> <package>")
		os.Exit(2)
	}
	in, out, pkgname := os.Args[1], os.Args[2], os.Args[3]

	parser := participle.MustBuild(&Declarations{})

	data, err := os.ReadFile(in)
	if err != nil {
		panic(err)
	}

	decls := Declarations{}
	if err := parser.ParseBytes(data, &decls); err != nil {
		panic(err)
	}
	if err := decls.Check(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", in, err)
		os.Exit(1)
	}

	if err := os.WriteFile(out, []byte(Generate(pkgname, &decls)), 0o644); err != nil {
		panic(err)
	}
}
