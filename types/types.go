package types

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	ILLEGAL TokenKind = iota
	SCRIPTEND

	SEMI
	COLON
	COMMA
	DOT
	LAMBDA

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LSQUARE
	RSQUARE

	ASSIGN
	ADD
	SUBTRACT
	MULTIPLY
	DIVIDE
	INCREMENTBY
	DECREMENTBY
	MULTIPLYBY
	DIVIDEBY
	INCREMENT
	DECREMENT
	NOT

	EQUAL
	NOTEQUAL
	GREATER
	GREATEREQUAL
	LESS
	LESSEQUAL

	// literals
	INT32
	SINGLE
	STRING
	CHARACTER
	IDENT

	// keywords
	VAR
	VOIDKW
	INTKW
	FLOATKW
	STRINGKW
	CHARKW
	BOOLKW
	TRUE
	FALSE
	MODULE
	USE
	IF
	ELSE
	WHILE
	DO
	FOR
	FOREACH
	RETURN
	TYPE
	FUNC
	PROP
	GET
	SET
)

var kindNames = map[TokenKind]string{
	ILLEGAL:      "Illegal",
	SCRIPTEND:    "ScriptEnd",
	SEMI:         "Semicolon",
	COLON:        "Colon",
	COMMA:        "Comma",
	DOT:          "Dot",
	LAMBDA:       "Lambda",
	LPAREN:       "ParamStart",
	RPAREN:       "ParamEnd",
	LBRACE:       "BlockStart",
	RBRACE:       "BlockEnd",
	LSQUARE:      "ArrayStart",
	RSQUARE:      "ArrayEnd",
	ASSIGN:       "Assign",
	ADD:          "Add",
	SUBTRACT:     "Subtract",
	MULTIPLY:     "Multiply",
	DIVIDE:       "Divide",
	INCREMENTBY:  "IncrementBy",
	DECREMENTBY:  "DecrementBy",
	MULTIPLYBY:   "MultiplyBy",
	DIVIDEBY:     "DivideBy",
	INCREMENT:    "IncrementByOne",
	DECREMENT:    "DecrementByOne",
	NOT:          "Not",
	EQUAL:        "Compare.Equal",
	NOTEQUAL:     "Compare.NotEqual",
	GREATER:      "Compare.GreaterThan",
	GREATEREQUAL: "Compare.GreaterThanOrEqualTo",
	LESS:         "Compare.LessThan",
	LESSEQUAL:    "Compare.LessThanOrEqualTo",
	INT32:        "Int32",
	SINGLE:       "Single",
	STRING:       "String",
	CHARACTER:    "Character",
	IDENT:        "Identifier",
	VAR:          "var",
	VOIDKW:       "void",
	INTKW:        "int",
	FLOATKW:      "float",
	STRINGKW:     "string",
	CHARKW:       "char",
	BOOLKW:       "bool",
	TRUE:         "true",
	FALSE:        "false",
	MODULE:       "module",
	USE:          "use",
	IF:           "if",
	ELSE:         "else",
	WHILE:        "while",
	DO:           "do",
	FOR:          "for",
	FOREACH:      "foreach",
	RETURN:       "return",
	TYPE:         "type",
	FUNC:         "func",
	PROP:         "prop",
	GET:          "get",
	SET:          "set",
}

func (t TokenKind) String() string {
	if name, ok := kindNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

// Keywords maps the lower-cased spelling of every reserved word to its kind.
var Keywords = map[string]TokenKind{
	"var":     VAR,
	"void":    VOIDKW,
	"int":     INTKW,
	"float":   FLOATKW,
	"string":  STRINGKW,
	"char":    CHARKW,
	"bool":    BOOLKW,
	"true":    TRUE,
	"false":   FALSE,
	"module":  MODULE,
	"use":     USE,
	"if":      IF,
	"else":    ELSE,
	"while":   WHILE,
	"do":      DO,
	"for":     FOR,
	"foreach": FOREACH,
	"return":  RETURN,
	"type":    TYPE,
	"func":    FUNC,
	"prop":    PROP,
	"get":     GET,
	"set":     SET,
}

// Names of the primitive types, as they appear in declarations and as
// runtime value tags.
const (
	Void      = "Void"
	Int32     = "Int32"
	Single    = "Single"
	String    = "String"
	Character = "Character"
	Boolean   = "Boolean"
)

var primitives = map[TokenKind]string{
	VOIDKW:   Void,
	INTKW:    Int32,
	FLOATKW:  Single,
	STRINGKW: String,
	CHARKW:   Character,
	BOOLKW:   Boolean,
}

// PrimitiveType returns the type name a primitive type keyword stands for.
func (t TokenKind) PrimitiveType() (string, bool) {
	name, ok := primitives[t]
	return name, ok
}

func (t TokenKind) IsPrimitiveType() bool {
	_, ok := primitives[t]
	return ok
}

// PrimitiveTypes lists the built-in type names in declaration order.
func PrimitiveTypes() []string {
	return []string{Void, Int32, Single, String, Character, Boolean}
}

func IsNumberType(name string) bool {
	return name == Int32 || name == Single
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

// Token is one lexeme. Lit holds the source text of literal, keyword and
// identifier tokens: the digits of a number, the unescaped body of a string,
// the single rune of a character and the original-case identifier text.
//
// Value is the decoded literal: int32 for INT32, float32 for SINGLE, string
// for STRING, rune for CHARACTER and nil for every other kind.
type Token struct {
	Kind     TokenKind
	Location Span
	Lit      string
	Value    any
}

func (t Token) String() string {
	switch t.Kind {
	case INT32, SINGLE, STRING, CHARACTER, IDENT:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Lit)
	}
	return t.Kind.String()
}
