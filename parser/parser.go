package parser

import (
	"runtime"
	"strings"

	"github.com/ztrue/tracerr"

	"github.com/pontaoski/rainyday/ast"
	"github.com/pontaoski/rainyday/errors"
	"github.com/pontaoski/rainyday/lexer"
	"github.com/pontaoski/rainyday/types"
)

// Parser is a recursive descent parser with one token of lookahead. Any
// syntax error aborts the whole parse: there is no resynchronisation.
type Parser struct {
	l *lexer.Lexer
}

func NewParser(l *lexer.Lexer) *Parser {
	return &Parser{l}
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		if _, ok := r.(runtime.Error); ok {
			panic(r)
		}
		rerr, ok := r.(error)
		if !ok {
			panic(r)
		}
		*err = tracerr.Wrap(rerr)
	}
}

// ParseScript parses a whole program: imports, an optional module
// declaration and any number of type definitions.
func (p *Parser) ParseScript() (script ast.Script, err error) {
	defer recoverInto(&err)

	script = p.script()
	return
}

// ParseStatement parses the `;`-separated statements of one interactive
// input, which must be consumed entirely. Trailing no-ops are dropped; a
// lone statement is returned as is and several are wrapped in a block.
func (p *Parser) ParseStatement() (stmt ast.Statement, err error) {
	defer recoverInto(&err)

	stmts := p.statements()
	p.eat(types.SCRIPTEND)
	for len(stmts) > 0 {
		if _, ok := stmts[len(stmts)-1].(ast.NoOp); !ok {
			break
		}
		stmts = stmts[:len(stmts)-1]
	}

	switch len(stmts) {
	case 0:
		return ast.NoOp{}, nil
	case 1:
		return stmts[0], nil
	}
	return ast.Block{Children: stmts}, nil
}

func (p *Parser) failIllegal(tok types.Token) {
	if tok.Kind != types.ILLEGAL {
		return
	}
	if errs := p.l.Errors(); len(errs) > 0 {
		panic(errs[len(errs)-1])
	}
	panic(errors.ExpectedKindGotKind{Got: tok.Kind, Location: tok.Location})
}

func (p *Parser) peek() types.Token {
	tok := p.l.Peek()
	p.failIllegal(tok)
	return tok
}

func (p *Parser) peekIs(k ...types.TokenKind) bool {
	p.peek()
	return p.l.PeekIs(k...)
}

func (p *Parser) next() types.Token {
	tok := p.l.Lex()
	p.failIllegal(tok)
	return tok
}

func (p *Parser) eat(k types.TokenKind) types.Token {
	tok := p.next()
	if tok.Kind != k {
		panic(errors.ExpectedKindGotKind{
			Expected: k,
			Got:      tok.Kind,
			Location: tok.Location,
		})
	}
	return tok
}

func (p *Parser) eatOneOf(k ...types.TokenKind) types.Token {
	tok := p.next()
	for _, kind := range k {
		if tok.Kind == kind {
			return tok
		}
	}
	panic(errors.ExpectedOneOfKindGotKind{
		Expected: k,
		Got:      tok.Kind,
		Location: tok.Location,
	})
}

func (p *Parser) script() ast.Script {
	s := ast.Script{
		Imports: p.imports(),
		Module:  p.module(),
	}
	for p.peekIs(types.TYPE) {
		p.eat(types.TYPE)
		s.Types = append(s.Types, p.typeDefinition())
	}
	p.eat(types.SCRIPTEND)
	return s
}

func (p *Parser) imports() ast.Import {
	var imports ast.Import
	for p.peekIs(types.USE) {
		p.eat(types.USE)
		imports.Modules = append(imports.Modules, p.eat(types.IDENT).Lit)
		p.eat(types.SEMI)
	}
	return imports
}

func (p *Parser) module() ast.Module {
	if !p.peekIs(types.MODULE) {
		return ast.Module{}
	}
	p.eat(types.MODULE)

	parts := []string{p.eat(types.IDENT).Lit}
	for p.peekIs(types.DOT) {
		p.eat(types.DOT)
		parts = append(parts, p.eat(types.IDENT).Lit)
	}
	p.eat(types.SEMI)
	return ast.Module{Name: strings.Join(parts, ".")}
}

func (p *Parser) typeDefinition() ast.TypeDefinition {
	def := ast.TypeDefinition{Name: p.eat(types.IDENT).Lit}

	// the parent type is accepted but not recorded
	if p.peekIs(types.COLON) {
		p.eat(types.COLON)
		p.eat(types.IDENT)
	}

	if p.peekIs(types.LBRACE) {
		p.eat(types.LBRACE)
		body := p.typeBody()
		def.Body = &body
		p.eat(types.RBRACE)
	}
	return def
}

func (p *Parser) typeBody() ast.TypeBody {
	var body ast.TypeBody
	seen := map[string]bool{}
	for !p.peekIs(types.RBRACE) {
		at := p.peek().Location
		member := p.member()
		if seen[member.MemberName()] {
			panic(errors.DuplicateField{Name: member.MemberName(), Location: at})
		}
		seen[member.MemberName()] = true
		body.Members = append(body.Members, member)
	}
	return body
}

func (p *Parser) member() ast.Member {
	typ := p.typeSpec()
	name := p.eat(types.IDENT).Lit

	switch {
	case p.peekIs(types.LPAREN):
		return ast.Function{
			Name:       name,
			ReturnType: typ,
			Params:     p.parameters(),
			Body:       p.block(),
		}
	case p.peekIs(types.LBRACE):
		return p.property(name, typ)
	}

	field := ast.Field{Name: name, Type: typ}
	if p.peekIs(types.ASSIGN) {
		p.eat(types.ASSIGN)
		field.Initializer = p.expression()
	}
	p.eat(types.SEMI)
	return field
}

func (p *Parser) parameters() []ast.Parameter {
	var params []ast.Parameter

	p.eat(types.LPAREN)
	if !p.peekIs(types.RPAREN) {
		for {
			typ := p.typeSpec()
			params = append(params, ast.Parameter{Name: p.eat(types.IDENT).Lit, Type: typ})
			if !p.peekIs(types.COMMA) {
				break
			}
			p.eat(types.COMMA)
		}
	}
	p.eat(types.RPAREN)

	return params
}

func (p *Parser) property(name string, typ ast.TypeName) ast.Property {
	prop := ast.Property{Name: name, Type: typ}

	p.eat(types.LBRACE)
	for !p.peekIs(types.RBRACE) {
		tok := p.eatOneOf(types.GET, types.SET, types.RBRACE)
		body := p.propertyBody()
		if tok.Kind == types.GET {
			prop.Getter = &body
		} else {
			prop.Setter = &body
		}
	}
	p.eat(types.RBRACE)

	return prop
}

func (p *Parser) propertyBody() ast.PropertyBody {
	if p.peekIs(types.LAMBDA) {
		p.eat(types.LAMBDA)
		if p.peekIs(types.LBRACE) {
			return ast.PropertyBody{Body: p.block()}
		}
		stmt := p.statement()
		p.eat(types.SEMI)
		return ast.PropertyBody{Body: ast.Block{Children: []ast.Statement{stmt}}}
	}
	if p.peekIs(types.LBRACE) {
		return ast.PropertyBody{Body: p.block()}
	}

	tok := p.peek()
	panic(errors.ExpectedOneOfKindGotKind{
		Expected: []types.TokenKind{types.LAMBDA, types.LBRACE},
		Got:      tok.Kind,
		Location: tok.Location,
	})
}

func (p *Parser) typeSpec() ast.TypeName {
	tok := p.peek()
	if name, ok := tok.Kind.PrimitiveType(); ok {
		p.next()
		return ast.TypeName{Name: name}
	}
	if tok.Kind == types.IDENT {
		p.next()
		return ast.TypeName{Name: tok.Lit}
	}

	panic(errors.ExpectedOneOfKindGotKind{
		Expected: []types.TokenKind{types.IDENT, types.VOIDKW, types.INTKW, types.FLOATKW, types.STRINGKW, types.CHARKW, types.BOOLKW},
		Got:      tok.Kind,
		Location: tok.Location,
	})
}

func (p *Parser) block() ast.Block {
	p.eat(types.LBRACE)
	stmts := p.statements()
	p.eat(types.RBRACE)
	return ast.Block{Children: stmts}
}

// statements reads statements separated by semicolons. A block or a branch
// may be followed directly by the next statement, as their closing brace or
// the branch's own semicolon already ends them.
func (p *Parser) statements() []ast.Statement {
	var stmts []ast.Statement
	for {
		stmt := p.statement()
		stmts = append(stmts, stmt)

		if p.peekIs(types.SEMI) {
			p.eat(types.SEMI)
			continue
		}

		switch stmt.(type) {
		case ast.Block, ast.Branch:
			if !p.peekIs(types.RBRACE, types.SCRIPTEND) {
				continue
			}
		}
		return stmts
	}
}

var compoundOperators = map[types.TokenKind]ast.BinaryOperator{
	types.INCREMENTBY: ast.Add,
	types.DECREMENTBY: ast.Subtract,
	types.MULTIPLYBY:  ast.Multiply,
	types.DIVIDEBY:    ast.Divide,
}

func startsExpression(k types.TokenKind) bool {
	switch k {
	case types.SUBTRACT, types.NOT, types.INCREMENT, types.DECREMENT,
		types.INT32, types.SINGLE, types.STRING, types.CHARACTER,
		types.TRUE, types.FALSE, types.LPAREN:
		return true
	}
	return false
}

// statement never fails on an unrecognised leading token; it yields a NoOp
// and leaves the token for the caller.
func (p *Parser) statement() ast.Statement {
	tok := p.peek()

	switch {
	case tok.Kind == types.LBRACE:
		return p.block()
	case tok.Kind == types.VAR:
		p.eat(types.VAR)
		return p.variableDeclaration(ast.InferredType)
	case tok.Kind == types.IDENT:
		p.eat(types.IDENT)
		target := ast.VariableRef{Name: tok.Lit}

		next := p.peek()
		if next.Kind == types.ASSIGN {
			p.eat(types.ASSIGN)
			return ast.Assign{Target: target, Value: p.expression()}
		}
		if next.Kind == types.IDENT {
			return p.variableDeclaration(ast.TypeName{Name: tok.Lit})
		}
		if op, ok := compoundOperators[next.Kind]; ok {
			p.next()
			return ast.CompoundAssign{Op: op, Target: target, Value: p.expression()}
		}
		return p.expressionFrom(target)
	case tok.Kind.IsPrimitiveType():
		return p.variableDeclaration(p.typeSpec())
	case tok.Kind == types.RETURN:
		p.eat(types.RETURN)
		if p.peekIs(types.SEMI, types.RBRACE, types.SCRIPTEND) {
			return ast.Return{}
		}
		return ast.Return{Value: p.expression()}
	case tok.Kind == types.IF:
		p.eat(types.IF)
		return p.branch()
	case startsExpression(tok.Kind):
		return p.expression()
	}

	return ast.NoOp{}
}

func (p *Parser) variableDeclaration(typ ast.TypeName) ast.VariableDeclaration {
	decl := ast.VariableDeclaration{Type: typ}

	decl.Names = append(decl.Names, p.eat(types.IDENT).Lit)
	for p.peekIs(types.COMMA) {
		p.eat(types.COMMA)
		decl.Names = append(decl.Names, p.eat(types.IDENT).Lit)
	}

	if typ.Inferred && !p.peekIs(types.ASSIGN) {
		panic(errors.ImplicitTypeWithoutValue{Location: p.peek().Location})
	}
	if p.peekIs(types.ASSIGN) {
		p.eat(types.ASSIGN)
		decl.Initializer = p.expression()
	}

	return decl
}

func (p *Parser) branch() ast.Branch {
	p.eat(types.LPAREN)
	b := ast.Branch{Condition: p.expression()}
	p.eat(types.RPAREN)

	if p.peekIs(types.LBRACE) {
		b.IfTrue = p.block()
	} else {
		b.IfTrue = p.statement()
		if p.peekIs(types.SEMI) {
			p.eat(types.SEMI)
		}
	}

	if p.peekIs(types.ELSE) {
		p.eat(types.ELSE)
		switch {
		case p.peekIs(types.IF):
			p.eat(types.IF)
			b.IfFalse = p.branch()
		case p.peekIs(types.LBRACE):
			b.IfFalse = p.block()
		default:
			b.IfFalse = p.statement()
		}
	}

	return b
}

var comparisons = map[types.TokenKind]ast.BinaryOperator{
	types.GREATER:      ast.Greater,
	types.GREATEREQUAL: ast.GreaterOrEqual,
	types.LESS:         ast.Less,
	types.LESSEQUAL:    ast.LessOrEqual,
	types.EQUAL:        ast.Equal,
	types.NOTEQUAL:     ast.NotEqual,
}

var additive = map[types.TokenKind]ast.BinaryOperator{
	types.ADD:      ast.Add,
	types.SUBTRACT: ast.Subtract,
}

var multiplicative = map[types.TokenKind]ast.BinaryOperator{
	types.MULTIPLY: ast.Multiply,
	types.DIVIDE:   ast.Divide,
}

// expression := sum (comparison sum)?
func (p *Parser) expression() ast.Expression {
	return p.comparisonRest(p.sum())
}

// expressionFrom continues an expression whose leading variable has
// already been consumed.
func (p *Parser) expressionFrom(v ast.VariableRef) ast.Expression {
	return p.comparisonRest(p.sumRest(p.termRest(p.postfix(v))))
}

func (p *Parser) comparisonRest(left ast.Expression) ast.Expression {
	if op, ok := comparisons[p.peek().Kind]; ok {
		p.next()
		return ast.BinaryOp{Op: op, Left: left, Right: p.sum()}
	}
	return left
}

// sum := term (('+'|'-') term)*
func (p *Parser) sum() ast.Expression {
	return p.sumRest(p.term())
}

func (p *Parser) sumRest(node ast.Expression) ast.Expression {
	for {
		op, ok := additive[p.peek().Kind]
		if !ok {
			return node
		}
		p.next()
		node = ast.BinaryOp{Op: op, Left: node, Right: p.term()}
	}
}

// term := factor (('*'|'/') factor)*
func (p *Parser) term() ast.Expression {
	return p.termRest(p.factor())
}

func (p *Parser) termRest(node ast.Expression) ast.Expression {
	for {
		op, ok := multiplicative[p.peek().Kind]
		if !ok {
			return node
		}
		p.next()
		node = ast.BinaryOp{Op: op, Left: node, Right: p.factor()}
	}
}

func (p *Parser) factor() ast.Expression {
	tok := p.peek()

	switch tok.Kind {
	case types.SUBTRACT:
		p.next()
		return ast.UnaryOp{Op: ast.Negate, Operand: p.factor()}
	case types.NOT:
		p.next()
		return ast.UnaryOp{Op: ast.Not, Operand: p.factor()}
	case types.INCREMENT:
		p.next()
		return ast.PreIncrement{Variable: p.variable()}
	case types.DECREMENT:
		p.next()
		return ast.PreDecrement{Variable: p.variable()}
	case types.INT32, types.SINGLE:
		return p.number()
	case types.STRING:
		p.next()
		return ast.String(tok.Value.(string))
	case types.CHARACTER:
		p.next()
		return ast.Character(tok.Value.(rune))
	case types.TRUE:
		p.next()
		return ast.Boolean(true)
	case types.FALSE:
		p.next()
		return ast.Boolean(false)
	case types.LPAREN:
		p.next()
		expr := p.expression()
		p.eat(types.RPAREN)
		return expr
	}

	return p.postfix(p.variable())
}

func (p *Parser) postfix(v ast.VariableRef) ast.Expression {
	switch {
	case p.peekIs(types.INCREMENT):
		p.next()
		return ast.PostIncrement{Variable: v}
	case p.peekIs(types.DECREMENT):
		p.next()
		return ast.PostDecrement{Variable: v}
	}
	return v
}

func (p *Parser) number() ast.Expression {
	tok := p.eatOneOf(types.INT32, types.SINGLE)
	if v, ok := tok.Value.(int32); ok {
		return ast.Integer(v)
	}
	return ast.Single(tok.Value.(float32))
}

func (p *Parser) variable() ast.VariableRef {
	return ast.VariableRef{Name: p.eat(types.IDENT).Lit}
}
