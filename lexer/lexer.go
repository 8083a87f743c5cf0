package lexer

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pontaoski/rainyday/errors"
	"github.com/pontaoski/rainyday/types"
)

type Lexer struct {
	pos    types.Position
	prev   types.Position
	reader *bufio.Reader
	peeked *types.Token
	errs   []error
	ended  bool
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:    types.Position{Line: 1, Column: 0, Filename: filename},
		reader: bufio.NewReader(reader),
	}
}

// FromString lexes an in-memory snippet, as typed into the REPL.
func FromString(src string) *Lexer {
	return NewLexer(strings.NewReader(src), "<input>")
}

// Errors returns the lexical errors recorded so far, oldest first.
func (l *Lexer) Errors() []error {
	return append([]error(nil), l.errs...)
}

func (l *Lexer) errorf(err error) types.Token {
	l.errs = append(l.errs, err)
	return types.Token{Kind: types.ILLEGAL, Location: types.SingleCharSpan(l.pos)}
}

func (l *Lexer) newline() {
	l.pos.Line++
	l.pos.Column = 0
}

func (l *Lexer) read() (rune, bool) {
	if l.ended {
		return 0, false
	}
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err != io.EOF {
			l.errs = append(l.errs, errors.ReadFailure{Err: err, Location: types.SingleCharSpan(l.pos)})
		}
		l.ended = true
		return 0, false
	}

	l.prev = l.pos
	if r == '\n' {
		l.newline()
	} else {
		l.pos.Column++
	}
	return r, true
}

// backup must directly follow a successful read.
func (l *Lexer) backup() {
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}
	l.pos = l.prev
}

// peekByte looks n bytes ahead without consuming anything. Every character
// that takes part in a multi-character token is ASCII, so bytes suffice.
func (l *Lexer) peekByte(n int) byte {
	if l.ended {
		return 0
	}
	byt, err := l.reader.Peek(n)
	if err != nil || len(byt) < n {
		return 0
	}
	return byt[n-1]
}

func (l *Lexer) accept(b byte) bool {
	if l.peekByte(1) == b {
		l.read()
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func (l *Lexer) skipLineComment() {
	for {
		r, ok := l.read()
		if !ok || r == '\n' {
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	for {
		r, ok := l.read()
		if !ok {
			return
		}
		if r == '*' && l.accept('/') {
			return
		}
	}
}

func (l *Lexer) lexNumber(first rune, from types.Position) types.Token {
	var lit strings.Builder
	lit.WriteRune(first)
	for isDigit(l.peekByte(1)) {
		r, _ := l.read()
		lit.WriteRune(r)
	}

	kind := types.INT32
	if l.peekByte(1) == '.' && isDigit(l.peekByte(2)) {
		kind = types.SINGLE
		l.read()
		lit.WriteByte('.')
		for isDigit(l.peekByte(1)) {
			r, _ := l.read()
			lit.WriteRune(r)
		}
	}

	span := types.Span{From: from, To: l.pos}
	tok := types.Token{Kind: kind, Location: span, Lit: lit.String()}
	if kind == types.INT32 {
		v, err := strconv.ParseInt(tok.Lit, 10, 32)
		if err != nil {
			return l.errorf(errors.InvalidNumber{Literal: tok.Lit, Err: err, Location: span})
		}
		tok.Value = int32(v)
		return tok
	}

	v, err := strconv.ParseFloat(tok.Lit, 32)
	if err != nil {
		return l.errorf(errors.InvalidNumber{Literal: tok.Lit, Err: err, Location: span})
	}
	tok.Value = float32(v)
	return tok
}

func (l *Lexer) lexIdent(first rune, from types.Position) types.Token {
	var lit strings.Builder
	lit.WriteRune(first)
	for {
		r, ok := l.read()
		if !ok {
			break
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			l.backup()
			break
		}
		lit.WriteRune(r)
	}

	span := types.Span{From: from, To: l.pos}
	if kind, ok := types.Keywords[strings.ToLower(lit.String())]; ok {
		return types.Token{Kind: kind, Location: span, Lit: lit.String()}
	}
	return types.Token{Kind: types.IDENT, Location: span, Lit: lit.String()}
}

func (l *Lexer) lexString(from types.Position) types.Token {
	var lit strings.Builder
	for {
		r, ok := l.read()
		if !ok || r == '"' {
			break
		}
		if r == '\\' && l.accept('"') {
			lit.WriteByte('"')
			continue
		}
		lit.WriteRune(r)
	}
	return types.Token{Kind: types.STRING, Location: types.Span{From: from, To: l.pos}, Lit: lit.String(), Value: lit.String()}
}

func (l *Lexer) lexCharacter(from types.Position) types.Token {
	r, ok := l.read()
	if !ok {
		return l.errorf(errors.UnterminatedCharacter{Location: types.Span{From: from, To: l.pos}})
	}
	if !l.accept('\'') {
		return l.errorf(errors.UnterminatedCharacter{Location: types.Span{From: from, To: l.pos}})
	}
	return types.Token{Kind: types.CHARACTER, Location: types.Span{From: from, To: l.pos}, Lit: string(r), Value: r}
}

func (l *Lexer) Peek() types.Token {
	if l.peeked != nil {
		return *l.peeked
	}

	tok := l.lex()
	l.peeked = &tok
	return tok
}

func (l *Lexer) PeekIs(k ...types.TokenKind) bool {
	token := l.Peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true
		}
	}

	return false
}

// Lex returns the next token. After the input is exhausted it keeps
// returning SCRIPTEND. A token of kind ILLEGAL means an error was recorded
// and the caller should stop asking for tokens.
func (l *Lexer) Lex() types.Token {
	if l.peeked != nil {
		defer func() { l.peeked = nil }()
		return *l.peeked
	}
	return l.lex()
}

var single = map[rune]types.TokenKind{
	'[': types.LSQUARE,
	']': types.RSQUARE,
	'{': types.LBRACE,
	'}': types.RBRACE,
	'(': types.LPAREN,
	')': types.RPAREN,
	',': types.COMMA,
	';': types.SEMI,
	':': types.COLON,
	'.': types.DOT,
}

// operators lists, per leading character, the follow-up characters that
// form a two-character operator, and the single-character fallback.
var operators = map[rune]struct {
	alone  types.TokenKind
	paired map[byte]types.TokenKind
}{
	'=': {types.ASSIGN, map[byte]types.TokenKind{'=': types.EQUAL, '>': types.LAMBDA}},
	'!': {types.NOT, map[byte]types.TokenKind{'=': types.NOTEQUAL}},
	'>': {types.GREATER, map[byte]types.TokenKind{'=': types.GREATEREQUAL}},
	'<': {types.LESS, map[byte]types.TokenKind{'=': types.LESSEQUAL}},
	'+': {types.ADD, map[byte]types.TokenKind{'=': types.INCREMENTBY, '+': types.INCREMENT}},
	'-': {types.SUBTRACT, map[byte]types.TokenKind{'=': types.DECREMENTBY, '-': types.DECREMENT}},
	'*': {types.MULTIPLY, map[byte]types.TokenKind{'=': types.MULTIPLYBY}},
	'/': {types.DIVIDE, map[byte]types.TokenKind{'=': types.DIVIDEBY}},
}

func (l *Lexer) lex() types.Token {
	for {
		r, ok := l.read()
		if !ok {
			return types.Token{Kind: types.SCRIPTEND, Location: types.SingleCharSpan(l.pos)}
		}
		from := l.pos

		switch {
		case unicode.IsSpace(r):
			continue
		case r == '/' && l.accept('/'):
			l.skipLineComment()
			continue
		case r == '/' && l.accept('*'):
			l.skipBlockComment()
			continue
		case r >= '0' && r <= '9':
			return l.lexNumber(r, from)
		case unicode.IsLetter(r):
			return l.lexIdent(r, from)
		case r == '"':
			return l.lexString(from)
		case r == '\'':
			return l.lexCharacter(from)
		}

		if kind, ok := single[r]; ok {
			return types.Token{Kind: kind, Location: types.SingleCharSpan(from)}
		}

		if op, ok := operators[r]; ok {
			if kind, ok := op.paired[l.peekByte(1)]; ok {
				l.read()
				return types.Token{Kind: kind, Location: types.Span{From: from, To: l.pos}}
			}
			return types.Token{Kind: op.alone, Location: types.SingleCharSpan(from)}
		}

		return l.errorf(errors.UnexpectedCharacter{Char: r, Location: types.SingleCharSpan(from)})
	}
}

// All drains the lexer, stopping after SCRIPTEND or the first ILLEGAL token.
func (l *Lexer) All() []types.Token {
	var ret []types.Token
	for {
		t := l.Lex()
		ret = append(ret, t)
		if t.Kind == types.SCRIPTEND || t.Kind == types.ILLEGAL {
			return ret
		}
	}
}
