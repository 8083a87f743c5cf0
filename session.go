package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pontaoski/rainyday/ast"
	"github.com/pontaoski/rainyday/interpreter"
	"github.com/pontaoski/rainyday/lexer"
	"github.com/pontaoski/rainyday/parser"
	"github.com/pontaoski/rainyday/symbols"
	"github.com/ztrue/tracerr"
)

// session is one interactive run of the interpreter. Variables persist
// between inputs until restart.
type session struct {
	out    io.Writer
	cfg    rainyConfig
	log    *slog.Logger
	debug  bool
	interp *interpreter.Interpreter
}

func newSession(out io.Writer, cfg rainyConfig, log *slog.Logger, debug bool) *session {
	s := &session{out: out, cfg: cfg, log: log, debug: debug}
	s.restart()
	return s
}

func (s *session) restart() {
	s.interp = interpreter.New(interpreter.WithLogger(s.log))
}

func (s *session) printErr(err error) {
	if s.debug {
		fmt.Fprintln(s.out, tracerr.SprintSource(err))
		return
	}
	fmt.Fprintf(s.out, "error: %s\n", err)
}

// Execute handles one line of input and reports whether the session should
// end.
func (s *session) Execute(line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	var (
		node ast.Node
		err  error
	)
	dumpSymbols := s.cfg.Symbols

	switch strings.ToLower(fields[0]) {
	case "quit":
		return true
	case "cls":
		fmt.Fprint(s.out, "\033[H\033[2J")
		return false
	case "restart":
		s.restart()
		fmt.Fprintln(s.out, "session restarted")
		return false
	case "run":
		var path string
		for _, arg := range fields[1:] {
			if arg == "-s" {
				dumpSymbols = true
			} else {
				path = arg
			}
		}
		if path == "" {
			fmt.Fprintln(s.out, "usage: run <path> [-s]")
			return false
		}
		node, err = s.loadScript(s.cfg.scriptPath(path))
	default:
		node, err = parser.NewParser(lexer.FromString(line)).ParseStatement()
	}

	if err != nil {
		s.printErr(err)
		return false
	}

	s.eval(node, dumpSymbols)
	return false
}

func (s *session) loadScript(path string) (ast.Script, error) {
	fi, err := os.Open(path)
	if err != nil {
		return ast.Script{}, tracerr.Wrap(err)
	}
	defer fi.Close()

	return parser.NewParser(lexer.NewLexer(fi, path)).ParseScript()
}

// eval interprets node, then prints every error followed by the variable
// table.
func (s *session) eval(node ast.Node, dumpSymbols bool) {
	if dumpSymbols {
		b := symbols.NewBuilder(symbols.WithLogger(s.log))
		b.Visit(node)
		fmt.Fprintf(s.out, "%s\n\n", b)
		for _, err := range b.Errors() {
			s.printErr(err)
		}
	}

	s.interp.Interpret(node)
	for _, err := range s.interp.Errors() {
		s.printErr(err)
	}
	s.interp.ClearErrors()

	fmt.Fprintln(s.out, s.interp.Describe())
}
