package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/alecthomas/repr"
	"github.com/peterh/liner"
	"github.com/pontaoski/rainyday/lexer"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

func setup(c *cli.Context) (rainyConfig, *slog.Logger, error) {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return cfg, nil, err
	}
	if c.IsSet("script-dir") {
		cfg.ScriptDir = c.String("script-dir")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if c.Bool("debug") {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return cfg, logger, nil
}

func repl(s *session) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(s.cfg.HistoryFile); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	for {
		line, err := ln.Prompt(s.cfg.Prompt)
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Println()
			break
		}
		if err != nil {
			return tracerr.Wrap(err)
		}
		ln.AppendHistory(line)

		if s.Execute(line) {
			break
		}
	}

	if f, err := os.Create(s.cfg.HistoryFile); err == nil {
		ln.WriteHistory(f)
		f.Close()
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:  "rainyday",
		Usage: "rainyday interpreter",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: defaultConfigFile,
				Usage: "configuration file",
			},
			&cli.StringFlag{
				Name:  "script-dir",
				Usage: "directory relative script paths resolve against",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log debug records to stderr",
			},
		},
		ExitErrHandler: func(context *cli.Context, err error) {
			if err != nil {
				tracerr.Print(err)
				log.Fatal("rainyday failed")
			}
		},
		Action: func(c *cli.Context) error {
			return cli.ShowAppHelp(c)
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "write a default configuration file",
				Action: func(c *cli.Context) error {
					path := c.String("config")
					if _, err := os.Stat(path); err == nil {
						return fmt.Errorf("%s already exists", path)
					}
					return writeConfig(path, defaultConfig())
				},
			},
			{
				Name:  "repl",
				Usage: "start an interactive session",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "symbols",
						Aliases: []string{"s"},
						Usage:   "dump the symbol table after every input",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, logger, err := setup(c)
					if err != nil {
						return err
					}
					if c.IsSet("symbols") {
						cfg.Symbols = c.Bool("symbols")
					}
					return repl(newSession(os.Stdout, cfg, logger, c.Bool("debug")))
				},
			},
			{
				Name:      "run",
				Usage:     "interpret a script",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "symbols",
						Aliases: []string{"s"},
						Usage:   "dump the symbol table",
					},
					&cli.BoolFlag{
						Name:  "ast",
						Usage: "dump the syntax tree",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("run takes exactly one script path")
					}
					cfg, logger, err := setup(c)
					if err != nil {
						return err
					}

					s := newSession(os.Stdout, cfg, logger, c.Bool("debug"))
					script, err := s.loadScript(cfg.scriptPath(c.Args().First()))
					if err != nil {
						return err
					}
					if c.Bool("ast") {
						repr.Println(script)
					}
					s.eval(script, cfg.Symbols || c.Bool("symbols"))
					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "dump the tokens of a script",
				ArgsUsage: "<path>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("tokens takes exactly one script path")
					}
					cfg, _, err := setup(c)
					if err != nil {
						return err
					}

					path := cfg.scriptPath(c.Args().First())
					fi, err := os.Open(path)
					if err != nil {
						return tracerr.Wrap(err)
					}
					defer fi.Close()

					return dumpTokens(os.Stdout, lexer.NewLexer(fi, path))
				},
			},
		},
	}
	app.Run(os.Args)
}

func dumpTokens(out io.Writer, l *lexer.Lexer) error {
	for _, tok := range l.All() {
		fmt.Fprintf(out, "%s\t%s\n", tok.Location, tok)
	}
	if errs := l.Errors(); len(errs) > 0 {
		return errs[0]
	}
	return nil
}
