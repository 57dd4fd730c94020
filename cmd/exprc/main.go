package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/RobertP-SyndicateLabs/exprscript/expr"
)

func main() {
	bootstrap := newLogger("info")
	if len(os.Args) < 2 {
		bootstrap.Fatal().Msg("usage: exprc <command> [args]")
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	configPath := fs.String("config", os.Getenv("EXPRC_CONFIG"), "path to a TOML config file")
	logLevel := fs.String("log-level", "", "override the configured log level")
	fs.Parse(args)

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		bootstrap.Fatal().Err(err).Msg("error loading config")
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := newLogger(cfg.LogLevel)

	switch cmd {
	case "eval":
		doEval(fs.Args(), cfg, logger)
	case "lex":
		doLex(fs.Args(), cfg, logger)
	case "repl":
		doRepl(cfg, logger)
	case "vars":
		doVars(fs.Args(), cfg, logger)
	default:
		logger.Fatal().Str("command", cmd).Msg("unknown command")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger().
		Level(lvl)
}

func doEval(args []string, cfg CLIConfig, logger zerolog.Logger) {
	if len(args) == 0 {
		logger.Fatal().Msg("usage: exprc eval <expression> [name=value ...]")
	}
	text := args[0]
	reg := expr.NewRegistry(cfg.locale(), logger)

	cells := make(map[string]*float64)
	for _, kv := range args[1:] {
		name, val, ok := strings.Cut(kv, "=")
		if !ok {
			logger.Error().Str("assignment", kv).Msg("ignoring malformed assignment")
			continue
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			logger.Error().Err(err).Str("assignment", kv).Msg("ignoring non-numeric assignment")
			continue
		}
		cell := new(float64)
		*cell = f
		cells[name] = cell
		if err := reg.DefineVariable(name, cell); err != nil {
			logger.Fatal().Err(err).Str("name", name).Msg("cannot define variable")
		}
	}

	result, err := reg.Evaluate(text)
	if err != nil {
		logger.Fatal().Err(err).Str("expr", text).Msg("evaluation failed")
	}
	fmt.Println(formatResult(result, reg))
}

func doLex(args []string, cfg CLIConfig, logger zerolog.Logger) {
	if len(args) == 0 {
		logger.Fatal().Msg("usage: exprc lex <expression>")
	}
	toks, err := expr.DebugTokenize(args[0], cfg.locale())
	if err != nil {
		logger.Fatal().Err(err).Str("expr", args[0]).Msg("lex failed")
	}
	for _, t := range toks {
		fmt.Println(t)
	}
}

func doRepl(cfg CLIConfig, logger zerolog.Logger) {
	reg := expr.NewRegistry(cfg.locale(), logger)
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("exprc repl — enter expressions, Ctrl-D to quit")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result, err := reg.Evaluate(line)
		if err != nil {
			logger.Error().Err(err).Str("expr", line).Msg("evaluation failed")
			continue
		}
		fmt.Println(formatResult(result, reg))
	}
}

func doVars(args []string, cfg CLIConfig, logger zerolog.Logger) {
	if len(args) == 0 {
		logger.Fatal().Msg("usage: exprc vars <expression>")
	}
	reg := expr.NewRegistry(cfg.locale(), logger)
	if err := reg.AddExpression(args[0]); err != nil {
		logger.Fatal().Err(err).Str("expr", args[0]).Msg("compile failed")
	}
	for _, name := range reg.GeneratedVars() {
		fmt.Println(name)
	}
}

func formatResult(result float64, reg *expr.Registry) string {
	if result != result { // NaN
		return "(empty)"
	}
	return reg.AsString()
}
