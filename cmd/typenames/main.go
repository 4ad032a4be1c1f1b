// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Command typenames lists the declared type names of PHP parameters,
// properties and return values.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/typenames/internal/errors"
	"github.com/kraklabs/typenames/internal/ui"
)

var (
	version = "dev"     // Version string
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// GlobalFlags holds the flags accepted before the command name.
type GlobalFlags struct {
	ConfigPath string
	JSON       bool
	NoColor    bool
	Quiet      bool
	Verbose    int
}

func main() {
	var globals GlobalFlags
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.StringVar(&globals.ConfigPath, "config", "", "Path to .typenames.yaml (default: <path>/.typenames.yaml)")
	flag.BoolVar(&globals.JSON, "json", false, "Output as JSON (implies --quiet)")
	flag.BoolVar(&globals.NoColor, "no-color", false, "Disable colored output")
	flag.BoolVarP(&globals.Quiet, "quiet", "q", false, "Suppress progress and informational output")
	flag.CountVarP(&globals.Verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	flag.CommandLine.SetInterspersed(false)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `typenames - declared type names of PHP declarations

typenames reports, for every parameter, property and return value in a
PHP code base, the list of type names it was declared with:

  function f(?int $id): string|int|null

  f($id)  [null, int]
  f()     [string, int, null]

Usage:
  typenames [global options] <command> [options]

Commands:
  scan        List the type names of every declaration under a path
  inspect     Show the type names of one declaration
  init        Create .typenames.yaml with the default settings
  completion  Generate shell completion script (bash|zsh|fish)

Global Options:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  typenames scan src/
  typenames --json scan --exclude 'tests/**' .
  typenames inspect src/User.php 'User::rename($name)'
  typenames inspect src/User.php 'User::$email'

For detailed command help: typenames <command> --help
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("typenames version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	if globals.JSON {
		globals.Quiet = true
	}
	if globals.NoColor {
		ui.InitColors(true)
	}
	logger := newLogger(os.Stderr, globals)
	slog.SetDefault(logger)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(errors.ExitInput)
	}

	command, cmdArgs := args[0], args[1:]

	var err error
	switch command {
	case "scan":
		err = runScan(cmdArgs, globals, os.Stdout, logger)
	case "inspect":
		err = runInspect(cmdArgs, globals, os.Stdout, logger)
	case "init":
		err = runInit(cmdArgs, globals, os.Stdout, logger)
	case "completion":
		err = runCompletion(cmdArgs, globals, os.Stdout, logger)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(errors.ExitInput)
	}
	errors.FatalError(err, globals.JSON)
}

// newLogger returns a text logger writing to w. Only warnings are shown by
// default; each -v lowers the level by one step and --quiet raises it to
// errors.
func newLogger(w io.Writer, globals GlobalFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case globals.Verbose >= 2:
		level = slog.LevelDebug
	case globals.Verbose == 1:
		level = slog.LevelInfo
	case globals.Quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// parseFlags parses a command flag set. Help requests and flag errors are
// reported as input errors after the usage has been printed.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			os.Exit(errors.ExitSuccess)
		}
		return errors.NewInputError(
			"Invalid arguments",
			err.Error(),
			fmt.Sprintf("Run 'typenames %s --help' for usage", fs.Name()),
		)
	}
	return nil
}
