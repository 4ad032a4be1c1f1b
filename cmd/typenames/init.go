// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/typenames/internal/bootstrap"
	"github.com/kraklabs/typenames/internal/errors"
	"github.com/kraklabs/typenames/internal/output"
	"github.com/kraklabs/typenames/internal/ui"
)

// runInit executes the 'init' command, writing .typenames.yaml with the
// default settings into a directory (default: current directory).
func runInit(args []string, globals GlobalFlags, stdout io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	force := fs.BoolP("force", "f", false, "Overwrite an existing configuration file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: typenames init [options] [dir]

Creates %s with the default scan settings.

Options:
`, bootstrap.ConfigFileName)
		fs.PrintDefaults()
	}

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return errors.NewInputError("Too many arguments", "init takes one directory", "Run 'typenames init --help' for usage")
	}

	dir := "."
	if fs.NArg() == 1 {
		dir = fs.Arg(0)
	}

	path, err := bootstrap.InitConfig(dir, *force, logger)
	if err != nil {
		if stderrors.Is(err, bootstrap.ErrConfigExists) {
			return errors.NewConfigError(
				"Configuration already exists",
				path,
				"Use --force to overwrite it",
				err,
			)
		}
		return errors.NewPermissionError("Cannot write configuration", err.Error(), "Check directory permissions", err)
	}

	if globals.JSON {
		return output.JSONTo(stdout, map[string]string{"config": path})
	}
	if !globals.Quiet {
		ui.Out = stdout
		ui.Successf("Created %s", path)
	}
	return nil
}
