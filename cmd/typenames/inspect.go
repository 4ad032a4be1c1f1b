// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/typenames/internal/contract"
	"github.com/kraklabs/typenames/internal/errors"
	"github.com/kraklabs/typenames/internal/output"
	"github.com/kraklabs/typenames/internal/ui"
	"github.com/kraklabs/typenames/pkg/phpsource"
	"github.com/kraklabs/typenames/pkg/scan"
	"github.com/kraklabs/typenames/pkg/typenames"
)

// InspectResult is the outcome of the inspect command.
type InspectResult struct {
	File   string          `json:"file" yaml:"file"`
	Symbol string          `json:"symbol" yaml:"symbol"`
	Kind   scan.RecordKind `json:"kind" yaml:"kind"`
	Line   int             `json:"line" yaml:"line"`
	Types  []string        `json:"types" yaml:"types"`
}

// runInspect executes the 'inspect' command, printing the type names of a
// single declaration.
func runInspect(args []string, globals GlobalFlags, stdout io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	format := fs.String("format", "text", "Output format: text, json or yaml")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: typenames inspect [options] <file> <symbol>

Shows the declared type names of one declaration.

Symbols:
  make_service               return type of a free function
  make_service($repository)  parameter of a free function
  Invoice::total             return type of a method
  Invoice::total($rate)      parameter of a method
  Invoice::$amount           property

Options:
`)
		fs.PrintDefaults()
	}

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.NewInputError(
			"Expected a file and a symbol",
			fmt.Sprintf("got %d argument(s)", fs.NArg()),
			"Run: typenames inspect src/User.php 'User::rename($name)'",
		)
	}
	path, symbolArg := fs.Arg(0), fs.Arg(1)

	outFormat, err := output.ParseFormat(*format)
	if err != nil {
		return errors.NewInputError("Invalid output format", err.Error(), "Use --format text, json or yaml")
	}
	if globals.JSON {
		outFormat = output.FormatJSON
	}

	symbol, res := contract.ParseSymbol(symbolArg)
	if !res.OK {
		return errors.NewInputError(
			"Invalid symbol",
			res.Message,
			"Use func, func($param), Class::method, Class::method($param) or Class::$property",
		)
	}

	parser := phpsource.NewParser(logger)
	defer parser.Close()

	file, err := parser.ParseFile(context.Background(), path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return errors.NewNotFoundError(fmt.Sprintf("File not found: %s", path), err.Error(), "Check the path and try again")
		}
		return errors.NewParseError(
			fmt.Sprintf("Cannot parse %s", path),
			"Tree-sitter could not build a syntax tree",
			"Check that the file is valid PHP 8 source",
			err,
		)
	}

	result, err := inspect(file, symbol)
	if err != nil {
		return err
	}
	result.File = path
	result.Symbol = symbolArg

	if outFormat != output.FormatText {
		if werr := output.Write(stdout, outFormat, result); werr != nil {
			return errors.NewInternalError("Cannot write output", werr.Error(), "", werr)
		}
		return nil
	}

	fmt.Fprintln(stdout, ui.TypeList(result.Types))
	if !globals.Quiet {
		fmt.Fprintf(stdout, "%s %s:%d (%s)\n", ui.DimText("declared at"), path, result.Line, result.Kind)
	}
	if file.SyntaxErrors > 0 {
		logger.Warn("inspect.syntax_errors", "path", path, "count", file.SyntaxErrors)
	}
	return nil
}

// inspect resolves a symbol in a parsed file.
func inspect(file *phpsource.File, symbol contract.Symbol) (*InspectResult, error) {
	var fn typenames.Function
	if symbol.Class == "" {
		f, ok := file.Function(symbol.Member)
		if !ok {
			return nil, symbolNotFound(fmt.Sprintf("No function '%s'", symbol.Member), file)
		}
		fn = f
	} else {
		class, ok := file.Class(symbol.Class)
		if !ok {
			return nil, symbolNotFound(fmt.Sprintf("No class '%s'", symbol.Class), file)
		}

		if symbol.Kind == contract.SymbolProperty {
			prop, ok := class.Property(symbol.Member)
			if !ok {
				return nil, symbolNotFound(fmt.Sprintf("No property '$%s' in %s", symbol.Member, class.Name), file)
			}
			line := prop.StartLine
			if line == 0 {
				line = class.StartLine
			}
			return &InspectResult{Kind: scan.KindProperty, Line: line, Types: typenames.Extract(prop)}, nil
		}

		m, ok := class.Method(symbol.Member)
		if !ok {
			return nil, symbolNotFound(fmt.Sprintf("No method '%s' in %s", symbol.Member, class.Name), file)
		}
		fn = m
	}

	if symbol.Kind == contract.SymbolParameter {
		param, ok := fn.ParamByName(symbol.Param)
		if !ok {
			return nil, symbolNotFound(fmt.Sprintf("No parameter '$%s' in %s()", symbol.Param, fn.Name), file)
		}
		return &InspectResult{Kind: scan.KindParameter, Line: fn.StartLine, Types: typenames.Extract(param)}, nil
	}
	return &InspectResult{Kind: scan.KindReturn, Line: fn.StartLine, Types: typenames.Extract(fn)}, nil
}

func symbolNotFound(cause string, file *phpsource.File) error {
	var names []string
	for i := range file.Classes {
		names = append(names, file.QualifiedName(&file.Classes[i]))
	}
	for _, fn := range file.Functions {
		names = append(names, fn.Name+"()")
	}

	fix := "The file declares nothing that can be inspected"
	if len(names) > 0 {
		fix = "Declared in this file: " + strings.Join(names, ", ")
	}
	return errors.NewNotFoundError("Symbol not found", cause, fix)
}
