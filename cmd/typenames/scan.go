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
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/schollz/progressbar/v3"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/typenames/internal/bootstrap"
	"github.com/kraklabs/typenames/internal/contract"
	"github.com/kraklabs/typenames/internal/errors"
	"github.com/kraklabs/typenames/internal/output"
	"github.com/kraklabs/typenames/internal/ui"
	"github.com/kraklabs/typenames/pkg/scan"
)

// runScan executes the 'scan' command, listing the type names of every
// declaration under a path.
//
// Flags override the values loaded from .typenames.yaml. Files that fail to
// parse are reported and make the command exit with ExitParse, unless
// --keep-going is set.
//
// Examples:
//
//	typenames scan src/
//	typenames scan --format yaml --exclude 'tests/**' .
//	typenames --json scan --keep-going .
func runScan(args []string, globals GlobalFlags, stdout io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	excludes := fs.StringArray("exclude", nil, "Additional glob of paths to skip (repeatable)")
	workers := fs.Int("workers", 0, "Files parsed concurrently (default: one per CPU)")
	format := fs.String("format", "text", "Output format: text, json or yaml")
	maxFileSize := fs.Int64("max-file-size", 0, "Skip files larger than this many bytes (0: no limit)")
	keepGoing := fs.Bool("keep-going", false, "Exit successfully even when some files fail to parse")
	metricsAddr := fs.String("metrics-addr", "", "HTTP listen address for Prometheus metrics during the scan (empty to disable)")
	metricsFile := fs.String("metrics-file", "", "Write Prometheus metrics to this file after the scan (textfile collector format)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: typenames scan [options] [path]

Lists the declared type names of every parameter, property and return value
in the PHP files under path (default: current directory).

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  typenames scan src/
  typenames scan --format yaml --exclude 'tests/**' .
`)
	}

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return errors.NewInputError(
			"Too many arguments",
			fmt.Sprintf("scan takes one path, got %d", fs.NArg()),
			"Run 'typenames scan --help' for usage",
		)
	}

	root := "."
	if fs.NArg() == 1 {
		root = fs.Arg(0)
	}

	outFormat, err := output.ParseFormat(*format)
	if err != nil {
		return errors.NewInputError("Invalid output format", err.Error(), "Use --format text, json or yaml")
	}
	if globals.JSON {
		outFormat = output.FormatJSON
	}

	if _, err := os.Stat(root); err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return errors.NewNotFoundError(
				fmt.Sprintf("Path not found: %s", root),
				err.Error(),
				"Check the path and try again",
			)
		}
		return errors.NewPermissionError(fmt.Sprintf("Cannot access %s", root), err.Error(), "Check file permissions", err)
	}

	cfg, err := bootstrap.LoadConfig(globals.ConfigPath, root, logger)
	if err != nil {
		return errors.NewConfigError(
			"Cannot load configuration",
			err.Error(),
			"Fix the file or run 'typenames init --force' to recreate it",
			err,
		)
	}

	cfg.ExcludeGlobs = append(cfg.ExcludeGlobs, *excludes...)
	if fs.Changed("workers") {
		cfg.Workers = *workers
	}
	if fs.Changed("max-file-size") {
		cfg.MaxFileSizeBytes = *maxFileSize
	}
	if res := contract.ValidateConfig(cfg); !res.OK {
		return errors.NewInputError("Invalid scan options", res.Message, "Run 'typenames scan --help' for usage")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *metricsAddr != "" {
		srv := serveMetrics(*metricsAddr, logger)
		defer func() { _ = srv.Close() }()
	}

	scanner := scan.New(cfg, logger)
	progress := NewProgressConfig(globals)
	if progress.Enabled {
		var bar *progressbar.ProgressBar
		scanner.OnDiscover = func(total int) {
			bar = NewProgressBar(progress, int64(total), "Parsing files")
		}
		scanner.OnFile = func(string) { _ = bar.Add(1) }
		defer func() {
			if bar != nil {
				_ = bar.Finish()
			}
		}()
	}

	report, err := scanner.Run(ctx)
	if report == nil {
		return scanAborted(err)
	}

	if *metricsFile != "" {
		if werr := prometheus.WriteToTextfile(*metricsFile, prometheus.DefaultGatherer); werr != nil {
			logger.Warn("metrics.textfile.error", "path", *metricsFile, "err", werr)
		}
	}

	if outFormat == output.FormatText {
		printReport(stdout, report, globals.Quiet)
	} else if werr := output.Write(stdout, outFormat, report); werr != nil {
		return errors.NewInternalError("Cannot write output", werr.Error(), "", werr)
	}

	if err == nil {
		return nil
	}
	if *keepGoing {
		logger.Warn("scan.keep_going", "failed", report.Failed, "err", err)
		return nil
	}
	return errors.NewParseError(
		fmt.Sprintf("%d file(s) could not be parsed", report.Failed),
		failedFiles(err),
		"Fix or exclude the files, or pass --keep-going",
		err,
	)
}

// scanAborted converts the error of a scan that produced no report.
func scanAborted(err error) error {
	if stderrors.Is(err, context.Canceled) {
		return errors.NewInterruptedError(
			"Scan interrupted",
			"Received an interrupt or termination signal before the scan finished",
			"Re-run the command; use --exclude or --max-file-size to shorten long scans",
			err,
		)
	}
	return errors.NewInternalError("Scan failed", "The file tree could not be walked", "Re-run with -vv for details", err)
}

// serveMetrics exposes the Prometheus registry on addr until the returned
// server is closed.
func serveMetrics(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("metrics.http.start", "addr", addr, "path", "/metrics")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics.http.error", "err", err)
		}
	}()
	return srv
}

// printReport renders a scan report as aligned text, one declaration per
// line, grouped by file.
func printReport(w io.Writer, report *scan.Report, quiet bool) {
	width := 0
	for _, r := range report.Records {
		width = max(width, len(r.Display()))
	}

	file := ""
	for _, r := range report.Records {
		if r.File != file {
			if file != "" {
				fmt.Fprintln(w)
			}
			file = r.File
			fmt.Fprintln(w, ui.Label(file))
		}
		fmt.Fprintf(w, "  %-*s  %-9s  %s\n", width, r.Display(), ui.DimText(string(r.Kind)), ui.TypeList(r.Types))
	}

	if quiet {
		return
	}
	if len(report.Records) > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%s %s files, %s declarations, %s skipped, %s failed (%s)\n",
		ui.Label("Scanned"),
		ui.CountText(report.Files),
		ui.CountText(len(report.Records)),
		ui.CountText(report.Skipped),
		ui.CountText(report.Failed),
		report.Duration.Round(time.Millisecond),
	)
	if report.SyntaxErrors > 0 {
		ui.Out = w
		ui.Warningf("%d syntax error(s) were recovered; affected declarations may be incomplete", report.SyntaxErrors)
	}
}

// failedFiles summarizes an aggregated scan error as a sorted list.
func failedFiles(err error) string {
	var merr *multierror.Error
	if !stderrors.As(err, &merr) {
		return err.Error()
	}
	msgs := make([]string, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		msgs = append(msgs, e.Error())
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}
