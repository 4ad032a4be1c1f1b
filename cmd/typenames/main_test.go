// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kraklabs/typenames/internal/bootstrap"
	"github.com/kraklabs/typenames/internal/errors"
	tntest "github.com/kraklabs/typenames/internal/testing"
	"github.com/kraklabs/typenames/internal/ui"
	"github.com/kraklabs/typenames/pkg/scan"
)

const invoiceSource = `<?php

namespace Acme\Billing;

class Invoice
{
    public int|float|null $amount = null;

    public function total(?float $rate, int|string $currency = null): float
    {
        return 0.0;
    }
}

function make_invoice($data): Invoice
{
    return new Invoice();
}
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func plainOutput(t *testing.T) {
	t.Helper()
	original := ui.Out
	t.Cleanup(func() { ui.Out = original })
	ui.InitColors(true)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		globals GlobalFlags
		want    slog.Level
	}{
		{"default", GlobalFlags{}, slog.LevelWarn},
		{"verbose", GlobalFlags{Verbose: 1}, slog.LevelInfo},
		{"very verbose", GlobalFlags{Verbose: 3}, slog.LevelDebug},
		{"quiet", GlobalFlags{Quiet: true}, slog.LevelError},
		{"verbose wins over quiet", GlobalFlags{Quiet: true, Verbose: 1}, slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := newLogger(io.Discard, tt.globals)
			ctx := context.Background()
			assert.True(t, logger.Enabled(ctx, tt.want))
			assert.False(t, logger.Enabled(ctx, tt.want-1))
		})
	}
}

func TestRunScan_Text(t *testing.T) {
	plainOutput(t)
	root := tntest.WriteTree(t, map[string]string{"src/Invoice.php": invoiceSource})

	var out bytes.Buffer
	require.NoError(t, runScan([]string{root}, GlobalFlags{}, &out, quietLogger()))

	text := out.String()
	assert.Contains(t, text, "src/Invoice.php\n")
	assert.Regexp(t, `Acme\\Billing\\Invoice::\$amount\s+property\s+\[int, float, null\]`, text)
	assert.Regexp(t, `Acme\\Billing\\Invoice::total\(\$rate\)\s+parameter\s+\[null, float\]`, text)
	assert.Regexp(t, `Acme\\Billing\\Invoice::total\(\$currency\)\s+parameter\s+\[int, string, null\]`, text)
	assert.Regexp(t, `make_invoice\(\$data\)\s+parameter\s+\[\]`, text)
	assert.Regexp(t, `make_invoice\(\)\s+return\s+\[Invoice\]`, text)
	assert.Contains(t, text, "Scanned 1 files, 6 declarations, 0 skipped, 0 failed")
}

func TestRunScan_TextWarnsAboutSyntaxErrors(t *testing.T) {
	plainOutput(t)
	root := tntest.WriteTree(t, map[string]string{
		"Broken.php": "<?php\nclass Broken {\n    public function ok(): string { return ''; }\n    public function bad( { }\n}\n",
	})

	var out bytes.Buffer
	require.NoError(t, runScan([]string{root}, GlobalFlags{}, &out, quietLogger()))

	assert.Regexp(t, `(?m)^⚠ \d+ syntax error\(s\) were recovered; affected declarations may be incomplete$`, out.String())
}

func TestRunScan_JSON(t *testing.T) {
	root := tntest.WriteTree(t, map[string]string{"src/Invoice.php": invoiceSource})

	var out bytes.Buffer
	require.NoError(t, runScan([]string{root}, GlobalFlags{JSON: true, Quiet: true}, &out, quietLogger()))

	var report scan.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 1, report.Files)
	require.Len(t, report.Records, 6)
	assert.Equal(t, "src/Invoice.php", report.Records[0].File)
}

func TestRunScan_YAML(t *testing.T) {
	root := tntest.WriteTree(t, map[string]string{"src/Invoice.php": invoiceSource})

	var out bytes.Buffer
	require.NoError(t, runScan([]string{"--format", "yaml", root}, GlobalFlags{}, &out, quietLogger()))

	var report scan.Report
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &report))
	assert.Len(t, report.Records, 6)
}

func TestRunScan_FlagsOverrideConfig(t *testing.T) {
	root := tntest.WriteTree(t, map[string]string{
		bootstrap.ConfigFileName: "exclude:\n  - legacy/**\n",
		"src/Invoice.php":        invoiceSource,
		"legacy/Old.php":         tntest.PHPClass("Old", "public int $id;"),
		"tests/InvoiceTest.php":  tntest.PHPClass("InvoiceTest", "public int $id;"),
	})

	var out bytes.Buffer
	args := []string{"--format", "json", "--exclude", "tests/**", "--workers", "1", root}
	require.NoError(t, runScan(args, GlobalFlags{}, &out, quietLogger()))

	var report scan.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 1, report.Files)
	// The config file itself does not have a PHP extension.
	assert.Equal(t, 1, report.Skipped)
}

func TestRunScan_ParseFailures(t *testing.T) {
	root := tntest.WriteTree(t, map[string]string{"src/Invoice.php": invoiceSource})
	require.NoError(t, os.Symlink(filepath.Join(root, "missing.php"), filepath.Join(root, "src", "Gone.php")))

	var out bytes.Buffer
	err := runScan([]string{"--format", "json", root}, GlobalFlags{}, &out, quietLogger())
	require.Error(t, err)
	assert.Equal(t, errors.ExitParse, errors.ExitCodeOf(err))
	assert.Contains(t, err.(*errors.UserError).Cause, "src/Gone.php")

	// The report of the other files is still written.
	var report scan.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 1, report.Failed)

	out.Reset()
	assert.NoError(t, runScan([]string{"--keep-going", "--format", "json", root}, GlobalFlags{}, &out, quietLogger()))
}

func TestRunScan_Errors(t *testing.T) {
	root := tntest.WriteTree(t, map[string]string{"a.php": "<?php"})
	badConfig := tntest.WriteTree(t, map[string]string{bootstrap.ConfigFileName: "workers: [1\n"})

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"missing path", []string{filepath.Join(root, "missing")}, errors.ExitNotFound},
		{"too many paths", []string{root, root}, errors.ExitInput},
		{"bad format", []string{"--format", "xml", root}, errors.ExitInput},
		{"unknown flag", []string{"--bogus", root}, errors.ExitInput},
		{"negative workers", []string{"--workers", "-2", root}, errors.ExitInput},
		{"broken config", []string{badConfig}, errors.ExitConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runScan(tt.args, GlobalFlags{}, io.Discard, quietLogger())
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.ExitCodeOf(err))
		})
	}
}

func TestScanAborted(t *testing.T) {
	root := tntest.WriteTree(t, map[string]string{"a.php": "<?php"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, runErr := scan.New(scan.DefaultConfig(root), quietLogger()).Run(ctx)
	require.Nil(t, report)

	err := scanAborted(runErr)
	assert.Equal(t, errors.ExitInterrupted, errors.ExitCodeOf(err))
	assert.ErrorIs(t, err, context.Canceled)

	var userErr *errors.UserError
	require.ErrorAs(t, err, &userErr)
	assert.NotEmpty(t, userErr.Cause)
	assert.NotEmpty(t, userErr.Fix)

	walkErr := scanAborted(os.ErrPermission)
	assert.Equal(t, errors.ExitInternal, errors.ExitCodeOf(walkErr))
}

func TestRunInspect(t *testing.T) {
	plainOutput(t)
	path := tntest.WriteFile(t, t.TempDir(), "Invoice.php", invoiceSource)

	tests := []struct {
		symbol string
		want   string
	}{
		{"Invoice::$amount", "[int, float, null]"},
		{"Invoice::total($rate)", "[null, float]"},
		{"invoice::TOTAL($currency)", "[int, string, null]"},
		{`\Acme\Billing\Invoice::total`, "[float]"},
		{"make_invoice", "[Invoice]"},
		{"make_invoice($data)", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, runInspect([]string{path, tt.symbol}, GlobalFlags{Quiet: true}, &out, quietLogger()))
			assert.Equal(t, tt.want+"\n", out.String())
		})
	}
}

func TestRunInspect_JSON(t *testing.T) {
	path := tntest.WriteFile(t, t.TempDir(), "Invoice.php", invoiceSource)

	var out bytes.Buffer
	require.NoError(t, runInspect([]string{path, "Invoice::total($rate)"}, GlobalFlags{JSON: true}, &out, quietLogger()))

	var result InspectResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, InspectResult{
		File:   path,
		Symbol: "Invoice::total($rate)",
		Kind:   scan.KindParameter,
		Line:   9,
		Types:  []string{"null", "float"},
	}, result)
}

func TestRunInspect_Errors(t *testing.T) {
	path := tntest.WriteFile(t, t.TempDir(), "Invoice.php", invoiceSource)

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"missing arguments", []string{path}, errors.ExitInput},
		{"malformed symbol", []string{path, "Invoice::"}, errors.ExitInput},
		{"missing file", []string{path + ".missing", "f"}, errors.ExitNotFound},
		{"unknown class", []string{path, "Order::total"}, errors.ExitNotFound},
		{"unknown method", []string{path, "Invoice::subtotal"}, errors.ExitNotFound},
		{"unknown property", []string{path, "Invoice::$Amount"}, errors.ExitNotFound},
		{"unknown parameter", []string{path, "Invoice::total($tax)"}, errors.ExitNotFound},
		{"unknown function", []string{path, "make_order"}, errors.ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runInspect(tt.args, GlobalFlags{}, io.Discard, quietLogger())
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.ExitCodeOf(err))
		})
	}
}

func TestRunInspect_NotFoundListsDeclarations(t *testing.T) {
	path := tntest.WriteFile(t, t.TempDir(), "Invoice.php", invoiceSource)

	err := runInspect([]string{path, "Order::total"}, GlobalFlags{}, io.Discard, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.(*errors.UserError).Fix, `Acme\Billing\Invoice, make_invoice()`)
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	require.NoError(t, runInit([]string{dir}, GlobalFlags{JSON: true}, &out, quietLogger()))

	var got map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, filepath.Join(dir, bootstrap.ConfigFileName), got["config"])

	err := runInit([]string{dir}, GlobalFlags{}, io.Discard, quietLogger())
	require.Error(t, err)
	assert.Equal(t, errors.ExitConfig, errors.ExitCodeOf(err))

	assert.NoError(t, runInit([]string{"--force", dir}, GlobalFlags{Quiet: true}, io.Discard, quietLogger()))
}

func TestRunInit_Text(t *testing.T) {
	plainOutput(t)
	dir := t.TempDir()

	var out bytes.Buffer
	require.NoError(t, runInit([]string{dir}, GlobalFlags{}, &out, quietLogger()))
	assert.Equal(t, "✓ Created "+filepath.Join(dir, bootstrap.ConfigFileName)+"\n", out.String())
}

func TestRunScan_MetricsFile(t *testing.T) {
	root := tntest.WriteTree(t, map[string]string{"src/Invoice.php": invoiceSource})
	metricsPath := filepath.Join(t.TempDir(), "typenames.prom")

	args := []string{"--format", "json", "--metrics-file", metricsPath, root}
	require.NoError(t, runScan(args, GlobalFlags{}, io.Discard, quietLogger()))

	metrics := tntest.ReadFile(t, metricsPath)
	assert.Contains(t, metrics, "typenames_scan_files_total")
	assert.Contains(t, metrics, `typenames_scan_records_total{kind="parameter"}`)
}
