// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package ui provides terminal output helpers for the typenames CLI.
//
// Colors respect the --no-color flag and the NO_COLOR environment variable.
//
// Color usage guidelines:
//   - Yellow: Warnings, the null marker in type lists
//   - Green: Success, completions
//   - Cyan: Type names, counts
//   - Bold: Headers, declaration names
//   - Dim: Paths, record kinds
package ui

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Pre-configured color instances for consistent CLI output.
var (
	Yellow = color.New(color.FgYellow)
	Green  = color.New(color.FgGreen)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
	Dim    = color.New(color.Faint)
)

// Out is where Successf and Warningf write. Commands point it at their
// output writer.
var Out io.Writer = os.Stdout

// InitColors configures global color output based on the noColor flag.
//
// Call it right after flag parsing.
func InitColors(noColor bool) {
	color.NoColor = noColor
}

// Successf prints a formatted green success message.
func Successf(format string, args ...any) {
	_, _ = Green.Fprintf(Out, "✓ "+format+"\n", args...)
}

// Warningf prints a formatted yellow warning message.
func Warningf(format string, args ...any) {
	_, _ = Yellow.Fprintf(Out, "⚠ "+format+"\n", args...)
}

// Label returns a bold-formatted label string for inline use.
func Label(text string) string {
	return Bold.Sprint(text)
}

// DimText returns a dim-formatted string for less important text.
func DimText(text string) string {
	return Dim.Sprint(text)
}

// CountText returns a cyan-formatted count value.
func CountText(count int) string {
	return Cyan.Sprint(count)
}

// TypeList formats a list of type names as "[a, b]". The null marker is
// highlighted; an empty list prints as "[]".
func TypeList(names []string) string {
	parts := make([]string, len(names))
	for i, name := range names {
		if name == "null" {
			parts[i] = Yellow.Sprint(name)
		} else {
			parts[i] = Cyan.Sprint(name)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
