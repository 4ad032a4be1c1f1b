// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package contract

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/kraklabs/typenames/pkg/scan"
)

const (
	// MaxFileSizeEnv overrides the configured per-file size limit.
	MaxFileSizeEnv = "TYPENAMES_MAX_FILE_SIZE_BYTES"

	// MaxWorkers caps the worker count accepted from configuration.
	MaxWorkers = 256

	// SymbolMaxBytes is the maximum length of an inspect symbol.
	SymbolMaxBytes = 512
)

// MaxFileSizeOverride returns the size limit from MaxFileSizeEnv. Values
// that are not non-negative integers are ignored.
func MaxFileSizeOverride() (int64, bool) {
	v := os.Getenv(MaxFileSizeEnv)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	OK      bool
	Message string
}

func invalid(format string, args ...any) *ValidationResult {
	return &ValidationResult{OK: false, Message: fmt.Sprintf(format, args...)}
}

// ValidateConfig checks scan settings loaded from a file or flags.
func ValidateConfig(cfg scan.Config) *ValidationResult {
	if cfg.Workers < 0 || cfg.Workers > MaxWorkers {
		return invalid("workers must be between 0 and %d, got %d", MaxWorkers, cfg.Workers)
	}
	if cfg.MaxFileSizeBytes < 0 {
		return invalid("max_file_size_bytes must not be negative")
	}
	for _, ext := range cfg.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return invalid("extension %q must start with a dot", ext)
		}
	}
	return &ValidationResult{OK: true}
}

// SymbolKind identifies what a Symbol refers to.
type SymbolKind int

const (
	SymbolReturn SymbolKind = iota
	SymbolParameter
	SymbolProperty
)

// Symbol is a parsed inspect target.
//
//	make_service           return type of a free function
//	make_service($repo)    parameter of a free function
//	Invoice::total         return type of a method
//	Invoice::total($rate)  parameter of a method
//	Invoice::$amount       property
type Symbol struct {
	Class  string
	Member string
	Param  string
	Kind   SymbolKind
}

const identPattern = `[A-Za-z_\p{L}][\w\p{L}]*`

var symbolPattern = regexp.MustCompile(
	`^(?:(\\?` + identPattern + `(?:\\` + identPattern + `)*)::)?` +
		`(?:\$(` + identPattern + `)` +
		`|(` + identPattern + `)(?:\((?:\$(` + identPattern + `))?\))?)$`)

// ParseSymbol parses an inspect symbol. The returned result is not OK when
// the symbol is malformed.
func ParseSymbol(s string) (Symbol, *ValidationResult) {
	if s == "" {
		return Symbol{}, invalid("symbol is empty")
	}
	if len(s) > SymbolMaxBytes {
		return Symbol{}, invalid("symbol exceeds %d bytes", SymbolMaxBytes)
	}
	m := symbolPattern.FindStringSubmatch(s)
	if m == nil {
		return Symbol{}, invalid("malformed symbol %q", s)
	}

	sym := Symbol{Class: m[1]}
	switch {
	case m[2] != "":
		if sym.Class == "" {
			return Symbol{}, invalid("property %q needs a class (Class::$%s)", s, m[2])
		}
		sym.Member, sym.Kind = m[2], SymbolProperty
	case m[4] != "":
		sym.Member, sym.Param, sym.Kind = m[3], m[4], SymbolParameter
	default:
		sym.Member, sym.Kind = m[3], SymbolReturn
	}
	return sym, &ValidationResult{OK: true}
}
