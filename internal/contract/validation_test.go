// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/typenames/pkg/scan"
)

func TestMaxFileSizeOverride(t *testing.T) {
	tests := []struct {
		value  string
		want   int64
		wantOK bool
	}{
		{"", 0, false},
		{"4096", 4096, true},
		{"0", 0, true},
		{"-1", 0, false},
		{"big", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(MaxFileSizeEnv, tt.value)
			got, ok := MaxFileSizeOverride()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	assert.True(t, ValidateConfig(scan.DefaultConfig(".")).OK)

	tests := []struct {
		name   string
		mutate func(*scan.Config)
	}{
		{"negative workers", func(c *scan.Config) { c.Workers = -1 }},
		{"too many workers", func(c *scan.Config) { c.Workers = MaxWorkers + 1 }},
		{"negative size", func(c *scan.Config) { c.MaxFileSizeBytes = -1 }},
		{"extension without dot", func(c *scan.Config) { c.Extensions = []string{"php"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scan.DefaultConfig(".")
			tt.mutate(&cfg)
			res := ValidateConfig(cfg)
			assert.False(t, res.OK)
			assert.NotEmpty(t, res.Message)
		})
	}
}

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		in   string
		want Symbol
	}{
		{"make_service", Symbol{Member: "make_service", Kind: SymbolReturn}},
		{"make_service()", Symbol{Member: "make_service", Kind: SymbolReturn}},
		{"make_service($repository)", Symbol{Member: "make_service", Param: "repository", Kind: SymbolParameter}},
		{"InvoiceService::charge", Symbol{Class: "InvoiceService", Member: "charge", Kind: SymbolReturn}},
		{"InvoiceService::charge($rate)", Symbol{Class: "InvoiceService", Member: "charge", Param: "rate", Kind: SymbolParameter}},
		{"InvoiceService::$note", Symbol{Class: "InvoiceService", Member: "note", Kind: SymbolProperty}},
		{`\Acme\Billing\InvoiceService::$note`, Symbol{Class: `\Acme\Billing\InvoiceService`, Member: "note", Kind: SymbolProperty}},
		{"Überweisung::prüfen", Symbol{Class: "Überweisung", Member: "prüfen", Kind: SymbolReturn}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, res := ParseSymbol(tt.in)
			require.True(t, res.OK, res.Message)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSymbol_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"$note",
		"Class::",
		"::method",
		"Class::method($)",
		"Class::method(id)",
		"1class::method",
		"Class:::method",
		`Acme\\Invoice::total`,
	} {
		t.Run(in, func(t *testing.T) {
			_, res := ParseSymbol(in)
			assert.False(t, res.OK)
			assert.NotEmpty(t, res.Message)
		})
	}
}
