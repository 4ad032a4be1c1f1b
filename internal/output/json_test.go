// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type sample struct {
	Symbol string   `json:"symbol" yaml:"symbol"`
	Types  []string `json:"types" yaml:"types"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONTo(&buf, sample{Symbol: "find($id)", Types: []string{"null", "int"}}))

	assert.Contains(t, buf.String(), "\n  \"symbol\": \"find($id)\"")

	var decoded sample
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"null", "int"}, decoded.Types)
}

func TestJSONTo_Unencodable(t *testing.T) {
	var buf bytes.Buffer
	err := JSONTo(&buf, map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON encoding failed")
}

func TestYAMLTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAMLTo(&buf, sample{Symbol: "amount", Types: []string{"int", "float", "null"}}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "symbol: amount\n"), out)
	assert.Contains(t, out, "types:\n  - int\n")

	var decoded sample
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"int", "float", "null"}, decoded.Types)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sample{Symbol: "a"}))
	assert.Contains(t, buf.String(), `"symbol": "a"`)

	buf.Reset()
	require.NoError(t, Write(&buf, FormatYAML, sample{Symbol: "a"}))
	assert.Contains(t, buf.String(), "symbol: a")

	assert.Error(t, Write(&buf, FormatText, sample{}))
}
