// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package scan

import (
	"sort"
	"time"

	"github.com/kraklabs/typenames/pkg/phpsource"
	"github.com/kraklabs/typenames/pkg/typenames"
)

// RecordKind identifies what a Record describes.
type RecordKind string

const (
	KindParameter RecordKind = "parameter"
	KindProperty  RecordKind = "property"
	KindReturn    RecordKind = "return"
)

// Record is the flattened type of one declaration.
type Record struct {
	File   string     `json:"file" yaml:"file"`
	Line   int        `json:"line" yaml:"line"`
	Owner  string     `json:"owner,omitempty" yaml:"owner,omitempty"`
	Symbol string     `json:"symbol" yaml:"symbol"`
	Kind   RecordKind `json:"kind" yaml:"kind"`
	Types  []string   `json:"types" yaml:"types"`
}

// Display returns the declaration as Owner::symbol, or just symbol for free
// functions.
func (r Record) Display() string {
	if r.Owner == "" {
		return r.Symbol
	}
	return r.Owner + "::" + r.Symbol
}

// Report is the result of a scan.
type Report struct {
	Root         string        `json:"root" yaml:"root"`
	Files        int           `json:"files" yaml:"files"`
	Skipped      int           `json:"skipped" yaml:"skipped"`
	Failed       int           `json:"failed" yaml:"failed"`
	SyntaxErrors int           `json:"syntax_errors" yaml:"syntax_errors"`
	Records      []Record      `json:"records" yaml:"records"`
	Duration     time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// FileRecords flattens every declaration of a parsed file, in source order.
// Declarations sharing a line keep their declaration order.
func FileRecords(relPath string, file *phpsource.File) []Record {
	var records []Record
	for i := range file.Classes {
		class := &file.Classes[i]
		owner := file.QualifiedName(class)

		for _, prop := range class.Properties {
			line := prop.StartLine
			if line == 0 {
				line = class.StartLine
			}
			records = append(records, Record{
				File:   relPath,
				Line:   line,
				Owner:  owner,
				Symbol: "$" + prop.Name,
				Kind:   KindProperty,
				Types:  typenames.Extract(prop),
			})
		}
		for _, method := range class.Methods {
			records = append(records, functionRecords(relPath, owner, method)...)
		}
	}
	for _, fn := range file.Functions {
		records = append(records, functionRecords(relPath, "", fn)...)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Line < records[j].Line
	})
	return records
}

// SortRecords orders records by file path, then line. The sort is stable.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].File != records[j].File {
			return records[i].File < records[j].File
		}
		return records[i].Line < records[j].Line
	})
}

func functionRecords(relPath, owner string, fn typenames.Function) []Record {
	records := make([]Record, 0, len(fn.Params)+1)
	for _, param := range fn.Params {
		records = append(records, Record{
			File:   relPath,
			Line:   fn.StartLine,
			Owner:  owner,
			Symbol: fn.Name + "($" + param.Name + ")",
			Kind:   KindParameter,
			Types:  typenames.Extract(param),
		})
	}
	records = append(records, Record{
		File:   relPath,
		Line:   fn.StartLine,
		Owner:  owner,
		Symbol: fn.Name + "()",
		Kind:   KindReturn,
		Types:  typenames.Extract(fn),
	})
	return records
}
