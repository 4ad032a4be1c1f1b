// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package scan

import "runtime"

// Config controls which files a Scanner visits.
type Config struct {
	// Root is the directory (or single file) to scan.
	Root string `yaml:"-"`

	// ExcludeGlobs lists path patterns, relative to Root, to skip.
	ExcludeGlobs []string `yaml:"exclude"`

	// Extensions lists the file extensions to parse, with the leading dot.
	Extensions []string `yaml:"extensions"`

	// MaxFileSizeBytes skips larger files. Zero disables the limit.
	MaxFileSizeBytes int64 `yaml:"max_file_size_bytes"`

	// Workers bounds the number of files parsed concurrently.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the default configuration for scanning root.
func DefaultConfig(root string) Config {
	return Config{
		Root: root,
		ExcludeGlobs: []string{
			".git/**",
			"vendor/**",
			"node_modules/**",
			"var/cache/**",
		},
		Extensions:       []string{".php"},
		MaxFileSizeBytes: 1024 * 1024,
		Workers:          runtime.NumCPU(),
	}
}
