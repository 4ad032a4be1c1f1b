// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package testing provides test helpers for typenames tests that need PHP
// sources on disk.
//
// Import it under an alias to avoid clashing with the standard library:
//
//	import tntest "github.com/kraklabs/typenames/internal/testing"
//
//	func TestScan(t *testing.T) {
//	    root := tntest.WriteTree(t, map[string]string{
//	        "src/User.php": tntest.PHPClass("User", "public ?int $id;"),
//	    })
//	    report, err := scan.New(scan.DefaultConfig(root), nil).Run(ctx)
//	    ...
//	}
//
// # Helpers
//
//   - WriteTree: Populate a temporary directory
//   - WriteFile: Write one file under a directory
//   - ReadFile: Read a file as a string
//   - ListFiles: List the files under a directory
//   - PHPClass: Build a minimal class declaration
package testing
