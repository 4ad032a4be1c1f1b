// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package testing

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// WriteFile writes content to rel under dir, creating parent directories,
// and returns the full path. The test fails on any error.
//
// Example:
//
//	path := tntest.WriteFile(t, dir, "src/User.php", "<?php class User {}")
func WriteFile(t testing.TB, dir, rel, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
	return path
}

// WriteTree creates a temporary directory populated with files, keyed by
// slash-separated relative path, and returns its path. The directory is
// removed when the test finishes.
//
// Example:
//
//	root := tntest.WriteTree(t, map[string]string{
//	    "src/User.php":        "<?php class User {}",
//	    "vendor/lib/Util.php": "<?php class Util {}",
//	})
func WriteTree(t testing.TB, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for rel, content := range files {
		WriteFile(t, dir, rel, content)
	}
	return dir
}

// ReadFile returns the content of path. The test fails if it cannot be read.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// ListFiles returns the sorted slash-separated paths of all regular files
// under dir.
func ListFiles(t testing.TB, dir string) []string {
	t.Helper()

	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("failed to list %s: %v", dir, err)
	}
	sort.Strings(files)
	return files
}

// PHPClass returns the source of a minimal PHP file declaring class name
// with the given member declarations, one per line.
//
// Example:
//
//	src := tntest.PHPClass("User", "public function id(): int { return 1; }")
func PHPClass(name string, members ...string) string {
	src := "<?php\n\nclass " + name + "\n{\n"
	for _, m := range members {
		src += "    " + m + "\n"
	}
	return src + "}\n"
}
