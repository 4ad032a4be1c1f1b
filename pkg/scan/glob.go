// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package scan

import (
	"path"
	"path/filepath"
	"strings"
)

// matchesGlob reports whether the slash-separated relative path matches
// pattern. Segments are matched with path.Match; a "**" segment matches any
// number of segments. Patterns without a leading "**" match at any depth.
func matchesGlob(relPath, pattern string) bool {
	pattern = strings.Trim(filepath.ToSlash(pattern), "/")
	if pattern == "" {
		return false
	}

	patSegs := strings.Split(pattern, "/")
	if patSegs[0] != "**" {
		patSegs = append([]string{"**"}, patSegs...)
	}
	return matchSegments(strings.Split(relPath, "/"), patSegs)
}

func matchSegments(segs, pattern []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}
			for i := 0; i <= len(segs); i++ {
				if matchSegments(segs[i:], rest) {
					return true
				}
			}
			return false
		}

		if len(segs) == 0 {
			return false
		}
		// Malformed patterns never match.
		if ok, err := path.Match(pattern[0], segs[0]); err != nil || !ok {
			return false
		}
		segs, pattern = segs[1:], pattern[1:]
	}
	return len(segs) == 0
}

// shouldExclude checks if a path matches any exclude glob pattern.
func shouldExclude(relPath string, excludeGlobs []string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, pattern := range excludeGlobs {
		if matchesGlob(normalized, pattern) {
			return true
		}
	}
	return false
}
