// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package scan reports the declared type names of every parameter, property
// and return value in a tree of PHP files.
//
// The scanner walks Config.Root, skips excluded paths, parses the remaining
// files concurrently and flattens each declaration with typenames.Extract:
//
//	scanner := scan.New(scan.DefaultConfig("./src"), logger)
//	report, err := scanner.Run(ctx)
//	if err != nil {
//	    // Some files failed to parse; report still holds the others.
//	}
//	for _, rec := range report.Records {
//	    fmt.Println(rec.Display(), rec.Types)
//	}
//
// Exclude patterns support *, ?, [...] and ** (any depth). A pattern that
// does not start with ** matches at any depth, so "vendor/**" excludes every
// vendor directory in the tree.
package scan
