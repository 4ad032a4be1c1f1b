// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package phpsource reads declared types out of PHP source code.
//
// It parses a file with Tree-sitter and returns its classes, interfaces,
// traits, enums and free functions. Parameters, properties and functions are
// returned as typenames entities, so their declared types can be flattened
// with typenames.Extract:
//
//	parser := phpsource.NewParser(logger)
//	defer parser.Close()
//
//	file, err := parser.ParseFile(ctx, "src/User.php")
//	if err != nil {
//	    return err
//	}
//	class, _ := file.Class("User")
//	method, _ := class.Method("rename")
//	names := typenames.Extract(method) // return type names
//
// # Type conversion
//
// Types are described the way PHP reflection reports them:
//   - ?T and T|null become a nullable single type
//   - unions with two or more non-null members stay unions, in declared order
//   - mixed admits null and is reported as nullable
//   - a parameter defaulting to null is implicitly nullable
//   - builtin names are lowercased, leading backslashes are dropped
//
// Intersection and DNF types are not supported and are reported as untyped.
// Names are kept as written; use-imports are not resolved.
package phpsource
