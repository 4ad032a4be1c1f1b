// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package typenames flattens declared type information into plain lists of
// type-name strings.
//
// A declaration is a parameter, a property, or a function/method. Each one
// exposes its declared type through the Entity interface; for a function the
// declared type is its return type. Extract turns that descriptor into an
// ordered []string:
//
//	untyped             -> []
//	string              -> ["string"]
//	?string             -> ["null", "string"]
//	string|int          -> ["string", "int"]
//	string|int|null     -> ["string", "int", "null"]
//
// # Nullability
//
// Single types and union types carry nullability differently. A nullable
// single type has a flag, and Extract emits the "null" marker first. A union
// has no flag: null is one of its members and stays in declared position.
// Callers that expect null-first ordering for every nullable declaration
// should not rely on it for unions.
//
// # Usage
//
//	param := typenames.Parameter{Name: "id", Type: typenames.NullableNamed("int")}
//	names := typenames.Extract(param) // ["null", "int"]
//
// Extract is pure and allocates a fresh slice per call, so it is safe to use
// from multiple goroutines.
package typenames
