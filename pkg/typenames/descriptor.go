// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package typenames

// NullName is the marker emitted for nullable declarations. No declared
// single type produces it as its own name.
const NullName = "null"

// Kind identifies the variant of a TypeDescriptor.
type Kind int

const (
	// KindNone marks a declaration without a type.
	KindNone Kind = iota
	// KindSingle marks one named type, optionally nullable.
	KindSingle
	// KindUnion marks a union of named alternatives.
	KindUnion
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSingle:
		return "single"
	case KindUnion:
		return "union"
	default:
		return "unknown"
	}
}

// TypeDescriptor describes a declared type.
//
// The set of implementations is closed: NoType, SingleType and UnionType.
type TypeDescriptor interface {
	// Kind returns the descriptor variant for type switching.
	Kind() Kind

	sealed()
}

// NoType is the descriptor of an untyped declaration.
type NoType struct{}

// SingleType is one declared type. Nullable is set for ?T declarations and
// for T|null, which reflection collapses into a single nullable type.
type SingleType struct {
	Name     string
	Nullable bool
}

// UnionType is a union of declared alternatives in declaration order.
//
// A nullable union lists NullName as an ordinary member; there is no
// separate flag.
type UnionType struct {
	Members []string
}

func (NoType) Kind() Kind     { return KindNone }
func (SingleType) Kind() Kind { return KindSingle }
func (UnionType) Kind() Kind  { return KindUnion }

func (NoType) sealed()     {}
func (SingleType) sealed() {}
func (UnionType) sealed()  {}

// None returns the descriptor of an untyped declaration.
func None() TypeDescriptor {
	return NoType{}
}

// Named returns a non-nullable single type.
func Named(name string) TypeDescriptor {
	return SingleType{Name: name}
}

// NullableNamed returns a nullable single type (?name).
func NullableNamed(name string) TypeDescriptor {
	return SingleType{Name: name, Nullable: true}
}

// Union returns a union of the given members. The slice is copied.
func Union(members ...string) TypeDescriptor {
	return UnionType{Members: append([]string(nil), members...)}
}

// NullableUnion returns a union that admits null. The null member is folded
// into Members, appended last unless one of the members already is null.
func NullableUnion(members ...string) TypeDescriptor {
	out := append([]string(nil), members...)
	for _, m := range out {
		if m == NullName {
			return UnionType{Members: out}
		}
	}
	return UnionType{Members: append(out, NullName)}
}

// AllowsNull reports whether a descriptor admits null.
//
// Untyped declarations admit anything, including null.
func AllowsNull(d TypeDescriptor) bool {
	switch t := d.(type) {
	case SingleType:
		return t.Nullable || t.Name == NullName
	case UnionType:
		for _, m := range t.Members {
			if m == NullName {
				return true
			}
		}
		return false
	default:
		return true
	}
}
