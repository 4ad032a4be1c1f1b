// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package typenames

// Extract returns the type names declared for e.
//
// For parameters and properties this is the entity's own type; for
// functions it is the return type. The result is never nil: an untyped
// declaration (or a nil entity) yields an empty slice.
func Extract(e Entity) []string {
	if e == nil {
		return []string{}
	}
	return ExtractDescriptor(e.DeclaredType())
}

// ExtractDescriptor flattens a single descriptor.
//
// Union members are returned as declared, without dedup or reordering. A
// nullable single type always yields ["null", name], even when name is
// itself "null". Note the asymmetry: a
// nullable union carries null as a member, so "null" keeps its declared
// position instead of moving to the front.
func ExtractDescriptor(d TypeDescriptor) []string {
	switch t := d.(type) {
	case SingleType:
		if t.Nullable {
			return []string{NullName, t.Name}
		}
		return []string{t.Name}
	case UnionType:
		return append(make([]string, 0, len(t.Members)), t.Members...)
	default:
		return []string{}
	}
}
