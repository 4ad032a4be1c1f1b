// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package phpsource

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kraklabs/typenames/pkg/typenames"
)

// Type node kinds of the PHP grammar.
const (
	nodeType             = "type"
	nodeUnionType        = "union_type"
	nodeOptionalType     = "optional_type"
	nodeNamedType        = "named_type"
	nodePrimitiveType    = "primitive_type"
	nodeBottomType       = "bottom_type"
	nodeIntersectionType = "intersection_type"
	nodeDNFType          = "disjunctive_normal_form_type"
	nodeName             = "name"
	nodeQualifiedName    = "qualified_name"
)

// builtinTypes are matched case-insensitively by PHP and reported lowercase.
var builtinTypes = map[string]bool{
	"array": true, "callable": true, "iterable": true, "bool": true,
	"float": true, "int": true, "string": true, "void": true,
	"mixed": true, "static": true, "false": true, "true": true,
	"null": true, "never": true, "object": true, "self": true,
	"parent": true,
}

func isTypeNode(kind string) bool {
	switch kind {
	case nodeType, nodeUnionType, nodeOptionalType, nodeNamedType,
		nodePrimitiveType, nodeBottomType, nodeIntersectionType, nodeDNFType:
		return true
	}
	return false
}

// describeType converts a type node into a descriptor. implicitNull marks a
// parameter whose default value is null. The second result is false when the
// type uses syntax that is not supported (intersection and DNF types); the
// descriptor is then NoType.
func describeType(node *sitter.Node, content []byte, implicitNull bool) (typenames.TypeDescriptor, bool) {
	if node == nil {
		return typenames.None(), true
	}

	switch node.Type() {
	case nodeType:
		if node.NamedChildCount() != 1 {
			return typenames.None(), false
		}
		return describeType(node.NamedChild(0), content, implicitNull)

	case nodeOptionalType:
		inner := firstNamedChild(node)
		if inner == nil {
			return typenames.None(), false
		}
		return typenames.NullableNamed(typeName(inner, content)), true

	case nodeUnionType:
		return describeUnion(node, content, implicitNull)

	case nodeIntersectionType, nodeDNFType:
		return typenames.None(), false

	default:
		return describeSingle(typeName(node, content), implicitNull), true
	}
}

func describeSingle(name string, implicitNull bool) typenames.TypeDescriptor {
	switch {
	case name == typenames.NullName:
		return typenames.Named(name)
	case name == "mixed" || implicitNull:
		return typenames.NullableNamed(name)
	default:
		return typenames.Named(name)
	}
}

// describeUnion applies the reflection rules for unions: a union of exactly
// one non-null type and null collapses into a nullable single type.
func describeUnion(node *sitter.Node, content []byte, implicitNull bool) (typenames.TypeDescriptor, bool) {
	count := int(node.NamedChildCount())
	if count == 1 {
		return describeType(node.NamedChild(0), content, implicitNull)
	}

	members := make([]string, 0, count)
	nonNull := make([]string, 0, count)
	for i := 0; i < count; i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case nodeIntersectionType, nodeDNFType, nodeType:
			return typenames.None(), false
		case nodeOptionalType:
			// ?T inside a union is a compile error in PHP; keep both halves.
			if inner := firstNamedChild(child); inner != nil {
				name := typeName(inner, content)
				members = append(members, name, typenames.NullName)
				nonNull = append(nonNull, name)
			}
			continue
		}
		name := typeName(child, content)
		members = append(members, name)
		if name != typenames.NullName {
			nonNull = append(nonNull, name)
		}
	}

	hasNull := len(nonNull) < len(members)
	switch {
	case len(members) == 0:
		return typenames.None(), false
	case len(nonNull) == 1 && (hasNull || implicitNull):
		return typenames.NullableNamed(nonNull[0]), true
	case implicitNull:
		return typenames.NullableUnion(members...), true
	default:
		return typenames.Union(members...), true
	}
}

// typeName returns the normalized name of a named, primitive or bottom type.
func typeName(node *sitter.Node, content []byte) string {
	if node.Type() == nodeNamedType {
		if inner := firstNamedChild(node); inner != nil {
			return normalizeTypeName(inner.Content(content))
		}
	}
	return normalizeTypeName(node.Content(content))
}

func normalizeTypeName(raw string) string {
	name := strings.TrimPrefix(strings.TrimSpace(raw), `\`)
	if lower := strings.ToLower(name); builtinTypes[lower] {
		return lower
	}
	return name
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	if node.NamedChildCount() == 0 {
		return nil
	}
	return node.NamedChild(0)
}
