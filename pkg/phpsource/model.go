// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package phpsource

import (
	"strings"

	"github.com/kraklabs/typenames/pkg/typenames"
)

// Class kinds.
const (
	KindClass     = "class"
	KindInterface = "interface"
	KindTrait     = "trait"
	KindEnum      = "enum"
)

// AnonymousClassName is the name given to classes declared with "new class".
const AnonymousClassName = "class@anonymous"

// File holds the declarations found in one PHP file.
type File struct {
	Path         string
	Namespace    string
	Classes      []Class
	Functions    []typenames.Function
	SyntaxErrors int
}

// Class is a class-like declaration: class, interface, trait or enum.
type Class struct {
	Name       string
	Kind       string
	Properties []typenames.Property
	Methods    []typenames.Function
	StartLine  int
}

// Class returns the first class-like declaration with the given short or
// namespace-qualified name. Like PHP, matching ignores case and a leading
// backslash.
func (f *File) Class(name string) (*Class, bool) {
	name = strings.TrimPrefix(name, `\`)
	for i := range f.Classes {
		c := &f.Classes[i]
		if strings.EqualFold(c.Name, name) || strings.EqualFold(f.QualifiedName(c), name) {
			return c, true
		}
	}
	return nil, false
}

// Function returns the free function with the given name, ignoring case.
func (f *File) Function(name string) (typenames.Function, bool) {
	for _, fn := range f.Functions {
		if strings.EqualFold(fn.Name, name) {
			return fn, true
		}
	}
	return typenames.Function{}, false
}

// QualifiedName returns the class name prefixed with the file namespace.
func (f *File) QualifiedName(c *Class) string {
	if f.Namespace == "" || c.Name == AnonymousClassName {
		return c.Name
	}
	return f.Namespace + `\` + c.Name
}

// Method returns the method with the given name, ignoring case.
func (c *Class) Method(name string) (typenames.Function, bool) {
	for _, m := range c.Methods {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return typenames.Function{}, false
}

// Property returns the property with the given name (without "$").
func (c *Class) Property(name string) (typenames.Property, bool) {
	for _, p := range c.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return typenames.Property{}, false
}
