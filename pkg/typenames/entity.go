// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package typenames

// Entity is a declaration whose type can be inspected: a Parameter, a
// Property or a Function.
type Entity interface {
	// DeclaredType returns the descriptor Extract operates on. It never
	// returns nil.
	DeclaredType() TypeDescriptor

	entity()
}

// Parameter is a function or method parameter.
type Parameter struct {
	Name     string
	Position int
	Type     TypeDescriptor
	Variadic bool
}

// Property is a class property, including promoted constructor parameters.
type Property struct {
	Name      string
	Type      TypeDescriptor
	Static    bool
	StartLine int
}

// Function is a function or method. Its declared type is the return type.
type Function struct {
	Name       string
	Params     []Parameter
	ReturnType TypeDescriptor
	Static     bool
	StartLine  int
}

// DeclaredType returns the parameter's own type.
func (p Parameter) DeclaredType() TypeDescriptor { return orNone(p.Type) }

// DeclaredType returns the property's own type.
func (p Property) DeclaredType() TypeDescriptor { return orNone(p.Type) }

// DeclaredType returns the function's return type, not its parameters.
func (f Function) DeclaredType() TypeDescriptor { return orNone(f.ReturnType) }

func (Parameter) entity() {}
func (Property) entity()  {}
func (Function) entity()  {}

// Param returns the parameter at position i.
func (f Function) Param(i int) (Parameter, bool) {
	if i < 0 || i >= len(f.Params) {
		return Parameter{}, false
	}
	return f.Params[i], true
}

// ParamByName returns the parameter with the given name (without "$").
func (f Function) ParamByName(name string) (Parameter, bool) {
	for _, p := range f.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

func orNone(d TypeDescriptor) TypeDescriptor {
	if d == nil {
		return NoType{}
	}
	return d
}
