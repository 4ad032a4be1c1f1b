// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package phpsource

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"

	"github.com/kraklabs/typenames/pkg/typenames"
)

// Declaration node kinds and field names of the PHP grammar.
const (
	nodeNamespaceDefinition  = "namespace_definition"
	nodeClassDeclaration     = "class_declaration"
	nodeInterfaceDeclaration = "interface_declaration"
	nodeTraitDeclaration     = "trait_declaration"
	nodeEnumDeclaration      = "enum_declaration"
	nodeAnonymousClass       = "anonymous_class"
	nodeObjectCreation       = "object_creation_expression"
	nodeDeclarationList      = "declaration_list"
	nodeEnumDeclarationList  = "enum_declaration_list"
	nodeFunctionDefinition   = "function_definition"
	nodeMethodDeclaration    = "method_declaration"
	nodePropertyDeclaration  = "property_declaration"
	nodePropertyElement      = "property_element"
	nodeFormalParameters     = "formal_parameters"
	nodeSimpleParameter      = "simple_parameter"
	nodeVariadicParameter    = "variadic_parameter"
	nodePromotionParameter   = "property_promotion_parameter"
	nodeVariableName         = "variable_name"
	nodeStaticModifier       = "static_modifier"
	nodeNull                 = "null"
	nodeError                = "ERROR"
	fieldName                = "name"
	fieldType                = "type"
	fieldBody                = "body"
	fieldParameters          = "parameters"
	fieldReturnType          = "return_type"
	fieldDefaultValue        = "default_value"
	constructorName          = "__construct"
)

// Parser extracts declarations from PHP source.
//
// A Parser wraps one Tree-sitter parser and must not be used from more than
// one goroutine at a time.
type Parser struct {
	ts     *sitter.Parser
	logger *slog.Logger
}

// NewParser creates a PHP parser. A nil logger uses slog.Default().
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	ts := sitter.NewParser()
	ts.SetLanguage(php.GetLanguage())
	return &Parser{ts: ts, logger: logger}
}

// Close releases the underlying Tree-sitter parser.
func (p *Parser) Close() {
	p.ts.Close()
}

// ParseFile reads and parses the PHP file at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return p.Parse(ctx, path, content)
}

// Parse extracts the declarations in content. path is only recorded on the
// result and used in log events.
//
// Syntax errors do not fail the parse; Tree-sitter recovers and the number
// of error nodes is reported in File.SyntaxErrors.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*File, error) {
	tree, err := p.ts.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	file := &File{Path: path}

	if root.HasError() {
		if errorCount := countErrors(root); errorCount > 0 {
			file.SyntaxErrors = errorCount
			p.logger.Warn("parser.treesitter.php.syntax_errors",
				"path", path,
				"error_count", errorCount,
			)
		}
	}

	w := &phpWalker{parser: p, content: content, file: file}
	w.walk(root)
	return file, nil
}

// phpWalker holds state for one AST walk.
type phpWalker struct {
	parser  *Parser
	content []byte
	file    *File
}

func (w *phpWalker) walk(node *sitter.Node) {
	switch node.Type() {
	case nodeNamespaceDefinition:
		if name := node.ChildByFieldName(fieldName); name != nil && w.file.Namespace == "" {
			w.file.Namespace = name.Content(w.content)
		}
	case nodeClassDeclaration:
		w.addClass(node, KindClass)
		return
	case nodeInterfaceDeclaration:
		w.addClass(node, KindInterface)
		return
	case nodeTraitDeclaration:
		w.addClass(node, KindTrait)
		return
	case nodeEnumDeclaration:
		w.addClass(node, KindEnum)
		return
	case nodeAnonymousClass:
		w.addClass(node, KindClass)
		return
	case nodeObjectCreation:
		// Older grammars inline the anonymous class body into the expression.
		if childOfType(node, nodeDeclarationList) != nil {
			w.addClass(node, KindClass)
			return
		}
	case nodeFunctionDefinition:
		w.file.Functions = append(w.file.Functions, w.function(node))
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		w.walk(node.Child(i))
	}
}

func (w *phpWalker) addClass(node *sitter.Node, kind string) {
	class := Class{
		Name:      AnonymousClassName,
		Kind:      kind,
		StartLine: int(node.StartPoint().Row) + 1,
	}
	if name := node.ChildByFieldName(fieldName); name != nil {
		class.Name = name.Content(w.content)
	}

	body := node.ChildByFieldName(fieldBody)
	if body == nil {
		body = childOfType(node, nodeDeclarationList)
	}
	if body == nil {
		body = childOfType(node, nodeEnumDeclarationList)
	}
	if body != nil {
		w.classMembers(body, &class)
	}

	w.file.Classes = append(w.file.Classes, class)

	// Classes nested in method bodies (e.g. anonymous classes) are collected too.
	if body != nil {
		w.nestedClasses(body)
	}
}

func (w *phpWalker) classMembers(body *sitter.Node, class *Class) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case nodeMethodDeclaration:
			method := w.function(member)
			class.Methods = append(class.Methods, method)
			if strings.EqualFold(method.Name, constructorName) {
				class.Properties = append(class.Properties, w.promotedProperties(member)...)
			}
		case nodePropertyDeclaration:
			class.Properties = append(class.Properties, w.properties(member)...)
		}
	}
}

func (w *phpWalker) nestedClasses(body *sitter.Node) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		if member.Type() != nodeMethodDeclaration {
			continue
		}
		if fnBody := member.ChildByFieldName(fieldBody); fnBody != nil {
			w.walk(fnBody)
		}
	}
}

// function builds a Function from a function_definition or method_declaration.
func (w *phpWalker) function(node *sitter.Node) typenames.Function {
	fn := typenames.Function{
		StartLine: int(node.StartPoint().Row) + 1,
		Static:    childOfType(node, nodeStaticModifier) != nil,
	}
	if name := node.ChildByFieldName(fieldName); name != nil {
		fn.Name = name.Content(w.content)
	}

	params := node.ChildByFieldName(fieldParameters)
	if params == nil {
		params = childOfType(node, nodeFormalParameters)
	}
	if params != nil {
		fn.Params = w.parameters(params)
	}

	fn.ReturnType = w.describe(returnTypeNode(node), false, fn.Name)
	return fn
}

func (w *phpWalker) parameters(list *sitter.Node) []typenames.Parameter {
	var params []typenames.Parameter
	for i := 0; i < int(list.NamedChildCount()); i++ {
		node := list.NamedChild(i)
		switch node.Type() {
		case nodeSimpleParameter, nodeVariadicParameter, nodePromotionParameter:
		default:
			continue
		}
		name := variableName(node, w.content)
		params = append(params, typenames.Parameter{
			Name:     name,
			Position: len(params),
			Type:     w.describe(typeNode(node), defaultsToNull(node, w.content), "$"+name),
			Variadic: node.Type() == nodeVariadicParameter,
		})
	}
	return params
}

// promotedProperties returns the properties declared through constructor
// property promotion.
func (w *phpWalker) promotedProperties(method *sitter.Node) []typenames.Property {
	list := method.ChildByFieldName(fieldParameters)
	if list == nil {
		list = childOfType(method, nodeFormalParameters)
	}
	if list == nil {
		return nil
	}

	var props []typenames.Property
	for i := 0; i < int(list.NamedChildCount()); i++ {
		node := list.NamedChild(i)
		if node.Type() != nodePromotionParameter {
			continue
		}
		name := variableName(node, w.content)
		props = append(props, typenames.Property{
			Name:      name,
			Type:      w.describe(typeNode(node), defaultsToNull(node, w.content), "$"+name),
			StartLine: int(node.StartPoint().Row) + 1,
		})
	}
	return props
}

func (w *phpWalker) properties(decl *sitter.Node) []typenames.Property {
	typ := typeNode(decl)
	static := childOfType(decl, nodeStaticModifier) != nil

	var props []typenames.Property
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		elem := decl.NamedChild(i)
		if elem.Type() != nodePropertyElement {
			continue
		}
		name := variableName(elem, w.content)
		props = append(props, typenames.Property{
			Name:      name,
			Type:      w.describe(typ, false, "$"+name),
			Static:    static,
			StartLine: int(elem.StartPoint().Row) + 1,
		})
	}
	return props
}

// describe converts a type node, logging unsupported type syntax.
func (w *phpWalker) describe(node *sitter.Node, implicitNull bool, symbol string) typenames.TypeDescriptor {
	desc, ok := describeType(node, w.content, implicitNull)
	if !ok {
		w.parser.logger.Debug("parser.treesitter.php.unsupported_type",
			"path", w.file.Path,
			"symbol", symbol,
			"type", node.Content(w.content),
		)
	}
	return desc
}

// typeNode returns the declared type of a parameter or property declaration.
func typeNode(node *sitter.Node) *sitter.Node {
	if t := node.ChildByFieldName(fieldType); t != nil {
		return t
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if isTypeNode(child.Type()) {
			return child
		}
	}
	return nil
}

// returnTypeNode returns the type following ':' in a function header.
func returnTypeNode(node *sitter.Node) *sitter.Node {
	if t := node.ChildByFieldName(fieldReturnType); t != nil {
		return t
	}
	afterColon := false
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if !child.IsNamed() {
			afterColon = afterColon || child.Type() == ":"
			continue
		}
		if afterColon && isTypeNode(child.Type()) {
			return child
		}
	}
	return nil
}

// variableName returns a parameter or property name without the "$".
func variableName(node *sitter.Node, content []byte) string {
	name := node.ChildByFieldName(fieldName)
	if name == nil || name.Type() != nodeVariableName {
		name = findOfType(node, nodeVariableName)
	}
	if name == nil {
		return ""
	}
	return strings.TrimPrefix(name.Content(content), "$")
}

// defaultsToNull reports whether a parameter's default value is null.
func defaultsToNull(node *sitter.Node, content []byte) bool {
	def := node.ChildByFieldName(fieldDefaultValue)
	if def == nil {
		return false
	}
	return def.Type() == nodeNull || strings.EqualFold(strings.TrimPrefix(def.Content(content), `\`), "null")
}

func childOfType(node *sitter.Node, kind string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == kind {
			return child
		}
	}
	return nil
}

// findOfType returns the first descendant of the given kind, depth first.
func findOfType(node *sitter.Node, kind string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == kind {
			return child
		}
		if found := findOfType(child, kind); found != nil {
			return found
		}
	}
	return nil
}

func countErrors(node *sitter.Node) int {
	count := 0
	if node.Type() == nodeError || node.IsMissing() {
		count++
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		count += countErrors(node.Child(i))
	}
	return count
}
