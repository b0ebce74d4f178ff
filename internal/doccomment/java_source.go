// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package doccomment

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// JavaParser extracts Javadoc comments from Java sources using tree-sitter.
// A JavaParser is not safe for concurrent use.
type JavaParser struct {
	parser *sitter.Parser
}

// NewJavaParser creates a new Java doc-comment parser.
func NewJavaParser() *JavaParser {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	return &JavaParser{parser: parser}
}

// Load parses content and adds every documented type and member to store.
func (p *JavaParser) Load(ctx context.Context, store *Store, content []byte) error {
	tree, err := p.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return fmt.Errorf("failed to parse Java: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return fmt.Errorf("failed to get root node")
	}

	pkg := ""
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() == "package_declaration" {
			pkg = packageName(child, content)
			continue
		}
		if isTypeDeclaration(child.Type()) {
			p.loadType(store, child, content, pkg)
		}
	}
	return nil
}

// loadType records a type declaration and its members. Nested types are
// qualified with their enclosing type name.
func (p *JavaParser) loadType(store *Store, node *sitter.Node, content []byte, outer string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	typeName := nameNode.Content(content)
	if outer != "" {
		typeName = outer + "." + typeName
	}

	store.SetType(typeName, docComment(node, content))

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	p.loadMembers(store, body, content, typeName)
}

func (p *JavaParser) loadMembers(store *Store, body *sitter.Node, content []byte, typeName string) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch t := member.Type(); {
		case t == "method_declaration":
			if name := member.ChildByFieldName("name"); name != nil {
				store.SetMember(typeName, name.Content(content), docComment(member, content))
			}
		case t == "field_declaration" || t == "constant_declaration":
			doc := docComment(member, content)
			for j := 0; j < int(member.NamedChildCount()); j++ {
				decl := member.NamedChild(j)
				if decl.Type() != "variable_declarator" {
					continue
				}
				if name := decl.ChildByFieldName("name"); name != nil {
					store.SetMember(typeName, name.Content(content), doc)
				}
			}
		case t == "enum_body_declarations":
			p.loadMembers(store, member, content, typeName)
		case isTypeDeclaration(t):
			p.loadType(store, member, content, typeName)
		}
	}
}

func isTypeDeclaration(nodeType string) bool {
	switch nodeType {
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
		return true
	}
	return false
}

func packageName(node *sitter.Node, content []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "scoped_identifier", "identifier":
			return child.Content(content)
		}
	}
	return ""
}

// docComment returns the cleaned Javadoc immediately preceding node.
func docComment(node *sitter.Node, content []byte) string {
	prev := node.PrevSibling()
	if prev == nil {
		return ""
	}
	switch prev.Type() {
	case "block_comment", "comment":
	default:
		return ""
	}

	raw := prev.Content(content)
	if !strings.HasPrefix(raw, "/**") {
		return ""
	}
	return CleanJavadoc(raw)
}

// CleanJavadoc strips comment delimiters and leading asterisks and drops
// the block-tag section (@param, @return, ...).
func CleanJavadoc(raw string) string {
	raw = strings.TrimPrefix(raw, "/**")
	raw = strings.TrimSuffix(raw, "*/")

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
		if strings.HasPrefix(line, "@") {
			break
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
