// Package extract implements the Locator/Page-Object extractors and the
// Action/Assertion mappers (spec §4.C-§4.F), walking one AST tree with the
// help of its symbol table to produce raw records (spec §3) consumed by the
// IR linker (spec §4.H).
package extract

import (
	"regexp"
	"strings"

	"github.com/qair/ir-compiler/ast"
	"github.com/qair/ir-compiler/raw"
	"github.com/qair/ir-compiler/symtab"
)

// Locators harvests UI targets from every declaration in the tree whose
// initializer is a supported By.* invocation (spec §4.C). Unknown
// strategies are skipped, as is any declaration with no initializer.
func Locators(tree *ast.Tree, table *symtab.Table) []raw.Target {
	var out []raw.Target
	for name, decl := range table.Declarations() {
		strategy, ok := symtab.IsByInvocation(decl.InitializerNode)
		if !ok {
			continue
		}
		comment := decl.DeclaratorNode.Comment
		if comment == "" {
			if owner := enclosingOfType(tree.Root, decl.DeclaratorNode, ast.FieldDeclaration); owner != nil {
				comment = owner.Comment
			}
		}
		out = append(out, raw.Target{
			Name:         name,
			Strategy:     strategy,
			LocatorValue: unquote(firstArgText(decl.InitializerNode)),
			Page:         enclosingClassName(tree.Root, decl.DeclaratorNode),
			NodeID:       decl.InitializerNode.ID,
			Comment:      comment,
		})
	}
	return out
}

// findByParamStrategies maps a Selenium @FindBy annotation's parameter name
// to this module's strategy vocabulary (spec §4.C / SPEC_FULL.md §2.1:
// "the common @FindBy(css = \"...\") annotation style").
var findByParamStrategies = map[string]string{
	"css":             "css",
	"xpath":           "xpath",
	"id":              "id",
	"name":            "name",
	"className":       "className",
	"tagName":         "tagName",
	"linkText":        "linkText",
	"partialLinkText": "partialLinkText",
}

var findByAnnotationPattern = regexp.MustCompile(`@FindBy\s*\(([^)]*)\)`)
var findByParamPattern = regexp.MustCompile(`(\w+)\s*=\s*"([^"]*)"`)

// AnnotatedLocators harvests targets declared via the @FindBy(strategy =
// "value") field-annotation style rather than a By.*-initializer call
// (SPEC_FULL.md §2.1), additive to Locators.
func AnnotatedLocators(tree *ast.Tree) []raw.Target {
	var out []raw.Target
	fields := ast.FindAll(tree.Root, func(n *ast.Node) bool { return n.Type == ast.FieldDeclaration })
	for _, field := range fields {
		annotations, _ := field.Attr("annotations")
		names, ok := annotations.([]string)
		if !ok {
			continue
		}
		for _, annotation := range names {
			m := findByAnnotationPattern.FindStringSubmatch(annotation)
			if m == nil {
				continue
			}
			for _, param := range findByParamPattern.FindAllStringSubmatch(m[1], -1) {
				strategy, known := findByParamStrategies[param[1]]
				if !known {
					continue
				}
				out = append(out, raw.Target{
					Name:         field.Name,
					Strategy:     strategy,
					LocatorValue: param[2],
					Page:         enclosingClassName(tree.Root, field),
					NodeID:       field.ID,
					Comment:      field.Comment,
				})
			}
		}
	}
	return out
}

// firstArgText returns the source text of the first argument to a
// MethodInvocation, typically a Literal node's Name field holding the
// quoted or unquoted selector string.
func firstArgText(inv *ast.Node) string {
	if inv == nil {
		return ""
	}
	for _, c := range inv.Children {
		if c.Type == ast.Literal {
			return c.Name
		}
	}
	return ""
}

// unquote strips one layer of surrounding double quotes, if present (spec
// §4.C: "the argument literal (stripped of surrounding quotes)").
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// enclosingClassName finds the nearest ancestor ClassDeclaration of n within
// root by scanning the tree (the canonical model does not keep parent
// pointers, only parent ids, so the search walks down from root looking for
// the class whose subtree contains n).
func enclosingClassName(root, n *ast.Node) string {
	if owner := enclosingOfType(root, n, ast.ClassDeclaration); owner != nil {
		return owner.Name
	}
	return ""
}

// enclosingOfType finds the nearest ancestor of n (within root) whose Type
// equals typ, by the same subtree-contains-n scan enclosingClassName uses.
// ast.FindAll visits candidates pre-order, so when typ-tagged nodes nest
// (rare, but possible for inner classes) the last match containing n is the
// innermost, which is the one callers want.
func enclosingOfType(root, n *ast.Node, typ string) *ast.Node {
	if n == nil {
		return nil
	}
	var best *ast.Node
	for _, candidate := range ast.FindAll(root, func(c *ast.Node) bool { return c.Type == typ }) {
		contains := false
		ast.Walk(candidate, func(c *ast.Node) {
			if c == n {
				contains = true
			}
		})
		if contains {
			best = candidate
		}
	}
	return best
}

// isQuoted reports whether s still carries its surrounding quotes (used by
// the action/assertion mappers to decide literal-vs-expression rendering).
func isQuoted(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)
}
