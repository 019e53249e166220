package symtab

import "github.com/qair/ir-compiler/ast"

// ClassInfo is the class-structure-pass record for one class declaration
// (spec §4.B pass 2): its field set and whether it qualifies as a page
// object (at least one field whose initializer is a By.* invocation).
type ClassInfo struct {
	Node         *ast.Node
	Name         string
	Fields       map[string]*Declaration
	IsPageObject bool
	// Methods lists the class's MethodDeclaration nodes, consulted by the
	// page-object extractor (spec §4.D) to list public methods.
	Methods []*ast.Node
}

// locatorStrategies recognized from a By.* initializer (spec §4.C).
var locatorStrategies = map[string]string{
	"cssSelector":     "css",
	"xpath":           "xpath",
	"id":              "id",
	"name":            "name",
	"className":       "className",
	"tagName":         "tagName",
	"linkText":        "linkText",
	"partialLinkText": "partialLinkText",
}

// IsByInvocation reports whether node is a qualified MethodInvocation with
// qualifier "By" and a member in the supported locator-strategy set.
func IsByInvocation(n *ast.Node) (strategy string, ok bool) {
	if n == nil || n.Type != ast.MethodInvocation {
		return "", false
	}
	if n.AttrString("qualifier") != "By" {
		return "", false
	}
	strategy, ok = locatorStrategies[n.AttrString("member")]
	return strategy, ok
}

// collectClasses runs the class-structure pass (spec §4.B pass 2) over
// every ClassDeclaration in the tree, reading each field's declarator and
// initializer straight off the class's direct children.
func collectClasses(root *ast.Node) map[string]*ClassInfo {
	out := map[string]*ClassInfo{}
	classNodes := ast.FindAll(root, func(n *ast.Node) bool { return n.Type == ast.ClassDeclaration })
	for _, classNode := range classNodes {
		info := &ClassInfo{Node: classNode, Name: classNode.Name, Fields: map[string]*Declaration{}}
		for _, child := range classNode.Children {
			if name, declarator, init, ok := declaratorNameAndInit(child); ok {
				decl := &Declaration{Name: name, DeclaratorNode: declarator, InitializerNode: init, DeclaredType: declarator.AttrString("type")}
				info.Fields[name] = decl
				if _, isBy := IsByInvocation(init); isBy {
					info.IsPageObject = true
				}
			}
			if child.Type == ast.MethodDeclaration {
				info.Methods = append(info.Methods, child)
			}
		}
		out[info.Name] = info
	}
	return out
}
