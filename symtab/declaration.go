// Package symtab implements the symbol table of spec §4.B: the structure
// that answers "what UI target does this AST node reference?" It is built
// in three passes over one AST tree (declarations, class structure, method
// inference) and exposes a single Resolve entry point used by the action
// and assertion mappers (spec §4.E, §4.F).
package symtab

import "github.com/qair/ir-compiler/ast"

// Declaration is a symbol-table entry for one field/variable/parameter
// declaration (spec §3): its name, the AST node of the declarator, and the
// AST node of the initializer, if any.
type Declaration struct {
	Name            string
	DeclaratorNode  *ast.Node
	InitializerNode *ast.Node
	// DeclaredType is the (best-effort) static type text of the declarator,
	// e.g. "LoginPage" for `private LoginPage loginPage = ...;`. It powers
	// priority-1 resolution (qualifier identifies a page-object instance)
	// but is left empty when the upstream adapter did not attach a `type`
	// attribute — resolution then falls through to priorities 2-4.
	DeclaredType string
}

// collectDeclarations runs the declaration pass (spec §4.B pass 1): visit
// every FieldDeclaration, LocalVariableDeclaration and FormalParameter node
// (matched by node type, not by the derived field/variable/parameter tags)
// and record
// name -> (declarator, initializer).
func collectDeclarations(root *ast.Node) map[string]*Declaration {
	out := map[string]*Declaration{}
	ast.Walk(root, func(n *ast.Node) {
		name, declarator, init, ok := declaratorNameAndInit(n)
		if !ok {
			return
		}
		out[name] = &Declaration{
			Name:            name,
			DeclaratorNode:  declarator,
			InitializerNode: init,
			DeclaredType:    declarator.AttrString("type"),
		}
	})
	return out
}

// declaratorNameAndInit recognizes the declaration-shaped nodes of spec §3:
// FieldDeclaration, LocalVariableDeclaration and FormalParameter, each
// optionally wrapping a VariableDeclarator child. It returns the declared
// name, the node that should be treated as "the declarator" (the innermost
// node carrying the name), and the initializer node immediately under it.
func declaratorNameAndInit(n *ast.Node) (name string, declarator, init *ast.Node, ok bool) {
	switch n.Type {
	case ast.FieldDeclaration, ast.LocalVarDeclaration:
		if vd := firstChildOfType(n, ast.VariableDeclarator); vd != nil {
			return vd.Name, vd, firstInitializer(vd), true
		}
		if n.Name == "" {
			return "", nil, nil, false
		}
		return n.Name, n, firstInitializer(n), true
	case ast.FormalParameter:
		if n.Name == "" {
			return "", nil, nil, false
		}
		return n.Name, n, nil, true
	}
	return "", nil, nil, false
}

func firstChildOfType(n *ast.Node, typ string) *ast.Node {
	for _, c := range n.Children {
		if c.Type == typ {
			return c
		}
	}
	return nil
}

// firstInitializer returns the first child that plausibly represents an
// initializer expression: a MethodInvocation (e.g. By.cssSelector(...)) or
// a Literal. Spec §3: "the AST node of the initializer ... typically a
// MethodInvocation... immediately under the declarator".
func firstInitializer(n *ast.Node) *ast.Node {
	for _, c := range n.Children {
		switch c.Type {
		case ast.MethodInvocation, ast.Literal:
			return c
		}
	}
	return nil
}
