package symtab

import "github.com/qair/ir-compiler/ast"

// Resolve implements the Resolution API of spec §4.B: given an AST node
// representing one statement, return the symbolic target name and the AST
// node id of the declaration that backs it, trying each priority in turn.
// Missing information never raises; it returns ok=false so the caller
// (spec §4.E/4.F) can still emit a step with a null target.
func (t *Table) Resolve(stmt *ast.Node) (targetName string, targetNodeID string, ok bool) {
	inv := PrimaryInvocation(stmt)
	if inv == nil {
		return "", "", false
	}

	// Priority 1: qualifier names a page-object instance whose member has
	// an inferred method->target binding.
	qualifier := inv.AttrString("qualifier")
	member := inv.AttrString("member")
	if qualifier != "" {
		if className, isInstance := t.instanceClass(qualifier); isInstance {
			if class := t.classInfo(className); class != nil && class.IsPageObject {
				if target, found := t.methodTarget(className, member); found {
					nodeID := ""
					if decl, exists := class.Fields[target]; exists && decl.InitializerNode != nil {
						nodeID = decl.InitializerNode.ID
					}
					return target, nodeID, true
				}
			}
		}
	}

	// Priority 2: a descendant MemberReference resolves, via the
	// declaration table, to an initializer under a By.* call.
	refs := ast.FindAll(inv, func(n *ast.Node) bool { return n.Type == ast.MemberReference })
	for _, ref := range refs {
		name := ref.AttrString("member")
		if decl, found := t.declarations[name]; found {
			if _, isBy := IsByInvocation(decl.InitializerNode); isBy {
				return name, decl.InitializerNode.ID, true
			}
		}
	}

	// Priority 3: a descendant is directly a By.* invocation; return the
	// name of the field that owns it, if any.
	byNodes := ast.FindAll(inv, func(n *ast.Node) bool {
		_, isBy := IsByInvocation(n)
		return isBy
	})
	for _, byNode := range byNodes {
		for _, decl := range t.declarations {
			if decl.InitializerNode == byNode {
				return decl.Name, byNode.ID, true
			}
		}
	}

	// Priority 4: nothing resolves.
	return "", "", false
}

// PrimaryInvocation returns the MethodInvocation the statement wraps: the
// statement node itself if it is already a MethodInvocation, or its first
// direct MethodInvocation child (spec §4.B: "an AST node representing one
// statement (typically a StatementExpression wrapping a MethodInvocation)").
func PrimaryInvocation(stmt *ast.Node) *ast.Node {
	if stmt == nil {
		return nil
	}
	if stmt.Type == ast.MethodInvocation {
		return stmt
	}
	return firstChildOfType(stmt, ast.MethodInvocation)
}
