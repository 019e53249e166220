package extract

import (
	"github.com/qair/ir-compiler/ast"
	"github.com/qair/ir-compiler/raw"
	"github.com/qair/ir-compiler/symtab"
)

// AssertionKinds recognizes the JUnit/TestNG-style assertion calls this
// mapper classifies (spec §4.F).
var AssertionKinds = map[string]bool{
	"assertEquals": true, "assertTrue": true, "assertFalse": true,
	"assertNotNull": true, "assertNull": true, "assertThat": true,
}

// Assertion classifies one statement as a test-framework assertion (spec
// §4.F), rendering its first two positional arguments as actual/expected
// DataSource maps. It returns ok=false for non-assertion statements.
func Assertion(stmt *ast.Node, table *symtab.Table) (raw.Step, bool) {
	inv := symtab.PrimaryInvocation(stmt)
	if inv == nil || inv.Type != ast.MethodInvocation {
		return raw.Step{}, false
	}
	member := inv.AttrString("member")
	if !AssertionKinds[member] {
		return raw.Step{}, false
	}

	args := argumentNodes(inv)
	params := map[string]any{}
	if len(args) > 0 {
		params["actual"] = dataSource(args[0], table)
	}
	if len(args) > 1 {
		params["expected"] = dataSource(args[1], table)
	}

	targetName, targetNodeID, _ := table.Resolve(stmt)
	return raw.Step{
		Type:         "assertion",
		Name:         member,
		TargetNameID: targetName,
		TargetNodeID: targetNodeID,
		Parameters:   params,
	}, true
}

// dataSource renders one assertion argument as a DataSource-shaped map
// (spec §3 AssertionIR.actual/expected): a UI reference when the symbol
// table resolves it to a target, a data reference for any other member
// reference (e.g. a test parameter, whether or not it is declared in this
// tree), a constant for a bare literal, or an "<expr>" expression for
// anything else, including an invocation that does not resolve (spec §4.F).
func dataSource(arg *ast.Node, table *symtab.Table) map[string]any {
	switch arg.Type {
	case ast.MethodInvocation:
		if name, _, ok := table.Resolve(arg); ok {
			return map[string]any{"source": "ui", "targetNameId": name}
		}
		return map[string]any{"source": "expression", "value": "<expr>"}
	case ast.MemberReference:
		name := arg.AttrString("member")
		if name == "" {
			name = arg.Name
		}
		if decl, ok := table.Declarations()[name]; ok {
			if _, isBy := symtab.IsByInvocation(decl.InitializerNode); isBy {
				return map[string]any{"source": "ui", "targetNameId": name}
			}
		}
		return map[string]any{"source": "data", "field": name}
	case ast.Literal:
		return map[string]any{"source": "constant", "value": argLiteralValue(arg)}
	default:
		return map[string]any{"source": "expression", "value": "<expr>"}
	}
}
