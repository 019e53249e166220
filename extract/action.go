package extract

import (
	"strconv"

	"github.com/qair/ir-compiler/ast"
	"github.com/qair/ir-compiler/raw"
	"github.com/qair/ir-compiler/symtab"
)

// SupportedActions is the set of Selenium primitive actions the mapper
// recognizes (spec §4.E).
var SupportedActions = map[string]bool{
	"click": true, "sendKeys": true, "submit": true, "clear": true,
	"doubleClick": true, "contextClick": true, "getText": true,
	"waitForVisible": true, "navigate": true,
}

// UtilityMethods are framework plumbing calls that never become steps
// (spec §4.E), regardless of qualifier.
var UtilityMethods = map[string]bool{
	"findElement": true, "findElements": true, "manage": true,
	"timeouts": true, "implicitlyWait": true, "until": true,
	"presenceOfElementLocated": true, "visibilityOfElementLocated": true,
	"elementToBeClickable": true, "get": true,
}

// FrameworkQualifiers name objects that are never page objects even though
// they appear as a MethodInvocation qualifier (spec §4.E).
var FrameworkQualifiers = map[string]bool{
	"Duration": true, "ExpectedConditions": true, "By": true,
	"driver": true, "wait": true, "System": true, "": true,
}

// Action classifies one statement and, if it should become a step, maps it
// (spec §4.E classification rules 1-4). It returns ok=false for statements
// that should be skipped (utility calls, or non-page-object/non-action
// calls with a framework qualifier).
func Action(stmt *ast.Node, table *symtab.Table) (raw.Step, bool) {
	inv := symtab.PrimaryInvocation(stmt)
	if inv == nil || inv.Type != ast.MethodInvocation {
		return raw.Step{}, false
	}
	member := inv.AttrString("member")
	qualifier := inv.AttrString("qualifier")

	if UtilityMethods[member] {
		return raw.Step{}, false
	}

	isAction := SupportedActions[member]
	isPageObjectCall := qualifier != "" && !FrameworkQualifiers[qualifier]
	if !isAction && !isPageObjectCall {
		return raw.Step{}, false
	}

	targetName, targetNodeID, _ := table.Resolve(stmt)

	return raw.Step{
		Type:         "action",
		Name:         member,
		TargetNameID: targetName,
		TargetNodeID: targetNodeID,
		Parameters:   positionalArgs(inv),
	}, true
}

// positionalArgs extracts the invocation's positional argument literals
// into parameters keyed "value", "value2", ... (spec §4.E: "numeric and
// string literals only in MVP; expressions are rendered as their source
// text or the literal \"<expr>\"").
func positionalArgs(inv *ast.Node) map[string]any {
	args := argumentNodes(inv)
	if len(args) == 0 {
		return nil
	}
	out := map[string]any{}
	for i, arg := range args {
		key := "value"
		if i > 0 {
			key = "value" + strconv.Itoa(i+1)
		}
		out[key] = argLiteralValue(arg)
	}
	return out
}

// argumentNodes returns inv's children that represent argument expressions,
// i.e. everything except a leading qualifier MemberReference that names the
// receiver itself (the canonical model attaches arguments as ordinary
// children of the MethodInvocation node).
func argumentNodes(inv *ast.Node) []*ast.Node {
	qualifier := inv.AttrString("qualifier")
	var out []*ast.Node
	for i, c := range inv.Children {
		if i == 0 && qualifier != "" && c.Type == ast.MemberReference && c.AttrString("member") == qualifier {
			continue
		}
		switch c.Type {
		case ast.Literal, ast.MemberReference, ast.MethodInvocation, ast.BinaryOperation:
			out = append(out, c)
		}
	}
	return out
}

// argLiteralValue renders one argument node as the value that belongs in a
// step's parameters map: the unquoted text for a quoted string literal, an
// int64 or float64 for an unquoted numeric literal, the raw text for any
// other literal, or the literal "<expr>" placeholder for a non-literal node
// (spec §4.E).
func argLiteralValue(n *ast.Node) any {
	if n.Type == ast.Literal {
		text := unquote(n.Name)
		if !isQuoted(n.Name) {
			if i, err := strconv.ParseInt(text, 10, 64); err == nil {
				return i
			}
			if f, err := strconv.ParseFloat(text, 64); err == nil {
				return f
			}
		}
		return text
	}
	return "<expr>"
}
