package extract

import (
	"github.com/qair/ir-compiler/ast"
	"github.com/qair/ir-compiler/pipelineerr"
	"github.com/qair/ir-compiler/raw"
	"github.com/qair/ir-compiler/symtab"
)

// Orchestrate runs the full extraction pass over one AST tree (spec §4.G):
// build the symbol table, harvest targets and page-object methods, locate
// every test method, and run the action then assertion mapper over each of
// its statements in source order. Unresolvable page-object calls are
// recorded as ExtractionWarnings (spec §7) but never abort the pass.
func Orchestrate(tree *ast.Tree, registry *symtab.Registry, project string) (raw.FileRecords, *pipelineerr.Diagnostics) {
	table := symtab.Build(tree, registry)
	diags := &pipelineerr.Diagnostics{}

	records := raw.FileRecords{FilePath: tree.FilePath}
	records.Targets = append(Locators(tree, table), AnnotatedLocators(tree)...)

	for _, class := range ast.FindAll(tree.Root, func(n *ast.Node) bool { return n.Type == ast.ClassDeclaration }) {
		if suiteName, ok := suiteAnnotation(class); ok {
			records.Suites = append(records.Suites, raw.Suite{Name: suiteName, Description: class.Name})
		}
		for _, method := range ast.ChildrenOfType(class, ast.MethodDeclaration) {
			if !isTestMethod(class, method) {
				continue
			}
			test := Test(method, class, table, project, tree.FilePath, diags)
			records.Tests = append(records.Tests, test)
		}
	}
	return records, diags
}

// Test builds one raw.Test by walking method's statements in pre-order and
// running the action mapper then the assertion mapper over each (spec §4.G:
// "concatenating the resulting raw records into the test's steps list").
// SuiteHint is only set to the enclosing class name when that class carries
// a suite-grouping annotation (SPEC_FULL.md §2.1: "...instead of a
// synthesized default"); otherwise it is left empty so ir/link.go's
// "Default" fallback applies.
func Test(method, class *ast.Node, table *symtab.Table, project, filePath string, diags *pipelineerr.Diagnostics) raw.Test {
	test := raw.Test{Name: method.Name, Comment: method.Comment}
	if suiteName, ok := suiteAnnotation(class); ok {
		test.SuiteHint = suiteName
	}
	for _, stmt := range statementNodes(method) {
		if step, ok := Action(stmt, table); ok {
			recordUnresolvedWarning(step, project, filePath, diags)
			test.Steps = append(test.Steps, step)
			continue
		}
		if step, ok := Assertion(stmt, table); ok {
			recordUnresolvedWarning(step, project, filePath, diags)
			test.Steps = append(test.Steps, step)
		}
	}
	return test
}

// recordUnresolvedWarning appends an ExtractionWarning when an action step
// (a page-object call or a primitive Selenium action alike) could not be
// bound to a target name (spec §7, §8 Scenario 5). Assertion steps never
// warn here.
func recordUnresolvedWarning(step raw.Step, project, filePath string, diags *pipelineerr.Diagnostics) {
	if step.Type != "action" || step.TargetNameID != "" {
		return
	}
	diags.Add(pipelineerr.NewExtractionWarning(project, filePath,
		"could not infer a target for step \""+step.Name+"\""))
}

// statementNodes returns every StatementExpression inside method's body, in
// pre-order (spec §4.G: "within a tree, traversal is pre-order; step order
// in output matches source order").
func statementNodes(method *ast.Node) []*ast.Node {
	body := firstChildOfType(method, ast.BlockStatement)
	if body == nil {
		return nil
	}
	return ast.FindAll(body, func(n *ast.Node) bool { return n.Type == ast.StatementExpression })
}

func firstChildOfType(n *ast.Node, typ string) *ast.Node {
	for _, c := range n.Children {
		if c.Type == typ {
			return c
		}
	}
	return nil
}

// isTestMethod reports whether method should be treated as a test entry
// point: annotated @Test, or following the naming convention of a class
// ending in "Test"/"Tests" with a method starting with "test" (spec §4.G:
// "annotated @Test or whose class/method follows project naming
// conventions").
func isTestMethod(class, method *ast.Node) bool {
	if method.AttrString("annotation") == "Test" {
		return true
	}
	if hasSuffix(class.Name, "Test") || hasSuffix(class.Name, "Tests") {
		return hasPrefix(method.Name, "test")
	}
	return false
}

// suiteAnnotation reports whether class carries a suite-grouping annotation
// (spec's supplemented suite-tagging feature: class-level @RunWith/@Suite).
func suiteAnnotation(class *ast.Node) (string, bool) {
	switch class.AttrString("annotation") {
	case "RunWith", "Suite":
		return class.Name, true
	}
	return "", false
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
