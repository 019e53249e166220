package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qair/ir-compiler/ast"
	"github.com/qair/ir-compiler/symtab"
)

func mustNode(t *testing.T, id, typ string) *ast.Node {
	t.Helper()
	n, err := ast.NewNode(id, typ)
	require.NoError(t, err)
	return n
}

func byField(t *testing.T, id, name, member, selector string) *ast.Node {
	t.Helper()
	field := mustNode(t, id, ast.FieldDeclaration)
	field.Name = name
	init := mustNode(t, id+"_init", ast.MethodInvocation)
	init.SetAttr("qualifier", "By")
	init.SetAttr("member", member)
	lit := mustNode(t, id+"_arg", ast.Literal)
	lit.Name = `"` + selector + `"`
	require.NoError(t, ast.AttachChild(init, lit))
	require.NoError(t, ast.AttachChild(field, init))
	return field
}

// buildScenario1 mirrors symtab's scenario1Tree but lives here too so the
// extraction package's tests do not depend on symtab's test-only helpers.
func buildScenario1(t *testing.T) *ast.Tree {
	t.Helper()
	root := mustNode(t, "n0", ast.CompilationUnit)
	class := mustNode(t, "n1", ast.ClassDeclaration)
	class.Name = "LoginPage"
	require.NoError(t, ast.AttachChild(root, class))

	require.NoError(t, ast.AttachChild(class, byField(t, "f1", "username", "cssSelector", "#username")))
	require.NoError(t, ast.AttachChild(class, byField(t, "f2", "password", "cssSelector", "#password")))
	require.NoError(t, ast.AttachChild(class, byField(t, "f3", "loginButton", "cssSelector", "#login-btn")))

	method := mustNode(t, "m1", ast.MethodDeclaration)
	method.Name = "clickLogin"
	body := mustNode(t, "m1_body", ast.BlockStatement)
	stmt := mustNode(t, "m1_s1", ast.StatementExpression)
	call := mustNode(t, "m1_call", ast.MethodInvocation)
	call.SetAttr("qualifier", "")
	call.SetAttr("member", "click")
	ref := mustNode(t, "m1_ref", ast.MemberReference)
	ref.SetAttr("member", "loginButton")
	require.NoError(t, ast.AttachChild(call, ref))
	require.NoError(t, ast.AttachChild(stmt, call))
	require.NoError(t, ast.AttachChild(body, stmt))
	require.NoError(t, ast.AttachChild(method, body))
	require.NoError(t, ast.AttachChild(class, method))

	tree, err := ast.NewTree(root, "java", "LoginPage.java")
	require.NoError(t, err)
	return tree
}

func TestLocators_Scenario1_HarvestsThreeTargets(t *testing.T) {
	tree := buildScenario1(t)
	table := symtab.Build(tree, nil)
	targets := Locators(tree, table)
	require.Len(t, targets, 3)

	byName := map[string]string{}
	for _, tg := range targets {
		assert.Equal(t, "LoginPage", tg.Page)
		assert.Equal(t, "css", tg.Strategy)
		byName[tg.Name] = tg.LocatorValue
	}
	assert.Equal(t, "#login-btn", byName["loginButton"])
	assert.Equal(t, "#username", byName["username"])
}

func TestOrchestrate_Scenario1_EmitsOneClickStep(t *testing.T) {
	tree := buildScenario1(t)
	// LoginPageTest class exercising clickLogin from a @Test method, so the
	// orchestrator has a test entry point to walk (Scenario 1 itself is a
	// page object with no visible test caller, so we add a thin one here).
	testClass := mustNode(t, "c2", ast.ClassDeclaration)
	testClass.Name = "LoginPageTest"
	require.NoError(t, ast.AttachChild(tree.Root, testClass))
	field := mustNode(t, "tf1", ast.FieldDeclaration)
	field.Name = "loginPage"
	field.SetAttr("type", "LoginPage")
	require.NoError(t, ast.AttachChild(testClass, field))

	testMethod := mustNode(t, "tm1", ast.MethodDeclaration)
	testMethod.Name = "testLogin"
	testMethod.SetAttr("annotation", "Test")
	tBody := mustNode(t, "tm1_body", ast.BlockStatement)
	tStmt := mustNode(t, "tm1_s1", ast.StatementExpression)
	tCall := mustNode(t, "tm1_call", ast.MethodInvocation)
	tCall.SetAttr("qualifier", "loginPage")
	tCall.SetAttr("member", "clickLogin")
	require.NoError(t, ast.AttachChild(tStmt, tCall))
	require.NoError(t, ast.AttachChild(tBody, tStmt))
	require.NoError(t, ast.AttachChild(testMethod, tBody))
	require.NoError(t, ast.AttachChild(testClass, testMethod))

	records, diags := Orchestrate(tree, nil, "demo")
	require.True(t, diags.Empty())
	require.Len(t, records.Tests, 1)
	require.Len(t, records.Tests[0].Steps, 1)
	step := records.Tests[0].Steps[0]
	assert.Equal(t, "clickLogin", step.Name)
	assert.Equal(t, "loginButton", step.TargetNameID)
}

// scenario4Tree builds Scenario 4: a wait.until(...) utility call that must
// be skipped, immediately followed by a resolvable .click() statement.
func scenario4Tree(t *testing.T) *ast.Tree {
	t.Helper()
	root := mustNode(t, "n0", ast.CompilationUnit)
	class := mustNode(t, "c1", ast.ClassDeclaration)
	class.Name = "LoginPage"
	require.NoError(t, ast.AttachChild(root, class))
	require.NoError(t, ast.AttachChild(class, byField(t, "f1", "loginButton", "cssSelector", "#login-btn")))

	testClass := mustNode(t, "c2", ast.ClassDeclaration)
	testClass.Name = "LoginPageTest"
	require.NoError(t, ast.AttachChild(root, testClass))

	method := mustNode(t, "tm1", ast.MethodDeclaration)
	method.Name = "testLogin"
	method.SetAttr("annotation", "Test")
	body := mustNode(t, "tm1_body", ast.BlockStatement)

	waitStmt := mustNode(t, "tm1_s1", ast.StatementExpression)
	waitCall := mustNode(t, "tm1_wait", ast.MethodInvocation)
	waitCall.SetAttr("qualifier", "wait")
	waitCall.SetAttr("member", "until")
	require.NoError(t, ast.AttachChild(waitStmt, waitCall))

	clickStmt := mustNode(t, "tm1_s2", ast.StatementExpression)
	clickCall := mustNode(t, "tm1_click", ast.MethodInvocation)
	clickCall.SetAttr("qualifier", "")
	clickCall.SetAttr("member", "click")
	ref := mustNode(t, "tm1_ref", ast.MemberReference)
	ref.SetAttr("member", "loginButton")
	require.NoError(t, ast.AttachChild(clickCall, ref))
	require.NoError(t, ast.AttachChild(clickStmt, clickCall))

	require.NoError(t, ast.AttachChild(body, waitStmt))
	require.NoError(t, ast.AttachChild(body, clickStmt))
	require.NoError(t, ast.AttachChild(method, body))
	require.NoError(t, ast.AttachChild(testClass, method))

	tree, err := ast.NewTree(root, "java", "LoginFlow.java")
	require.NoError(t, err)
	return tree
}

func TestOrchestrate_Scenario4_UtilitySkippedOnlyClickEmitted(t *testing.T) {
	tree := scenario4Tree(t)
	records, diags := Orchestrate(tree, nil, "demo")
	require.True(t, diags.Empty())
	require.Len(t, records.Tests, 1)
	require.Len(t, records.Tests[0].Steps, 1)
	assert.Equal(t, "click", records.Tests[0].Steps[0].Name)
}

func TestOrchestrate_Scenario5_UnresolvableCallWarns(t *testing.T) {
	root := mustNode(t, "n0", ast.CompilationUnit)
	class := mustNode(t, "c1", ast.ClassDeclaration)
	class.Name = "MiscTest"
	require.NoError(t, ast.AttachChild(root, class))

	method := mustNode(t, "m1", ast.MethodDeclaration)
	method.Name = "testMagic"
	method.SetAttr("annotation", "Test")
	body := mustNode(t, "m1_body", ast.BlockStatement)
	stmt := mustNode(t, "m1_s1", ast.StatementExpression)
	call := mustNode(t, "m1_call", ast.MethodInvocation)
	call.SetAttr("qualifier", "helperLib")
	call.SetAttr("member", "doMagic")
	require.NoError(t, ast.AttachChild(stmt, call))
	require.NoError(t, ast.AttachChild(body, stmt))
	require.NoError(t, ast.AttachChild(method, body))
	require.NoError(t, ast.AttachChild(class, method))

	tree, err := ast.NewTree(root, "java", "Misc.java")
	require.NoError(t, err)

	records, diags := Orchestrate(tree, nil, "demo")
	require.Len(t, records.Tests, 1)
	require.Len(t, records.Tests[0].Steps, 1)
	step := records.Tests[0].Steps[0]
	assert.Equal(t, "doMagic", step.Name)
	assert.Empty(t, step.TargetNameID)
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "ExtractionWarning", string(diags.Warnings[0].Kind))
}

// TestOrchestrate_UnannotatedClass_LeavesSuiteHintEmpty covers a plain
// JUnit test class with no @RunWith/@Suite annotation: SuiteHint must stay
// empty so the linker's synthesized "Default" suite applies, rather than
// every unannotated class becoming its own implicit suite.
func TestOrchestrate_UnannotatedClass_LeavesSuiteHintEmpty(t *testing.T) {
	root := mustNode(t, "n0", ast.CompilationUnit)
	class := mustNode(t, "c1", ast.ClassDeclaration)
	class.Name = "MiscTest"
	require.NoError(t, ast.AttachChild(root, class))

	method := mustNode(t, "m1", ast.MethodDeclaration)
	method.Name = "testMagic"
	method.SetAttr("annotation", "Test")
	body := mustNode(t, "m1_body", ast.BlockStatement)
	require.NoError(t, ast.AttachChild(method, body))
	require.NoError(t, ast.AttachChild(class, method))

	tree, err := ast.NewTree(root, "java", "Misc.java")
	require.NoError(t, err)

	records, diags := Orchestrate(tree, nil, "demo")
	require.True(t, diags.Empty())
	require.Len(t, records.Tests, 1)
	assert.Empty(t, records.Tests[0].SuiteHint)
}

// TestOrchestrate_RunWithAnnotatedClass_SetsSuiteHintToClassName covers the
// opposite case: a class carrying @RunWith/@Suite registers its own name as
// suite_hint (SPEC_FULL.md §2.1) and also emits an explicit raw.Suite.
func TestOrchestrate_RunWithAnnotatedClass_SetsSuiteHintToClassName(t *testing.T) {
	root := mustNode(t, "n0", ast.CompilationUnit)
	class := mustNode(t, "c1", ast.ClassDeclaration)
	class.Name = "RegressionSuite"
	class.SetAttr("annotation", "RunWith")
	require.NoError(t, ast.AttachChild(root, class))

	method := mustNode(t, "m1", ast.MethodDeclaration)
	method.Name = "testMagic"
	method.SetAttr("annotation", "Test")
	body := mustNode(t, "m1_body", ast.BlockStatement)
	require.NoError(t, ast.AttachChild(method, body))
	require.NoError(t, ast.AttachChild(class, method))

	tree, err := ast.NewTree(root, "java", "RegressionSuite.java")
	require.NoError(t, err)

	records, diags := Orchestrate(tree, nil, "demo")
	require.True(t, diags.Empty())
	require.Len(t, records.Tests, 1)
	assert.Equal(t, "RegressionSuite", records.Tests[0].SuiteHint)
	require.Len(t, records.Suites, 1)
	assert.Equal(t, "RegressionSuite", records.Suites[0].Name)
}

func TestAssertion_Scenario6_UiAndDataSources(t *testing.T) {
	root := mustNode(t, "n0", ast.CompilationUnit)

	homePage := mustNode(t, "c1", ast.ClassDeclaration)
	homePage.Name = "HomePage"
	require.NoError(t, ast.AttachChild(root, homePage))
	require.NoError(t, ast.AttachChild(homePage, byField(t, "f1", "welcomeMessage", "cssSelector", "#welcome")))
	getMsg := mustNode(t, "gm1", ast.MethodDeclaration)
	getMsg.Name = "getWelcomeMessage"
	gmBody := mustNode(t, "gm1_body", ast.BlockStatement)
	gmStmt := mustNode(t, "gm1_s1", ast.StatementExpression)
	gmCall := mustNode(t, "gm1_call", ast.MethodInvocation)
	gmCall.SetAttr("qualifier", "")
	gmCall.SetAttr("member", "getText")
	gmRef := mustNode(t, "gm1_ref", ast.MemberReference)
	gmRef.SetAttr("member", "welcomeMessage")
	require.NoError(t, ast.AttachChild(gmCall, gmRef))
	require.NoError(t, ast.AttachChild(gmStmt, gmCall))
	require.NoError(t, ast.AttachChild(gmBody, gmStmt))
	require.NoError(t, ast.AttachChild(getMsg, gmBody))
	require.NoError(t, ast.AttachChild(homePage, getMsg))

	testClass := mustNode(t, "c2", ast.ClassDeclaration)
	testClass.Name = "HomeTest"
	require.NoError(t, ast.AttachChild(root, testClass))
	param := mustNode(t, "p1", ast.FormalParameter)
	param.Name = "expectedMessage"
	require.NoError(t, ast.AttachChild(testClass, param))

	homeField := mustNode(t, "hf1", ast.FieldDeclaration)
	homeField.Name = "homePage"
	homeField.SetAttr("type", "HomePage")
	require.NoError(t, ast.AttachChild(testClass, homeField))

	method := mustNode(t, "m1", ast.MethodDeclaration)
	method.Name = "testWelcome"
	method.SetAttr("annotation", "Test")
	body := mustNode(t, "m1_body", ast.BlockStatement)
	stmt := mustNode(t, "m1_s1", ast.StatementExpression)
	assertCall := mustNode(t, "m1_call", ast.MethodInvocation)
	assertCall.SetAttr("qualifier", "Assert")
	assertCall.SetAttr("member", "assertEquals")

	actualArg := mustNode(t, "m1_actual", ast.MethodInvocation)
	actualArg.SetAttr("qualifier", "homePage")
	actualArg.SetAttr("member", "getWelcomeMessage")

	expectedArg := mustNode(t, "m1_expected", ast.MemberReference)
	expectedArg.SetAttr("member", "expectedMessage")

	require.NoError(t, ast.AttachChild(assertCall, actualArg))
	require.NoError(t, ast.AttachChild(assertCall, expectedArg))
	require.NoError(t, ast.AttachChild(stmt, assertCall))
	require.NoError(t, ast.AttachChild(body, stmt))
	require.NoError(t, ast.AttachChild(method, body))
	require.NoError(t, ast.AttachChild(testClass, method))

	tree, err := ast.NewTree(root, "java", "Home.java")
	require.NoError(t, err)

	table := symtab.Build(tree, nil)
	step, ok := Assertion(stmt, table)
	require.True(t, ok)
	assert.Equal(t, "assertEquals", step.Name)

	actual, ok := step.Parameters["actual"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ui", actual["source"])
	assert.Equal(t, "welcomeMessage", actual["targetNameId"])

	expected, ok := step.Parameters["expected"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "data", expected["source"])
	assert.Equal(t, "expectedMessage", expected["field"])
}

func TestAnnotatedLocators_FindByCssAnnotation_HarvestsTarget(t *testing.T) {
	root := mustNode(t, "n0", ast.CompilationUnit)
	class := mustNode(t, "n1", ast.ClassDeclaration)
	class.Name = "LoginPage"
	require.NoError(t, ast.AttachChild(root, class))

	field := mustNode(t, "f1", ast.FieldDeclaration)
	field.Name = "loginButton"
	field.SetAttr("annotation", "FindBy")
	field.SetAttr("annotations", []string{`@FindBy(css = "#login-btn")`})
	require.NoError(t, ast.AttachChild(class, field))

	tree, err := ast.NewTree(root, "java", "LoginPage.java")
	require.NoError(t, err)

	targets := AnnotatedLocators(tree)
	require.Len(t, targets, 1)
	assert.Equal(t, "loginButton", targets[0].Name)
	assert.Equal(t, "css", targets[0].Strategy)
	assert.Equal(t, "#login-btn", targets[0].LocatorValue)
	assert.Equal(t, "LoginPage", targets[0].Page)
}

func TestAnnotatedLocators_UnknownStrategyParam_Skipped(t *testing.T) {
	root := mustNode(t, "n0", ast.CompilationUnit)
	class := mustNode(t, "n1", ast.ClassDeclaration)
	class.Name = "LoginPage"
	require.NoError(t, ast.AttachChild(root, class))

	field := mustNode(t, "f1", ast.FieldDeclaration)
	field.Name = "weird"
	field.SetAttr("annotations", []string{`@FindBy(how = "unsupported")`})
	require.NoError(t, ast.AttachChild(class, field))

	tree, err := ast.NewTree(root, "java", "LoginPage.java")
	require.NoError(t, err)

	assert.Empty(t, AnnotatedLocators(tree))
}

func TestAnnotatedLocators_NoAnnotationsAttr_Skipped(t *testing.T) {
	root := mustNode(t, "n0", ast.CompilationUnit)
	class := mustNode(t, "n1", ast.ClassDeclaration)
	class.Name = "LoginPage"
	require.NoError(t, ast.AttachChild(root, class))

	field := mustNode(t, "f1", ast.FieldDeclaration)
	field.Name = "plain"
	require.NoError(t, ast.AttachChild(class, field))

	tree, err := ast.NewTree(root, "java", "LoginPage.java")
	require.NoError(t, err)

	assert.Empty(t, AnnotatedLocators(tree))
}

func TestLocators_CommentFallsBackToEnclosingFieldDeclaration(t *testing.T) {
	root := mustNode(t, "n0", ast.CompilationUnit)
	class := mustNode(t, "n1", ast.ClassDeclaration)
	class.Name = "LoginPage"
	require.NoError(t, ast.AttachChild(root, class))

	field := mustNode(t, "f1", ast.FieldDeclaration)
	field.Comment = "the username input box"
	declarator := mustNode(t, "f1_decl", ast.VariableDeclarator)
	declarator.Name = "username"
	init := mustNode(t, "f1_init", ast.MethodInvocation)
	init.SetAttr("qualifier", "By")
	init.SetAttr("member", "cssSelector")
	lit := mustNode(t, "f1_arg", ast.Literal)
	lit.Name = `"#username"`
	require.NoError(t, ast.AttachChild(init, lit))
	require.NoError(t, ast.AttachChild(declarator, init))
	require.NoError(t, ast.AttachChild(field, declarator))
	require.NoError(t, ast.AttachChild(class, field))

	tree, err := ast.NewTree(root, "java", "LoginPage.java")
	require.NoError(t, err)

	table := symtab.Build(tree, nil)
	targets := Locators(tree, table)
	require.Len(t, targets, 1)
	assert.Equal(t, "the username input box", targets[0].Comment)
}

func TestEnclosingOfType_FindsInnermostNestedMatch(t *testing.T) {
	root := mustNode(t, "n0", ast.CompilationUnit)
	outer := mustNode(t, "n1", ast.ClassDeclaration)
	outer.Name = "Outer"
	inner := mustNode(t, "n2", ast.ClassDeclaration)
	inner.Name = "Inner"
	leaf := mustNode(t, "n3", ast.FieldDeclaration)
	leaf.Name = "field"

	require.NoError(t, ast.AttachChild(inner, leaf))
	require.NoError(t, ast.AttachChild(outer, inner))
	require.NoError(t, ast.AttachChild(root, outer))

	owner := enclosingOfType(root, leaf, ast.ClassDeclaration)
	require.NotNil(t, owner)
	assert.Equal(t, "Inner", owner.Name)
}
