// Package golangsrc is a second reference upstream.Provider, this one for Go
// source, grounded on inspector/golang/inspector.go's use of go/parser and
// go/ast. It exists to demonstrate that the canonical AST (spec §3) is not
// Java-specific: a project that expresses its page objects and tests in Go
// (for example ginkgo/gomega UI suites) gets the same extraction and IR
// stages as a Java one, by satisfying the same upstream.Provider contract.
package golangsrc

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strconv"

	canonast "github.com/qair/ir-compiler/ast"
	"github.com/qair/ir-compiler/pipelineerr"
)

// Provider parses Go source with go/parser.
type Provider struct{}

func New() *Provider { return &Provider{} }

func (p *Provider) Language() string { return "go" }

// Parse implements upstream.Provider (spec §6).
func (p *Provider) Parse(filePath string) (*canonast.Tree, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return nil, pipelineerr.NewParseError("", filePath, "reading source file", err)
	}
	return ParseSource(src, filePath)
}

// ParseSource parses Go source already in memory, mirroring
// inspector/golang/inspector.go's InspectSource/InspectFile split.
func ParseSource(src []byte, filePath string) (*canonast.Tree, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filePath, src, parser.ParseComments)
	if err != nil {
		return nil, pipelineerr.NewParseError("", filePath, "parsing go source", err)
	}

	conv := &converter{fset: fset}
	root, err := conv.convertFile(file)
	if err != nil {
		return nil, pipelineerr.NewParseError("", filePath, "normalizing go ast", err)
	}

	tree, err := canonast.NewTree(root, "go", filePath)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

type converter struct {
	fset    *token.FileSet
	counter int
}

func (c *converter) nextID() string {
	c.counter++
	return "n" + strconv.Itoa(c.counter)
}

func (c *converter) newNode(typ string) *canonast.Node {
	n, _ := canonast.NewNode(c.nextID(), typ)
	return n
}

func (c *converter) attach(parent *canonast.Node, children ...*canonast.Node) {
	for _, child := range children {
		if child == nil {
			continue
		}
		_ = canonast.AttachChild(parent, child)
	}
}

func (c *converter) loc(pos, end token.Pos) *canonast.Location {
	start := c.fset.Position(pos)
	stop := c.fset.Position(end)
	return &canonast.Location{
		StartLine:   start.Line,
		StartColumn: start.Column,
		EndLine:     stop.Line,
		EndColumn:   stop.Column,
		StartByte:   start.Offset,
		EndByte:     stop.Offset,
	}
}

// convertFile walks a *ast.File top-down, treating each type declaration
// with a struct body as a page-object-shaped "class" and each top-level
// func (or method) as a method declaration, the Go analogues of the Java
// constructs inspector/golang/inspector.go's processFile pass extracts.
func (c *converter) convertFile(file *ast.File) (*canonast.Node, error) {
	root := c.newNode(canonast.CompilationUnit)
	root.Location = c.loc(file.Pos(), file.End())

	pkg := c.newNode(canonast.PackageDeclaration)
	pkg.Name = file.Name.Name
	c.attach(root, pkg)

	for _, imp := range file.Imports {
		node := c.newNode(canonast.Import)
		if imp.Path != nil {
			node.Name = strconvUnquote(imp.Path.Value)
		}
		c.attach(root, node)
	}

	methodsByReceiver := map[string][]*canonast.Node{}
	classByName := map[string]*canonast.Node{}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			switch d.Tok {
			case token.TYPE:
				for _, spec := range d.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					class := c.convertTypeSpec(ts)
					classByName[ts.Name.Name] = class
					c.attach(root, class)
				}
			case token.VAR:
				for _, spec := range d.Specs {
					vs, ok := spec.(*ast.ValueSpec)
					if !ok {
						continue
					}
					c.attach(root, c.convertVarSpec(vs)...)
				}
			}
		case *ast.FuncDecl:
			method := c.convertFuncDecl(d)
			if d.Recv == nil || len(d.Recv.List) == 0 {
				c.attach(root, method)
				continue
			}
			recv := receiverTypeName(d.Recv.List[0].Type)
			methodsByReceiver[recv] = append(methodsByReceiver[recv], method)
		}
	}

	for recv, methods := range methodsByReceiver {
		class, ok := classByName[recv]
		if !ok {
			class = c.newNode(canonast.ClassDeclaration)
			class.Name = recv
			c.attach(root, class)
		}
		c.attach(class, methods...)
	}

	return root, nil
}

func (c *converter) convertTypeSpec(ts *ast.TypeSpec) *canonast.Node {
	class := c.newNode(canonast.ClassDeclaration)
	class.Name = ts.Name.Name
	class.Location = c.loc(ts.Pos(), ts.End())

	structType, ok := ts.Type.(*ast.StructType)
	if !ok || structType.Fields == nil {
		return class
	}
	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			fieldNode := c.newNode(canonast.FieldDeclaration)
			fieldNode.Location = c.loc(field.Pos(), field.End())
			c.attach(class, fieldNode)
			continue
		}
		for _, name := range field.Names {
			fieldNode := c.newNode(canonast.FieldDeclaration)
			fieldNode.Name = name.Name
			fieldNode.Location = c.loc(field.Pos(), field.End())
			if typeText := receiverTypeName(field.Type); typeText != "" {
				fieldNode.SetAttr("type", typeText)
			}
			c.attach(class, fieldNode)
		}
	}
	return class
}

// convertVarSpec converts a package-level `var name = expr(...)` declaration
// into a LocalVarDeclaration wrapping a VariableDeclarator, the Go analogue
// of a Java field initialized inline (e.g. `private By x = By.cssSelector(
// ...)`). Go struct fields carry no initializer syntax, so this is the one
// place a Go-sourced locator's initializer call becomes a real child node
// symtab's firstInitializer (symtab/declaration.go) can see, the same way
// it sees a Java field's initializer.
func (c *converter) convertVarSpec(vs *ast.ValueSpec) []*canonast.Node {
	var out []*canonast.Node
	for i, name := range vs.Names {
		decl := c.newNode(canonast.LocalVarDeclaration)
		decl.Location = c.loc(vs.Pos(), vs.End())

		declarator := c.newNode(canonast.VariableDeclarator)
		declarator.Name = name.Name
		if vs.Type != nil {
			if typeText := receiverTypeName(vs.Type); typeText != "" {
				decl.SetAttr("type", typeText)
				declarator.SetAttr("type", typeText)
			}
		}
		if i < len(vs.Values) {
			if call, ok := vs.Values[i].(*ast.CallExpr); ok {
				c.attach(declarator, c.convertExpr(call))
			}
		}
		c.attach(decl, declarator)
		out = append(out, decl)
	}
	return out
}

func (c *converter) convertFuncDecl(fn *ast.FuncDecl) *canonast.Node {
	method := c.newNode(canonast.MethodDeclaration)
	method.Name = fn.Name.Name
	method.Location = c.loc(fn.Pos(), fn.End())
	for _, param := range fn.Type.Params.List {
		for _, name := range param.Names {
			p := c.newNode(canonast.FormalParameter)
			p.Name = name.Name
			c.attach(method, p)
		}
	}
	if fn.Body != nil {
		body := c.convertBlock(fn.Body)
		c.attach(method, body)
	}
	return method
}

func (c *converter) convertBlock(block *ast.BlockStmt) *canonast.Node {
	b := c.newNode(canonast.BlockStatement)
	b.Location = c.loc(block.Pos(), block.End())
	for _, stmt := range block.List {
		if n := c.convertStmt(stmt); n != nil {
			c.attach(b, n)
		}
	}
	return b
}

func (c *converter) convertStmt(stmt ast.Stmt) *canonast.Node {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		wrapper := c.newNode(canonast.StatementExpression)
		wrapper.Location = c.loc(s.Pos(), s.End())
		c.attach(wrapper, c.convertExpr(s.X))
		return wrapper
	case *ast.IfStmt:
		n := c.newNode(canonast.IfStatement)
		n.Location = c.loc(s.Pos(), s.End())
		c.attach(n, c.convertBlock(s.Body))
		return n
	case *ast.ReturnStmt:
		n := c.newNode(canonast.ReturnStatement)
		n.Location = c.loc(s.Pos(), s.End())
		for _, r := range s.Results {
			c.attach(n, c.convertExpr(r))
		}
		return n
	case *ast.AssignStmt:
		n := c.newNode(canonast.Assignment)
		n.Location = c.loc(s.Pos(), s.End())
		for _, r := range s.Rhs {
			c.attach(n, c.convertExpr(r))
		}
		return n
	case *ast.BlockStmt:
		return c.convertBlock(s)
	default:
		n := c.newNode(canonast.Other)
		n.SetAttr("rawType", "go-stmt")
		return n
	}
}

func (c *converter) convertExpr(expr ast.Expr) *canonast.Node {
	switch e := expr.(type) {
	case *ast.CallExpr:
		n := c.newNode(canonast.MethodInvocation)
		n.Location = c.loc(e.Pos(), e.End())
		switch fun := e.Fun.(type) {
		case *ast.SelectorExpr:
			n.SetAttr("qualifier", exprText(fun.X))
			n.SetAttr("member", fun.Sel.Name)
		case *ast.Ident:
			n.SetAttr("qualifier", "")
			n.SetAttr("member", fun.Name)
		}
		for _, arg := range e.Args {
			c.attach(n, c.convertExpr(arg))
		}
		return n
	case *ast.SelectorExpr:
		n := c.newNode(canonast.MemberReference)
		n.Name = selectorName(e)
		n.SetAttr("member", e.Sel.Name)
		return n
	case *ast.Ident:
		n := c.newNode(canonast.MemberReference)
		n.Name = e.Name
		n.SetAttr("member", e.Name)
		return n
	case *ast.BasicLit:
		n := c.newNode(canonast.Literal)
		n.Name = e.Value
		return n
	case *ast.BinaryExpr:
		n := c.newNode(canonast.BinaryOperation)
		n.SetAttr("operator", e.Op.String())
		c.attach(n, c.convertExpr(e.X), c.convertExpr(e.Y))
		return n
	default:
		n := c.newNode(canonast.Other)
		n.SetAttr("rawType", "go-expr")
		return n
	}
}

func selectorName(e *ast.SelectorExpr) string {
	return e.Sel.Name
}

func exprText(expr ast.Expr) string {
	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

func receiverTypeName(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

func strconvUnquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
