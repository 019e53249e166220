// Package ast provides the canonical AST model (spec §3, §4.A): a single
// tagged-union-style node type shared by every upstream language parser,
// plus the structural invariants every tree built on it must satisfy.
package ast

// Canonical node type tags (spec §3). Upstream providers that emit a type
// outside this set should either normalize to one of these or preserve a
// conservative tag as-is (spec §6, §9) — extractors treat unknown types as
// opaque rather than failing.
const (
	CompilationUnit        = "CompilationUnit"
	PackageDeclaration     = "PackageDeclaration"
	Import                 = "Import"
	ClassDeclaration       = "ClassDeclaration"
	InterfaceDeclaration   = "InterfaceDeclaration"
	MethodDeclaration      = "MethodDeclaration"
	ConstructorDeclaration = "ConstructorDeclaration"
	FieldDeclaration       = "FieldDeclaration"
	FormalParameter        = "FormalParameter"
	VariableDeclarator     = "VariableDeclarator"
	LocalVarDeclaration    = "LocalVariableDeclaration"
	BlockStatement         = "BlockStatement"
	IfStatement            = "IfStatement"
	ReturnStatement        = "ReturnStatement"
	StatementExpression    = "StatementExpression"
	Assignment             = "Assignment"
	BinaryOperation        = "BinaryOperation"
	MethodInvocation       = "MethodInvocation"
	MemberReference        = "MemberReference"
	ReferenceType          = "ReferenceType"
	BasicType              = "BasicType"
	Literal                = "Literal"
	This                   = "This"
	Annotation             = "Annotation"
	Other                  = "Other"

	// Derived tags (spec §3). The symbol table does not read them; it
	// matches declarations by node type instead.
	TagField     = "field"
	TagVariable  = "variable"
	TagParameter = "parameter"
)

// Location is the optional source-location attribute of a Node.
type Location struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
	StartByte   int
	EndByte     int
}

// Node is a node in the canonical tree (spec §3). It is the single
// variant-like type every language adapter normalizes into: a stable id, a
// type tag drawn (ideally) from the canonical set above, an optional name,
// an optional parent id, ordered children, an optional location and a
// free-form attribute bag for language-specific metadata such as `member`,
// `qualifier`, `operator`, or `modifiers`.
//
// Children are owned by their parent (spec §9: "Do not model parent as an
// owning reference"); ParentID is a non-owning back-reference populated by
// AttachChild, never by direct field assignment; NewTree only checks it.
type Node struct {
	ID         string
	Type       string
	Name       string
	ParentID   string
	Children   []*Node
	Location   *Location
	Comment    string
	Attributes map[string]any
}

// NewNode constructs a leaf node, validating invariant (4): Type must be
// non-empty.
func NewNode(id, typ string) (*Node, error) {
	if typ == "" {
		return nil, structuralErrorf("", "", "node %q has empty type", id)
	}
	return &Node{ID: id, Type: typ}, nil
}

// Attr returns the named attribute and whether it was present.
func (n *Node) Attr(key string) (any, bool) {
	if n == nil || n.Attributes == nil {
		return nil, false
	}
	v, ok := n.Attributes[key]
	return v, ok
}

// AttrString returns the named attribute as a string, or "" if absent or
// not a string.
func (n *Node) AttrString(key string) string {
	v, ok := n.Attr(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// SetAttr sets a language-specific attribute, creating the map on first use.
func (n *Node) SetAttr(key string, value any) {
	if n.Attributes == nil {
		n.Attributes = map[string]any{}
	}
	n.Attributes[key] = value
}

// AttachChild appends child to parent's children and sets child.ParentID,
// enforcing invariants (1) and (2): a node may not be its own child, and
// every child's ParentID must equal its parent's ID (spec §4.A).
func AttachChild(parent, child *Node) error {
	if parent == nil || child == nil {
		return structuralErrorf("", "", "cannot attach nil node")
	}
	if parent == child || (parent.ID != "" && parent.ID == child.ID) {
		return structuralErrorf("", "", "node %q cannot be its own child", parent.ID)
	}
	child.ParentID = parent.ID
	parent.Children = append(parent.Children, child)
	return nil
}

// Walk performs a pre-order depth-first traversal of the tree rooted at n,
// invoking visit for every node including n itself. Traversal order is
// deterministic (children in declaration order), which downstream
// extractors rely on for step ordering (spec §4.G, §8 property 7).
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// Find returns the first node for which match returns true, in pre-order,
// or nil if none matches.
func Find(n *Node, match func(*Node) bool) *Node {
	var found *Node
	Walk(n, func(c *Node) {
		if found == nil && match(c) {
			found = c
		}
	})
	return found
}

// FindAll returns every node for which match returns true, in pre-order.
func FindAll(n *Node, match func(*Node) bool) []*Node {
	var out []*Node
	Walk(n, func(c *Node) {
		if match(c) {
			out = append(out, c)
		}
	})
	return out
}

// ChildrenOfType returns n's direct children whose Type equals one of types.
func ChildrenOfType(n *Node, types ...string) []*Node {
	if n == nil {
		return nil
	}
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	var out []*Node
	for _, c := range n.Children {
		if set[c.Type] {
			out = append(out, c)
		}
	}
	return out
}

func structuralErrorf(project, filePath, format string, args ...any) error {
	return structuralError(project, filePath, format, args...)
}
