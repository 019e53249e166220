package ast

import "github.com/qair/ir-compiler/pipelineerr"

// Tree wraps a root Node plus the language it was parsed from and the file
// it came from (spec §3: "ASTTree... Required; file_path non-empty").
type Tree struct {
	Root     *Node
	Language string
	FilePath string
}

// NewTree validates and wraps root into a Tree. It enforces invariants (1)-
// (4) of spec §3 over the whole tree before returning, so every Tree in the
// system is known-good at construction time (spec §4.A: "enforce structural
// invariants at construction time").
func NewTree(root *Node, language, filePath string) (*Tree, error) {
	if filePath == "" {
		return nil, structuralError("", filePath, "tree file_path must be non-empty")
	}
	if root == nil {
		return nil, structuralError("", filePath, "tree root must be non-nil")
	}
	if err := Validate(root); err != nil {
		if pe, ok := err.(*pipelineerr.Error); ok {
			pe.FilePath = filePath
		}
		return nil, err
	}
	return &Tree{Root: root, Language: language, FilePath: filePath}, nil
}

// Validate walks root and checks the four structural invariants of spec §3:
// (1) no node is its own child, (2) every child's ParentID equals its
// parent's ID, (3) ids are unique within the tree, (4) every Type is
// non-empty. It is exposed so upstream adapters that build trees outside of
// AttachChild (e.g. by assigning Children directly) can still be validated
// before being handed to the pipeline.
func Validate(root *Node) error {
	seen := make(map[string]*Node)
	var walkErr error
	var visit func(n *Node)
	visit = func(n *Node) {
		if walkErr != nil || n == nil {
			return
		}
		if n.Type == "" {
			walkErr = structuralError("", "", "node %q has empty type", n.ID)
			return
		}
		if existing, ok := seen[n.ID]; ok && existing != n {
			walkErr = structuralError("", "", "duplicate node id %q", n.ID)
			return
		}
		seen[n.ID] = n
		for _, c := range n.Children {
			if walkErr != nil {
				return
			}
			if c == n || (c.ID != "" && c.ID == n.ID) {
				walkErr = structuralError("", "", "node %q cannot be its own child", n.ID)
				return
			}
			if c.ParentID != n.ID {
				walkErr = structuralError("", "", "node %q has parent_id %q, expected %q", c.ID, c.ParentID, n.ID)
				return
			}
			visit(c)
		}
	}
	visit(root)
	return walkErr
}
