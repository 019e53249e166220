package ast

// Canonical is the deterministic, JSON-serializable projection of a Node
// (spec §4.A: "serialize to deterministic structured form"). Field order
// is fixed by struct declaration and the Attributes map is sorted by key
// by encoding/json, so two structurally identical trees always marshal to
// byte-identical JSON regardless of how they were built.
type Canonical struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Name       string         `json:"name,omitempty"`
	ParentID   string         `json:"parentId,omitempty"`
	Comment    string         `json:"comment,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
	Children   []Canonical    `json:"children,omitempty"`
}

// ToCanonical converts n (and its subtree) into its deterministic form.
func ToCanonical(n *Node) Canonical {
	if n == nil {
		return Canonical{}
	}
	c := Canonical{
		ID:         n.ID,
		Type:       n.Type,
		Name:       n.Name,
		ParentID:   n.ParentID,
		Comment:    n.Comment,
		Attributes: n.Attributes,
	}
	for _, child := range n.Children {
		c.Children = append(c.Children, ToCanonical(child))
	}
	return c
}
