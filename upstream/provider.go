// Package upstream defines the contract every language-specific parser
// adapter satisfies (spec §6: "Upstream AST provider. Contract:
// parse(file_path, language) -> ASTTree"). The core pipeline never imports
// a concrete adapter directly; it only depends on this interface, so a new
// source language is added by implementing Provider, not by touching the
// analysis stages.
package upstream

import "github.com/qair/ir-compiler/ast"

// Provider parses one source file into a canonical AST tree satisfying the
// structural invariants of spec §4.A. Implementations should normalize
// language-specific node kinds into the canonical set (spec §3) where
// possible, and fall back to ast.Other with the raw kind preserved as an
// attribute otherwise (spec §9).
type Provider interface {
	Parse(filePath string) (*ast.Tree, error)
	Language() string
}
