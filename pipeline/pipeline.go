// Package pipeline wires the pure per-file stages (A-E, package extract) and
// the single-threaded linking stage (F, package ir) into the two entry
// points external callers use: AnalyzeFile for one AST tree and BuildIR for
// the join point over every file's raw records (spec §4, §5). Batch adds
// the one-level-up parallel fan-out spec §5 names but places outside the
// core.
package pipeline

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/qair/ir-compiler/ast"
	"github.com/qair/ir-compiler/extract"
	"github.com/qair/ir-compiler/ir"
	"github.com/qair/ir-compiler/pipelineerr"
	"github.com/qair/ir-compiler/raw"
	"github.com/qair/ir-compiler/schema"
	"github.com/qair/ir-compiler/symtab"
)

// Pipeline threads an optional logger through the core stages (SPEC_FULL.md
// §1.2). A nil *Pipeline or nil Logger is valid: every method degrades to
// silent operation, since Diagnostics, not logging, is the authoritative
// record (spec §7).
type Pipeline struct {
	Logger *zerolog.Logger
}

// AnalyzeFile runs stages A-E (symbol table, extractors, orchestrator) over
// one already-parsed AST tree (spec §4.G). It is pure: registry, when
// non-nil, is read-only project-wide state (spec §5), never mutated here.
func (p *Pipeline) AnalyzeFile(tree *ast.Tree, registry *symtab.Registry, project string) (raw.FileRecords, *pipelineerr.Diagnostics) {
	p.trace("analyze %s: start (%s)", tree.FilePath, tree.Language)
	records, diags := extract.Orchestrate(tree, registry, project)
	for _, w := range diags.Warnings {
		p.mirrorWarning(w)
	}
	p.trace("analyze %s: done (%d targets, %d tests)", tree.FilePath, len(records.Targets), len(records.Tests))
	return records, diags
}

// BuildIR runs stage F (package ir) over every file's raw records, then, if
// validator is non-nil, validates every produced IR document (spec §6:
// "the core invokes it after each IR document is built; validation failure
// is a fatal error").
func (p *Pipeline) BuildIR(cfg ir.Config, files []raw.FileRecords, diags *pipelineerr.Diagnostics, validator schema.Validator) (*ir.Bundle, error) {
	p.trace("build: linking %d files for project %s", len(files), cfg.ProjectName)
	bundle, err := ir.Build(cfg, files, diags)
	if err != nil {
		p.trace("build: failed: %v", err)
		return nil, err
	}
	if validator != nil {
		if err := validateBundle(cfg.ProjectName, bundle, validator); err != nil {
			p.trace("build: schema validation failed: %v", err)
			return nil, err
		}
	}
	p.trace("build: done (%d targets, %d tests, %d suites)", len(bundle.Targets), len(bundle.Tests), len(bundle.Suites))
	return bundle, nil
}

// validateBundle runs validator over every IR document in bundle
// individually, matching §6's "after each IR document is built" wording
// rather than validating the bundle as a single opaque blob.
func validateBundle(project string, bundle *ir.Bundle, validator schema.Validator) error {
	docs := make([]any, 0, 2+len(bundle.Targets)+len(bundle.Suites)+len(bundle.Tests)+len(bundle.TestData))
	docs = append(docs, bundle.Project, bundle.Environment)
	for _, t := range bundle.Targets {
		docs = append(docs, t)
	}
	for _, s := range bundle.Suites {
		docs = append(docs, s)
	}
	for _, d := range bundle.TestData {
		docs = append(docs, d)
	}
	for _, t := range bundle.Tests {
		docs = append(docs, t)
	}
	for _, doc := range docs {
		result, err := validator.Validate(doc, nil)
		if err != nil {
			return pipelineerr.NewSchemaValidationError(project, "", "schema validator returned an error", err)
		}
		if !result.Valid {
			return pipelineerr.NewSchemaValidationError(project, "", strings.Join(result.Errors, "; "), nil)
		}
	}
	return nil
}

func (p *Pipeline) trace(format string, args ...any) {
	if p == nil || p.Logger == nil {
		return
	}
	p.Logger.Trace().Msgf(format, args...)
}

// mirrorWarning writes an ExtractionWarning to the logger as a convenience;
// diags remains the authoritative record (spec §7), this is a human-facing
// echo only.
func (p *Pipeline) mirrorWarning(err *pipelineerr.Error) {
	if p == nil || p.Logger == nil || err == nil {
		return
	}
	p.Logger.Warn().Str("file", err.FilePath).Msg(err.Message)
}
