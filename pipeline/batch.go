package pipeline

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/qair/ir-compiler/ast"
	"github.com/qair/ir-compiler/ir"
	"github.com/qair/ir-compiler/pipelineerr"
	"github.com/qair/ir-compiler/raw"
	"github.com/qair/ir-compiler/schema"
	"github.com/qair/ir-compiler/symtab"
	"github.com/qair/ir-compiler/upstream"
)

// Batch is the join point spec §5 places "one level up" from the core: it
// parses every source file with an upstream.Provider, fans out stages A-E
// in parallel via errgroup, and runs stage F once, single-threaded, over
// the joined raw records (SPEC_FULL.md §2.2). Provider is required;
// Validator and Logger are optional collaborators.
type Batch struct {
	Provider  upstream.Provider
	Validator schema.Validator
	Logger    *zerolog.Logger

	// Concurrency bounds the number of files parsed/analyzed at once. Zero
	// means unbounded (errgroup.Group's default), matching
	// the teacher's own unbounded errgroup.Go usage.
	Concurrency int
}

// NewBatch constructs a Batch around the given upstream provider.
func NewBatch(provider upstream.Provider) *Batch {
	return &Batch{Provider: provider}
}

// Run parses sourceFiles, builds a project-wide symbol registry, analyzes
// every file in parallel, then links the joined raw records into one
// Bundle. File-submission order is preserved in the intermediate slices
// regardless of goroutine completion order (SPEC_FULL.md §2.2), so output
// determinism (spec §5) never depends on scheduling.
func (b *Batch) Run(ctx context.Context, cfg ir.Config, sourceFiles []string) (*ir.Bundle, *pipelineerr.Diagnostics, error) {
	pl := &Pipeline{Logger: b.Logger}

	trees, err := b.parseAll(ctx, cfg.ProjectName, sourceFiles)
	if err != nil {
		return nil, nil, err
	}

	registry := symtab.NewRegistry()
	for _, tree := range trees {
		if tree == nil {
			continue
		}
		registry.Merge(symtab.Build(tree, nil))
	}

	records := make([]raw.FileRecords, len(trees))
	fileDiags := make([]*pipelineerr.Diagnostics, len(trees))
	g, _ := errgroup.WithContext(ctx)
	if b.Concurrency > 0 {
		g.SetLimit(b.Concurrency)
	}
	for i, tree := range trees {
		i, tree := i, tree
		g.Go(func() error {
			if tree == nil {
				return nil
			}
			rec, d := pl.AnalyzeFile(tree, registry, cfg.ProjectName)
			records[i] = rec
			fileDiags[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	diags := &pipelineerr.Diagnostics{}
	for _, d := range fileDiags {
		if d != nil {
			diags.Warnings = append(diags.Warnings, d.Warnings...)
		}
	}

	bundle, err := pl.BuildIR(cfg, records, diags, b.Validator)
	if err != nil {
		return nil, diags, err
	}
	return bundle, diags, nil
}

// parseAll invokes Provider.Parse for every source file concurrently,
// returning trees indexed by their position in sourceFiles. Parsing is an
// external-collaborator concern (spec §6), not one of the pure core
// stages, but batching it here is what lets Run offer one synchronous
// entry point over a file list.
func (b *Batch) parseAll(ctx context.Context, project string, sourceFiles []string) ([]*ast.Tree, error) {
	trees := make([]*ast.Tree, len(sourceFiles))
	g, _ := errgroup.WithContext(ctx)
	if b.Concurrency > 0 {
		g.SetLimit(b.Concurrency)
	}
	for i, path := range sourceFiles {
		i, path := i, path
		g.Go(func() error {
			tree, err := b.Provider.Parse(path)
			if err != nil {
				return pipelineerr.NewParseError(project, path, "parsing upstream source", err)
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trees, nil
}
