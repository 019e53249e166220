// Package raw holds the producer-side records of the extraction boundary
// (spec §3): unresolved step/target/test data emitted by the extractors
// (§4.C-§4.G) before the IR linker (§4.H) normalizes them and resolves
// symbolic target names to ids.
package raw

// Step is one action or assertion observed inside a test or page-object
// method, before target-name resolution. TargetNameID is the symbolic name
// of the UI target the step manipulates (e.g. "emailInput"); it is not yet
// an IR targetId. Either field may be empty when the step could not be
// bound to any target (spec §4.E rule 4, §8 Scenario 5).
type Step struct {
	Type         string // "action" | "assertion"
	Name         string
	TargetNameID string
	TargetNodeID string
	Parameters   map[string]any
}

// Target is one locator harvested by the Locator Extractor (spec §4.C).
// Page is the enclosing class name, used both for the `(page, name)`
// de-duplication key and as the eventual TargetIR.context.page.
type Target struct {
	Name         string
	Strategy     string
	LocatorValue string
	Page         string
	NodeID       string
	Comment      string // leading doc comment on the declaring field, if any
}

// Test is one discovered test method, with its ordered steps in source
// order (spec §4.G: "step order in output matches source order").
type Test struct {
	Name      string
	SuiteHint string
	Steps     []Step
	Tags      []string
	Comment   string // leading doc comment on the test method, if any
}

// Suite is one discovered suite grouping, named the way the source
// annotates it (a `@RunWith`/`@Suite` class). No suite is recorded for a
// file or class without such an annotation.
type Suite struct {
	Name        string
	Description string
	TestNames   []string
}

// FileRecords is the complete raw output of running the Extractor
// Orchestrator (spec §4.G) over one AST tree.
type FileRecords struct {
	FilePath string
	Targets  []Target
	Tests    []Test
	Suites   []Suite
}
