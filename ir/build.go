package ir

import (
	"sort"

	"github.com/qair/ir-compiler/pipelineerr"
	"github.com/qair/ir-compiler/raw"
)

// Build assembles a Bundle from every file's raw records, following the
// load-bearing ordering of spec §4.H: project, then targets + name->id map,
// then suites and data, then tests with step/assertion linking. It never
// returns a partial bundle (spec §7): on any fatal error, the returned
// Bundle is nil.
func Build(cfg Config, files []raw.FileRecords, diags *pipelineerr.Diagnostics) (*Bundle, error) {
	if cfg.ProjectName == "" {
		return nil, pipelineerr.NewConfigError("", "projectName is required")
	}
	project := cfg.ProjectName

	targets, nameToID, err := normalizeTargets(project, files)
	if err != nil {
		return nil, err
	}

	suites, err := buildSuites(project, files)
	if err != nil {
		return nil, err
	}
	suiteIDs := make(map[string]bool, len(suites))
	for _, s := range suites {
		suiteIDs[s.SuiteID] = true
	}

	tests, err := buildTests(project, files, nameToID, suites, diags)
	if err != nil {
		return nil, err
	}
	testsBySuite := make(map[string][]string, len(suites))
	for _, t := range tests {
		if !suiteIDs[t.SuiteID] {
			return nil, pipelineerr.NewReferenceError(project, "", "test \""+t.TestID+"\" references unknown suite \""+t.SuiteID+"\"")
		}
		testsBySuite[t.SuiteID] = append(testsBySuite[t.SuiteID], t.TestID)
	}
	for i := range suites {
		suites[i].Tests = testsBySuite[suites[i].SuiteID]
	}

	return &Bundle{
		Project: Project{
			IRVersion:           "1.0",
			ProjectName:         cfg.ProjectName,
			SourceFramework:     cfg.SourceFramework,
			TargetFramework:     cfg.TargetFramework,
			ArchitecturePattern: cfg.ArchitecturePattern,
			SupportsParallel:    cfg.SupportsParallel,
			CreatedOn:           cfg.CreatedOn,
		},
		Environment: Environment{
			BaseURLs:      cfg.Environments,
			ExecutionMode: "sequential",
			Timeouts:      Timeouts{Implicit: 5000, Explicit: 10000, PageLoad: 30000},
			RetryPolicy:   RetryPolicy{Enabled: false, MaxRetries: 0},
		},
		Targets:  targets,
		TestData: nil,
		Suites:   suites,
		Tests:    tests,
	}, nil
}

// buildSuites constructs SuiteIRs (spec §4.H step 4). Explicit suites found
// by the extractor (class-level @RunWith/@Suite, spec SPEC_FULL.md §2.1)
// are built first; a test with no suite_hint falls back to a single
// implicit "Default" suite. A non-empty suite_hint that names no explicit
// suite is NOT papered over here: it is left unresolved so Build's
// post-link check can raise the fatal ReferenceError spec §4.H/§7 require.
func buildSuites(project string, files []raw.FileRecords) ([]Suite, error) {
	byName := map[string]*Suite{}
	var order []string

	addSuite := func(name, description string) {
		if _, exists := byName[name]; exists {
			return
		}
		order = append(order, name)
		byName[name] = &Suite{SuiteID: name, Description: description}
	}

	for _, file := range files {
		for _, s := range file.Suites {
			addSuite(s.Name, s.Description)
		}
	}
	for _, file := range files {
		for _, t := range file.Tests {
			if t.SuiteHint == "" {
				addSuite("Default", "Default")
			}
		}
	}

	sort.Strings(order)
	out := make([]Suite, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out, nil
}
