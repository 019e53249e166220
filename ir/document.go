// Package ir implements the IR Builders & Linker stage (spec §4.H): typed
// documents assembled from raw records (package raw), with deterministic
// target ids and a second pass of name->id resolution so every step's
// targetId points into the project's target list. The documents are plain
// structs with exported fields: nothing stops a caller from changing a
// Bundle after Build returns, and a Step's Parameters map is the same map
// as the raw step's it was built from.
package ir

// Project is the top-level IR document (spec §3 ProjectIR).
type Project struct {
	IRVersion           string `json:"irVersion"`
	ProjectName         string `json:"projectName"`
	SourceFramework     string `json:"sourceFramework"`
	TargetFramework     string `json:"targetFramework"`
	ArchitecturePattern string `json:"architecturePattern"`
	SupportsParallel    bool   `json:"supportsParallel"`
	CreatedOn           string `json:"createdOn"`
}

// Environment is the execution-environment IR document (spec §3
// EnvironmentIR).
type Environment struct {
	BaseURLs      map[string]string `json:"baseUrls"`
	ExecutionMode string            `json:"executionMode"`
	Browsers      []string          `json:"browsers"`
	Timeouts      Timeouts          `json:"timeouts"`
	RetryPolicy   RetryPolicy       `json:"retryPolicy"`
}

type Timeouts struct {
	Implicit int `json:"implicit"`
	Explicit int `json:"explicit"`
	PageLoad int `json:"pageLoad"`
}

type RetryPolicy struct {
	Enabled    bool `json:"enabled"`
	MaxRetries int  `json:"maxRetries"`
}

// SelectorStrategy is one candidate strategy/value pair for a Target (spec
// §3 TargetIR.selectorStrategies).
type SelectorStrategy struct {
	Strategy       string  `json:"strategy"`
	Value          string  `json:"value"`
	StabilityScore float64 `json:"stabilityScore"`
}

// Target is the IR-level locator (spec §3 TargetIR).
type Target struct {
	TargetID           string             `json:"targetId"`
	Type               string             `json:"type"`
	Context            TargetContext      `json:"context"`
	Semantic           TargetSemantic     `json:"semantic"`
	SelectorStrategies []SelectorStrategy `json:"selectorStrategies"`
	PreferredStrategy  string             `json:"preferredStrategy"`
}

type TargetContext struct {
	Page      string `json:"page,omitempty"`
	Component string `json:"component,omitempty"`
	Frame     string `json:"frame,omitempty"`
}

type TargetSemantic struct {
	Role         string `json:"role,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
}

// TestData is one named data set (spec §3 TestDataIR).
type TestData struct {
	DataSetID string           `json:"dataSetId"`
	Type      string           `json:"type"`
	Records   []map[string]any `json:"records"`
}

// Suite groups tests (spec §3 SuiteIR).
type Suite struct {
	SuiteID     string   `json:"suiteId"`
	Description string   `json:"description"`
	Tests       []string `json:"tests"`
}

// DataSource is the shared shape of an assertion's actual/expected operand
// (spec §3 AssertionIR.DataSource).
type DataSource struct {
	Source   string  `json:"source"`
	Field    string  `json:"field,omitempty"`
	TargetID string  `json:"targetId,omitempty"`
	Value    any     `json:"value,omitempty"`
	Masked   bool    `json:"masked,omitempty"`
}

// Input is a step's input binding (spec §3 StepIR.input).
type Input struct {
	Source string `json:"source,omitempty"`
	Field  string `json:"field,omitempty"`
	Masked bool   `json:"masked,omitempty"`
}

// StepTarget mirrors spec §3's "target (url/selector struct)" field: the
// resolved selector text, populated at link time from the bound TargetIR
// when available.
type StepTarget struct {
	Selector string `json:"selector,omitempty"`
	Strategy string `json:"strategy,omitempty"`
}

// Step is one action inside a TestIR (spec §3 StepIR).
type Step struct {
	StepID     string         `json:"stepId"`
	Action     string         `json:"action"`
	TargetID   string         `json:"targetId,omitempty"`
	Target     StepTarget     `json:"target"`
	Input      Input          `json:"input"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Assertion is one assertion inside a TestIR (spec §3 AssertionIR).
type Assertion struct {
	AssertID string     `json:"assertId"`
	Type     string     `json:"type"`
	Actual   DataSource `json:"actual"`
	Expected DataSource `json:"expected"`
}

// DataBinding describes how a TestIR iterates a TestDataIR (spec §3
// TestIR.dataBinding).
type DataBinding struct {
	DataSetID        string `json:"dataSetId,omitempty"`
	IterationStrategy string `json:"iterationStrategy,omitempty"`
}

// Test is the IR-level test (spec §3 TestIR).
type Test struct {
	TestID      string      `json:"testId"`
	SuiteID     string      `json:"suiteId"`
	Description string      `json:"description,omitempty"`
	Priority    string      `json:"priority"`
	Severity    string      `json:"severity"`
	DataBinding DataBinding `json:"dataBinding"`
	Steps       []Step      `json:"steps"`
	Assertions  []Assertion `json:"assertions"`
	Tags        []string    `json:"tags"`
}

// Bundle is the complete, fully-linked output of one pipeline invocation
// (spec §4.H, §7: "either the full, validated IR for a project is produced
// or the invocation fails wholesale").
type Bundle struct {
	Project     Project
	Environment Environment
	Targets     []Target
	TestData    []TestData
	Suites      []Suite
	Tests       []Test
}
