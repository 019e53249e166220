package ir

// Config is the typed configuration the core accepts (spec §6: "the core
// accepts a typed configuration"). The CLI, config file format, and schema
// validation that produce one are out of scope (spec §1); this struct is
// the boundary.
type Config struct {
	ProjectName         string
	SourceFramework     string
	TargetFramework     string
	ArchitecturePattern string
	SupportsParallel    bool
	Environments        map[string]string
	CreatedOn           string
}

// stabilityScores gives each locator strategy a default stability score in
// [0,1] (spec §4.H step 2: "a default stabilityScore based on strategy
// kind"). The exact scale is implementation-chosen; this one favors
// strategies less likely to break under markup churn (id, css) over
// positional ones (xpath, tagName).
var stabilityScores = map[string]float64{
	"id":              0.98,
	"css":             0.95,
	"name":            0.90,
	"className":       0.85,
	"linkText":        0.75,
	"partialLinkText": 0.70,
	"xpath":           0.80,
	"tagName":         0.60,
}

func stabilityScore(strategy string) float64 {
	if s, ok := stabilityScores[strategy]; ok {
		return s
	}
	return 0.5
}
