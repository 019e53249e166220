package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qair/ir-compiler/pipelineerr"
	"github.com/qair/ir-compiler/raw"
)

func TestTargetID_Deterministic(t *testing.T) {
	id1, err := TargetID("LoginPage", "loginButton", "css", "#login-btn")
	require.NoError(t, err)
	id2, err := TargetID("LoginPage", "loginButton", "css", "#login-btn")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
	assert.Len(t, id1, 12)
}

func TestTargetID_VariesWithEachComponent(t *testing.T) {
	base, _ := TargetID("LoginPage", "loginButton", "css", "#login-btn")
	variants := []string{}
	for _, id := range []func() (string, error){
		func() (string, error) { return TargetID("OtherPage", "loginButton", "css", "#login-btn") },
		func() (string, error) { return TargetID("LoginPage", "otherButton", "css", "#login-btn") },
		func() (string, error) { return TargetID("LoginPage", "loginButton", "xpath", "#login-btn") },
		func() (string, error) { return TargetID("LoginPage", "loginButton", "css", "#other-btn") },
	} {
		v, err := id()
		require.NoError(t, err)
		variants = append(variants, v)
	}
	for _, v := range variants {
		assert.NotEqual(t, base, v)
	}
}

func TestStepID_Format(t *testing.T) {
	assert.Equal(t, "STEP_01", StepID(1))
	assert.Equal(t, "STEP_99", StepID(99))
	assert.Equal(t, "STEP_100", StepID(100))
}

func scenario1Files() []raw.FileRecords {
	return []raw.FileRecords{
		{
			FilePath: "LoginPage.java",
			Targets: []raw.Target{
				{Name: "username", Strategy: "css", LocatorValue: "#username", Page: "LoginPage", NodeID: "f1_init"},
				{Name: "password", Strategy: "css", LocatorValue: "#password", Page: "LoginPage", NodeID: "f2_init"},
				{Name: "loginButton", Strategy: "css", LocatorValue: "#login-btn", Page: "LoginPage", NodeID: "f3_init"},
			},
			Suites: []raw.Suite{
				{Name: "LoginPageTest", Description: "LoginPageTest"},
			},
			Tests: []raw.Test{
				{
					Name:      "testLogin",
					SuiteHint: "LoginPageTest",
					Steps: []raw.Step{
						{Type: "action", Name: "click", TargetNameID: "loginButton", TargetNodeID: "f3_init"},
					},
				},
			},
		},
	}
}

func TestBuild_Scenario1_ThreeTargetsOneStep(t *testing.T) {
	cfg := Config{ProjectName: "demo", SourceFramework: "selenium-java", TargetFramework: "playwright"}
	diags := &pipelineerr.Diagnostics{}
	bundle, err := Build(cfg, scenario1Files(), diags)
	require.NoError(t, err)
	require.Len(t, bundle.Targets, 3)
	require.Len(t, bundle.Tests, 1)
	require.Len(t, bundle.Tests[0].Steps, 1)

	step := bundle.Tests[0].Steps[0]
	assert.Equal(t, "STEP_01", step.StepID)
	assert.Equal(t, "click", step.Action)
	assert.NotEmpty(t, step.TargetID)

	var loginButtonID string
	for _, tg := range bundle.Targets {
		if tg.Semantic.BusinessName == "loginButton" {
			loginButtonID = tg.TargetID
		}
	}
	assert.Equal(t, loginButtonID, step.TargetID)
	assert.True(t, diags.Empty())
}

func TestBuild_RequiresProjectName(t *testing.T) {
	_, err := Build(Config{}, nil, &pipelineerr.Diagnostics{})
	require.Error(t, err)
	var pe *pipelineerr.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, pipelineerr.Config, pe.Kind)
}

func TestBuild_UnresolvedStepTargetStaysNull(t *testing.T) {
	files := []raw.FileRecords{
		{
			FilePath: "Misc.java",
			Tests: []raw.Test{
				{
					Name: "testMagic",
					Steps: []raw.Step{
						{Type: "action", Name: "doMagic"},
					},
				},
			},
		},
	}
	bundle, err := Build(Config{ProjectName: "demo"}, files, &pipelineerr.Diagnostics{})
	require.NoError(t, err)
	require.Len(t, bundle.Tests[0].Steps, 1)
	assert.Empty(t, bundle.Tests[0].Steps[0].TargetID)
}

func TestBuild_DeduplicatesTargetsAcrossFiles(t *testing.T) {
	files := []raw.FileRecords{
		{FilePath: "a.java", Targets: []raw.Target{{Name: "loginButton", Strategy: "css", LocatorValue: "#login-btn", Page: "LoginPage"}}},
		{FilePath: "b.java", Targets: []raw.Target{{Name: "loginButton", Strategy: "css", LocatorValue: "#login-btn", Page: "LoginPage"}}},
	}
	bundle, err := Build(Config{ProjectName: "demo"}, files, &pipelineerr.Diagnostics{})
	require.NoError(t, err)
	assert.Len(t, bundle.Targets, 1)
}

func TestBuild_TestsLinkToExplicitSuite(t *testing.T) {
	bundle, err := Build(Config{ProjectName: "demo"}, scenario1Files(), &pipelineerr.Diagnostics{})
	require.NoError(t, err)
	require.Len(t, bundle.Suites, 1)
	assert.Equal(t, "LoginPageTest", bundle.Suites[0].SuiteID)
	assert.Equal(t, "LoginPageTest", bundle.Tests[0].SuiteID)
	assert.Equal(t, []string{bundle.Tests[0].TestID}, bundle.Suites[0].Tests)
}

func TestBuild_UnhintedTestLinksToDefaultSuite(t *testing.T) {
	files := []raw.FileRecords{
		{
			FilePath: "Misc.java",
			Tests: []raw.Test{
				{Name: "testMagic", Steps: []raw.Step{{Type: "action", Name: "doMagic"}}},
			},
		},
	}
	bundle, err := Build(Config{ProjectName: "demo"}, files, &pipelineerr.Diagnostics{})
	require.NoError(t, err)
	require.Len(t, bundle.Suites, 1)
	assert.Equal(t, "Default", bundle.Suites[0].SuiteID)
	assert.Equal(t, "Default", bundle.Tests[0].SuiteID)
	assert.Equal(t, []string{bundle.Tests[0].TestID}, bundle.Suites[0].Tests)
}

// TestBuild_UnknownSuiteHintIsReferenceError exercises the fatal path spec
// §4.H/§7 mandate: a suite_hint that names no discovered raw.Suite must
// fail the whole build rather than be silently papered over with an
// implicit suite.
func TestBuild_UnknownSuiteHintIsReferenceError(t *testing.T) {
	files := []raw.FileRecords{
		{
			FilePath: "Orphan.java",
			Tests: []raw.Test{
				{Name: "testOrphan", SuiteHint: "GhostSuite", Steps: []raw.Step{{Type: "action", Name: "doMagic"}}},
			},
		},
	}
	_, err := Build(Config{ProjectName: "demo"}, files, &pipelineerr.Diagnostics{})
	require.Error(t, err)
	var pe *pipelineerr.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, pipelineerr.Reference, pe.Kind)
}

func TestBuild_AssertionDataSources(t *testing.T) {
	files := []raw.FileRecords{
		{
			FilePath: "Home.java",
			Targets: []raw.Target{
				{Name: "welcomeMessage", Strategy: "css", LocatorValue: "#welcome", Page: "HomePage"},
			},
			Tests: []raw.Test{
				{
					Name: "testWelcome",
					Steps: []raw.Step{
						{
							Type: "assertion",
							Name: "assertEquals",
							Parameters: map[string]any{
								"actual":   map[string]any{"source": "ui", "targetNameId": "welcomeMessage"},
								"expected": map[string]any{"source": "data", "field": "expectedMessage"},
							},
						},
					},
				},
			},
		},
	}
	bundle, err := Build(Config{ProjectName: "demo"}, files, &pipelineerr.Diagnostics{})
	require.NoError(t, err)
	require.Len(t, bundle.Tests[0].Assertions, 1)
	assertion := bundle.Tests[0].Assertions[0]
	assert.Equal(t, "ui", assertion.Actual.Source)
	assert.NotEmpty(t, assertion.Actual.TargetID)
	assert.Equal(t, "data", assertion.Expected.Source)
	assert.Equal(t, "expectedMessage", assertion.Expected.Field)
}

// TestBuild_TargetBusinessNameFallsBackToComment exercises normalizeTargets'
// doc-comment fallback (ir/targets.go, SPEC_FULL.md §2.1): a raw target with
// no symbolic name still gets a readable BusinessName from its captured
// leading comment.
func TestBuild_TargetBusinessNameFallsBackToComment(t *testing.T) {
	files := []raw.FileRecords{
		{
			FilePath: "LoginPage.java",
			Targets: []raw.Target{
				{Page: "LoginPage", Strategy: "css", LocatorValue: "#login-btn", Comment: "the login submit button"},
			},
		},
	}
	bundle, err := Build(Config{ProjectName: "demo"}, files, &pipelineerr.Diagnostics{})
	require.NoError(t, err)
	require.Len(t, bundle.Targets, 1)
	assert.Equal(t, "the login submit button", bundle.Targets[0].Semantic.BusinessName)
}
