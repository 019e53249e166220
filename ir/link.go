package ir

import (
	"github.com/qair/ir-compiler/pipelineerr"
	"github.com/qair/ir-compiler/raw"
)

// buildTests constructs TestIRs from every file's raw tests (spec §4.H step
// 5), resolving each step's targetId via nameToID and assigning stepIds in
// source order. A raw step's unresolvable target_name_id is never an error
// (spec §4.H: "targetId remains null and the step is still emitted");
// unresolved suite/data references are handled by the caller.
func buildTests(project string, files []raw.FileRecords, nameToID map[string]string, suites []Suite, diags *pipelineerr.Diagnostics) ([]Test, error) {
	var out []Test
	for _, file := range files {
		for _, rt := range file.Tests {
			test, err := buildTest(project, file.FilePath, rt, nameToID, diags)
			if err != nil {
				return nil, err
			}
			out = append(out, test)
		}
	}
	return out, nil
}

func buildTest(project, filePath string, rt raw.Test, nameToID map[string]string, diags *pipelineerr.Diagnostics) (Test, error) {
	suiteID := rt.SuiteHint
	if suiteID == "" {
		suiteID = "Default"
	}

	test := Test{
		TestID:      filePath + "#" + rt.Name,
		SuiteID:     suiteID,
		Description: rt.Comment,
		Priority:    "normal",
		Severity:    "normal",
		Tags:        rt.Tags,
	}

	stepOrdinal, assertOrdinal := 0, 0
	for _, rs := range rt.Steps {
		switch rs.Type {
		case "assertion":
			assertOrdinal++
			test.Assertions = append(test.Assertions, buildAssertion(rs, assertOrdinal, project, filePath, nameToID, diags))
		default:
			stepOrdinal++
			test.Steps = append(test.Steps, buildStep(rs, stepOrdinal, nameToID))
		}
	}
	return test, nil
}

func buildStep(rs raw.Step, ordinal int, nameToID map[string]string) Step {
	step := Step{
		StepID:     StepID(ordinal),
		Action:     rs.Name,
		Parameters: rs.Parameters,
	}
	if id, ok := resolveTargetID(rs.TargetNameID, nameToID); ok {
		step.TargetID = id
	}
	if field, masked := parameterInputField(rs.Parameters); field != "" {
		step.Input = Input{Source: "parameters", Field: field, Masked: masked}
	}
	return step
}

func buildAssertion(rs raw.Step, ordinal int, project, filePath string, nameToID map[string]string, diags *pipelineerr.Diagnostics) Assertion {
	assertion := Assertion{
		AssertID: assertID(ordinal),
		Type:     rs.Name,
	}
	if actual, ok := rs.Parameters["actual"]; ok {
		assertion.Actual = toDataSource(actual, nameToID)
	}
	if expected, ok := rs.Parameters["expected"]; ok {
		assertion.Expected = toDataSource(expected, nameToID)
	}
	if assertion.Actual.Source == "ui" && assertion.Actual.TargetID == "" {
		diags.Add(pipelineerr.NewExtractionWarning(project, filePath, "assertion \""+rs.Name+"\" references an unresolved UI target"))
	}
	return assertion
}

// toDataSource converts the extractor's generic map[string]any DataSource
// representation (spec §4.F) into the typed ir.DataSource, resolving a
// "ui"-sourced targetNameId through the project-wide name->id map.
func toDataSource(v any, nameToID map[string]string) DataSource {
	m, ok := v.(map[string]any)
	if !ok {
		return DataSource{Source: "constant", Value: v}
	}
	ds := DataSource{}
	if s, ok := m["source"].(string); ok {
		ds.Source = s
	}
	if f, ok := m["field"].(string); ok {
		ds.Field = f
	}
	if val, ok := m["value"]; ok {
		ds.Value = val
	}
	if name, ok := m["targetNameId"].(string); ok {
		if id, resolved := resolveTargetID(name, nameToID); resolved {
			ds.TargetID = id
		}
	}
	return ds
}

func resolveTargetID(name string, nameToID map[string]string) (string, bool) {
	if name == "" {
		return "", false
	}
	id, ok := nameToID[name]
	return id, ok
}

// parameterInputField picks the primary parameter name to record as a
// step's input field (spec §3 StepIR.input), preferring the first
// positional "value" parameter. Masking is not inferred in MVP; a named
// field like "password" could later flip masked=true, a decision left to
// the optimizer/codegen collaborators (spec §1 out of scope).
func parameterInputField(params map[string]any) (field string, masked bool) {
	if _, ok := params["value"]; ok {
		return "value", false
	}
	return "", false
}
