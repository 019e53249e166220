package ir

import (
	"sort"

	"github.com/qair/ir-compiler/pipelineerr"
	"github.com/qair/ir-compiler/raw"
)

// normalizeTargets de-duplicates raw targets across every file by
// (page, name) (spec §4.H step 2), computing each survivor's deterministic
// targetId and at least one SelectorStrategy. It returns the targets sorted
// by (page, name) for output determinism (spec §5) plus the name->id map
// used to resolve steps in step 5.
//
// Two distinct (page, name) pairs hashing to the same targetId is a fatal
// IdCollisionError (spec §4.H); this is vanishingly rare with a 64-bit hash
// truncated to 12 hex characters, but checked rather than assumed.
func normalizeTargets(project string, files []raw.FileRecords) ([]Target, map[string]string, error) {
	type key struct{ page, name string }
	seen := map[key]bool{}
	byID := map[string]key{}

	var targets []Target
	nameToID := map[string]string{}

	for _, file := range files {
		for _, rt := range file.Targets {
			k := key{page: rt.Page, name: rt.Name}
			if seen[k] {
				continue
			}
			seen[k] = true

			id, err := TargetID(rt.Page, rt.Name, rt.Strategy, rt.LocatorValue)
			if err != nil {
				return nil, nil, pipelineerr.NewStructuralError(project, file.FilePath, "hashing target id", err)
			}
			if owner, collides := byID[id]; collides && owner != k {
				return nil, nil, pipelineerr.NewIdCollisionError(project,
					"targets \""+owner.page+"/"+owner.name+"\" and \""+k.page+"/"+k.name+"\" hash to the same target id "+id)
			}
			byID[id] = k

			businessName := rt.Name
			if businessName == "" {
				businessName = rt.Comment
			}
			targets = append(targets, Target{
				TargetID: id,
				Type:     "element",
				Context:  TargetContext{Page: rt.Page},
				Semantic: TargetSemantic{BusinessName: businessName},
				SelectorStrategies: []SelectorStrategy{{
					Strategy:       rt.Strategy,
					Value:          rt.LocatorValue,
					StabilityScore: stabilityScore(rt.Strategy),
				}},
				PreferredStrategy: rt.Strategy,
			})

			if _, exists := nameToID[rt.Name]; !exists {
				nameToID[rt.Name] = id
			}
		}
	}

	sort.Slice(targets, func(i, j int) bool {
		if targets[i].Context.Page != targets[j].Context.Page {
			return targets[i].Context.Page < targets[j].Context.Page
		}
		return targets[i].Semantic.BusinessName < targets[j].Semantic.BusinessName
	})

	return targets, nameToID, nil
}
