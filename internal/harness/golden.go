package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/decor/internal/digest"
)

// Snapshot serializes a scenario result to canonical JSON for golden
// comparison. Only rendering output is included; journal IDs and digests
// are left out.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	blocks := make([]any, len(result.Blocks))
	for i, b := range result.Blocks {
		blocks[i] = map[string]any{
			"key":       b.Key,
			"type":      b.Type,
			"gate":      b.Gate,
			"decorated": b.Decorated,
			"markup":    b.Markup,
		}
	}
	return digest.MarshalCanonical(map[string]any{
		"scenario_name": scenarioName,
		"markup":        result.Markup,
		"blocks":        blocks,
	})
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
