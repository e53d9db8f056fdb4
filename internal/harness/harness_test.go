package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestRun_PassingScenario(t *testing.T) {
	scenario := &Scenario{
		Name:       "hashtag_pass",
		Decorators: []string{"hashtag"},
		Blocks:     []BlockSpec{{Key: "a", Text: "go #golang"}},
		Assertions: []Assertion{
			{Type: AssertMarkupEquals, Block: "a", Value: `<p>go <span class="hashtag">#golang</span></p>`},
			{Type: AssertElementCount, Selector: "span.hashtag", Count: 1},
			{Type: AssertDecorated, Block: "a", Expect: boolPtr(true)},
			{Type: AssertGate, Block: "a", Expect: boolPtr(true)},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
}

func TestRun_FailingAssertionsAreReported(t *testing.T) {
	scenario := &Scenario{
		Name:       "hashtag_fail",
		Decorators: []string{"hashtag"},
		Blocks:     []BlockSpec{{Key: "a", Text: "go #golang"}},
		Assertions: []Assertion{
			{Type: AssertElementCount, Selector: "a", Count: 1},
			{Type: AssertDecorated, Block: "a", Expect: boolPtr(false)},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "element_count")
	assert.Contains(t, result.Errors[1], "decorated=false")
}

func TestRun_JournalsExport(t *testing.T) {
	scenario := &Scenario{
		Name:       "journaled",
		Decorators: []string{"linkify"},
		Blocks: []BlockSpec{
			{Key: "a", Text: "see https://go.dev"},
			{Key: "b", Text: "nothing"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)

	assert.Equal(t, "scenario:journaled", result.Export.ID)
	assert.Equal(t, int64(1), result.Export.Seq)
	assert.Equal(t, 2, result.Export.BlockCount)
	assert.Equal(t, len(result.Markup), result.Export.MarkupBytes)
	assert.NotEmpty(t, result.Export.DecoratorsDigest)
}

func TestRun_UnknownDecorator(t *testing.T) {
	scenario := &Scenario{
		Name:       "bad",
		Decorators: []string{"emoji"},
		Blocks:     []BlockSpec{{Key: "a", Text: "x"}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown decorator "emoji"`)
}

func TestRun_MissingConfig(t *testing.T) {
	scenario := &Scenario{
		Name:   "missing_config",
		Config: "testdata/scenarios/configs/nope.cue",
		Blocks: []BlockSpec{{Key: "a", Text: "x"}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRunContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scenario := &Scenario{
		Name:       "cancelled",
		Decorators: []string{"br"},
		Blocks:     []BlockSpec{{Key: "a", Text: "x"}},
	}

	_, err := RunContext(ctx, scenario)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/conflicting_order_two.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := Snapshot(scenario.Name, first)
	require.NoError(t, err)
	b, err := Snapshot(scenario.Name, second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, first.Export, second.Export)
}
