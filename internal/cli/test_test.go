package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const harnessScenarios = "../harness/testdata/scenarios"

func executeTest(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeScenario(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

const passingScenario = `name: br_pass
decorators: [br]
blocks:
  - key: a
    text: "one\ntwo"
assertions:
  - type: markup_equals
    block: a
    value: "<p>one<br/>two</p>"
`

const failingScenario = `name: br_fail
decorators: [br]
blocks:
  - key: a
    text: "one two"
assertions:
  - type: gate
    block: a
    expect: true
`

func TestTest_HarnessScenarios(t *testing.T) {
	out, err := executeTest(t, "text", harnessScenarios)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ conflicting_order_one")
	assert.Contains(t, out, "✓ conflicting_order_two")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTest_Filter(t *testing.T) {
	out, err := executeTest(t, "json", harnessScenarios, "--filter", "conflicting_*")
	require.NoError(t, err)

	var resp struct {
		Data TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 2, resp.Data.Passed)
}

func TestTest_FailingScenario(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "pass", passingScenario)
	writeScenario(t, dir, "fail", failingScenario)

	out, err := executeTest(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✓ br_pass")
	assert.Contains(t, out, "✗ br_fail")
	assert.Contains(t, out, "gate=true")
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
}

func TestTest_FailingScenarioJSON(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "fail", failingScenario)

	out, err := executeTest(t, "json", dir)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
}

func TestTest_UpdateThenCompareGolden(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "pass", passingScenario)

	out, err := executeTest(t, "text", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "golden updated")

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "br_pass.golden"))
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"markup":"<p>one<br/>two</p>"`)

	_, err = executeTest(t, "text", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "br_pass.golden"), []byte("{}"), 0644))
	out, err = executeTest(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, out, "golden file mismatch")
}

func TestTest_LoadError(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "typo", "name: typo\nblock: []\n")

	out, err := executeTest(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ typo.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTest_EmptyDirectory(t *testing.T) {
	out, err := executeTest(t, "text", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTest_MissingDirectory(t *testing.T) {
	_, err := executeTest(t, "text", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("testdata", "golden", "x.golden"),
		goldenFilePath(filepath.Join("testdata", "scenarios", "x.yaml"), "x"))
	assert.Equal(t, filepath.Join("cases", "golden", "x.golden"),
		goldenFilePath(filepath.Join("cases", "x.yaml"), "x"))
}
