package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oneBallScenario = `name: one_ball
description: a single boundary
setup:
  batting_team: {id: tigers, name: Tigers}
  bowling_team: {id: lions, name: Lions}
  overs: 1
  opening_striker: s1
  opening_non_striker: s2
  opening_bowler: b1
flow:
  - ball: 4
    expect: {runs: 4}
`

const oneBallGolden = "scenario: one_ball\n1. ball 4 => ok | 4/0 (0.1) | s1* s2 | b1\n"

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := execute(NewTestCommand(&RootOptions{Format: "text"}), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := execute(NewTestCommand(&RootOptions{Format: "text"}), "", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenarios directory not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandEmptyDir(t *testing.T) {
	out, err := execute(NewTestCommand(&RootOptions{Format: "text"}), "", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommandPassesWithGolden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one_ball.yaml", oneBallScenario)
	writeFile(t, dir, "golden/one_ball.golden", oneBallGolden)

	out, err := execute(NewTestCommand(&RootOptions{Format: "text"}), "", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ one_ball")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommandGoldenMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one_ball.yaml", oneBallScenario)
	writeFile(t, dir, "golden/one_ball.golden", "scenario: one_ball\n")

	out, err := execute(NewTestCommand(&RootOptions{Format: "text"}), "", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTestCommandUpdateWritesGolden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one_ball.yaml", oneBallScenario)

	out, err := execute(NewTestCommand(&RootOptions{Format: "text"}), "", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "(golden updated)")

	data, err := os.ReadFile(filepath.Join(dir, "golden", "one_ball.golden"))
	require.NoError(t, err)
	assert.Equal(t, oneBallGolden, string(data))
}

func TestTestCommandFilterAndJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one_ball.yaml", oneBallScenario)
	writeFile(t, dir, "broken.yaml", "name: broken\n")

	out, err := execute(NewTestCommand(&RootOptions{Format: "json"}), "", dir, "--filter", "one_*")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Data.Total)
	assert.Equal(t, "one_ball", resp.Data.Scenarios[0].Name)
}

func TestTestCommandLoadFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "name: broken\n")

	out, err := execute(NewTestCommand(&RootOptions{Format: "text"}), "", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommandHarnessScenarios(t *testing.T) {
	out, err := execute(NewTestCommand(&RootOptions{Format: "text"}), "", "../harness/testdata")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ chase_won")
	assert.Contains(t, out, "0 failed")
}
