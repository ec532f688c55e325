package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_Valid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "match.yaml", chaseSetup)

	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), "", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (Tigers v Lions, 2 overs)")
}

func TestValidateCommand_ReportsEveryProblem(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", `batting_team: {id: tigers}
bowling_team: {id: tigers}
overs: 25
opening_striker: s1
opening_non_striker: s1
opening_bowler: b1
`)

	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), "", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "overs")
}

func TestValidateCommand_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "overs: 0\n")

	out, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), "", path)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeSetupInvalid, resp.Error.Code)
	assert.NotNil(t, resp.Error.Details)
}

func TestValidateCommand_UnknownField(t *testing.T) {
	path := writeFile(t, t.TempDir(), "typo.yaml", chaseSetup+"overz: 3\n")

	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), "", path)
	require.Error(t, err)
	assert.Contains(t, out, "overz")
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), "", "/nonexistent/match.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
