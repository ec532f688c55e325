package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenario_Valid(t *testing.T) {
	s := mustParse(t, `
name: amend_only
description: amend carries an inline patch
`+miniSetup+`
flow:
  - ball: 3
  - amend: {ball: 1, runs: 2, wide: true}
  - wicket: Caught
    ball: 1
`)
	require.Len(t, s.Flow, 3)
	require.NotNil(t, s.Flow[1].Amend)
	assert.Equal(t, 1, s.Flow[1].Amend.Ball)
	require.NotNil(t, s.Flow[1].Amend.Runs)
	assert.Equal(t, 2, *s.Flow[1].Amend.Runs)
	require.NotNil(t, s.Flow[1].Amend.Wide)
	assert.True(t, *s.Flow[1].Amend.Wide)
	assert.Equal(t, "Caught", s.Flow[2].Wicket)
	assert.Equal(t, 1, s.Flow[2].actionCount())
	assert.Equal(t, "tigers", s.Setup.BattingTeam.ID)
}

func TestParseScenario_Rejects(t *testing.T) {
	tests := []struct {
		name string
		flow string
		want string
	}{
		{"empty flow", "flow: []", "flow list is required"},
		{"two actions", "flow:\n  - ball: 1\n    undo: true", "exactly one action"},
		{"no action", "flow:\n  - expect: {runs: 0}", "exactly one action"},
		{"extra without ball", "flow:\n  - extra: wide\n    undo: true", "extra requires ball"},
		{"amend position", "flow:\n  - amend: {ball: 0, runs: 1}", "1-based"},
		{"unknown field", "flow:\n  - bal: 1", "failed to parse YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte("name: x\ndescription: y\n" + miniSetup + tt.flow + "\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseScenario_RequiresNameAndDescription(t *testing.T) {
	_, err := ParseScenario([]byte("description: y\nflow:\n  - ball: 1\n"))
	require.ErrorContains(t, err, "name is required")

	_, err = ParseScenario([]byte("name: x\nflow:\n  - ball: 1\n"))
	require.ErrorContains(t, err, "description is required")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorContains(t, err, "failed to read scenario file")
}

func TestLoadScenario_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	src := "name: disk\ndescription: d\n" + miniSetup + "flow:\n  - finalize: true\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "disk", s.Name)
	assert.True(t, s.Flow[0].Finalize)
}
