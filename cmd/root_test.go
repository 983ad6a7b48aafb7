package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/testutil"
	"github.com/thenoetrevino/corkboard/internal/testutil/boardserver"
)

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, path := range [][]string{
		{"board", "show"},
		{"board", "rename"},
		{"column", "move"},
		{"card", "move"},
		{"card", "show"},
		{"checklist", "move"},
	} {
		found, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], found.Name())
	}
}

func TestRootCmd_SubcommandUsesLoadedConfig(t *testing.T) {
	testutil.IsolateConfig(t)
	srv := boardserver.Start(t, boardserver.Sample())
	t.Setenv("CORKBOARD_SERVER", srv.URL())

	out, _, err := testutil.ExecuteCommand(t, newRootCmd(), "board", "show", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestRootCmd_ExitCodeFromSubcommand(t *testing.T) {
	testutil.IsolateConfig(t)
	srv := boardserver.Start(t, boardserver.Sample())

	_, stderr, err := testutil.ExecuteCommand(t, newRootCmd(), "--server="+srv.URL(), "card", "move", "404", "--position=0")
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	assert.Contains(t, stderr, "card 404 not found")
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	testutil.IsolateConfig(t)

	_, _, err := testutil.ExecuteCommand(t, newRootCmd(), "boards")
	assert.Error(t, err)
}
