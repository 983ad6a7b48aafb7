package column

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/testutil"
	"github.com/thenoetrevino/corkboard/internal/testutil/boardserver"
)

func run(t *testing.T, srv *boardserver.Server, args ...string) (string, string, error) {
	t.Helper()
	testutil.IsolateConfig(t)

	root := &cobra.Command{Use: "corkboard"}
	cli.AddGlobalFlags(root)
	root.AddCommand(ColumnCmd())
	return testutil.ExecuteCommand(t, root, append([]string{"--server=" + srv.URL(), "column"}, args...)...)
}

func TestMove_Positive(t *testing.T) {
	t.Run("to the front", func(t *testing.T) {
		srv := boardserver.Start(t, boardserver.Sample())

		out, _, err := run(t, srv, "move", "5", "--position=0")
		require.NoError(t, err)
		assert.Contains(t, out, "Column 'Doing' (ID: 5) moved from position 1 to 0")

		reorders := srv.RequestsTo(boardserver.RouteColumnsReorder)
		require.Len(t, reorders, 1)
		assert.Equal(t, []string{"5", "2", "9"}, reorders[0].Form()["column_ids"])
		assert.Equal(t, "1", reorders[0].Form().Get("board_id"))
		assert.Equal(t, []int64{5, 2, 9}, srv.Board(1).ColumnIDs())
		// column reorders are not followed by a refresh
		assert.Len(t, srv.RequestsTo(boardserver.RouteBoardShow), 1)
	})

	t.Run("past the end clamps", func(t *testing.T) {
		srv := boardserver.Start(t, boardserver.Sample())

		out, _, err := run(t, srv, "move", "2", "--position=10", "--json")
		require.NoError(t, err)

		data := testutil.ParseJSON(t, out)["data"].(map[string]interface{})
		assert.Equal(t, float64(2), data["position"])
		assert.Equal(t, []interface{}{"5", "9", "2"}, data["column_ids"])
		assert.Equal(t, []int64{5, 9, 2}, srv.Board(1).ColumnIDs())
	})

	t.Run("in place still saves", func(t *testing.T) {
		srv := boardserver.Start(t, boardserver.Sample())

		out, _, err := run(t, srv, "move", "2", "--position=0")
		require.NoError(t, err)
		assert.Contains(t, out, "kept at position 0")
		assert.Len(t, srv.RequestsTo(boardserver.RouteColumnsReorder), 1)
	})

	t.Run("quiet", func(t *testing.T) {
		srv := boardserver.Start(t, boardserver.Sample())

		out, _, err := run(t, srv, "move", "9", "--position=0", "--quiet")
		require.NoError(t, err)
		assert.Equal(t, "9\n", out)
	})
}

func TestMove_Negative(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"unknown column", []string{"move", "77", "--position=0"}, cli.ExitNotFound, "column 77 not found"},
		{"negative position", []string{"move", "5", "--position=-1"}, cli.ExitValidation, "must not be negative"},
		{"non-numeric id", []string{"move", "doing", "--position=0"}, cli.ExitValidation, "must be a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := boardserver.Start(t, boardserver.Sample())

			_, stderr, err := run(t, srv, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, cli.ExitCode(err))
			assert.Contains(t, stderr, tt.wantErr)
			assert.Empty(t, srv.RequestsTo(boardserver.RouteColumnsReorder))
		})
	}
}

func TestMove_MissingPosition(t *testing.T) {
	srv := boardserver.Start(t, boardserver.Sample())

	_, _, err := run(t, srv, "move", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "position")
}

func TestMove_ServerFailure(t *testing.T) {
	srv := boardserver.Start(t, boardserver.Sample())
	srv.Fail(boardserver.RouteColumnsReorder, 500)

	_, stderr, err := run(t, srv, "move", "5", "--position=0")
	require.Error(t, err)
	assert.Equal(t, cli.ExitError, cli.ExitCode(err))
	assert.Contains(t, stderr, "Column reorder failed: Server error (500)")
	assert.Equal(t, []int64{2, 5, 9}, srv.Board(1).ColumnIDs())
}

func TestMove_JSONError(t *testing.T) {
	srv := boardserver.Start(t, boardserver.Sample())

	out, _, err := run(t, srv, "move", "77", "--position=0", "--json")
	require.Error(t, err)

	result := testutil.ParseJSON(t, out)
	assert.False(t, result["success"].(bool))
	assert.Equal(t, "COLUMN_NOT_FOUND", result["error"].(map[string]interface{})["code"])
}
