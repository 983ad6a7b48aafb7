package column

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/corkboard/internal/cli"
)

// MoveCmd returns the column move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <column-id>",
		Short: "Move a column to another position",
		Long: `Drag a column to a new position on the board and save the new order.

Positions count columns from the left, starting at 0. Positions past the
end place the column last.

Examples:
  # Make column 5 the first column
  corkboard column move 5 --position 0

  # JSON output for agents
  corkboard column move 5 --position 2 --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runMove,
	}

	// Required flags
	cmd.Flags().Int("position", 0, "New position, 0 is leftmost (required)")
	if err := cmd.MarkFlagRequired("position"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	return cmd
}

type moveResult struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	From     int      `json:"from"`
	Position int      `json:"position"`
	Order    []string `json:"column_ids"`
}

func (r moveResult) GetID() string {
	return r.ID
}

func (r moveResult) String() string {
	if r.From == r.Position {
		return fmt.Sprintf("✓ Column '%s' (ID: %s) kept at position %d\n", r.Title, r.ID, r.Position)
	}
	return fmt.Sprintf("✓ Column '%s' (ID: %s) moved from position %d to %d\n", r.Title, r.ID, r.From, r.Position)
}

func runMove(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)
	position, _ := cmd.Flags().GetInt("position")

	columnID, err := cli.ParseIDArg(formatter, "column", args[0])
	if err != nil {
		return err
	}
	if err := cli.ParsePosition(formatter, position); err != nil {
		return err
	}

	session, err := cli.OpenSession(cmd, formatter)
	if err != nil {
		return err
	}

	board := session.Board()
	if board.Container == nil {
		return cli.Fail(formatter, cli.ExitDataErr, "NO_BOARD", errors.New("the page has no board"))
	}
	col, ok := board.Column(columnID)
	if !ok {
		return cli.Fail(formatter, cli.ExitNotFound, "COLUMN_NOT_FOUND", fmt.Errorf("column %s not found on board %s", columnID, board.ID))
	}

	// columns are dragged by their header
	origin := col.Header
	if origin == nil {
		origin = col.Node
	}
	ev, err := session.Place(origin, board.Container, position)
	if err != nil {
		return cli.FailOp(formatter, "COLUMN_MOVE_ERROR", err)
	}

	result := moveResult{
		ID:       columnID,
		Title:    col.Title,
		From:     ev.OldIndex,
		Position: ev.NewIndex,
	}
	for _, c := range session.Board().Columns {
		result.Order = append(result.Order, c.ID)
	}
	cli.ReportWarnings(formatter, session)
	return formatter.Success(result)
}
