package card

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/corkboard/internal/cli"
)

// MoveCmd returns the card move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <card-id>",
		Short: "Move a card within or across columns",
		Long: `Drag a card to a position in a column and save the move.
The board is reloaded from the server afterwards, so completion changes
from moving into or out of a done column are shown.

Positions count cards from the top, starting at 0.

Examples:
  # Move card 7 to the top of column 5
  corkboard card move 7 --column 5 --position 0

  # Reorder within the card's own column
  corkboard card move 7 --position 1

  # Quiet mode prints the card id
  corkboard card move 7 --column 9 --position 0 --quiet
`,
		Args: cobra.ExactArgs(1),
		RunE: runMove,
	}

	// Required flags
	cmd.Flags().Int("position", 0, "New position, 0 is the top (required)")
	if err := cmd.MarkFlagRequired("position"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().String("column", "", "Destination column ID (default: the card's column)")

	return cmd
}

type moveResult struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	FromColumn string `json:"from_column_id"`
	ToColumn   string `json:"column_id"`
	Position   int    `json:"position"`
	Completed  bool   `json:"completed"`
}

func (r moveResult) GetID() string {
	return r.ID
}

func (r moveResult) String() string {
	status := ""
	if r.Completed {
		status = " (completed)"
	}
	return fmt.Sprintf("✓ Card '%s' (ID: %s) moved to column %s at position %d%s\n",
		r.Title, r.ID, r.ToColumn, r.Position, status)
}

func runMove(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)
	position, _ := cmd.Flags().GetInt("position")
	columnArg, _ := cmd.Flags().GetString("column")

	cardID, err := cli.ParseIDArg(formatter, "card", args[0])
	if err != nil {
		return err
	}
	if columnArg != "" {
		if _, err := cli.ParseIDArg(formatter, "column", columnArg); err != nil {
			return err
		}
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
	card, from, ok := board.Card(cardID)
	if !ok {
		return cli.Fail(formatter, cli.ExitNotFound, "CARD_NOT_FOUND", fmt.Errorf("card %s not found on board %s", cardID, board.ID))
	}
	target := board.Columns[from]
	if columnArg != "" {
		if target, ok = board.Column(columnArg); !ok {
			return cli.Fail(formatter, cli.ExitNotFound, "COLUMN_NOT_FOUND", fmt.Errorf("column %s not found on board %s", columnArg, board.ID))
		}
	}
	if target.Cards == nil {
		return cli.Fail(formatter, cli.ExitDataErr, "NO_CARD_LIST", fmt.Errorf("column %s has no card list", target.ID))
	}

	ev, err := session.Place(card.Node, target.Cards, position)
	if err != nil {
		return cli.FailOp(formatter, "CARD_MOVE_ERROR", err)
	}

	result := moveResult{
		ID:         cardID,
		Title:      card.Title,
		FromColumn: board.Columns[from].ID,
		ToColumn:   target.ID,
		Position:   ev.NewIndex,
	}
	// the board was reloaded after the move
	if moved, _, ok := session.Board().Card(cardID); ok {
		result.Completed = moved.Completed
	}
	cli.ReportWarnings(formatter, session)
	return formatter.Success(result)
}
