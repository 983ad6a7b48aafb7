package checklist

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/corkboard/internal/cli"
)

// MoveCmd returns the checklist move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <card-id> <item-id>",
		Short: "Move a checklist item to another position",
		Long: `Open a card, drag one of its checklist items to a new position and save
the new order.

Examples:
  # Move item 33 of card 7 to the top
  corkboard checklist move 7 33 --position 0

  # JSON output for agents
  corkboard checklist move 7 33 --position 0 --json
`,
		Args: cobra.ExactArgs(2),
		RunE: runMove,
	}

	// Required flags
	cmd.Flags().Int("position", 0, "New position, 0 is the top (required)")
	if err := cmd.MarkFlagRequired("position"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	return cmd
}

type moveResult struct {
	CardID   string   `json:"card_id"`
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	From     int      `json:"from"`
	Position int      `json:"position"`
	Order    []string `json:"item_ids"`
}

func (r moveResult) GetID() string {
	return r.ID
}

func (r moveResult) String() string {
	return fmt.Sprintf("✓ Checklist item '%s' (ID: %s) on card %s moved from position %d to %d\n",
		r.Text, r.ID, r.CardID, r.From, r.Position)
}

func runMove(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)
	position, _ := cmd.Flags().GetInt("position")

	cardID, err := cli.ParseIDArg(formatter, "card", args[0])
	if err != nil {
		return err
	}
	itemID, err := cli.ParseIDArg(formatter, "checklist item", args[1])
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
	if err := session.Ctrl.OpenCardModal(cardID); err != nil {
		return cli.FailOp(formatter, "CARD_LOAD_ERROR", err)
	}
	if err := session.Err(); err != nil {
		return cli.FailOp(formatter, "CARD_LOAD_ERROR", err)
	}

	modal := session.Modal()
	item, _, ok := modal.Item(itemID)
	if !ok {
		return cli.Fail(formatter, cli.ExitNotFound, "ITEM_NOT_FOUND", fmt.Errorf("checklist item %s not found on card %s", itemID, cardID))
	}

	ev, err := session.Place(item.Node, modal.List, position)
	if err != nil {
		return cli.FailOp(formatter, "CHECKLIST_MOVE_ERROR", err)
	}

	result := moveResult{
		CardID:   cardID,
		ID:       itemID,
		Text:     item.Text,
		From:     ev.OldIndex,
		Position: ev.NewIndex,
	}
	for _, it := range session.Modal().Items {
		result.Order = append(result.Order, it.ID)
	}
	cli.ReportWarnings(formatter, session)
	return formatter.Success(result)
}
