package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/snapshot"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the board's columns and cards",
		Long: `Load the board page and print its columns and cards in display order.

Examples:
  # Human-readable board
  corkboard board show

  # Another board on another server
  corkboard board show --server http://localhost:3000 --board 4

  # JSON output for agents
  corkboard board show --json
`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}
}

type showResult struct {
	snapshot.Board
}

func (r showResult) GetID() string {
	return r.ID
}

func (r showResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Board '%s' (ID: %s)\n", r.Name, r.ID)
	if len(r.Columns) == 0 {
		b.WriteString("  No columns\n")
	}
	for _, col := range r.Columns {
		done := ""
		if col.Done {
			done = " ✓"
		}
		fmt.Fprintf(&b, "  %s (ID: %s, %d cards)%s\n", col.Title, col.ID, len(col.Items), done)
		for _, card := range col.Items {
			box := "[ ]"
			if card.Completed {
				box = "[x]"
			}
			fmt.Fprintf(&b, "    %s %s (ID: %s)\n", box, card.Title, card.ID)
		}
	}
	return b.String()
}

func runShow(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)

	session, err := cli.OpenSession(cmd, formatter)
	if err != nil {
		return err
	}

	board := session.Board()
	if board.Container == nil {
		return cli.Fail(formatter, cli.ExitDataErr, "NO_BOARD", errors.New("the page has no board"))
	}
	return formatter.Success(showResult{board})
}
