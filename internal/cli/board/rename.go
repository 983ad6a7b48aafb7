package board

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/markup"
)

// RenameCmd returns the board rename subcommand
func RenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename the board",
		Long: `Rename the board through the page's rename form.

Examples:
  corkboard board rename "Q3 Roadmap"

  # JSON output for agents
  corkboard board rename "Q3 Roadmap" --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runRename,
	}
}

type renameResult struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OldName string `json:"old_name"`
}

func (r renameResult) GetID() string {
	return r.ID
}

func (r renameResult) String() string {
	return fmt.Sprintf("✓ Board %s renamed\n  '%s' → '%s'\n", r.ID, r.OldName, r.Name)
}

func runRename(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)

	session, err := cli.OpenSession(cmd, formatter)
	if err != nil {
		return err
	}

	board := session.Board()
	boardID := board.ID
	if boardID == "" {
		boardID = session.Config.Server.BoardID
	}

	if !session.Ctrl.StartRenameBoard(boardID, board.Name) {
		return cli.Fail(formatter, cli.ExitNotFound, "RENAME_FORM_NOT_FOUND",
			fmt.Errorf("the page has no rename form for board %s", boardID))
	}
	session.Doc.ByID(markup.RenameInputID(boardID)).SetValue(args[0])

	if err := session.Ctrl.SubmitRenameBoard(boardID); err != nil {
		return cli.FailOp(formatter, "RENAME_ERROR", err)
	}
	if err := session.Err(); err != nil {
		return cli.FailOp(formatter, "RENAME_ERROR", err)
	}

	cli.ReportWarnings(formatter, session)
	return formatter.Success(renameResult{
		ID:      boardID,
		Name:    session.Board().Name,
		OldName: board.Name,
	})
}
