package checklist

import (
	"github.com/spf13/cobra"
)

// ChecklistCmd returns the checklist parent command
func ChecklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Reorder a card's checklist",
	}

	cmd.AddCommand(MoveCmd())

	return cmd
}
