package board

import (
	"github.com/spf13/cobra"
)

// BoardCmd returns the board parent command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Inspect and rename the board",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(RenameCmd())

	return cmd
}
