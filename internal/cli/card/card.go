package card

import (
	"github.com/spf13/cobra"
)

// CardCmd returns the card parent command
func CardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Show and move cards",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(MoveCmd())

	return cmd
}
