package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/cli/board"
	"github.com/thenoetrevino/corkboard/internal/cli/card"
	"github.com/thenoetrevino/corkboard/internal/cli/checklist"
	"github.com/thenoetrevino/corkboard/internal/cli/column"
	"github.com/thenoetrevino/corkboard/internal/launcher"
	"github.com/thenoetrevino/corkboard/internal/logging"
)

var rootCmd = newRootCmd()

// closeLog is set once logging has been initialized
var closeLog func() error

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corkboard",
		Short: "Corkboard - drag and drop for a kanban board server, in the terminal",
		Long: `Corkboard talks to a server-rendered kanban board. Without a subcommand it
opens the board in an interactive terminal UI where cards, columns and
checklist items can be picked up and moved with the keyboard. Every drop is
saved to the server.

The subcommands perform the same moves from scripts.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if closeLog != nil {
				_ = closeLog()
			}
		},
		RunE: runTUI,
	}

	cli.AddGlobalFlags(cmd)
	cmd.AddCommand(board.BoardCmd())
	cmd.AddCommand(column.ColumnCmd())
	cmd.AddCommand(card.CardCmd())
	cmd.AddCommand(checklist.ChecklistCmd())

	return cmd
}

// setup loads the config once for the whole command tree and starts logging
// to file. A config error is left for the command to report.
func setup(cmd *cobra.Command, args []string) error {
	level := "info"
	if cfg, err := cli.LoadConfig(cmd); err == nil {
		level = cfg.LogLevel
		cmd.SetContext(cli.WithConfig(cmd.Context(), cfg))
	}

	closer, err := logging.Init(level)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	closeLog = closer
	slog.Debug("command started", "command", cmd.CommandPath())
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	return launcher.Launch(cmd.Context(), cfg)
}

// Execute runs the command tree. Errors a command already reported are not
// printed again.
func Execute() error {
	err := rootCmd.Execute()
	var coded *cli.CodedError
	if err != nil && !errors.As(err, &coded) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
