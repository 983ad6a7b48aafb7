package card

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/corkboard/internal/cli"
	"github.com/thenoetrevino/corkboard/internal/snapshot"
)

// descriptionWidth is the word wrap for descriptions printed to a terminal
const descriptionWidth = 80

// ShowCmd returns the card show subcommand
func ShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <card-id>",
		Short: "Show a card's description and checklist",
		Long: `Load a card's detail the way the board's card modal does and print it.
Markdown descriptions are rendered for the terminal.

Examples:
  corkboard card show 7

  # JSON output for agents
  corkboard card show 7 --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
}

type showResult struct {
	snapshot.Modal
}

func (r showResult) GetID() string {
	return r.CardID
}

func (r showResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (ID: %s)\n", r.Title, r.CardID)
	if desc := strings.TrimSpace(r.Description); desc != "" {
		b.WriteString(renderMarkdown(desc))
	} else {
		b.WriteString("\n  No description\n\n")
	}
	if len(r.Items) == 0 {
		b.WriteString("No checklist\n")
		return b.String()
	}
	b.WriteString("Checklist:\n")
	for _, item := range r.Items {
		box := "[ ]"
		if item.Done {
			box = "[x]"
		}
		fmt.Fprintf(&b, "  %s %s (ID: %s)\n", box, item.Text, item.ID)
	}
	return b.String()
}

var (
	rendererOnce sync.Once
	renderer     *glamour.TermRenderer
)

// renderMarkdown renders without color so output stays readable in pipes.
// The raw text is used when rendering fails.
func renderMarkdown(md string) string {
	rendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("notty"),
			glamour.WithWordWrap(descriptionWidth),
		)
		if err == nil {
			renderer = r
		}
	})
	if renderer == nil {
		return "\n" + md + "\n\n"
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "\n" + md + "\n\n"
	}
	return out
}

func runShow(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)

	cardID, err := cli.ParseIDArg(formatter, "card", args[0])
	if err != nil {
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
	if modal.CardID == "" {
		modal.CardID = cardID
	}
	return formatter.Success(showResult{modal})
}
