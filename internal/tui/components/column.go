package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/thenoetrevino/corkboard/internal/tui/theme"
)

// CardHeight is the rendered height of one card, borders included
const CardHeight = 3

// columnOverhead covers border(2), header(1) and both scroll indicators(2)
const columnOverhead = 5

// CardProps describes one card in a column
type CardProps struct {
	Title     string
	Completed bool
	Selected  bool
	Dragging  bool
}

// ColumnProps describes a column and the cards it holds
type ColumnProps struct {
	Title string
	Done  bool
	Cards []CardProps

	// Selected marks the focused column; HeaderSelected the focused header
	Selected       bool
	HeaderSelected bool
	// Dragging marks a column that is being moved as a whole
	Dragging bool

	Width  int
	Height int

	// ScrollOffset is the index of the first visible card
	ScrollOffset int
}

// MaxVisibleCards returns how many cards fit in a column of the given height
func MaxVisibleCards(height int) int {
	return max((height-columnOverhead)/CardHeight, 1)
}

// RenderCard renders a single card
//
//	┌──────────────────┐
//	│ {Card Title}     │
//	└──────────────────┘
func RenderCard(card CardProps, width int) string {
	inner := max(width-2, 1)
	title := ansi.Truncate(card.Title, inner, "…")

	style := CardStyle.Width(width)
	switch {
	case card.Dragging:
		style = style.BorderForeground(lipgloss.Color(theme.DragBorder)).Bold(true)
	case card.Selected:
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	}
	if card.Completed {
		title = CompletedStyle.Render(title)
	}
	return style.Render(title)
}

// RenderColumn renders a complete column with its title and cards
//
// Layout:
//
//	{Column Name} ({count})
//	▲ (if scrolled down)
//	{Card 1}
//	...
//	▼ (if more cards below)
func RenderColumn(props ColumnProps) string {
	innerWidth := max(props.Width-4, 4)

	header := fmt.Sprintf("%s (%d)", props.Title, len(props.Cards))
	if props.Done {
		header = "✓ " + header
	}
	header = ansi.Truncate(header, innerWidth, "…")
	headerStyle := TitleStyle
	if props.HeaderSelected {
		headerStyle = headerStyle.Foreground(lipgloss.Color(theme.Accent)).Underline(true)
	}
	lines := []string{headerStyle.Render(header)}

	indicator := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle))
	if len(props.Cards) == 0 {
		lines = append(lines, "", SubtleStyle.Render("No cards"))
	} else {
		visible := MaxVisibleCards(props.Height)
		start := min(max(props.ScrollOffset, 0), len(props.Cards)-1)
		end := min(start+visible, len(props.Cards))

		if start > 0 {
			lines = append(lines, indicator.Render("▲ more above"))
		} else {
			lines = append(lines, "")
		}
		for _, card := range props.Cards[start:end] {
			lines = append(lines, RenderCard(card, innerWidth))
		}
		if end < len(props.Cards) {
			lines = append(lines, indicator.Render("▼ more below"))
		}
	}

	style := ColumnStyle.Width(props.Width)
	switch {
	case props.Dragging:
		style = style.BorderForeground(lipgloss.Color(theme.DragBorder))
	case props.Selected:
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	case props.Done:
		style = style.BorderForeground(lipgloss.Color(theme.DoneColumn))
	}
	if props.Height > 0 {
		style = style.Height(props.Height - 2)
	}

	return style.Render(strings.Join(lines, "\n"))
}
