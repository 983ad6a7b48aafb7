package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/thenoetrevino/corkboard/internal/tui/theme"
)

// ChecklistItemProps describes one checklist row
type ChecklistItemProps struct {
	Text     string
	Done     bool
	Selected bool
	Dragging bool
}

// ModalProps describes the card modal
type ModalProps struct {
	Title       string
	Description string
	Items       []ChecklistItemProps
	// Loading is set while the modal fragment is being fetched
	Loading bool
	Width   int
	Height  int
}

// RenderChecklistItem renders a checklist row with a cursor and checkbox
func RenderChecklistItem(item ChecklistItemProps, width int) string {
	cursor := "  "
	switch {
	case item.Dragging:
		cursor = "⇅ "
	case item.Selected:
		cursor = "> "
	}
	box := "[ ] "
	if item.Done {
		box = "[x] "
	}
	text := ansi.Truncate(item.Text, max(width-len(cursor)-len(box), 1), "…")
	if item.Done {
		text = CompletedStyle.Render(text)
	}

	line := cursor + box + text
	switch {
	case item.Dragging:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.DragBorder)).Bold(true).Render(line)
	case item.Selected:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.SelectedBorder)).Render(line)
	}
	return line
}

// RenderModal renders the card modal: title, description and checklist
func RenderModal(props ModalProps) string {
	inner := max(props.Width-6, 10)

	if props.Loading {
		return ModalBoxStyle.Width(props.Width).Render(SubtleStyle.Render("Loading card..."))
	}

	checklist := []string{"", TitleStyle.Render("Checklist")}
	if len(props.Items) == 0 {
		checklist = append(checklist, SubtleStyle.Render("No checklist items"))
	}
	for _, item := range props.Items {
		checklist = append(checklist, RenderChecklistItem(item, inner))
	}
	checklist = append(checklist, "", SubtleStyle.Render("space grab · j/k move · esc close"))

	// The description gives way to the checklist when space runs out
	description := RenderDescription(DescriptionProps{Description: props.Description, Width: inner})
	if props.Height > 0 {
		room := max(props.Height-4-2-len(checklist), 1)
		if lines := strings.Split(description, "\n"); len(lines) > room {
			description = strings.Join(append(lines[:room-1:room-1], SubtleStyle.Render("…")), "\n")
		}
	}

	parts := append([]string{TitleStyle.Render(ansi.Truncate(props.Title, inner, "…")), "", description}, checklist...)
	content := strings.Join(parts, "\n")
	return ModalBoxStyle.Width(props.Width).Render(content)
}
