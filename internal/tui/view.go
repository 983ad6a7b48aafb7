package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/corkboard/internal/snapshot"
	"github.com/thenoetrevino/corkboard/internal/tui/components"
	"github.com/thenoetrevino/corkboard/internal/tui/layers"
	"github.com/thenoetrevino/corkboard/internal/view"
)

const (
	// columnWidth is the rendered width of one column, borders included
	columnWidth = 32
	columnGap   = 1

	// chromeHeight covers the board title and the status bar
	chromeHeight = 3
)

// View implements tea.Model. The board is the base layer; the modal, rename
// dialog and help screen are drawn on top of it.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 {
		view.Content = "Loading..."
		return view
	}

	stack := []*lipgloss.Layer{
		lipgloss.NewLayer(m.viewBoard()),
	}

	var overlay string
	switch m.mode {
	case ModalMode, ModalDragMode:
		overlay = m.viewModal()
	case RenameMode:
		overlay = m.viewRename()
	case HelpMode:
		overlay = m.viewHelp()
	}
	if layer := layers.CreateCenteredLayer(overlay, m.width, m.height); layer != nil {
		stack = append(stack, layer)
	}

	view.Content = lipgloss.NewCanvas(stack...).Render()
	return view
}

func (m *Model) viewBoard() string {
	b := snapshot.ReadBoard(m.doc)
	m.clampFocus(b)

	title := components.TitleStyle.Render(b.Name)
	if b.Name == "" {
		title = components.SubtleStyle.Render("No board loaded")
	}
	if b.ID != "" {
		title += components.SubtleStyle.Render(fmt.Sprintf("  #%s", b.ID))
	}

	boardHeight := max(m.height-chromeHeight, 6)
	visible := max((m.width+columnGap)/(columnWidth+columnGap), 1)
	// keep the focused column on screen
	if m.col < m.colOffset {
		m.colOffset = m.col
	} else if m.col >= m.colOffset+visible {
		m.colOffset = m.col - visible + 1
	}
	m.colOffset = min(m.colOffset, max(len(b.Columns)-visible, 0))

	dragged := m.dragNode()
	var rendered []string
	end := min(m.colOffset+visible, len(b.Columns))
	for ci := m.colOffset; ci < end; ci++ {
		col := b.Columns[ci]
		selected := ci == m.col && (m.mode == BoardMode || m.mode == DragMode || m.mode == HelpMode)

		cards := make([]components.CardProps, len(col.Items))
		for ri, card := range col.Items {
			cards[ri] = components.CardProps{
				Title:     card.Title,
				Completed: card.Completed,
				Selected:  selected && ri == m.row,
				Dragging:  dragged != nil && card.Node == dragged,
			}
		}

		rendered = append(rendered, components.RenderColumn(components.ColumnProps{
			Title:          col.Title,
			Done:           col.Done,
			Cards:          cards,
			Selected:       selected,
			HeaderSelected: selected && m.row < 0,
			Dragging:       dragged != nil && col.Node == dragged,
			Width:          columnWidth,
			Height:         boardHeight,
			ScrollOffset:   scrollOffset(m.row, len(cards), components.MaxVisibleCards(boardHeight), selected),
		}))
		if ci < end-1 {
			rendered = append(rendered, strings.Repeat(" ", columnGap))
		}
	}

	board := components.SubtleStyle.Render("This page has no board")
	if len(rendered) > 0 {
		board = lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}

	stats := m.ctrl.Stats().Snapshot()
	status := components.RenderStatusBar(components.StatusBarProps{
		Width:    m.width,
		Mode:     m.mode.String(),
		Message:  m.message,
		IsError:  m.isError,
		Sent:     stats.RequestsSent,
		Failed:   stats.RequestsFailed,
		InFlight: stats.InFlight,
	})

	body := lipgloss.NewStyle().Height(max(m.height-1, 1)).Render(title + "\n\n" + board)
	return lipgloss.JoinVertical(lipgloss.Left, body, status)
}

// scrollOffset returns the first visible card so that row stays on screen.
func scrollOffset(row, count, visible int, selected bool) int {
	if !selected || row < visible {
		return 0
	}
	return min(row-visible+1, max(count-visible, 0))
}

// dragNode is the node being dragged, or nil.
func (m *Model) dragNode() *view.Node {
	if m.drag == nil {
		return nil
	}
	return m.drag.Item()
}

func (m *Model) viewModal() string {
	mv := snapshot.ReadModal(m.doc)
	width, height := layers.ModalDimensions(len(mv.Items), m.width, m.height)

	if m.modalPending || !m.ctrl.ModalOpen() {
		return components.RenderModal(components.ModalProps{Loading: true, Width: width})
	}

	dragged := m.dragNode()
	items := make([]components.ChecklistItemProps, len(mv.Items))
	for i, item := range mv.Items {
		items[i] = components.ChecklistItemProps{
			Text:     item.Text,
			Done:     item.Done,
			Selected: i == m.itemRow,
			Dragging: dragged != nil && item.Node == dragged,
		}
	}
	return components.RenderModal(components.ModalProps{
		Title:       mv.Title,
		Description: mv.Description,
		Items:       items,
		Width:       width,
		Height:      height,
	})
}

func (m *Model) viewRename() string {
	content := components.TitleStyle.Render("Rename board") + "\n\n" +
		m.rename.View() + "\n\n" +
		components.SubtleStyle.Render("enter save · esc cancel")
	return components.RenameBoxStyle.Width(min(50, m.width)).Render(content)
}

func (m *Model) viewHelp() string {
	var b strings.Builder
	b.WriteString(components.TitleStyle.Render("Keys"))
	for _, group := range m.keys.FullHelp() {
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "\n%-8s %s", h.Key, h.Desc)
		}
	}
	b.WriteString("\n\n" + components.SubtleStyle.Render("press any key to close"))
	return components.HelpBoxStyle.Render(b.String())
}
