package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// StatusBarProps holds what the status bar shows
type StatusBarProps struct {
	Width int

	// Mode is the current interaction mode, e.g. "BOARD" or "DRAG"
	Mode string

	// Message is the most recent notice; IsError renders it as a banner
	Message string
	IsError bool

	Sent     int64
	Failed   int64
	InFlight int32
}

// RenderStatusBar renders a status bar with left and right aligned text
// Left side: mode and the latest message
// Right side: request counters and the help hint
func RenderStatusBar(props StatusBarProps) string {
	left := StatusBarStyle.Bold(true).Padding(0, 1).Render(props.Mode)
	if props.Message != "" {
		if props.IsError {
			left += " " + ErrorBannerStyle.Render(props.Message)
		} else {
			left += " " + StatusBarStyle.Render(props.Message)
		}
	}

	right := fmt.Sprintf("sent %d", props.Sent)
	if props.Failed > 0 {
		right += fmt.Sprintf(" · failed %d", props.Failed)
	}
	if props.InFlight > 0 {
		right += fmt.Sprintf(" · syncing %d", props.InFlight)
	}
	right = StatusBarStyle.Render(right + " · press ? for help ")

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	if leftWidth+rightWidth+1 > props.Width {
		left = ansi.Truncate(left, max(props.Width-rightWidth-1, 0), "…")
		leftWidth = lipgloss.Width(left)
	}
	gapWidth := max(props.Width-leftWidth-rightWidth, 1)

	gap := StatusBarStyle.Render(strings.Repeat(" ", gapWidth))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)
}
