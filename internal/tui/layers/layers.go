// Package layers positions overlays on top of the board
package layers

import "charm.land/lipgloss/v2"

const (
	// ModalWidthDivisor gives the modal half the screen by default
	ModalWidthDivisor = 2
	ModalMinWidth     = 40
	ModalMaxWidth     = 80

	// ModalChromeHeight covers border, padding, title and footer
	ModalChromeHeight = 8
	ModalMinHeight    = 10

	ModalMaxHeightNumerator = 3
	ModalMaxHeightDivisor   = 4 // 3/4 of the screen
)

// CreateCenteredLayer creates a layer positioned at the center of the screen.
// Returns nil if content is empty.
func CreateCenteredLayer(content string, screenWidth int, screenHeight int) *lipgloss.Layer {
	if content == "" {
		return nil
	}

	contentWidth := lipgloss.Width(content)
	contentHeight := lipgloss.Height(content)

	x := max((screenWidth-contentWidth)/2, 0)
	y := max((screenHeight-contentHeight)/2, 0)

	return lipgloss.NewLayer(content).X(x).Y(y)
}

// ModalDimensions sizes the card modal for a checklist of itemCount entries.
// Returns (width, height); height is the most the modal may use and never
// exceeds the screen.
func ModalDimensions(itemCount int, screenWidth int, screenHeight int) (int, int) {
	width := min(max(screenWidth/ModalWidthDivisor, ModalMinWidth), ModalMaxWidth)
	width = min(width, max(screenWidth-2, 1))

	height := max(ModalChromeHeight+itemCount, screenHeight*ModalMaxHeightNumerator/ModalMaxHeightDivisor, ModalMinHeight)
	height = min(height, max(screenHeight-2, 1))

	return width, height
}
