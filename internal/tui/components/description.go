package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// DescriptionProps describes a card's markdown description
type DescriptionProps struct {
	Description string
	Width       int
}

// Cache Glamour renderers by width to avoid expensive re-creation
var rendererCache sync.Map // map[int]*glamour.TermRenderer

// getRenderer returns a cached renderer for the given width
func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderDescription renders markdown, falling back to the raw text when
// glamour fails.
func RenderDescription(props DescriptionProps) string {
	if strings.TrimSpace(props.Description) == "" {
		return SubtleStyle.Render("No description")
	}

	renderer, err := getRenderer(max(props.Width, 10))
	if err != nil {
		return props.Description
	}
	rendered, err := renderer.Render(props.Description)
	if err != nil {
		return props.Description
	}
	return strings.Trim(rendered, "\n")
}
