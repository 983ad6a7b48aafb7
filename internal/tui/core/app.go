package core

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/corkboard/internal/config"
	"github.com/thenoetrevino/corkboard/internal/controller"
	"github.com/thenoetrevino/corkboard/internal/tui"
	"github.com/thenoetrevino/corkboard/internal/view"
)

// App wraps the TUI Model and implements the tea.Model interface.
// This is the single entry point for the Bubble Tea application.
type App struct {
	model *tui.Model
}

// New creates an App driving a freshly loaded board document.
func New(ctx context.Context, doc *view.Document, api controller.API, cfg *config.Config) *App {
	return &App{model: tui.New(ctx, doc, api, cfg)}
}

// Init initializes the Bubble Tea application.
func (a *App) Init() tea.Cmd {
	return a.model.Init()
}

// Update handles all messages and updates the model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := a.model.Update(msg)
	return a, cmd
}

// View renders the current state of the application.
func (a *App) View() tea.View {
	return a.model.View()
}

// Model returns the underlying Model.
// This is primarily useful for testing purposes.
func (a *App) Model() *tui.Model {
	return a.model
}
