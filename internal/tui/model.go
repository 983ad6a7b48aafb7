// Package tui is the terminal front end of the board controller. It renders
// the view tree the controller owns and turns key presses into drag gestures.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/corkboard/internal/client"
	"github.com/thenoetrevino/corkboard/internal/config"
	"github.com/thenoetrevino/corkboard/internal/controller"
	"github.com/thenoetrevino/corkboard/internal/sortable"
	"github.com/thenoetrevino/corkboard/internal/tui/components"
	"github.com/thenoetrevino/corkboard/internal/view"
)

// Mode is the current interaction mode
type Mode int

const (
	// BoardMode navigates columns and cards
	BoardMode Mode = iota
	// DragMode moves a grabbed card or column
	DragMode
	// ModalMode navigates an open card's checklist
	ModalMode
	// ModalDragMode moves a grabbed checklist item
	ModalDragMode
	// RenameMode edits the board name
	RenameMode
	// HelpMode shows the key bindings
	HelpMode
)

func (m Mode) String() string {
	switch m {
	case DragMode, ModalDragMode:
		return "DRAG"
	case ModalMode:
		return "CARD"
	case RenameMode:
		return "RENAME"
	case HelpMode:
		return "HELP"
	default:
		return "BOARD"
	}
}

// Model is the Bubble Tea model for the board
type Model struct {
	cfg   *config.Config
	log   *slog.Logger
	doc   *view.Document
	ctrl  *controller.Controller
	sched *cmdScheduler
	keys  keyMap

	rename      textinput.Model
	renameBoard string

	mode       Mode
	helpReturn Mode

	// Focus: col indexes columns; row indexes cards, -1 is the column header.
	col, row  int
	colOffset int
	itemRow   int

	drag         *sortable.Drag
	modalPending bool

	message string
	isError bool

	width, height int
}

// New binds a controller to doc and returns the model driving it. doc must
// not have been made ready yet; New fires its load event.
func New(ctx context.Context, doc *view.Document, api controller.API, cfg *config.Config) *Model {
	ti := textinput.New()
	ti.Placeholder = "Board name"
	ti.CharLimit = 120

	m := &Model{
		cfg:    cfg,
		log:    slog.Default(),
		doc:    doc,
		sched:  newCmdScheduler(ctx),
		keys:   newKeyMap(cfg.KeyMappings),
		rename: ti,
	}
	m.ctrl = controller.New(doc, api, m.sched, controller.Options{
		ColumnDrag:            controller.ColumnDragPolicy(cfg.Behavior.ColumnDrag),
		RefreshTarget:         controller.RefreshTarget(cfg.Server.RefreshTarget),
		RefreshAfterChecklist: cfg.Behavior.RefreshAfterChecklist,
		RevertOnFailure:       cfg.Behavior.RevertOnFailure,
		OnError:               m.reportError,
		Logger:                m.log,
	})
	m.ctrl.Attach()
	doc.Ready()

	components.InitStyles(cfg.ColorScheme)
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.sched.flush()
}

// Controller returns the controller bound to the board
func (m *Model) Controller() *controller.Controller {
	return m.ctrl
}

// Mode returns the current interaction mode
func (m *Model) Mode() Mode {
	return m.mode
}

// Message returns the status bar message and whether it is an error
func (m *Model) Message() (string, bool) {
	return m.message, m.isError
}

// boardID is the page's board, or the configured one before a board loads.
func (m *Model) boardID() string {
	if id := m.ctrl.BoardID(); id != "" {
		return id
	}
	return m.cfg.Server.BoardID
}

func (m *Model) notify(msg string) {
	m.message, m.isError = msg, false
}

func (m *Model) notifyErr(msg string) {
	m.message, m.isError = msg, true
}

// reportError receives controller failures on the UI loop.
func (m *Model) reportError(op string, err error) {
	if op == "cards.modal" {
		m.modalPending = false
	}
	if !m.cfg.Behavior.ErrorsVisible() {
		return
	}
	p := client.Classify(err)
	if p == nil {
		return
	}
	m.notifyErr(fmt.Sprintf("%s failed: %s", controller.OpLabel(op), p.Message))
}
