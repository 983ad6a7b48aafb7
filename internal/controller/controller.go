// Package controller binds drag-reorder behavior to a rendered board and
// turns drops into server requests.
//
// The controller never keeps its own copy of the board. Ids and order are read
// from the view tree when a drag ends, and the tree is refreshed from the
// server after changes that affect more than the dragged node.
package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/corkboard/internal/client"
	"github.com/thenoetrevino/corkboard/internal/markup"
	"github.com/thenoetrevino/corkboard/internal/sortable"
	"github.com/thenoetrevino/corkboard/internal/view"
)

var (
	// ErrMissingAttr is reported when an id needed for a request is absent
	// from the tree. No request is sent.
	ErrMissingAttr = errors.New("missing id attribute")
	// ErrBlankName rejects an empty board rename.
	ErrBlankName = errors.New("board name cannot be blank")
)

var opLabels = map[string]string{
	"board.load":        "Load board",
	"board.refresh":     "Refresh",
	"cards.modal":       "Open card",
	"cards.move":        "Card move",
	"columns.reorder":   "Column reorder",
	"checklist.reorder": "Checklist reorder",
	"boards.rename":     "Rename",
}

// OpLabel returns the user-facing name of an operation reported to OnError.
func OpLabel(op string) string {
	if label, ok := opLabels[op]; ok {
		return label
	}
	return op
}

// API is the server surface the controller needs. *client.Client implements it.
type API interface {
	ReorderColumns(ctx context.Context, boardID string, columnIDs []string) error
	MoveCard(ctx context.Context, cardID string, req client.MoveCardRequest) error
	ReorderChecklist(ctx context.Context, cardID string, itemIDs []string, boardID string) error
	RenameBoard(ctx context.Context, boardID, name string) error
	FetchFragment(ctx context.Context, path, target string) ([]byte, error)
}

// ColumnDragPolicy decides which starting points may drag a column.
type ColumnDragPolicy string

const (
	// ColumnDragHandle only starts column drags on the column header.
	ColumnDragHandle ColumnDragPolicy = "handle"
	// ColumnDragFilter starts column drags anywhere except form controls.
	ColumnDragFilter ColumnDragPolicy = "filter"
)

// RefreshTarget selects which URL a board refresh fetches.
type RefreshTarget string

const (
	// RefreshBoard fetches /boards/{id}.
	RefreshBoard RefreshTarget = "board"
	// RefreshRoot fetches /, for servers that only host one board.
	RefreshRoot RefreshTarget = "root"
)

// PagePath returns the page a board is loaded from under target.
func PagePath(target RefreshTarget, boardID string) string {
	if target == RefreshRoot {
		return "/"
	}
	return client.BoardPath(boardID)
}

// Options configures a Controller. The zero value is usable.
type Options struct {
	ColumnDrag            ColumnDragPolicy
	RefreshTarget         RefreshTarget
	RefreshAfterChecklist bool
	RevertOnFailure       bool

	// OnError receives every failed operation. It runs on the UI loop.
	OnError func(op string, err error)
	Logger  *slog.Logger
}

// Controller is the board interaction controller. All methods must be called
// from the loop the Scheduler delivers continuations on.
type Controller struct {
	doc   *view.Document
	api   API
	sched Scheduler
	opts  Options
	log   *slog.Logger
	reg   *sortable.Registry
	stats *Stats

	interactive view.Matcher

	// resolveBoard finds the current board id when none is given.
	resolveBoard func() string

	// modalSeq advances on every close; an open that finishes after a
	// close is dropped.
	modalSeq uint64
}

// New creates a controller for doc. Call Attach to start binding.
func New(doc *view.Document, api API, sched Scheduler, opts Options) *Controller {
	if opts.ColumnDrag == "" {
		opts.ColumnDrag = ColumnDragHandle
	}
	if opts.RefreshTarget == "" {
		opts.RefreshTarget = RefreshBoard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Controller{
		doc:         doc,
		api:         api,
		sched:       sched,
		opts:        opts,
		log:         logger,
		reg:         sortable.NewRegistry(),
		stats:       NewStats(),
		interactive: view.HasTag(markup.InteractiveControls...),
	}
	c.resolveBoard = c.BoardID
	return c
}

// Attach runs Initialize on document load and after every swap.
func (c *Controller) Attach() {
	c.doc.AddListener(view.EventLoad, func(view.Event) { c.Initialize() })
	c.doc.AddListener(view.EventAfterSwap, func(view.Event) { c.Initialize() })
}

// Document returns the tree the controller is bound to.
func (c *Controller) Document() *view.Document {
	return c.doc
}

// Registry exposes the sortable containers so a front end can run drags.
func (c *Controller) Registry() *sortable.Registry {
	return c.reg
}

// Stats returns the controller's counters.
func (c *Controller) Stats() *Stats {
	return c.stats
}

// BoardID reads the board id from the page's columns container.
func (c *Controller) BoardID() string {
	if n := c.doc.ByID(markup.ColumnsContainerID); n != nil {
		return n.Attr(markup.AttrBoardID)
	}
	return ""
}

// Initialize binds drag behavior to every unbound container and returns how
// many were bound. Calling it again without a swap binds nothing.
func (c *Controller) Initialize() int {
	if pruned := c.reg.Prune(c.doc.Attached); pruned > 0 {
		c.log.Debug("dropped detached sortables", "count", pruned)
	}

	bound := 0
	if cols := c.doc.ByID(markup.ColumnsContainerID); cols != nil && !cols.Bound() {
		opts := sortable.Options{
			Draggable: view.HasAttr(markup.AttrColumnID),
			OnEnd:     c.columnDragEnd,
		}
		if c.opts.ColumnDrag == ColumnDragFilter {
			opts.Filter = c.interactive
		} else {
			opts.Handle = view.HasClass(markup.ClassColumnHeader)
		}
		if c.bind(cols, opts) {
			bound++
		}
	}

	for _, cards := range c.doc.QueryAll(view.HasClass(markup.ClassCardsContainer)) {
		if cards.Bound() {
			continue
		}
		boardID := c.boardFor(cards)
		if c.bind(cards, sortable.Options{
			Group:     markup.CardsGroup,
			Draggable: view.HasClass(markup.ClassCardItem),
			Filter:    c.interactive,
			OnEnd:     c.cardDragEnd(boardID),
		}) {
			bound++
		}
	}

	for _, list := range c.doc.QueryAll(view.HasClass(markup.ClassChecklistContainer)) {
		if list.Bound() {
			continue
		}
		boardID := c.boardFor(list)
		if c.bind(list, sortable.Options{
			Draggable: view.HasClass(markup.ClassChecklistItem),
			Filter:    c.interactive,
			OnEnd:     c.checklistDragEnd(boardID),
		}) {
			bound++
		}
	}

	if bound > 0 {
		c.stats.Bindings.Add(int64(bound))
		c.log.Debug("bound sortables", "count", bound)
	}
	return bound
}

func (c *Controller) bind(n *view.Node, opts sortable.Options) bool {
	if _, err := c.reg.Create(n, opts); err != nil {
		c.log.Warn("bind sortable", "error", err)
		return false
	}
	n.MarkBound()
	return true
}

// boardFor returns the id of the board a container belongs to: its enclosing
// columns container, or the page's when it sits outside one (the modal).
func (c *Controller) boardFor(n *view.Node) string {
	if cols := n.Closest(view.HasID(markup.ColumnsContainerID)); cols != nil {
		return cols.Attr(markup.AttrBoardID)
	}
	return c.BoardID()
}

// ============================================================================
// REFRESH AND MODAL
// ============================================================================

// Refresh fetches the board region and swaps it in. An empty board id is a
// no-op and reports false.
func (c *Controller) Refresh(boardID string) bool {
	if boardID == "" {
		c.log.Debug("refresh skipped: no board id")
		return false
	}
	path := PagePath(c.opts.RefreshTarget, boardID)
	c.stats.Refreshes.Add(1)

	c.run("board.refresh", nil, func(ctx context.Context) ([]byte, error) {
		return c.api.FetchFragment(ctx, path, markup.BoardContentID)
	}, func(data []byte) {
		if err := c.doc.Swap(markup.BoardContentID, bytes.NewReader(data)); err != nil {
			c.report("board.refresh", err)
		}
	})
	return true
}

// CloseModalAndRefresh hides the modal and refreshes the board. An explicit
// board id is used as given; an empty one is looked up on the page, and when
// none is found the refresh is skipped.
func (c *Controller) CloseModalAndRefresh(boardID string) {
	c.modalSeq++
	if backdrop := c.doc.ByID(markup.ModalBackdropID); backdrop != nil {
		backdrop.AddClass(markup.ClassHidden)
	}
	if boardID == "" {
		boardID = c.resolveBoard()
	}
	c.Refresh(boardID)
}

// ModalOpen reports whether the modal backdrop is visible.
func (c *Controller) ModalOpen() bool {
	backdrop := c.doc.ByID(markup.ModalBackdropID)
	return backdrop != nil && !backdrop.HasClass(markup.ClassHidden)
}

// OpenCardModal loads a card's detail fragment into the modal and shows it.
func (c *Controller) OpenCardModal(cardID string) error {
	if cardID == "" {
		return fmt.Errorf("open card: %w: %s", ErrMissingAttr, markup.AttrCardID)
	}
	seq := c.modalSeq
	c.run("cards.modal", nil, func(ctx context.Context) ([]byte, error) {
		return c.api.FetchFragment(ctx, client.CardModalPath(cardID), markup.ModalContentID)
	}, func(data []byte) {
		if seq != c.modalSeq {
			c.log.Debug("card modal closed before it loaded", "card_id", cardID)
			return
		}
		if err := c.doc.Swap(markup.ModalContentID, bytes.NewReader(data)); err != nil {
			c.report("cards.modal", err)
			return
		}
		if backdrop := c.doc.ByID(markup.ModalBackdropID); backdrop != nil {
			backdrop.RemoveClass(markup.ClassHidden)
		}
	})
	return nil
}

// ============================================================================
// RENAME
// ============================================================================

// StartRenameBoard shows the board's rename form, fills it with the current
// name and focuses the input with its text selected. It reports false when the
// form is not on the page.
func (c *Controller) StartRenameBoard(boardID, currentName string) bool {
	form := c.doc.ByID(markup.RenameFormID(boardID))
	input := c.doc.ByID(markup.RenameInputID(boardID))
	if form == nil || input == nil {
		return false
	}
	form.RemoveClass(markup.ClassHidden)
	input.SetValue(currentName)
	c.doc.Focus(input)
	input.Select()
	return true
}

// CancelRenameBoard hides the board's rename form.
func (c *Controller) CancelRenameBoard(boardID string) {
	form := c.doc.ByID(markup.RenameFormID(boardID))
	if form == nil {
		return
	}
	form.AddClass(markup.ClassHidden)
	if f := c.doc.Focused(); f != nil && form.Contains(f) {
		c.doc.Blur()
	}
}

// RenameActive reports whether the board's rename form is shown.
func (c *Controller) RenameActive(boardID string) bool {
	form := c.doc.ByID(markup.RenameFormID(boardID))
	return form != nil && !form.HasClass(markup.ClassHidden)
}

// SubmitRenameBoard sends the rename input's value. On success the form is
// hidden and the board refreshed.
func (c *Controller) SubmitRenameBoard(boardID string) error {
	input := c.doc.ByID(markup.RenameInputID(boardID))
	if input == nil {
		return fmt.Errorf("rename board: %w: #%s", ErrMissingAttr, markup.RenameInputID(boardID))
	}
	name := strings.TrimSpace(input.Value())
	if name == "" {
		return ErrBlankName
	}

	c.run("boards.rename", nil, func(ctx context.Context) ([]byte, error) {
		return nil, c.api.RenameBoard(ctx, boardID, name)
	}, func([]byte) {
		c.CancelRenameBoard(boardID)
		c.Refresh(boardID)
	})
	return nil
}

// ============================================================================
// TASK PLUMBING
// ============================================================================

// run schedules a request. ok runs on the loop after success; on failure the
// error is reported and, if ev is set and reverts are enabled, the drag is
// undone.
func (c *Controller) run(op string, ev *sortable.Event, call func(context.Context) ([]byte, error), ok func([]byte)) {
	c.sched.Schedule(op, func(ctx context.Context) Continuation {
		c.stats.begin()
		data, err := call(ctx)
		c.stats.end(err)
		return func() {
			if err != nil {
				c.fail(op, err, ev)
				return
			}
			if ok != nil {
				ok(data)
			}
		}
	})
}

func (c *Controller) fail(op string, err error, ev *sortable.Event) {
	if ev != nil && c.opts.RevertOnFailure {
		if rerr := c.reg.Revert(*ev); rerr != nil {
			c.log.Debug("revert skipped", "op", op, "error", rerr)
		}
	}
	c.report(op, err)
}

func (c *Controller) report(op string, err error) {
	c.log.Warn("operation failed", "op", op, "error", err)
	if c.opts.OnError != nil {
		c.opts.OnError(op, err)
	}
}
