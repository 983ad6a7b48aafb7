package tui

import (
	"errors"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/corkboard/internal/markup"
	"github.com/thenoetrevino/corkboard/internal/snapshot"
	"github.com/thenoetrevino/corkboard/internal/sortable"
)

// Update implements tea.Model. Whatever the controller scheduled while
// handling msg is flushed into the returned command.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case continuationMsg:
		if msg.name == "cards.modal" {
			m.modalPending = false
		}
		if msg.next != nil {
			msg.next()
		}
		m.reconcile()
	case tea.KeyPressMsg:
		cmd = m.handleKey(msg)
	}
	return m, tea.Batch(cmd, m.sched.flush())
}

// reconcile brings interaction state back in line with the tree after a
// continuation changed it.
func (m *Model) reconcile() {
	if m.drag != nil && !m.doc.Attached(m.drag.Item()) {
		m.drag = nil
		if m.mode == ModalDragMode {
			m.mode = ModalMode
		} else {
			m.mode = BoardMode
		}
		m.notifyErr("Board refreshed, drag cancelled")
	}

	switch m.mode {
	case ModalMode, ModalDragMode:
		if !m.modalPending && !m.ctrl.ModalOpen() {
			m.drag = nil
			m.mode = BoardMode
		}
	case RenameMode:
		if !m.ctrl.RenameActive(m.renameBoard) {
			m.mode = BoardMode
			m.rename.Blur()
			m.notify("Board renamed")
		}
	}

	m.clampFocus(snapshot.ReadBoard(m.doc))
	if n := len(snapshot.ReadModal(m.doc).Items); m.itemRow >= n {
		m.itemRow = max(n-1, 0)
	}
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch m.mode {
	case DragMode:
		return m.updateDrag(msg)
	case ModalMode:
		return m.updateModal(msg)
	case ModalDragMode:
		return m.updateModalDrag(msg)
	case RenameMode:
		return m.updateRename(msg)
	case HelpMode:
		if key.Matches(msg, m.keys.Quit) {
			return tea.Quit
		}
		m.mode = m.helpReturn
		return nil
	default:
		return m.updateBoard(msg)
	}
}

// ============================================================================
// BOARD
// ============================================================================

func (m *Model) updateBoard(msg tea.KeyPressMsg) tea.Cmd {
	b := snapshot.ReadBoard(m.doc)
	m.clampFocus(b)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.PrevColumn):
		m.focusColumn(b, m.col-1)
	case key.Matches(msg, m.keys.NextColumn):
		m.focusColumn(b, m.col+1)
	case key.Matches(msg, m.keys.PrevItem):
		m.row = max(m.row-1, -1)
	case key.Matches(msg, m.keys.NextItem):
		if m.col < len(b.Columns) {
			m.row = min(m.row+1, len(b.Columns[m.col].Items)-1)
		}
	case key.Matches(msg, m.keys.Grab):
		m.grab(b)
	case key.Matches(msg, m.keys.OpenCard):
		m.openCard(b)
	case key.Matches(msg, m.keys.Refresh):
		if m.ctrl.Refresh(m.boardID()) {
			m.notify("Refreshing...")
		} else {
			m.notifyErr("No board to refresh")
		}
	case key.Matches(msg, m.keys.RenameBoard):
		m.startRename(b)
	case key.Matches(msg, m.keys.ShowHelp):
		m.helpReturn = m.mode
		m.mode = HelpMode
	}
	return nil
}

func (m *Model) focusColumn(b snapshot.Board, col int) {
	if len(b.Columns) == 0 {
		return
	}
	m.col = min(max(col, 0), len(b.Columns)-1)
	m.row = min(m.row, len(b.Columns[m.col].Items)-1)
}

// clampFocus keeps the focus on an existing column and card.
func (m *Model) clampFocus(b snapshot.Board) {
	if len(b.Columns) == 0 {
		m.col, m.row = 0, -1
		return
	}
	m.col = min(max(m.col, 0), len(b.Columns)-1)
	m.row = min(max(m.row, -1), len(b.Columns[m.col].Items)-1)
}

func (m *Model) grab(b snapshot.Board) {
	if len(b.Columns) == 0 {
		return
	}
	col := b.Columns[m.col]
	origin := col.Header
	if m.row >= 0 {
		origin = col.Items[m.row].Node
	} else if origin == nil {
		origin = col.Node
	}

	drag, err := m.ctrl.Registry().Start(origin)
	if err != nil {
		m.notifyErr(grabError(err))
		return
	}
	m.drag = drag
	m.mode = DragMode
	m.notify("Moving, drop with " + m.keys.Grab.Help().Key)
}

func grabError(err error) string {
	switch {
	case errors.Is(err, sortable.ErrOutsideHandle):
		return "Columns are dragged by their header"
	case errors.Is(err, sortable.ErrFiltered):
		return "Cannot drag from a control"
	case errors.Is(err, sortable.ErrNotSortable), errors.Is(err, sortable.ErrNotDraggable):
		return "Nothing to drag here"
	default:
		return err.Error()
	}
}

func (m *Model) openCard(b snapshot.Board) {
	if len(b.Columns) == 0 || m.row < 0 {
		return
	}
	card := b.Columns[m.col].Items[m.row]
	if err := m.ctrl.OpenCardModal(card.ID); err != nil {
		m.notifyErr(err.Error())
		return
	}
	m.modalPending = true
	m.itemRow = 0
	m.mode = ModalMode
}

func (m *Model) startRename(b snapshot.Board) {
	id := m.boardID()
	if !m.ctrl.StartRenameBoard(id, b.Name) {
		m.notifyErr("This page has no rename form")
		return
	}
	m.renameBoard = id
	m.rename.SetValue(b.Name)
	m.rename.CursorEnd()
	m.rename.Focus()
	m.mode = RenameMode
}

// ============================================================================
// DRAG
// ============================================================================

func (m *Model) updateDrag(msg tea.KeyPressMsg) tea.Cmd {
	columnDrag := m.drag.Container().ID() == markup.ColumnsContainerID

	switch {
	case key.Matches(msg, m.keys.Quit):
		_ = m.drag.Cancel()
		return tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		_ = m.drag.Cancel()
		m.endDrag(BoardMode)
		m.notify("Move cancelled")
	case key.Matches(msg, m.keys.Grab), key.Matches(msg, m.keys.OpenCard):
		m.drop(BoardMode)
	case key.Matches(msg, m.keys.PrevColumn):
		if columnDrag {
			m.shift(-1)
		} else {
			m.moveCardAcross(-1)
		}
	case key.Matches(msg, m.keys.NextColumn):
		if columnDrag {
			m.shift(1)
		} else {
			m.moveCardAcross(1)
		}
	case key.Matches(msg, m.keys.PrevItem):
		if !columnDrag {
			m.shift(-1)
		}
	case key.Matches(msg, m.keys.NextItem):
		if !columnDrag {
			m.shift(1)
		}
	}

	if m.drag != nil {
		m.followDrag()
	}
	return nil
}

func (m *Model) shift(delta int) {
	if _, err := m.drag.Move(delta); err != nil {
		m.notifyErr(err.Error())
	}
}

// moveCardAcross moves the dragged card to the neighboring column, keeping
// its position where the column is long enough.
func (m *Model) moveCardAcross(delta int) {
	b := snapshot.ReadBoard(m.doc)
	col, _, ok := b.LocateCard(m.drag.Item())
	if !ok {
		return
	}
	target := col + delta
	if target < 0 || target >= len(b.Columns) || b.Columns[target].Cards == nil {
		return
	}
	if _, err := m.drag.MoveTo(b.Columns[target].Cards, m.drag.Index()); err != nil {
		m.notifyErr(err.Error())
	}
}

// followDrag puts the focus on the dragged node.
func (m *Model) followDrag() {
	item := m.drag.Item()
	if m.mode == ModalDragMode {
		if i, ok := snapshot.ReadModal(m.doc).LocateItem(item); ok {
			m.itemRow = i
		}
		return
	}
	b := snapshot.ReadBoard(m.doc)
	if col, row, ok := b.LocateCard(item); ok {
		m.col, m.row = col, row
		return
	}
	if col, ok := b.LocateColumn(item); ok {
		m.col, m.row = col, -1
	}
}

func (m *Model) drop(next Mode) {
	ev, err := m.drag.Drop()
	if err != nil {
		m.notifyErr(err.Error())
	} else if ev.Moved() {
		m.notify("Saving...")
	} else {
		m.notify("Dropped in place")
	}
	m.endDrag(next)
}

func (m *Model) endDrag(next Mode) {
	m.followDrag()
	m.drag = nil
	m.mode = next
}

// ============================================================================
// MODAL
// ============================================================================

func (m *Model) updateModal(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.CloseModalAndRefresh("")
		m.mode = BoardMode
		m.modalPending = false
	case key.Matches(msg, m.keys.PrevItem):
		m.itemRow = max(m.itemRow-1, 0)
	case key.Matches(msg, m.keys.NextItem):
		if n := len(snapshot.ReadModal(m.doc).Items); n > 0 {
			m.itemRow = min(m.itemRow+1, n-1)
		}
	case key.Matches(msg, m.keys.Grab):
		mv := snapshot.ReadModal(m.doc)
		if m.itemRow >= len(mv.Items) {
			return nil
		}
		drag, err := m.ctrl.Registry().Start(mv.Items[m.itemRow].Node)
		if err != nil {
			m.notifyErr(grabError(err))
			return nil
		}
		m.drag = drag
		m.mode = ModalDragMode
		m.notify("Moving item")
	case key.Matches(msg, m.keys.ShowHelp):
		m.helpReturn = m.mode
		m.mode = HelpMode
	}
	return nil
}

func (m *Model) updateModalDrag(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		_ = m.drag.Cancel()
		return tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		_ = m.drag.Cancel()
		m.endDrag(ModalMode)
		m.notify("Move cancelled")
	case key.Matches(msg, m.keys.Grab), key.Matches(msg, m.keys.OpenCard):
		m.drop(ModalMode)
	case key.Matches(msg, m.keys.PrevItem):
		m.shift(-1)
	case key.Matches(msg, m.keys.NextItem):
		m.shift(1)
	}

	if m.drag != nil {
		m.followDrag()
	}
	return nil
}

// ============================================================================
// RENAME
// ============================================================================

func (m *Model) updateRename(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.CancelRenameBoard(m.renameBoard)
		m.rename.Blur()
		m.mode = BoardMode
		m.notify("Rename cancelled")
		return nil
	case msg.String() == "enter":
		m.syncRenameInput()
		if err := m.ctrl.SubmitRenameBoard(m.renameBoard); err != nil {
			m.notifyErr(err.Error())
			return nil
		}
		m.notify("Saving...")
		return nil
	}

	// The input's blink commands are dropped; the cursor is drawn steady.
	m.rename, _ = m.rename.Update(msg)
	m.syncRenameInput()
	return nil
}

// syncRenameInput copies the text input into the page's rename input, which
// is what the controller submits.
func (m *Model) syncRenameInput() {
	if input := m.doc.ByID(markup.RenameInputID(m.renameBoard)); input != nil {
		input.SetValue(m.rename.Value())
	}
}
