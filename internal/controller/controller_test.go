package controller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/corkboard/internal/client"
	"github.com/thenoetrevino/corkboard/internal/markup"
	"github.com/thenoetrevino/corkboard/internal/testutil/boardserver"
	"github.com/thenoetrevino/corkboard/internal/view"
)

// ============================================================================
// TEST DOUBLES
// ============================================================================

type moveCall struct {
	cardID string
	req    client.MoveCardRequest
}

type checklistCall struct {
	cardID  string
	itemIDs []string
	boardID string
}

type fetchCall struct {
	path   string
	target string
}

// fakeAPI records calls and renders fragments from an in-memory board server.
type fakeAPI struct {
	srv *boardserver.Server

	reorders   [][]string
	reorderIDs []string
	moves      []moveCall
	checklists []checklistCall
	renames    []string
	fetches    []fetchCall

	errs map[string]error
}

func newFakeAPI(boards ...*boardserver.Board) *fakeAPI {
	if len(boards) == 0 {
		boards = []*boardserver.Board{boardserver.Sample(), boardserver.SideProject()}
	}
	return &fakeAPI{srv: boardserver.New(boards...), errs: map[string]error{}}
}

func (f *fakeAPI) ReorderColumns(_ context.Context, boardID string, columnIDs []string) error {
	f.reorderIDs = append(f.reorderIDs, boardID)
	f.reorders = append(f.reorders, columnIDs)
	return f.errs["ReorderColumns"]
}

func (f *fakeAPI) MoveCard(_ context.Context, cardID string, req client.MoveCardRequest) error {
	f.moves = append(f.moves, moveCall{cardID, req})
	return f.errs["MoveCard"]
}

func (f *fakeAPI) ReorderChecklist(_ context.Context, cardID string, itemIDs []string, boardID string) error {
	f.checklists = append(f.checklists, checklistCall{cardID, itemIDs, boardID})
	return f.errs["ReorderChecklist"]
}

func (f *fakeAPI) RenameBoard(_ context.Context, boardID, name string) error {
	f.renames = append(f.renames, boardID+"="+name)
	return f.errs["RenameBoard"]
}

func (f *fakeAPI) FetchFragment(_ context.Context, path, target string) ([]byte, error) {
	f.fetches = append(f.fetches, fetchCall{path, target})
	if err := f.errs["FetchFragment"]; err != nil {
		return nil, err
	}
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		return nil, &client.StatusError{Method: http.MethodGet, Path: path, Code: rec.Code}
	}
	return rec.Body.Bytes(), nil
}

// page renders the full page of a board the way a browser would first load it.
func (f *fakeAPI) page(t *testing.T, path string) *view.Document {
	t.Helper()
	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := view.Load(rec.Body)
	require.NoError(t, err)
	return doc
}

// queue holds scheduled tasks until the test runs them, like requests that
// are still in flight.
type queue struct {
	names []string
	tasks []Task
}

func (q *queue) Schedule(name string, task Task) {
	q.names = append(q.names, name)
	q.tasks = append(q.tasks, task)
}

func (q *queue) Len() int {
	return len(q.tasks)
}

// runAll drains the queue, including tasks scheduled by continuations.
func (q *queue) runAll() {
	for len(q.tasks) > 0 {
		task := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.names = q.names[1:]
		if next := task(context.Background()); next != nil {
			next()
		}
	}
}

type reported struct {
	op  string
	err error
}

type harness struct {
	api    *fakeAPI
	doc    *view.Document
	q      *queue
	c      *Controller
	errors []reported
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{api: newFakeAPI(), q: &queue{}}
	h.doc = h.api.page(t, "/boards/1")
	opts.OnError = func(op string, err error) { h.errors = append(h.errors, reported{op, err}) }
	h.c = New(h.doc, h.api, h.q, opts)
	h.c.Attach()
	h.doc.Ready()
	return h
}

func (h *harness) node(t *testing.T, m view.Matcher) *view.Node {
	t.Helper()
	n := h.doc.Query(m)
	require.NotNil(t, n, "no element matches")
	return n
}

// withAttr matches elements of class whose attr equals value.
func withAttr(class, attr, value string) view.Matcher {
	return view.All(view.HasClass(class), view.AttrEquals(attr, value))
}

func (h *harness) card(t *testing.T, id string) *view.Node {
	return h.node(t, withAttr(markup.ClassCardItem, markup.AttrCardID, id))
}

func (h *harness) cards(t *testing.T, columnID string) *view.Node {
	return h.node(t, withAttr(markup.ClassCardsContainer, markup.AttrColumnID, columnID))
}

func (h *harness) header(t *testing.T, columnID string) *view.Node {
	col := h.node(t, withAttr("column", markup.AttrColumnID, columnID))
	header := col.Find(view.HasClass(markup.ClassColumnHeader))
	require.NotNil(t, header)
	return header
}

// dragCard moves a card into the cards container of columnID at index and drops it.
func (h *harness) dragCard(t *testing.T, cardID, columnID string, index int) {
	t.Helper()
	drag, err := h.c.Registry().Start(h.card(t, cardID))
	require.NoError(t, err)
	_, err = drag.MoveTo(h.cards(t, columnID), index)
	require.NoError(t, err)
	_, err = drag.Drop()
	require.NoError(t, err)
}

func attrs(nodes []*view.Node, attr string) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Attr(attr))
	}
	return out
}

// ============================================================================
// INITIALIZE
// ============================================================================

func TestInitialize_BindsEachContainerOnce(t *testing.T) {
	h := newHarness(t, Options{})

	// load already bound the columns container and three card containers
	assert.Equal(t, 4, h.c.Registry().Len())
	assert.True(t, h.node(t, view.HasID("columns-container")).Bound())
	for _, n := range h.doc.QueryAll(view.HasClass(markup.ClassCardsContainer)) {
		assert.True(t, n.Bound())
	}

	assert.Equal(t, 0, h.c.Initialize())
	assert.Equal(t, 0, h.c.Initialize())
	assert.Equal(t, 4, h.c.Registry().Len())
	assert.EqualValues(t, 4, h.c.Stats().Snapshot().Bindings)
}

func TestInitialize_RepeatedCallsKeepOneHandlerPerDrag(t *testing.T) {
	h := newHarness(t, Options{})
	h.c.Initialize()
	h.c.Initialize()

	h.dragCard(t, "8", "2", 0)
	assert.Equal(t, 1, h.q.Len(), "one drop schedules one request")
	h.q.runAll()
	assert.Len(t, h.api.moves, 1)
}

func TestInitialize_NewContainerAfterSwapIsBound(t *testing.T) {
	h := newHarness(t, Options{})
	oldCards := h.cards(t, "2")

	require.True(t, h.c.Refresh("1"))
	h.q.runAll()

	fresh := h.cards(t, "2")
	assert.NotSame(t, oldCards, fresh)
	assert.True(t, fresh.Bound())
	assert.False(t, h.doc.Attached(oldCards))
	_, stale := h.c.Registry().Get(oldCards)
	assert.False(t, stale, "detached containers are pruned")
	assert.Equal(t, 4, h.c.Registry().Len())
}

func TestInitialize_PageWithoutBoard(t *testing.T) {
	doc := view.NewDocument(view.NewElement(view.DocumentTag))
	c := New(doc, newFakeAPI(), &queue{}, Options{})
	assert.Equal(t, 0, c.Initialize())
	assert.Equal(t, "", c.BoardID())
}

// ============================================================================
// COLUMN DRAG POLICY
// ============================================================================

func TestColumnDrag_HandlePolicy(t *testing.T) {
	h := newHarness(t, Options{})
	reg := h.c.Registry()

	_, err := reg.Start(h.node(t, withAttr("column", "data-column-id", "5")))
	assert.Error(t, err, "column body is not the handle")

	drag, err := reg.Start(h.header(t, "5"))
	require.NoError(t, err)
	assert.Equal(t, "5", drag.Item().Attr(markup.AttrColumnID))
	require.NoError(t, drag.Cancel())
}

func TestColumnDrag_FilterPolicy(t *testing.T) {
	h := newHarness(t, Options{ColumnDrag: ColumnDragFilter})
	reg := h.c.Registry()

	drag, err := reg.Start(h.node(t, withAttr("column", "data-column-id", "5")))
	require.NoError(t, err)
	require.NoError(t, drag.Cancel())

	button := h.header(t, "5").Find(view.HasTag("button"))
	require.NotNil(t, button)
	_, err = reg.Start(button)
	assert.Error(t, err, "controls never start a drag")
}

func TestCardDrag_ControlsDoNotStartDrag(t *testing.T) {
	h := newHarness(t, Options{})
	checkbox := h.card(t, "7").Find(view.HasTag("input"))
	require.NotNil(t, checkbox)

	_, err := h.c.Registry().Start(checkbox)
	assert.Error(t, err)
	assert.Zero(t, h.q.Len())
}

// ============================================================================
// REFRESH TARGET
// ============================================================================

func TestRefresh_Targets(t *testing.T) {
	h := newHarness(t, Options{})
	h.c.Refresh("3")
	h.q.runAll()
	require.Len(t, h.api.fetches, 1)
	assert.Equal(t, fetchCall{"/boards/3", markup.BoardContentID}, h.api.fetches[0])
	assert.Equal(t, "3", h.c.BoardID(), "swapped region now shows board 3")

	root := newHarness(t, Options{RefreshTarget: RefreshRoot})
	root.c.Refresh("1")
	root.q.runAll()
	require.Len(t, root.api.fetches, 1)
	assert.Equal(t, "/", root.api.fetches[0].path)
}

func TestPagePath(t *testing.T) {
	assert.Equal(t, "/boards/3", PagePath(RefreshBoard, "3"))
	assert.Equal(t, "/boards/3", PagePath("", "3"))
	assert.Equal(t, "/", PagePath(RefreshRoot, "3"))
}

func TestRefresh_EmptyBoardIDIsNoop(t *testing.T) {
	h := newHarness(t, Options{})
	assert.False(t, h.c.Refresh(""))
	assert.Zero(t, h.q.Len())
}

func TestRefresh_FailureReported(t *testing.T) {
	h := newHarness(t, Options{})
	h.api.errs["FetchFragment"] = errors.New("offline")
	before := h.cards(t, "2")

	h.c.Refresh("1")
	h.q.runAll()

	require.Len(t, h.errors, 1)
	assert.Equal(t, "board.refresh", h.errors[0].op)
	assert.Same(t, before, h.cards(t, "2"), "tree is untouched")
	assert.EqualValues(t, 1, h.c.Stats().Snapshot().RequestsFailed)
}

// ============================================================================
// CLOSE MODAL AND REFRESH
// ============================================================================

func TestCloseModalAndRefresh_ExplicitIDNeverResolves(t *testing.T) {
	h := newHarness(t, Options{})
	h.node(t, view.HasID("modal-backdrop")).RemoveClass(markup.ClassHidden)
	h.c.resolveBoard = func() string {
		t.Error("board id must not be resolved when given")
		return "1"
	}

	h.c.CloseModalAndRefresh("3")
	h.q.runAll()

	assert.True(t, h.node(t, view.HasID("modal-backdrop")).HasClass(markup.ClassHidden))
	require.Len(t, h.api.fetches, 1)
	assert.Equal(t, "/boards/3", h.api.fetches[0].path)
}

func TestCloseModalAndRefresh_ResolvesFromPage(t *testing.T) {
	h := newHarness(t, Options{})
	h.c.CloseModalAndRefresh("")
	h.q.runAll()

	require.Len(t, h.api.fetches, 1)
	assert.Equal(t, "/boards/1", h.api.fetches[0].path)
}

func TestCloseModalAndRefresh_SkipsWithoutBoard(t *testing.T) {
	h := newHarness(t, Options{})
	h.node(t, view.HasID("columns-container")).Detach()
	h.node(t, view.HasID("modal-backdrop")).RemoveClass(markup.ClassHidden)

	h.c.CloseModalAndRefresh("")
	h.q.runAll()

	assert.True(t, h.node(t, view.HasID("modal-backdrop")).HasClass(markup.ClassHidden))
	assert.Empty(t, h.api.fetches)
	assert.Empty(t, h.errors, "skipping is silent")
}

// ============================================================================
// RENAME
// ============================================================================

func TestStartAndCancelRename(t *testing.T) {
	h := newHarness(t, Options{})
	form := h.node(t, view.HasID("rename-form-1"))
	input := h.node(t, view.HasID("rename-input-1"))
	require.True(t, form.HasClass(markup.ClassHidden))

	require.True(t, h.c.StartRenameBoard("1", "Roadmap"))
	assert.False(t, form.HasClass(markup.ClassHidden))
	assert.True(t, h.c.RenameActive("1"))
	assert.Equal(t, "Roadmap", input.Value())
	assert.Same(t, input, h.doc.Focused())
	assert.True(t, input.Selected())

	h.c.CancelRenameBoard("1")
	assert.True(t, form.HasClass(markup.ClassHidden))
	assert.Nil(t, h.doc.Focused())
	assert.Zero(t, h.q.Len(), "toggles never touch the network")
}

func TestStartRename_UnknownBoard(t *testing.T) {
	h := newHarness(t, Options{})
	assert.False(t, h.c.StartRenameBoard("42", "x"))
	h.c.CancelRenameBoard("42")
}

func TestSubmitRename(t *testing.T) {
	h := newHarness(t, Options{})
	require.True(t, h.c.StartRenameBoard("1", "Roadmap"))

	h.node(t, view.HasID("rename-input-1")).SetValue("   ")
	assert.ErrorIs(t, h.c.SubmitRenameBoard("1"), ErrBlankName)
	assert.Zero(t, h.q.Len())

	h.node(t, view.HasID("rename-input-1")).SetValue("  Q3 plan ")
	require.NoError(t, h.c.SubmitRenameBoard("1"))
	h.q.runAll()

	assert.Equal(t, []string{"1=Q3 plan"}, h.api.renames)
	assert.False(t, h.c.RenameActive("1"))
	require.Len(t, h.api.fetches, 1)
	assert.Equal(t, "/boards/1", h.api.fetches[0].path)
}

func TestSubmitRename_FailureKeepsFormOpen(t *testing.T) {
	h := newHarness(t, Options{})
	require.True(t, h.c.StartRenameBoard("1", "Roadmap"))
	h.api.errs["RenameBoard"] = errors.New("nope")

	require.NoError(t, h.c.SubmitRenameBoard("1"))
	h.q.runAll()

	assert.True(t, h.c.RenameActive("1"))
	assert.Empty(t, h.api.fetches)
	require.Len(t, h.errors, 1)
	assert.Equal(t, "boards.rename", h.errors[0].op)
}

// ============================================================================
// SCHEDULERS
// ============================================================================

func TestImmediateScheduler_RunsContinuation(t *testing.T) {
	var order []string
	Immediate(context.Background()).Schedule("x", func(ctx context.Context) Continuation {
		order = append(order, "task")
		return func() { order = append(order, "continuation") }
	})
	assert.Equal(t, []string{"task", "continuation"}, order)

	Immediate(context.Background()).Schedule("nil", func(context.Context) Continuation { return nil })
}

func TestOpLabel(t *testing.T) {
	assert.Equal(t, "Card move", OpLabel("cards.move"))
	assert.Equal(t, "custom.op", OpLabel("custom.op"))
}
