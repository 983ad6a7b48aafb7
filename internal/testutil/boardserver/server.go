// Package boardserver is an in-process fake of the board server used by tests.
// It renders the same markup the real server does, applies reorders and moves
// to in-memory boards, and records every request it receives.
package boardserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// Route names accepted by Fail.
const (
	RouteIndex            = "index"
	RouteBoardShow        = "boards.show"
	RouteBoardUpdate      = "boards.update"
	RouteColumnsReorder   = "columns.reorder"
	RouteCardMove         = "cards.move"
	RouteCardModal        = "cards.modal"
	RouteChecklistReorder = "checklist.reorder"
)

// Request is a recorded request.
type Request struct {
	Route  string
	Method string
	Path   string
	Header http.Header
	Body   string
}

// Form decodes a urlencoded body.
func (r Request) Form() url.Values {
	v, _ := url.ParseQuery(r.Body)
	return v
}

// Server is a fake board server.
type Server struct {
	mu       sync.Mutex
	boards   []*Board
	requests []Request
	failures map[string]int
	// requests to let through before a failure applies
	skips map[string]int

	router *mux.Router
	srv    *httptest.Server
}

// New creates a server holding boards. The first board is served at "/".
func New(boards ...*Board) *Server {
	s := &Server{failures: map[string]int{}, skips: map[string]int{}}
	for _, b := range boards {
		s.boards = append(s.boards, b.clone())
	}

	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet).Name(RouteIndex)
	r.HandleFunc("/boards/{id:[0-9]+}", s.handleBoardShow).Methods(http.MethodGet).Name(RouteBoardShow)
	r.HandleFunc("/boards/{id:[0-9]+}", s.handleBoardUpdate).Methods(http.MethodPut).Name(RouteBoardUpdate)
	r.HandleFunc("/columns/reorder", s.handleColumnsReorder).Methods(http.MethodPost).Name(RouteColumnsReorder)
	r.HandleFunc("/cards/{id:[0-9]+}/move", s.handleCardMove).Methods(http.MethodPost).Name(RouteCardMove)
	r.HandleFunc("/cards/{id:[0-9]+}/modal", s.handleCardModal).Methods(http.MethodGet).Name(RouteCardModal)
	r.HandleFunc("/cards/{id:[0-9]+}/checklist/reorder", s.handleChecklistReorder).Methods(http.MethodPost).Name(RouteChecklistReorder)
	r.Use(s.record)
	s.router = r
	return s
}

// Start creates and starts a server that is closed when the test ends.
func Start(t testing.TB, boards ...*Board) *Server {
	t.Helper()
	s := New(boards...)
	s.srv = httptest.NewServer(s.router)
	t.Cleanup(s.srv.Close)
	return s
}

// URL returns the server's base URL. Only valid after Start.
func (s *Server) URL() string {
	return s.srv.URL
}

// Handler exposes the router for direct use with httptest.ResponseRecorder.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Fail makes every subsequent request to route answer with status.
// A zero status clears the failure.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.skips, route)
	if status == 0 {
		delete(s.failures, route)
		return
	}
	s.failures[route] = status
}

// FailAfter is Fail, but the next n requests to route still succeed.
func (s *Server) FailAfter(route string, n int, status int) {
	s.Fail(route, status)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skips[route] = n
}

// Requests returns every recorded request in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// RequestsTo returns the recorded requests that matched route.
func (s *Server) RequestsTo(route string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Route == route {
			out = append(out, r)
		}
	}
	return out
}

// Board returns a copy of the current state of a board.
func (s *Server) Board(id int64) *Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b := s.board(id); b != nil {
		return b.clone()
	}
	return nil
}

// ColumnIDs returns the column order of a board.
func (b *Board) ColumnIDs() []int64 {
	var out []int64
	for _, c := range b.Columns {
		out = append(out, c.ID)
	}
	return out
}

// CardIDs returns the card order of a column, or nil if it does not exist.
func (b *Board) CardIDs(columnID int64) []int64 {
	col := b.column(columnID)
	if col == nil {
		return nil
	}
	var out []int64
	for _, c := range col.Cards {
		out = append(out, c.ID)
	}
	return out
}

// Card returns a card by id.
func (b *Board) Card(id int64) *Card {
	col, i := b.card(id)
	if col == nil {
		return nil
	}
	return col.Cards[i]
}

func (s *Server) board(id int64) *Board {
	for _, b := range s.boards {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *Server) boardOfCard(cardID int64) (*Board, *Column, int) {
	for _, b := range s.boards {
		if col, i := b.card(cardID); col != nil {
			return b, col, i
		}
	}
	return nil, nil, -1
}

// ============================================================================
// MIDDLEWARE
// ============================================================================

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(data))

		route := ""
		if cur := mux.CurrentRoute(r); cur != nil {
			route = cur.GetName()
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Route:  route,
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   string(data),
		})
		status := s.failures[route]
		if status != 0 && s.skips[route] > 0 {
			s.skips[route]--
			status = 0
		}
		s.mu.Unlock()

		if status != 0 {
			http.Error(w, fmt.Sprintf("forced failure on %s", route), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.boards) == 0 {
		http.NotFound(w, r)
		return
	}
	s.renderBoard(w, r, s.boards[0])
}

func (s *Server) handleBoardShow(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.board(pathID(r))
	if b == nil {
		http.NotFound(w, r)
		return
	}
	s.renderBoard(w, r, b)
}

func (s *Server) handleBoardUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.PostForm.Get("name"))
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.board(pathID(r))
	if b == nil {
		http.NotFound(w, r)
		return
	}
	b.Name = name
	s.renderBoard(w, r, b)
}

func (s *Server) handleColumnsReorder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	boardID, err := strconv.ParseInt(r.PostForm.Get("board_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid board_id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.board(boardID)
	if b == nil {
		http.NotFound(w, r)
		return
	}

	var ordered []*Column
	for _, raw := range r.PostForm["column_ids"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid column id", http.StatusBadRequest)
			return
		}
		col := b.column(id)
		if col == nil {
			http.Error(w, fmt.Sprintf("column %d not on board", id), http.StatusBadRequest)
			return
		}
		ordered = append(ordered, col)
	}
	if len(ordered) != len(b.Columns) {
		http.Error(w, "column list incomplete", http.StatusBadRequest)
		return
	}
	b.Columns = ordered
	w.WriteHeader(http.StatusOK)
}

type moveRequest struct {
	ColumnID int64  `json:"column_id"`
	Position int    `json:"position"`
	BoardID  *int64 `json:"board_id"`
}

func (s *Server) handleCardMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b, from, i := s.boardOfCard(pathID(r))
	if b == nil {
		http.NotFound(w, r)
		return
	}
	to := b.column(req.ColumnID)
	if to == nil {
		http.Error(w, "unknown column", http.StatusBadRequest)
		return
	}

	card := from.Cards[i]
	from.Cards = slices.Delete(from.Cards, i, i+1)
	pos := max(0, min(req.Position, len(to.Cards)))
	to.Cards = slices.Insert(to.Cards, pos, card)
	card.Completed = to.Done

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"id": card.ID, "column_id": to.ID, "position": pos})
}

func (s *Server) handleCardModal(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, col, i := s.boardOfCard(pathID(r))
	if b == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "modal", col.Cards[i]); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleChecklistReorder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b, col, i := s.boardOfCard(pathID(r))
	if b == nil {
		http.NotFound(w, r)
		return
	}
	card := col.Cards[i]

	byID := map[int64]*Item{}
	for _, it := range card.Checklist {
		byID[it.ID] = it
	}
	var ordered []*Item
	for _, raw := range r.PostForm["item_ids"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || byID[id] == nil {
			http.Error(w, "invalid item id", http.StatusBadRequest)
			return
		}
		ordered = append(ordered, byID[id])
	}
	if len(ordered) != len(card.Checklist) {
		http.Error(w, "item list incomplete", http.StatusBadRequest)
		return
	}
	card.Checklist = ordered
	w.WriteHeader(http.StatusOK)
}

// renderBoard writes the board content fragment for htmx-style requests and
// the full page otherwise.
func (s *Server) renderBoard(w http.ResponseWriter, r *http.Request, b *Board) {
	name := "page"
	if r.Header.Get("HX-Request") == "true" {
		name = "content"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, b); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}
