// Package client talks to the board server over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxBodySize caps how much of a response is read.
const maxBodySize = 8 << 20

// Client sends board mutations and fetches rendered fragments.
type Client struct {
	base    string
	http    *http.Client
	log     *slog.Logger
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		base: strings.TrimRight(u.String(), "/"),
		http: http.DefaultClient,
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the server root the client was created with.
func (c *Client) BaseURL() string {
	return c.base
}

// MoveCardRequest is the JSON body of a card move.
type MoveCardRequest struct {
	ColumnID int64  `json:"column_id"`
	Position int    `json:"position"`
	BoardID  *int64 `json:"board_id,omitempty"`
}

// ReorderColumns persists the column order of a board.
func (c *Client) ReorderColumns(ctx context.Context, boardID string, columnIDs []string) error {
	form := url.Values{}
	form.Set("board_id", boardID)
	for _, id := range columnIDs {
		form.Add("column_ids", id)
	}
	_, err := c.send(ctx, http.MethodPost, "/columns/reorder", formBody(form), nil)
	return err
}

// MoveCard moves a card to a column and position.
func (c *Client) MoveCard(ctx context.Context, cardID string, req MoveCardRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode move: %w", err)
	}
	path := "/cards/" + url.PathEscape(cardID) + "/move"
	_, err = c.send(ctx, http.MethodPost, path, jsonBody(body), nil)
	return err
}

// ReorderChecklist persists the checklist order of a card. boardID may be empty.
func (c *Client) ReorderChecklist(ctx context.Context, cardID string, itemIDs []string, boardID string) error {
	form := url.Values{}
	for _, id := range itemIDs {
		form.Add("item_ids", id)
	}
	if boardID != "" {
		form.Set("board_id", boardID)
	}
	path := "/cards/" + url.PathEscape(cardID) + "/checklist/reorder"
	_, err := c.send(ctx, http.MethodPost, path, formBody(form), nil)
	return err
}

// RenameBoard changes a board's name.
func (c *Client) RenameBoard(ctx context.Context, boardID, name string) error {
	form := url.Values{}
	form.Set("name", name)
	_, err := c.send(ctx, http.MethodPut, "/boards/"+url.PathEscape(boardID), formBody(form), nil)
	return err
}

// FetchFragment requests the partial rendering of path meant for the region
// with id target.
func (c *Client) FetchFragment(ctx context.Context, path, target string) ([]byte, error) {
	return c.send(ctx, http.MethodGet, path, nil, http.Header{
		"HX-Request": {"true"},
		"HX-Target":  {target},
	})
}

// FetchPage requests the full page at path.
func (c *Client) FetchPage(ctx context.Context, path string) ([]byte, error) {
	return c.send(ctx, http.MethodGet, path, nil, nil)
}

// BoardPath returns the path of a board's page.
func BoardPath(boardID string) string {
	return "/boards/" + url.PathEscape(boardID)
}

// CardModalPath returns the path of a card's modal fragment.
func CardModalPath(cardID string) string {
	return "/cards/" + url.PathEscape(cardID) + "/modal"
}

// ParseID converts a numeric id attribute for JSON payloads.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

type body struct {
	contentType string
	data        []byte
}

func formBody(v url.Values) *body {
	return &body{contentType: "application/x-www-form-urlencoded", data: []byte(v.Encode())}
}

func jsonBody(data []byte) *body {
	return &body{contentType: "application/json", data: data}
}

func (c *Client) send(ctx context.Context, method, path string, b *body, header http.Header) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if b != nil {
		reader = bytes.NewReader(b.data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if b != nil {
		req.Header.Set("Content-Type", b.contentType)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.log.Debug("close response body", "error", closeErr)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	c.log.Debug("request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   trimBody(data),
		}
	}
	return data, nil
}
