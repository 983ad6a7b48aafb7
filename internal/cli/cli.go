// Package cli holds what the corkboard subcommands share: loading a board
// into a controller session, output formatting and exit codes.
//
// A CLI command works the same way the terminal UI does. It loads the board
// page into a view tree, binds a controller to it and performs a drag on the
// tree; the controller sends the request when the drag is dropped.
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/corkboard/internal/client"
	"github.com/thenoetrevino/corkboard/internal/config"
	"github.com/thenoetrevino/corkboard/internal/controller"
	"github.com/thenoetrevino/corkboard/internal/snapshot"
	"github.com/thenoetrevino/corkboard/internal/sortable"
	"github.com/thenoetrevino/corkboard/internal/view"
)

// OpError is a controller operation that failed while a command ran.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Session is a loaded board with a controller bound to it. Requests run
// synchronously, so by the time a drop returns the server has answered.
type Session struct {
	Config *config.Config
	Client *client.Client
	Doc    *view.Document
	Ctrl   *controller.Controller

	log      *slog.Logger
	failures []error
	warnings []error
}

type configKey struct{}

// WithConfig returns a context whose commands use cfg instead of loading the
// config file.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// LoadConfig returns the config for cmd: the one in its context if set,
// otherwise the config file, with --server and --board applied on top.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if ctx := cmd.Context(); ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*config.Config); ok && c != nil {
			copied := *c
			cfg = &copied
		}
	}
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if server, _ := cmd.Flags().GetString("server"); server != "" {
		cfg.Server.BaseURL = server
	}
	if board, _ := cmd.Flags().GetString("board"); board != "" {
		cfg.Server.BoardID = board
	}
	return cfg, cfg.Validate()
}

// NewSession fetches the configured board page and binds a controller to it.
func NewSession(ctx context.Context, cfg *config.Config) (*Session, error) {
	api, err := client.New(cfg.Server.BaseURL, client.WithTimeout(cfg.Server.RequestTimeout))
	if err != nil {
		return nil, err
	}

	path := controller.PagePath(controller.RefreshTarget(cfg.Server.RefreshTarget), cfg.Server.BoardID)
	page, err := api.FetchPage(ctx, path)
	if err != nil {
		return nil, &OpError{Op: "board.load", Err: err}
	}
	doc, err := view.Load(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	s := &Session{
		Config: cfg,
		Client: api,
		Doc:    doc,
		log:    slog.Default(),
	}
	s.Ctrl = controller.New(doc, api, controller.Immediate(ctx), controller.Options{
		ColumnDrag:            controller.ColumnDragPolicy(cfg.Behavior.ColumnDrag),
		RefreshTarget:         controller.RefreshTarget(cfg.Server.RefreshTarget),
		RefreshAfterChecklist: cfg.Behavior.RefreshAfterChecklist,
		RevertOnFailure:       cfg.Behavior.RevertOnFailure,
		OnError:               s.record,
		Logger:                s.log,
	})
	s.Ctrl.Attach()
	doc.Ready()
	return s, nil
}

// Open loads the config for cmd and starts a session on it.
func Open(cmd *cobra.Command) (*Session, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return NewSession(cmd.Context(), cfg)
}

func (s *Session) record(op string, err error) {
	// a failed refresh leaves the tree stale but the change itself was saved
	if op == "board.refresh" {
		s.log.Warn("refresh after change failed", "error", err)
		s.warnings = append(s.warnings, &OpError{Op: op, Err: err})
		return
	}
	s.failures = append(s.failures, &OpError{Op: op, Err: err})
}

// Warnings returns and clears failures that did not undo a change, such as a
// refresh after a successful move.
func (s *Session) Warnings() []error {
	w := s.warnings
	s.warnings = nil
	return w
}

// Err returns the failures reported since the last call, joined.
func (s *Session) Err() error {
	err := errors.Join(s.failures...)
	s.failures = nil
	return err
}

// Board reads the board currently in the tree.
func (s *Session) Board() snapshot.Board {
	return snapshot.ReadBoard(s.Doc)
}

// Modal reads the card currently loaded into the modal.
func (s *Session) Modal() snapshot.Modal {
	return snapshot.ReadModal(s.Doc)
}

// Place drags the node at origin to index within container and drops it.
// It returns the drop event and any failure the controller reported while
// handling it.
func (s *Session) Place(origin, container *view.Node, index int) (sortable.Event, error) {
	drag, err := s.Ctrl.Registry().Start(origin)
	if err != nil {
		return sortable.Event{}, err
	}
	if _, err := drag.MoveTo(container, index); err != nil {
		_ = drag.Cancel()
		return sortable.Event{}, err
	}
	ev, err := drag.Drop()
	if err != nil {
		return ev, err
	}
	return ev, s.Err()
}
