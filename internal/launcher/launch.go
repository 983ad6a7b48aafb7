package launcher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/corkboard/internal/client"
	"github.com/thenoetrevino/corkboard/internal/config"
	"github.com/thenoetrevino/corkboard/internal/controller"
	"github.com/thenoetrevino/corkboard/internal/tui/core"
	"github.com/thenoetrevino/corkboard/internal/view"
)

// shutdownGrace bounds how long a signal waits for the program to exit
const shutdownGrace = 2 * time.Second

// Launch loads the configured board and runs the TUI until the user quits or
// the process is signalled.
func Launch(ctx context.Context, cfg *config.Config) error {
	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	api, doc, err := loadBoard(ctx, cfg)
	if err != nil {
		return err
	}

	tuiApp := core.New(ctx, doc, api, cfg)
	p := tea.NewProgram(tuiApp, tea.WithContext(ctx))

	// goroutine to monitor cancellation
	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	// Wait for program completion or cancellation
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up")
		// requests in flight share ctx and are cancelled with it
		select {
		case <-errChan:
		case <-time.After(shutdownGrace):
			slog.Warn("program did not exit in time")
		}
	}

	stats := tuiApp.Model().Controller().Stats().Snapshot()
	slog.Info("session ended", "requests_sent", stats.RequestsSent, "requests_failed", stats.RequestsFailed)
	return nil
}

// loadBoard fetches the board page the TUI starts on. Failures carry the
// same hint the status bar would show.
func loadBoard(ctx context.Context, cfg *config.Config) (*client.Client, *view.Document, error) {
	api, err := client.New(cfg.Server.BaseURL,
		client.WithTimeout(cfg.Server.RequestTimeout),
		client.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, nil, err
	}

	path := controller.PagePath(controller.RefreshTarget(cfg.Server.RefreshTarget), cfg.Server.BoardID)
	page, err := api.FetchPage(ctx, path)
	if err != nil {
		slog.Error("failed to load board", "path", path, "error", err)
		return nil, nil, fmt.Errorf("failed to load %s%s: %w", api.BaseURL(), path, client.Classify(err))
	}

	doc, err := view.Load(bytes.NewReader(page))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return api, doc, nil
}
