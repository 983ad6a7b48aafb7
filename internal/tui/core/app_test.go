package core

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/thenoetrevino/corkboard/internal/client"
	"github.com/thenoetrevino/corkboard/internal/config"
	"github.com/thenoetrevino/corkboard/internal/testutil/boardserver"
	"github.com/thenoetrevino/corkboard/internal/view"
)

func newApp(t *testing.T) *App {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	srv := boardserver.Start(t, boardserver.Sample())
	api, err := client.New(srv.URL())
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	page, err := api.FetchPage(ctx, client.BoardPath("1"))
	if err != nil {
		t.Fatalf("fetch page: %v", err)
	}
	doc, err := view.Load(bytes.NewReader(page))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return New(ctx, doc, api, config.Default())
}

// TestAppImplementsTeaModel verifies App implements tea.Model interface
func TestAppImplementsTeaModel(t *testing.T) {
	app := newApp(t)

	var _ tea.Model = app
	if app.Model() == nil {
		t.Fatal("App should expose its model")
	}
}

// TestAppUpdateReturnsSelf tests that Update keeps returning the wrapper
func TestAppUpdateReturnsSelf(t *testing.T) {
	app := newApp(t)

	updated, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if updated != app {
		t.Fatal("Update should return the same App")
	}

	if content := ansi.Strip(app.View().Content); !strings.Contains(content, "Roadmap") {
		t.Errorf("view should render the board, got:\n%s", content)
	}
}
