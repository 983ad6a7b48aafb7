package launcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/corkboard/internal/config"
	"github.com/thenoetrevino/corkboard/internal/snapshot"
	"github.com/thenoetrevino/corkboard/internal/testutil/boardserver"
)

func TestLoadBoard(t *testing.T) {
	srv := boardserver.Start(t, boardserver.Sample())
	cfg := config.Default()
	cfg.Server.BaseURL = srv.URL()

	api, doc, err := loadBoard(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, srv.URL(), api.BaseURL())
	assert.Equal(t, "Roadmap", snapshot.ReadBoard(doc).Name)
}

func TestLoadBoard_NotFound(t *testing.T) {
	srv := boardserver.Start(t, boardserver.Sample())
	cfg := config.Default()
	cfg.Server.BaseURL = srv.URL()
	cfg.Server.BoardID = "42"

	_, _, err := loadBoard(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/boards/42")
	assert.Contains(t, err.Error(), "Not found on server")
}

func TestLoadBoard_InvalidURL(t *testing.T) {
	cfg := config.Default()
	cfg.Server.BaseURL = "ftp://example.test"

	_, _, err := loadBoard(context.Background(), cfg)
	assert.ErrorContains(t, err, "scheme must be http or https")
}
