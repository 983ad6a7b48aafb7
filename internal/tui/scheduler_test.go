package tui

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/corkboard/internal/controller"
)

type ctxKey struct{}

func TestCmdScheduler_FlushEmpty(t *testing.T) {
	s := newCmdScheduler(context.Background())
	assert.Nil(t, s.flush())
}

func TestCmdScheduler_RunsTaskInCommand(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey{}, "loop")
	s := newCmdScheduler(ctx)

	var seen any
	ran := false
	s.Schedule("test.op", func(ctx context.Context) controller.Continuation {
		seen = ctx.Value(ctxKey{})
		return func() { ran = true }
	})
	assert.Nil(t, seen, "tasks do not run until their command does")

	cmd := s.flush()
	require.NotNil(t, cmd)
	assert.Nil(t, s.flush(), "flush hands each task out once")

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		require.Len(t, batch, 1)
		msg = batch[0]()
	}
	cont, ok := msg.(continuationMsg)
	require.True(t, ok)
	assert.Equal(t, "test.op", cont.name)
	assert.Equal(t, "loop", seen)

	assert.False(t, ran)
	cont.next()
	assert.True(t, ran)
}
