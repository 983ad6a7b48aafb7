package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/corkboard/internal/controller"
)

// continuationMsg carries a finished task's continuation back to Update.
type continuationMsg struct {
	name string
	next controller.Continuation
}

// cmdScheduler turns controller tasks into tea.Cmds. Bubble Tea runs commands
// on their own goroutines and feeds the result back into Update, so every
// continuation lands on the UI loop.
type cmdScheduler struct {
	ctx     context.Context
	pending []tea.Cmd
}

func newCmdScheduler(ctx context.Context) *cmdScheduler {
	return &cmdScheduler{ctx: ctx}
}

// Schedule queues the task until the next flush.
func (s *cmdScheduler) Schedule(name string, task controller.Task) {
	ctx := s.ctx
	s.pending = append(s.pending, func() tea.Msg {
		return continuationMsg{name: name, next: task(ctx)}
	})
}

// flush hands queued tasks to the runtime.
func (s *cmdScheduler) flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
