package controller

import "context"

// Continuation runs back on the UI loop once a Task's network work is done.
type Continuation func()

// Task performs blocking work off the UI loop and returns what to run after.
// A nil Continuation means there is nothing left to do.
type Task func(ctx context.Context) Continuation

// Scheduler runs tasks. Implementations must run every Continuation on the
// same loop that calls the controller.
type Scheduler interface {
	Schedule(name string, task Task)
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(name string, task Task)

// Schedule calls f.
func (f SchedulerFunc) Schedule(name string, task Task) {
	f(name, task)
}

// Immediate runs each task and its continuation synchronously. It suits the
// CLI, where there is no event loop to return to.
func Immediate(ctx context.Context) Scheduler {
	return SchedulerFunc(func(_ string, task Task) {
		if next := task(ctx); next != nil {
			next()
		}
	})
}
