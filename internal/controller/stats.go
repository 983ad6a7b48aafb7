package controller

import (
	"sync/atomic"
	"time"
)

// Stats counts controller traffic. Counters are updated from scheduled tasks,
// which may run off the UI loop.
type Stats struct {
	RequestsSent   atomic.Int64
	RequestsFailed atomic.Int64
	InFlight       atomic.Int32
	Refreshes      atomic.Int64
	Bindings       atomic.Int64
	StartTime      time.Time
}

// NewStats creates a zeroed Stats.
func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

func (s *Stats) begin() {
	s.RequestsSent.Add(1)
	s.InFlight.Add(1)
}

func (s *Stats) end(err error) {
	s.InFlight.Add(-1)
	if err != nil {
		s.RequestsFailed.Add(1)
	}
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	RequestsSent   int64     `json:"requests_sent"`
	RequestsFailed int64     `json:"requests_failed"`
	InFlight       int32     `json:"in_flight"`
	Refreshes      int64     `json:"refreshes"`
	Bindings       int64     `json:"bindings"`
	StartTime      time.Time `json:"start_time"`
	Uptime         string    `json:"uptime"`
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		RequestsSent:   s.RequestsSent.Load(),
		RequestsFailed: s.RequestsFailed.Load(),
		InFlight:       s.InFlight.Load(),
		Refreshes:      s.Refreshes.Load(),
		Bindings:       s.Bindings.Load(),
		StartTime:      s.StartTime,
		Uptime:         time.Since(s.StartTime).Round(time.Second).String(),
	}
}
