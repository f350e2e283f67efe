// Package scheduler debounces rerun requests: every notification replaces the
// pending run, and a run only starts once notifications have been quiet for the
// configured delay.
package scheduler

import (
	"context"
	"sync"
	"time"

	"problem-badge/utils"
)

// DefaultDelay is the debounce interval used when none is configured
const DefaultDelay = 200 * time.Millisecond

// State is Idle or Pending
type State int

const (
	Idle State = iota
	Pending
)

func (s State) String() string {
	if s == Pending {
		return "pending"
	}
	return "idle"
}

// RunFunc is one complete pipeline execution
type RunFunc func(ctx context.Context)

// task is the single pending slot. A fired task checks it is still the slot
// owner before running, so a replaced timer that already fired does nothing.
type task struct {
	timer *time.Timer
}

// Scheduler owns the rerun state: the pending slot and the last seen URL
type Scheduler struct {
	delay  time.Duration
	run    RunFunc
	logger *utils.Logger
	loc    *utils.LocationTracker

	mu      sync.Mutex
	ctx     context.Context
	pending *task
	stopped bool
	runs    int

	runMu sync.Mutex // serialises executions
	wg    sync.WaitGroup
}

// New creates a Scheduler. A non-positive delay means DefaultDelay.
func New(delay time.Duration, run RunFunc, logger *utils.Logger) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{
		delay:  delay,
		run:    run,
		logger: logger,
		loc:    utils.NewLocationTracker(""),
		ctx:    context.Background(),
	}
}

// Start records the initial URL and schedules the first run. Runs receive ctx.
func (s *Scheduler) Start(ctx context.Context, href string) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.loc.Observe(href)
	s.arm()
}

// Notify reports a DOM change or navigation. It never blocks.
func (s *Scheduler) Notify(href string) {
	if s.loc.Observe(href) {
		s.logger.Debug("Navigation detected: %s", href)
	}
	s.arm()
}

// State reports whether a run is pending
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return Pending
	}
	return Idle
}

// Runs returns how many executions have completed
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// LastURL returns the most recent URL seen by Start or Notify
func (s *Scheduler) LastURL() string {
	return s.loc.Last()
}

// Stop cancels the pending run and waits for an in-flight one to finish.
// Notifications after Stop are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	if s.pending != nil {
		if s.pending.timer.Stop() {
			s.wg.Done()
		}
		s.pending = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// arm replaces whatever is pending with a fresh task
func (s *Scheduler) arm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if s.pending != nil && s.pending.timer.Stop() {
		s.wg.Done()
	}
	t := &task{}
	s.wg.Add(1)
	t.timer = time.AfterFunc(s.delay, func() { s.fire(t) })
	s.pending = t
}

func (s *Scheduler) fire(t *task) {
	defer s.wg.Done()

	s.mu.Lock()
	if s.pending != t || s.stopped {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	ctx := s.ctx
	s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()
	s.run(ctx)

	s.mu.Lock()
	s.runs++
	s.mu.Unlock()
}
