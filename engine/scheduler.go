package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/tracksim/core"
)

// Scheduler drives the two simulation cadences: a deterministic
// fixed-timestep physics task and a variable-rate render task
//
// Both callbacks run on the scheduler goroutine, so physics writes are
// fully ordered before render reads without locking, matching the
// single-writer model of the suspension rig
type Scheduler struct {
	step   func(dt float64)
	render func(dt float64)

	clock  *PausableClock
	logger *zap.Logger

	tickInterval   time.Duration
	renderInterval time.Duration

	nextTickDeadline time.Time
	tickCount        atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// maxCatchUpSteps caps the fixed steps run per wakeup; beyond that the
// backlog is dropped rather than spiraling
const maxCatchUpSteps = 4

// NewScheduler builds a scheduler; render may be nil for headless runs
func NewScheduler(clock *PausableClock, logger *zap.Logger, tickInterval, renderInterval time.Duration, step, render func(dt float64)) *Scheduler {
	if render == nil {
		render = func(float64) {}
	}
	return &Scheduler{
		step:           step,
		render:         render,
		clock:          clock,
		logger:         logger,
		tickInterval:   tickInterval,
		renderInterval: renderInterval,
		stopChan:       make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		core.Go(s.loop)
	}
}

// Stop halts the scheduler loop and waits for it to finish
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
		}
	})
}

// TickCount returns the number of fixed steps executed
func (s *Scheduler) TickCount() uint64 {
	return s.tickCount.Load()
}

// loop multiplexes the physics and render tickers on one goroutine
func (s *Scheduler) loop() {
	defer s.wg.Done()

	physTicker := time.NewTicker(s.tickInterval)
	defer physTicker.Stop()
	renderTicker := time.NewTicker(s.renderInterval)
	defer renderTicker.Stop()

	s.nextTickDeadline = s.clock.Now().Add(s.tickInterval)
	lastRender := time.Now()

	s.logger.Info("scheduler started",
		zap.Duration("tick_interval", s.tickInterval),
		zap.Duration("render_interval", s.renderInterval))

	for {
		select {
		case <-s.stopChan:
			s.logger.Info("scheduler stopped", zap.Uint64("ticks", s.tickCount.Load()))
			return

		case <-physTicker.C:
			if s.clock.IsPaused() {
				continue
			}
			s.runFixedSteps()

		case <-renderTicker.C:
			now := time.Now()
			dt := now.Sub(lastRender).Seconds()
			lastRender = now
			s.render(dt)
		}
	}
}

// runFixedSteps executes fixed steps until caught up with simulation time,
// with drift correction against the tick deadline
func (s *Scheduler) runFixedSteps() {
	dt := s.tickInterval.Seconds()
	simNow := s.clock.Now()

	steps := 0
	for !simNow.Before(s.nextTickDeadline) && steps < maxCatchUpSteps {
		s.step(dt)
		s.tickCount.Add(1)
		s.nextTickDeadline = s.nextTickDeadline.Add(s.tickInterval)
		steps++
	}

	// Too far behind (debugger stall, suspend): drop the backlog instead
	// of replaying it
	if simNow.Sub(s.nextTickDeadline) > 2*s.tickInterval {
		s.logger.Warn("scheduler behind, dropping backlog",
			zap.Duration("behind", simNow.Sub(s.nextTickDeadline)))
		s.nextTickDeadline = simNow.Add(s.tickInterval)
	}
}
