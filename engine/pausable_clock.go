package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock provides simulation time that freezes while paused
// Physics scheduling reads this clock; render timing uses wall time
type PausableClock struct {
	mu sync.RWMutex

	realStart time.Time
	simStart  time.Time

	isPaused    atomic.Bool
	pauseStart  time.Time
	totalPaused time.Duration
}

// NewPausableClock starts a running clock at the current time
func NewPausableClock() *PausableClock {
	now := time.Now()
	return &PausableClock{
		realStart: now,
		simStart:  now,
	}
}

// Now returns current simulation time, frozen at the pause point while
// paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.simStart.Add(pc.pauseStart.Sub(pc.realStart) - pc.totalPaused)
	}
	elapsed := time.Since(pc.realStart) - pc.totalPaused
	return pc.simStart.Add(elapsed)
}

// Pause stops simulation time advancement
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		pc.pauseStart = time.Now()
		pc.mu.Unlock()
	}
}

// Resume continues simulation time advancement
func (pc *PausableClock) Resume() {
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		if !pc.pauseStart.IsZero() {
			pc.totalPaused += time.Since(pc.pauseStart)
			pc.pauseStart = time.Time{}
		}
		pc.mu.Unlock()
	}
}

// Toggle flips the pause state and reports the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPaused returns cumulative pause time including a pause in progress
func (pc *PausableClock) TotalPaused() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPaused
	if pc.isPaused.Load() && !pc.pauseStart.IsZero() {
		total += time.Since(pc.pauseStart)
	}
	return total
}
