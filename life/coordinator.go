package life

import (
	"errors"
	"sync"
)

// RunState is the run-control state shared by every worker.
type RunState int

const (
	Stopped RunState = iota
	Running
	Paused
)

func (s RunState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	}
	return "unknown"
}

var (
	// ErrKilled is returned from a checkpoint or barrier once Stop has been
	// issued. Workers treat it as a request to exit, not as a failure.
	ErrKilled = errors.New("life: worker killed")

	// ErrWorkersActive is returned by Begin while workers from a previous
	// run are still registered.
	ErrWorkersActive = errors.New("life: workers from previous run still active")
)

// Coordinator is the monitor shared by one run's workers. It owns the run
// state, the kill flag, the per-cell delay and the generation barrier. A
// single mutex and condition variable protect all of it.
type Coordinator struct {
	mu   sync.Mutex
	cond *sync.Cond

	state       RunState
	killed      bool
	active      int
	delay       int
	arrived     int
	phase       uint64
	stepPending bool
	commit      func(Gate) error
}

// NewCoordinator returns a stopped coordinator that spins delay iterations
// at every checkpoint.
func NewCoordinator(delay int) *Coordinator {
	c := &Coordinator{delay: delay}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Register adds one worker to the barrier threshold.
func (c *Coordinator) Register() {
	c.mu.Lock()
	c.active++
	c.mu.Unlock()
}

// Unregister removes one worker from the barrier threshold. It must run on
// every worker exit path.
func (c *Coordinator) Unregister() {
	c.mu.Lock()
	c.active--
	c.cond.Broadcast()
	c.mu.Unlock()
}

// Checkpoint is called before every cell write. It returns ErrKilled once
// Stop has been issued, blocks while paused, and otherwise burns the
// configured delay before returning.
func (c *Coordinator) Checkpoint() error {
	c.mu.Lock()
	err := c.awaitRunnable()
	delay := c.delay
	c.mu.Unlock()
	if err != nil {
		return err
	}
	spin(delay)
	return nil
}

// awaitRunnable waits out a pause. c.mu must be held.
func (c *Coordinator) awaitRunnable() error {
	for {
		if c.killed {
			return ErrKilled
		}
		if c.state != Paused {
			return nil
		}
		c.cond.Wait()
	}
}

// Arrive blocks until every registered worker has arrived for the current
// generation. Whoever finds the arrivals equal to the live worker count,
// either on arrival or after a worker unregisters, runs commit with the lock
// held, re-enters Paused if a single step was requested, and releases the
// others.
func (c *Coordinator) Arrive(commit func(Gate) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.killed {
		return ErrKilled
	}
	c.commit = commit
	c.arrived++
	phase := c.phase
	for phase == c.phase {
		if c.killed {
			return ErrKilled
		}
		if c.arrived >= c.active {
			return c.releaseLocked()
		}
		c.cond.Wait()
	}
	return nil
}

// releaseLocked commits the generation and opens the barrier. c.mu must be
// held.
func (c *Coordinator) releaseLocked() error {
	c.arrived = 0
	if err := c.commit(lockedGate{c}); err != nil {
		c.cond.Broadcast()
		return err
	}
	if c.stepPending {
		c.stepPending = false
		c.toggleLocked()
	}
	c.phase++
	c.cond.Broadcast()
	return nil
}

// lockedGate is the checkpoint used while the coordinator lock is already
// held by the committing worker. Its spin holds the lock too, so Snapshot,
// Toggle and Stop callers wait up to one cell's delay once per generation.
type lockedGate struct{ c *Coordinator }

func (g lockedGate) Checkpoint() error {
	if err := g.c.awaitRunnable(); err != nil {
		return err
	}
	spin(g.c.delay)
	return nil
}

// Toggle flips between Running and Paused. It has no effect while stopped.
func (c *Coordinator) Toggle() {
	c.mu.Lock()
	c.toggleLocked()
	c.mu.Unlock()
}

func (c *Coordinator) toggleLocked() {
	switch c.state {
	case Running:
		c.state = Paused
	case Paused:
		c.state = Running
		c.cond.Broadcast()
	}
}

// StepOnce resumes a paused run for exactly one more generation.
func (c *Coordinator) StepOnce() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Paused {
		return
	}
	c.stepPending = true
	c.toggleLocked()
}

// RequestStep makes the next committed generation pause the run.
func (c *Coordinator) RequestStep() {
	c.mu.Lock()
	c.stepPending = true
	c.mu.Unlock()
}

// Begin clears the kill flag and enters Running for a fresh worker set.
func (c *Coordinator) Begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active > 0 {
		return ErrWorkersActive
	}
	c.killed = false
	c.arrived = 0
	c.stepPending = false
	c.state = Running
	return nil
}

// Stop sets the kill flag, wakes every blocked worker and waits until all
// of them have unregistered.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.killed = true
	c.state = Stopped
	c.stepPending = false
	c.cond.Broadcast()
	for c.active > 0 {
		c.cond.Wait()
	}
}

// State returns the current run state.
func (c *Coordinator) State() RunState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Active returns the number of registered workers.
func (c *Coordinator) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Delay returns the spin iterations per checkpoint.
func (c *Coordinator) Delay() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delay
}

// SetDelay changes the spin iterations per checkpoint. Negative values are
// treated as zero.
func (c *Coordinator) SetDelay(delay int) {
	if delay < 0 {
		delay = 0
	}
	c.mu.Lock()
	c.delay = delay
	c.mu.Unlock()
}

// Locked runs fn while holding the coordinator lock, so fn never observes a
// buffer swap in progress.
func (c *Coordinator) Locked(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

// spin burns CPU proportional to iterations.
func spin(iterations int) uint64 {
	var x uint64 = 1
	for i := 0; i < iterations; i++ {
		x ^= x << 13
		x ^= x >> 7
		x ^= x << 17
	}
	return x
}
