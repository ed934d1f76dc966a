package life

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotStopped is returned by edits that are only allowed while stopped.
	ErrNotStopped = errors.New("life: simulation must be stopped")

	// ErrRunning is returned by reads that need a paused or stopped board.
	ErrRunning = errors.New("life: simulation is running")
)

// Controller turns run-control commands into coordinator transitions and
// owns the worker set of the current run.
type Controller struct {
	mu      sync.Mutex
	board   *Board
	coord   *Coordinator
	threads int

	group   *errgroup.Group
	workers []*Worker
}

// NewController builds the board and coordinator described by cfg. observer,
// when non-nil, is called after each committed generation with the
// coordinator lock held.
func NewController(cfg Config, observer func(generation int)) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	board := NewBoard(cfg.Size)
	board.Seed(cfg.Shape)
	if cfg.Glider {
		board.Seed(Glider(0, 0))
	}
	board.SetObserver(observer)
	return &Controller{
		board:   board,
		coord:   NewCoordinator(cfg.Delay),
		threads: cfg.Threads,
	}, nil
}

// Run starts a fresh worker set when stopped and resumes when paused.
func (ctrl *Controller) Run() error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	switch ctrl.coord.State() {
	case Paused:
		ctrl.coord.Toggle()
		return nil
	case Running:
		return nil
	}
	return ctrl.startLocked(false)
}

// Pause suspends a running simulation at the next checkpoint.
func (ctrl *Controller) Pause() {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	if ctrl.coord.State() == Running {
		ctrl.coord.Toggle()
	}
}

// Step advances exactly one generation and leaves the run paused. Issued
// while running it only pauses.
func (ctrl *Controller) Step() error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	switch ctrl.coord.State() {
	case Running:
		ctrl.coord.Toggle()
		return nil
	case Paused:
		ctrl.coord.StepOnce()
		return nil
	}
	return ctrl.startLocked(true)
}

// Stop kills the worker set and waits for every worker to exit.
func (ctrl *Controller) Stop() {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	ctrl.stopLocked()
}

// Clear stops the simulation and empties the board.
func (ctrl *Controller) Clear() {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	ctrl.stopLocked()
	ctrl.coord.Locked(ctrl.board.Clear)
}

func (ctrl *Controller) startLocked(step bool) error {
	ctrl.drainLocked()
	if err := ctrl.coord.Begin(); err != nil {
		return fmt.Errorf("starting run: %w", err)
	}
	if step {
		ctrl.coord.RequestStep()
	}
	ranges := Partition(ctrl.board.Size(), ctrl.threads)
	g := new(errgroup.Group)
	ctrl.workers = make([]*Worker, len(ranges))
	for i, r := range ranges {
		w := newWorker(i, r, ctrl.board, ctrl.coord)
		ctrl.workers[i] = w
		w.start(g)
	}
	ctrl.group = g
	log.Printf("Run started with %d workers on a %dx%d board", len(ranges), ctrl.board.Size(), ctrl.board.Size())
	return nil
}

func (ctrl *Controller) stopLocked() {
	if ctrl.group == nil {
		return
	}
	ctrl.coord.Stop()
	ctrl.drainLocked()
	log.Printf("Run stopped at generation %d", ctrl.Generation())
}

// drainLocked waits for the previous worker set's goroutines to return.
func (ctrl *Controller) drainLocked() {
	if ctrl.group == nil {
		return
	}
	if err := ctrl.group.Wait(); err != nil {
		log.Printf("Worker exited with error: %v", err)
	}
	ctrl.group = nil
	ctrl.workers = nil
}

// SetThreads sets the worker count used by the next run.
func (ctrl *Controller) SetThreads(threads int) error {
	if threads < 1 {
		return fmt.Errorf("invalid number of threads: %d", threads)
	}
	ctrl.mu.Lock()
	ctrl.threads = threads
	ctrl.mu.Unlock()
	return nil
}

// Threads returns the worker count used by the next run.
func (ctrl *Controller) Threads() int {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	return ctrl.threads
}

// SetDelay changes the per-cell spin iterations, including for the run in
// progress.
func (ctrl *Controller) SetDelay(delay int) { ctrl.coord.SetDelay(delay) }

// Delay returns the per-cell spin iterations.
func (ctrl *Controller) Delay() int { return ctrl.coord.Delay() }

// State returns the current run state.
func (ctrl *Controller) State() RunState { return ctrl.coord.State() }

// ActiveWorkers returns the number of registered workers.
func (ctrl *Controller) ActiveWorkers() int { return ctrl.coord.Active() }

// Bands returns the row ranges of the current worker set.
func (ctrl *Controller) Bands() []Range {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	bands := make([]Range, len(ctrl.workers))
	for i, w := range ctrl.workers {
		bands[i] = w.Rows()
	}
	return bands
}

// Size returns the board side length.
func (ctrl *Controller) Size() int { return ctrl.board.Size() }

// Generation returns the committed generation count.
func (ctrl *Controller) Generation() int {
	var gen int
	ctrl.coord.Locked(func() { gen = ctrl.board.Generation() })
	return gen
}

// Snapshot returns the live cells and the generation they belong to.
func (ctrl *Controller) Snapshot() ([]Point, int) {
	var (
		points []Point
		gen    int
	)
	ctrl.coord.Locked(func() {
		points = ctrl.board.Snapshot()
		gen = ctrl.board.Generation()
	})
	return points, gen
}

// ToggleCell flips one cell. Only allowed while stopped.
func (ctrl *Controller) ToggleCell(row, col int) error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	if ctrl.coord.State() != Stopped {
		return ErrNotStopped
	}
	ctrl.coord.Locked(func() { ctrl.board.Toggle(row, col) })
	return nil
}

// Configuration captures the worker count, delay and live cells as a config
// file. The worker count is that of the paused run when there is one. Only
// allowed while paused or stopped.
func (ctrl *Controller) Configuration() (FileConfig, error) {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	if ctrl.coord.State() == Running {
		return FileConfig{}, ErrRunning
	}
	threads := ctrl.threads
	if len(ctrl.workers) > 0 {
		threads = len(ctrl.workers)
	}
	points, _ := ctrl.Snapshot()
	return FileConfig{
		Threads: threads,
		Spin:    ctrl.coord.Delay(),
		Shape:   points,
	}, nil
}
