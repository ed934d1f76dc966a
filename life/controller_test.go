package life

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func newTestController(t *testing.T, n, threads int, shape []Point) *Controller {
	t.Helper()
	ctrl, err := NewController(Config{Size: n, Threads: threads, Shape: shape}, nil)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	t.Cleanup(ctrl.Stop)
	return ctrl
}

// stepTo issues Step commands until the controller has committed gen
// generations.
func stepTo(t *testing.T, ctrl *Controller, gen int) {
	t.Helper()
	for next := ctrl.Generation() + 1; next <= gen; next++ {
		if err := ctrl.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		waitFor(t, "step to finish", func() bool {
			return ctrl.State() == Paused && ctrl.Generation() == next
		})
	}
}

func randomShape(n int, seed int64) []Point {
	r := rand.New(rand.NewSource(seed))
	var shape []Point
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if r.Intn(3) == 0 {
				shape = append(shape, Point{Row: i, Col: j})
			}
		}
	}
	return shape
}

func TestWorkerCountIndependence(t *testing.T) {
	const (
		n    = 16
		gens = 6
	)
	shape := randomShape(n, 1)
	reference := NewBoard(n)
	reference.Seed(shape)
	advance(t, reference, gens)
	want := reference.Snapshot()

	for threads := 1; threads <= n; threads++ {
		ctrl := newTestController(t, n, threads, shape)
		stepTo(t, ctrl, gens)
		got, gen := ctrl.Snapshot()
		if gen != gens {
			t.Fatalf("threads=%d: generation = %d, want %d", threads, gen, gens)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("threads=%d: board differs from single-threaded result", threads)
		}
		ctrl.Stop()
	}
}

func TestMoreWorkersThanRows(t *testing.T) {
	ctrl := newTestController(t, 6, 10, Block(2, 2))
	stepTo(t, ctrl, 3)
	if got, _ := ctrl.Snapshot(); !reflect.DeepEqual(got, Block(2, 2)) {
		t.Errorf("Snapshot() = %v, want block", got)
	}
	if bands := ctrl.Bands(); len(bands) != 10 {
		t.Errorf("Bands() has %d entries, want 10", len(bands))
	}
}

func TestPauseHaltsProgress(t *testing.T) {
	ctrl := newTestController(t, 12, 3, Glider(0, 0))
	if err := ctrl.Run(); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "two generations", func() bool { return ctrl.Generation() >= 2 })

	ctrl.Pause()
	if ctrl.State() != Paused {
		t.Fatalf("State() = %v, want %v", ctrl.State(), Paused)
	}
	time.Sleep(10 * time.Millisecond)
	paused := ctrl.Generation()
	time.Sleep(50 * time.Millisecond)
	if gen := ctrl.Generation(); gen != paused {
		t.Fatalf("generation advanced from %d to %d while paused", paused, gen)
	}
	if ctrl.ActiveWorkers() != 3 {
		t.Errorf("ActiveWorkers() while paused = %d, want 3", ctrl.ActiveWorkers())
	}

	if err := ctrl.Run(); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "progress after resume", func() bool { return ctrl.Generation() > paused })
}

func TestStopThenRunWithNewWorkerCount(t *testing.T) {
	const n = 20
	shape := randomShape(n, 7)
	reference := NewBoard(n)
	reference.Seed(shape)
	advance(t, reference, 8)

	ctrl := newTestController(t, n, 4, shape)
	stepTo(t, ctrl, 4)
	ctrl.Stop()
	if ctrl.ActiveWorkers() != 0 {
		t.Fatalf("ActiveWorkers() after Stop = %d", ctrl.ActiveWorkers())
	}
	if ctrl.State() != Stopped {
		t.Fatalf("State() after Stop = %v", ctrl.State())
	}

	if err := ctrl.SetThreads(7); err != nil {
		t.Fatal(err)
	}
	stepTo(t, ctrl, 8)
	if got := ctrl.Bands(); !reflect.DeepEqual(got, Partition(n, 7)) {
		t.Errorf("Bands() = %v, want %v", got, Partition(n, 7))
	}
	if got, _ := ctrl.Snapshot(); !reflect.DeepEqual(got, reference.Snapshot()) {
		t.Error("board after restart differs from single-threaded result")
	}
}

func TestStopWhileRunning(t *testing.T) {
	ctrl := newTestController(t, 32, 5, randomShape(32, 3))
	ctrl.SetDelay(50)
	for i := 0; i < 3; i++ {
		if err := ctrl.Run(); err != nil {
			t.Fatal(err)
		}
		waitFor(t, "workers to register", func() bool { return ctrl.ActiveWorkers() == 5 })
		ctrl.Stop()
		if ctrl.ActiveWorkers() != 0 {
			t.Fatalf("ActiveWorkers() after Stop = %d", ctrl.ActiveWorkers())
		}
	}
}

func TestStepWhileRunningPauses(t *testing.T) {
	ctrl := newTestController(t, 10, 2, Glider(0, 0))
	if err := ctrl.Run(); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Step(); err != nil {
		t.Fatal(err)
	}
	if ctrl.State() != Paused {
		t.Errorf("State() = %v, want %v", ctrl.State(), Paused)
	}
}

func TestControllerClear(t *testing.T) {
	ctrl := newTestController(t, 10, 2, Glider(0, 0))
	if err := ctrl.Run(); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "a generation", func() bool { return ctrl.Generation() >= 1 })
	ctrl.Clear()
	points, gen := ctrl.Snapshot()
	if len(points) != 0 || gen != 0 {
		t.Errorf("after Clear: %d live cells at generation %d", len(points), gen)
	}
	if ctrl.State() != Stopped || ctrl.ActiveWorkers() != 0 {
		t.Errorf("after Clear: state %v with %d workers", ctrl.State(), ctrl.ActiveWorkers())
	}
}

func TestToggleCellOnlyWhileStopped(t *testing.T) {
	ctrl := newTestController(t, 8, 2, nil)
	if err := ctrl.ToggleCell(3, 4); err != nil {
		t.Fatal(err)
	}
	if got, _ := ctrl.Snapshot(); !reflect.DeepEqual(got, []Point{{Row: 3, Col: 4}}) {
		t.Errorf("Snapshot() = %v", got)
	}
	if err := ctrl.Run(); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.ToggleCell(0, 0); !errors.Is(err, ErrNotStopped) {
		t.Errorf("ToggleCell while running = %v, want %v", err, ErrNotStopped)
	}
}

func TestConfiguration(t *testing.T) {
	ctrl := newTestController(t, 8, 3, Block(1, 1))
	ctrl.SetDelay(12)
	cfg, err := ctrl.Configuration()
	if err != nil {
		t.Fatal(err)
	}
	want := FileConfig{Threads: 3, Spin: 12, Shape: Block(1, 1)}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Configuration() = %+v, want %+v", cfg, want)
	}

	if err := ctrl.Run(); err != nil {
		t.Fatal(err)
	}
	if _, err := ctrl.Configuration(); !errors.Is(err, ErrRunning) {
		t.Errorf("Configuration while running = %v, want %v", err, ErrRunning)
	}
	ctrl.Pause()
	if _, err := ctrl.Configuration(); err != nil {
		t.Errorf("Configuration while paused = %v", err)
	}
}

func TestNewControllerRejectsInvalidConfig(t *testing.T) {
	if _, err := NewController(Config{Size: 4, Threads: 0}, nil); err == nil {
		t.Error("NewController accepted zero threads")
	}
}

func TestGliderSeed(t *testing.T) {
	ctrl, err := NewController(Config{Size: 10, Threads: 1, Glider: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := ctrl.Snapshot(); !reflect.DeepEqual(got, Glider(0, 0)) {
		t.Errorf("Snapshot() = %v, want glider", got)
	}
}

func TestSetThreadsRejectsZero(t *testing.T) {
	ctrl := newTestController(t, 4, 1, nil)
	if err := ctrl.SetThreads(0); err == nil {
		t.Error("SetThreads(0) succeeded")
	}
	if ctrl.Threads() != 1 {
		t.Errorf("Threads() = %d, want 1", ctrl.Threads())
	}
}

func TestConfigurationReportsPausedRunThreads(t *testing.T) {
	ctrl := newTestController(t, 8, 3, Block(1, 1))
	stepTo(t, ctrl, 1)
	if err := ctrl.SetThreads(5); err != nil {
		t.Fatal(err)
	}
	cfg, err := ctrl.Configuration()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Threads != 3 {
		t.Errorf("Configuration().Threads = %d while paused, want 3", cfg.Threads)
	}

	ctrl.Stop()
	if cfg, _ := ctrl.Configuration(); cfg.Threads != 5 {
		t.Errorf("Configuration().Threads = %d after Stop, want 5", cfg.Threads)
	}
}
