package life

import (
	"errors"

	"golang.org/x/sync/errgroup"
)

// Worker computes one band of rows every generation until it is killed.
// A worker runs once; a new run builds a new worker set.
type Worker struct {
	index int
	rows  Range
	board *Board
	coord *Coordinator
}

func newWorker(index int, rows Range, board *Board, coord *Coordinator) *Worker {
	return &Worker{index: index, rows: rows, board: board, coord: coord}
}

// Rows returns the band assigned to the worker.
func (w *Worker) Rows() Range { return w.rows }

// start registers the worker with the coordinator and launches its loop in
// g. Registration happens before the goroutine exists so the barrier never
// releases a generation that is missing this worker's rows.
func (w *Worker) start(g *errgroup.Group) {
	w.coord.Register()
	g.Go(w.run)
}

// run alternates between computing the band and waiting at the barrier.
func (w *Worker) run() error {
	defer w.coord.Unregister()
	for {
		if err := w.board.ComputeRegion(w.rows, w.coord); err != nil {
			return exitErr(err)
		}
		if err := w.coord.Arrive(w.board.CommitGeneration); err != nil {
			return exitErr(err)
		}
	}
}

// exitErr hides the kill signal, which is the normal way for a worker to end.
func exitErr(err error) error {
	if errors.Is(err, ErrKilled) {
		return nil
	}
	return err
}
