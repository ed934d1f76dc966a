// Package life runs Conway's Game of Life on a toroidal board with a band
// of rows per worker goroutine and a shared pause/stop/step coordinator.
package life

// Point addresses one cell of the board.
type Point struct {
	Row int
	Col int
}

// Gate is consulted once before every cell write and once before every
// buffer swap. A non-nil error aborts the computation.
type Gate interface {
	Checkpoint() error
}

// Board stores the two cell buffers of an n×n toroidal grid. During a
// generation workers read only curr and each writes only its own rows of
// scratch; the last worker to reach the barrier swaps them.
type Board struct {
	n          int
	curr       []uint8
	scratch    []uint8
	generation int
	observer   func(generation int)
}

// NewBoard allocates an empty n×n board at generation 0.
func NewBoard(n int) *Board {
	return &Board{
		n:       n,
		curr:    make([]uint8, n*n),
		scratch: make([]uint8, n*n),
	}
}

// SetObserver installs fn to be called after every committed generation.
// fn runs while the coordinator lock is held and must not call back into the
// Controller.
func (b *Board) SetObserver(fn func(generation int)) {
	b.observer = fn
}

// Size returns the length of a side.
func (b *Board) Size() int { return b.n }

// Generation returns the number of committed generations since the last clear.
func (b *Board) Generation() int { return b.generation }

// Alive reports whether the cell at (row, col) is live in the current buffer.
func (b *Board) Alive(row, col int) bool {
	return b.curr[row*b.n+col] == 1
}

// Seed marks every point live. Points outside the board are ignored.
func (b *Board) Seed(points []Point) {
	for _, p := range points {
		if b.contains(p) {
			b.curr[p.Row*b.n+p.Col] = 1
		}
	}
}

// Toggle flips a single cell of the current buffer.
func (b *Board) Toggle(row, col int) {
	if !b.contains(Point{Row: row, Col: col}) {
		return
	}
	idx := row*b.n + col
	b.curr[idx] = 1 - b.curr[idx]
}

func (b *Board) contains(p Point) bool {
	return p.Row >= 0 && p.Row < b.n && p.Col >= 0 && p.Col < b.n
}

// band returns the scratch rows [r.Start, r.End) as a writable view.
func (b *Board) band(r Range) []uint8 {
	return b.scratch[r.Start*b.n : r.End*b.n]
}

// ComputeRegion writes the next state of rows [r.Start, r.End) into scratch.
// gate is checked before each cell write.
func (b *Board) ComputeRegion(r Range, gate Gate) error {
	n := b.n
	curr := b.curr
	dst := b.band(r)
	for i := r.Start; i < r.End; i++ {
		up := ((i + n - 1) % n) * n
		row := i * n
		down := ((i + 1) % n) * n
		out := dst[(i-r.Start)*n : (i-r.Start+1)*n]
		for j := 0; j < n; j++ {
			if err := gate.Checkpoint(); err != nil {
				return err
			}
			jm := (j + n - 1) % n
			jp := (j + 1) % n
			neighbors := curr[up+jm] + curr[up+j] + curr[up+jp] +
				curr[row+jm] + curr[row+jp] +
				curr[down+jm] + curr[down+j] + curr[down+jp]
			out[j] = nextState(curr[row+j], neighbors)
		}
	}
	return nil
}

// nextState applies the Life rule to one cell.
func nextState(cell, neighbors uint8) uint8 {
	switch neighbors {
	case 2:
		return cell
	case 3:
		return 1
	default:
		return 0
	}
}

// CommitGeneration swaps the buffers and advances the generation counter.
// It must be called by exactly one worker once every row has been computed.
func (b *Board) CommitGeneration(gate Gate) error {
	if err := gate.Checkpoint(); err != nil {
		return err
	}
	b.curr, b.scratch = b.scratch, b.curr
	b.generation++
	if b.observer != nil {
		b.observer(b.generation)
	}
	return nil
}

// Snapshot lists the live cells in row-major order.
func (b *Board) Snapshot() []Point {
	var points []Point
	for i := 0; i < b.n; i++ {
		row := b.curr[i*b.n : (i+1)*b.n]
		for j, cell := range row {
			if cell == 1 {
				points = append(points, Point{Row: i, Col: j})
			}
		}
	}
	return points
}

// Population counts the live cells.
func (b *Board) Population() int {
	count := 0
	for _, cell := range b.curr {
		count += int(cell)
	}
	return count
}

// Clear kills every cell and resets the generation counter.
func (b *Board) Clear() {
	for i := range b.curr {
		b.curr[i] = 0
	}
	b.generation = 0
}
