package life

// Glider returns the canonical five-cell glider with its bounding box at
// (row, col). It travels one row down and one column right every four
// generations.
func Glider(row, col int) []Point {
	return []Point{
		{Row: row, Col: col + 1},
		{Row: row + 1, Col: col + 2},
		{Row: row + 2, Col: col},
		{Row: row + 2, Col: col + 1},
		{Row: row + 2, Col: col + 2},
	}
}

// Block returns the 2×2 still life with its top-left cell at (row, col).
func Block(row, col int) []Point {
	return []Point{
		{Row: row, Col: col},
		{Row: row, Col: col + 1},
		{Row: row + 1, Col: col},
		{Row: row + 1, Col: col + 1},
	}
}

// Translate shifts every point by (dr, dc) on an n×n torus.
func Translate(points []Point, dr, dc, n int) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{Row: ((p.Row+dr)%n + n) % n, Col: ((p.Col+dc)%n + n) % n}
	}
	return out
}
