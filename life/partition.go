package life

import "math"

// Range is a half-open band of rows [Start, End) owned by one worker.
type Range struct {
	Start int
	End   int
}

// Len returns the number of rows in the range.
func (r Range) Len() int { return r.End - r.Start }

// Partition splits n rows among w workers into contiguous, ordered ranges.
// Boundaries are accumulated by repeated addition of the ideal interval
// n/w and floored; the final range always ends at n. When w exceeds n some
// ranges are empty.
func Partition(n, w int) []Range {
	if w < 1 {
		w = 1
	}
	ranges := make([]Range, w)
	interval := float64(n) / float64(w)
	edge := 0.0
	start := 0
	for i := 0; i < w; i++ {
		edge += interval
		end := int(math.Floor(edge))
		if end > n || i == w-1 {
			end = n
		}
		if end < start {
			end = start
		}
		ranges[i] = Range{Start: start, End: end}
		start = end
	}
	return ranges
}
