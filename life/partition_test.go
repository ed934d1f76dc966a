package life

import (
	"reflect"
	"testing"
)

func TestPartitionCoversRows(t *testing.T) {
	for n := 1; n <= 64; n++ {
		for w := 1; w <= 80; w++ {
			ranges := Partition(n, w)
			if len(ranges) != w {
				t.Fatalf("Partition(%d, %d) returned %d ranges", n, w, len(ranges))
			}
			if ranges[0].Start != 0 {
				t.Fatalf("Partition(%d, %d) starts at %d", n, w, ranges[0].Start)
			}
			if last := ranges[w-1].End; last != n {
				t.Fatalf("Partition(%d, %d) ends at %d", n, w, last)
			}
			total := 0
			for i, r := range ranges {
				if r.Len() < 0 {
					t.Fatalf("Partition(%d, %d)[%d] = %+v is inverted", n, w, i, r)
				}
				if i > 0 && r.Start != ranges[i-1].End {
					t.Fatalf("Partition(%d, %d)[%d] = %+v does not follow %+v", n, w, i, r, ranges[i-1])
				}
				total += r.Len()
			}
			if total != n {
				t.Fatalf("Partition(%d, %d) covers %d rows", n, w, total)
			}
		}
	}
}

func TestPartitionBoundaries(t *testing.T) {
	tests := []struct {
		name string
		n, w int
		want []Range
	}{
		{"single worker", 5, 1, []Range{{0, 5}}},
		{"uneven", 10, 3, []Range{{0, 3}, {3, 6}, {6, 10}}},
		{"even", 100, 4, []Range{{0, 25}, {25, 50}, {50, 75}, {75, 100}}},
		{"more workers than rows", 2, 3, []Range{{0, 0}, {0, 1}, {1, 2}}},
		{"one row", 1, 4, []Range{{0, 0}, {0, 0}, {0, 0}, {0, 1}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Partition(test.n, test.w)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("Partition(%d, %d) = %v, want %v", test.n, test.w, got, test.want)
			}
		})
	}
}
