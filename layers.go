package sparsetable

import (
	"math/bits"
	"slices"
	"unsafe"
)

// layers is the shared precomputation behind every table configuration.
//
// dp[i][j] holds the combination of the 2^i elements starting at j. Row i has
// n-2^i+1 entries, so every stored block lies entirely inside the sequence.
type layers[T any] struct {
	op Op[T]
	dp [][]T
}

func buildLayers[T any](data []T, op Op[T]) *layers[T] {
	n := len(data)
	levels := levelCount(n)

	dp := make([][]T, levels)
	dp[0] = slices.Clone(data)

	for i := 1; i < levels; i++ {
		half := 1 << (i - 1)
		prev := dp[i-1]
		row := make([]T, n-(1<<i)+1)
		for j := range row {
			row[j] = op.Combine(prev[j], prev[j+half])
		}
		dp[i] = row
	}

	return &layers[T]{op: op, dp: dp}
}

func (l *layers[T]) len() int { return len(l.dp[0]) }

func (l *layers[T]) levels() int { return len(l.dp) }

// levelCount returns floor(log2(n)) + 1.
func levelCount(n int) int {
	return bits.Len(uint(n))
}

// log2 returns floor(log2(x)) for x > 0.
func log2(x int) int {
	return bits.Len(uint(x)) - 1
}

// estimateBytes approximates the memory held by the precomputed tables for a
// sequence of n elements of type T. When indexed is set the parallel
// provenance table is included.
func estimateBytes[T any](n int, indexed bool) int64 {
	var zero T
	cells := int64(0)
	for i := range levelCount(n) {
		cells += int64(n - (1 << i) + 1)
	}
	per := int64(unsafe.Sizeof(zero))
	if indexed {
		per += int64(unsafe.Sizeof(int(0)))
	}
	return cells * per
}
