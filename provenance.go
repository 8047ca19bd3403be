package sparsetable

// provenance mirrors the shape of layers and records, for every block, the
// original position whose value won the block. values[idx[i][j]] == dp[i][j]
// holds for every stored block when the operator selects one of its inputs.
type provenance struct {
	idx [][]int
}

func buildProvenance[T comparable](l *layers[T]) *provenance {
	n := l.len()
	idx := make([][]int, l.levels())

	idx[0] = make([]int, n)
	for j := range idx[0] {
		idx[0][j] = j
	}

	for i := 1; i < len(idx); i++ {
		half := 1 << (i - 1)
		prev := l.dp[i-1]
		row := make([]int, len(l.dp[i]))
		for j := range row {
			// dp[i][j] is already Combine(prev[j], prev[j+half]).
			if l.dp[i][j] == prev[j] {
				row[j] = idx[i-1][j]
			} else {
				row[j] = idx[i-1][j+half]
			}
		}
		idx[i] = row
	}

	return &provenance{idx: idx}
}
