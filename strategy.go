package sparsetable

// strategy answers a validated [begin, end) range from the shared layers.
type strategy[T any] interface {
	fold(l *layers[T], begin, end int) T
}

// indexStrategy additionally reports which position supplied the result.
type indexStrategy[T comparable] interface {
	strategy[T]
	foldIndex(l *layers[T], p *provenance, begin, end int) (T, int)
}

// general decomposes the range into disjoint power-of-two blocks of
// descending size and folds them left to right. Every element is combined
// exactly once, so any associative operator is supported.
type general[T any] struct{}

func (general[T]) fold(l *layers[T], begin, end int) T {
	u := log2(end - begin)
	acc := l.dp[u][begin]
	begin += 1 << u

	for begin < end {
		u = log2(end - begin)
		acc = l.op.Combine(acc, l.dp[u][begin])
		begin += 1 << u
	}

	return acc
}

// overlap covers the range with a left-aligned and a right-aligned block of
// the largest fitting power-of-two size. The blocks may share elements.
type overlap[T any] struct{}

func (overlap[T]) fold(l *layers[T], begin, end int) T {
	u := log2(end - begin)
	return l.op.Combine(l.dp[u][begin], l.dp[u][end-(1<<u)])
}

type generalIndex[T comparable] struct {
	general[T]
}

// foldIndex follows the general decomposition and adopts a block's position
// only when folding it in changes the running value. Ties keep the earlier
// position.
func (generalIndex[T]) foldIndex(l *layers[T], p *provenance, begin, end int) (T, int) {
	u := log2(end - begin)
	acc := l.dp[u][begin]
	pos := p.idx[u][begin]
	begin += 1 << u

	for begin < end {
		u = log2(end - begin)
		next := l.op.Combine(acc, l.dp[u][begin])
		if next != acc {
			pos = p.idx[u][begin]
		}
		acc = next
		begin += 1 << u
	}

	return acc, pos
}

type overlapIndex[T comparable] struct {
	overlap[T]
}

// foldIndex keeps the left block's position when its value equals the
// combined result, otherwise the right block's.
func (overlapIndex[T]) foldIndex(l *layers[T], p *provenance, begin, end int) (T, int) {
	u := log2(end - begin)
	right := end - (1 << u)
	left := l.dp[u][begin]
	result := l.op.Combine(left, l.dp[u][right])
	if result == left {
		return result, p.idx[u][begin]
	}
	return result, p.idx[u][right]
}

var (
	_ strategy[int]      = general[int]{}
	_ strategy[int]      = overlap[int]{}
	_ indexStrategy[int] = generalIndex[int]{}
	_ indexStrategy[int] = overlapIndex[int]{}
)
