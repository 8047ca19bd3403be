package sparsetable

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/hupe1980/sparsetable/resource"
)

// Kind identifies a table configuration.
type Kind uint8

const (
	// KindGeneral folds O(log n) disjoint blocks; any associative operator.
	KindGeneral Kind = iota
	// KindOverlap combines two overlapping blocks in O(1); idempotent operators only.
	KindOverlap
	// KindIndexed is KindGeneral with position tracking.
	KindIndexed
	// KindOverlapIndexed is KindOverlap with position tracking.
	KindOverlapIndexed
)

func (k Kind) String() string {
	switch k {
	case KindGeneral:
		return "general"
	case KindOverlap:
		return "overlap"
	case KindIndexed:
		return "indexed"
	case KindOverlapIndexed:
		return "overlap-indexed"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func (k Kind) indexed() bool {
	return k == KindIndexed || k == KindOverlapIndexed
}

// Querier answers combined-value queries over half-open ranges.
type Querier[T any] interface {
	Len() int
	Query(begin, end int) (T, error)
}

// IndexQuerier additionally reports the position of the winning element.
type IndexQuerier[T any] interface {
	Querier[T]
	QueryIndex(begin, end int) (int, error)
	QueryValueIndex(begin, end int) (T, int, error)
}

var (
	_ Querier[int]      = (*Table[int])(nil)
	_ Querier[int]      = (*OverlapTable[int])(nil)
	_ IndexQuerier[int] = (*IndexedTable[int])(nil)
	_ IndexQuerier[int] = (*OverlapIndexedTable[int])(nil)
)

// base holds what every configuration shares: the precomputed layers and
// the ambient hooks. It is immutable after construction.
type base[T any] struct {
	kind       Kind
	layers     *layers[T]
	logger     *Logger
	metrics    MetricsCollector
	controller *resource.Controller
	reserved   int64
	released   atomic.Bool
}

// newBase validates the input, reserves memory and builds the layers. extend
// runs inside the timed section so that provenance tables are accounted to
// the same build.
func newBase[T any](kind Kind, data []T, op Op[T], optFns []Option, extend func(*layers[T])) (*base[T], error) {
	o := newOptions(optFns)
	b := &base[T]{
		kind:       kind,
		logger:     o.logger.WithKind(kind).WithLen(len(data)),
		metrics:    o.metricsCollector,
		controller: o.controller,
	}

	start := time.Now()
	err := b.build(data, op, extend)
	elapsed := time.Since(start)

	levels := 0
	if err == nil {
		levels = b.layers.levels()
	}
	b.metrics.RecordBuild(kind, len(data), levels, elapsed, err)
	b.logger.LogBuild(context.Background(), levels, elapsed, err)

	if err != nil {
		return nil, err
	}
	return b, nil
}

func (b *base[T]) build(data []T, op Op[T], extend func(*layers[T])) error {
	if op == nil {
		return ErrNilOp
	}
	if len(data) == 0 {
		return ErrEmptyInput
	}

	size := estimateBytes[T](len(data), b.kind.indexed())
	if err := b.controller.AcquireMemory(size); err != nil {
		return fmt.Errorf("sparsetable: reserve %d bytes for %d elements: %w", size, len(data), err)
	}
	b.reserved = size

	b.layers = buildLayers(data, op)
	if extend != nil {
		extend(b.layers)
	}
	return nil
}

// Kind returns the table configuration.
func (b *base[T]) Kind() Kind { return b.kind }

// Len returns the number of elements in the source sequence.
func (b *base[T]) Len() int { return b.layers.len() }

// Levels returns the number of precomputed levels, floor(log2(Len())) + 1.
func (b *base[T]) Levels() int { return b.layers.levels() }

// Values returns a copy of the source sequence.
func (b *base[T]) Values() []T { return slices.Clone(b.layers.dp[0]) }

// At returns the element at position i.
func (b *base[T]) At(i int) (T, error) {
	if err := checkRange(i, i+1, b.layers.len()); err != nil {
		var zero T
		return zero, err
	}
	return b.layers.dp[0][i], nil
}

// Release returns the table's memory reservation to the resource controller
// configured with WithResourceController. The table stays queryable; only
// the accounting changes. Release is idempotent.
func (b *base[T]) Release() {
	if b.released.Swap(true) {
		return
	}
	b.controller.ReleaseMemory(b.reserved)
}

func (b *base[T]) query(s strategy[T], begin, end int) (T, error) {
	if err := checkRange(begin, end, b.layers.len()); err != nil {
		b.reject(begin, end, false, err)
		var zero T
		return zero, err
	}
	v := s.fold(b.layers, begin, end)
	b.metrics.RecordQuery(b.kind, false, nil)
	return v, nil
}

func (b *base[T]) reject(begin, end int, indexed bool, err error) {
	b.metrics.RecordQuery(b.kind, indexed, err)
	b.logger.LogQueryError(context.Background(), begin, end, err)
}

func queryIndex[T comparable](b *base[T], s indexStrategy[T], p *provenance, begin, end int) (T, int, error) {
	if err := checkRange(begin, end, b.layers.len()); err != nil {
		b.reject(begin, end, true, err)
		var zero T
		return zero, -1, err
	}
	v, pos := s.foldIndex(b.layers, p, begin, end)
	b.metrics.RecordQuery(b.kind, true, nil)
	return v, pos, nil
}

// Table answers range queries for any associative operator in O(log n).
//
// A Table is immutable and safe for concurrent use.
type Table[T any] struct {
	*base[T]
}

// New builds a Table over data. data is copied.
func New[T any](data []T, op Op[T], optFns ...Option) (*Table[T], error) {
	b, err := newBase(KindGeneral, data, op, optFns, nil)
	if err != nil {
		return nil, err
	}
	return &Table[T]{base: b}, nil
}

// Query combines the elements in [begin, end) from left to right.
func (t *Table[T]) Query(begin, end int) (T, error) {
	return t.query(general[T]{}, begin, end)
}

// OverlapTable answers range queries in O(1) for operators that are
// idempotent under overlap.
//
// An OverlapTable is immutable and safe for concurrent use.
type OverlapTable[T any] struct {
	*base[T]
}

// NewOverlap builds an OverlapTable over data. data is copied.
func NewOverlap[T any](data []T, op Idempotent[T], optFns ...Option) (*OverlapTable[T], error) {
	b, err := newBase[T](KindOverlap, data, op, optFns, nil)
	if err != nil {
		return nil, err
	}
	return &OverlapTable[T]{base: b}, nil
}

// Query combines the elements in [begin, end).
func (t *OverlapTable[T]) Query(begin, end int) (T, error) {
	return t.query(overlap[T]{}, begin, end)
}

// IndexedTable answers range queries in O(log n) and reports which position
// supplied the result. Positions are meaningful for selecting operators such
// as min and max; ties resolve to the lowest position.
//
// Values are compared with ==, so NaN never matches itself and float
// sequences containing NaN report unspecified positions.
//
// An IndexedTable is immutable and safe for concurrent use.
type IndexedTable[T comparable] struct {
	*base[T]
	prov *provenance
}

// NewIndexed builds an IndexedTable over data. data is copied.
func NewIndexed[T comparable](data []T, op Op[T], optFns ...Option) (*IndexedTable[T], error) {
	var prov *provenance
	b, err := newBase(KindIndexed, data, op, optFns, func(l *layers[T]) {
		prov = buildProvenance(l)
	})
	if err != nil {
		return nil, err
	}
	return &IndexedTable[T]{base: b, prov: prov}, nil
}

// Query combines the elements in [begin, end) from left to right.
func (t *IndexedTable[T]) Query(begin, end int) (T, error) {
	return t.query(general[T]{}, begin, end)
}

// QueryIndex returns the position in [begin, end) whose value is the
// combined result.
func (t *IndexedTable[T]) QueryIndex(begin, end int) (int, error) {
	_, pos, err := queryIndex(t.base, generalIndex[T]{}, t.prov, begin, end)
	return pos, err
}

// QueryValueIndex returns the combined result and its position in one pass.
func (t *IndexedTable[T]) QueryValueIndex(begin, end int) (T, int, error) {
	return queryIndex(t.base, generalIndex[T]{}, t.prov, begin, end)
}

// OverlapIndexedTable answers both value and position queries in O(1) for
// operators that are idempotent under overlap. It is the configuration
// returned by NewMin and NewMax.
//
// Ties resolve to the lowest position within each precomputed block and to
// the left block when both covering blocks agree. Values are compared with
// ==, see IndexedTable.
//
// An OverlapIndexedTable is immutable and safe for concurrent use.
type OverlapIndexedTable[T comparable] struct {
	*base[T]
	prov *provenance
}

// NewOverlapIndexed builds an OverlapIndexedTable over data. data is copied.
func NewOverlapIndexed[T comparable](data []T, op Idempotent[T], optFns ...Option) (*OverlapIndexedTable[T], error) {
	var prov *provenance
	b, err := newBase[T](KindOverlapIndexed, data, op, optFns, func(l *layers[T]) {
		prov = buildProvenance(l)
	})
	if err != nil {
		return nil, err
	}
	return &OverlapIndexedTable[T]{base: b, prov: prov}, nil
}

// NewMin builds a range-minimum table with position recovery.
func NewMin[T cmp.Ordered](data []T, optFns ...Option) (*OverlapIndexedTable[T], error) {
	return NewOverlapIndexed[T](data, Min[T]{}, optFns...)
}

// NewMax builds a range-maximum table with position recovery.
func NewMax[T cmp.Ordered](data []T, optFns ...Option) (*OverlapIndexedTable[T], error) {
	return NewOverlapIndexed[T](data, Max[T]{}, optFns...)
}

// Query combines the elements in [begin, end).
func (t *OverlapIndexedTable[T]) Query(begin, end int) (T, error) {
	return t.query(overlap[T]{}, begin, end)
}

// QueryIndex returns the position in [begin, end) whose value is the
// combined result.
func (t *OverlapIndexedTable[T]) QueryIndex(begin, end int) (int, error) {
	_, pos, err := queryIndex(t.base, overlapIndex[T]{}, t.prov, begin, end)
	return pos, err
}

// QueryValueIndex returns the combined result and its position.
func (t *OverlapIndexedTable[T]) QueryValueIndex(begin, end int) (T, int, error) {
	return queryIndex(t.base, overlapIndex[T]{}, t.prov, begin, end)
}
