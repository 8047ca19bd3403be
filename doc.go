// Package sparsetable provides immutable sparse tables for static range queries.
//
// A sparse table precomputes, for every power-of-two block length 2^i and
// every start position j, the combination of the 2^i elements starting at j.
// Construction takes O(n log n) time and space; afterwards the table answers
// "combine all elements in [begin, end)" without touching the source data.
//
// # Quick Start
//
//	tbl, _ := sparsetable.NewMin([]int{5, 3, 8, 1, 9, 2})
//	v, _ := tbl.Query(1, 4)        // 1
//	pos, _ := tbl.QueryIndex(1, 4) // 3
//
// # Configurations
//
// Two query strategies share one precomputation:
//
//   - General (New, NewIndexed): folds O(log n) disjoint blocks from left to
//     right. Works for any associative operator, including non-commutative
//     and non-idempotent ones such as Sum.
//   - Overlap (NewOverlap, NewOverlapIndexed, NewMin, NewMax): combines two
//     possibly overlapping blocks in O(1). Requires an Idempotent operator,
//     which the constructors enforce through their parameter type.
//
// Indexed configurations keep a parallel table of positions so callers can
// recover which element produced the result. Ties resolve to the lowest
// position.
//
// # Operators
//
//	sparsetable.Min[T]{}              // idempotent
//	sparsetable.Max[T]{}              // idempotent
//	sparsetable.Sum[T]{}              // associative only
//	sparsetable.Func[T](fn)           // associative only
//	sparsetable.IdempotentFunc[T](fn) // caller asserts idempotence
//
// # Errors
//
// Queries require 0 <= begin < end <= Len(). Violations return a *RangeError
// that matches ErrInvalidRange with errors.Is. Empty input is rejected at
// construction with ErrEmptyInput.
//
// # Concurrency
//
// Tables are never mutated after construction and are safe for unlimited
// concurrent queries. Updating the sequence requires building a new table.
//
// # Related Packages
//
//   - batch: answer many ranges concurrently, collect winning positions
//   - snapshot: persist a table's sequence to a blobstore and rebuild it
//   - resource: memory, worker and IO limits
//   - prommetrics: Prometheus MetricsCollector
package sparsetable
