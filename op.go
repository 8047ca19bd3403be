package sparsetable

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// Op is an associative binary operator used to combine sequence elements.
//
// Combine must be pure: Combine(Combine(a, b), c) == Combine(a, Combine(b, c)).
type Op[T any] interface {
	Combine(a, b T) T
}

// Idempotent is an Op whose result is unchanged when the same element is
// combined more than once, such as min or max.
//
// Only idempotent operators may be used with the overlap constructors, which
// answer queries by combining two blocks that can share elements.
type Idempotent[T any] interface {
	Op[T]
	// Overlaps marks the operator as safe for overlapping blocks.
	Overlaps()
}

// Number is the set of types supported by Sum.
type Number interface {
	constraints.Integer | constraints.Float | constraints.Complex
}

// Min selects the smaller of two values.
type Min[T cmp.Ordered] struct{}

// Combine implements Op.
func (Min[T]) Combine(a, b T) T { return min(a, b) }

// Overlaps implements Idempotent.
func (Min[T]) Overlaps() {}

// Max selects the larger of two values.
type Max[T cmp.Ordered] struct{}

// Combine implements Op.
func (Max[T]) Combine(a, b T) T { return max(a, b) }

// Overlaps implements Idempotent.
func (Max[T]) Overlaps() {}

// Sum adds two values. It is associative but not idempotent.
type Sum[T Number] struct{}

// Combine implements Op.
func (Sum[T]) Combine(a, b T) T { return a + b }

// Func adapts an associative function to Op.
type Func[T any] func(a, b T) T

// Combine implements Op.
func (f Func[T]) Combine(a, b T) T { return f(a, b) }

// IdempotentFunc adapts a function to Idempotent.
//
// The caller asserts that f is associative and idempotent under overlap;
// neither property can be verified at runtime.
type IdempotentFunc[T any] func(a, b T) T

// Combine implements Op.
func (f IdempotentFunc[T]) Combine(a, b T) T { return f(a, b) }

// Overlaps implements Idempotent.
func (IdempotentFunc[T]) Overlaps() {}

var (
	_ Idempotent[int] = Min[int]{}
	_ Idempotent[int] = Max[int]{}
	_ Op[int]         = Sum[int]{}
	_ Op[int]         = Func[int](nil)
	_ Idempotent[int] = IdempotentFunc[int](nil)
)
