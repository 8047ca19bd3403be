package conv

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// ErrOverflow is returned when a value does not fit in the target type.
var ErrOverflow = errors.New("conv: integer overflow")

// To converts v to D, failing if the value would change.
func To[D, S constraints.Integer](v S) (D, error) {
	d := D(v)
	if S(d) != v || (v < 0) != (d < 0) {
		return 0, fmt.Errorf("%w: %d does not fit in %T", ErrOverflow, v, d)
	}
	return d, nil
}

