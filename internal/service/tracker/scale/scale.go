// Package scale maps completion state onto fixed-length visual scales.
// Index 0 means nothing is done; the last index means every slot is filled.
package scale

import (
	"errors"
	"fmt"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
)

// ErrOutOfRange is returned when a position does not exist in a scale.
// It always indicates a bug in the caller, never bad user input.
var ErrOutOfRange = errors.New("scale position out of range")

// Length returns the scale length for v: slot count plus one.
func Length(v domain.ListVariant) int {
	if !v.IsValid() {
		return 0
	}
	return v.SlotCount() + 1
}

// Position returns the number of filled slots of c. A nil completion,
// including a nil pointer form, is 0.
func Position(c domain.VariantCompletion) int {
	c = domain.NormalizeCompletion(c)
	if c == nil {
		return 0
	}
	return c.Filled()
}

// Highlight forces a scale index for the objective currently being edited.
// The zero value applies no override.
type Highlight struct {
	Active bool
	Index  int
}

// PositionWithOverride returns h.Index when the highlight is active and the
// completion-derived position otherwise.
func PositionWithOverride(c domain.VariantCompletion, h Highlight) int {
	if h.Active {
		return h.Index
	}
	return Position(c)
}

// Lookup returns scale[position]. It fails instead of clamping.
func Lookup[T any](scale []T, position int) (T, error) {
	if position < 0 || position >= len(scale) {
		var zero T
		return zero, fmt.Errorf("position %d, scale length %d: %w", position, len(scale), ErrOutOfRange)
	}
	return scale[position], nil
}

// MustLookup is Lookup that panics on an out-of-range position.
func MustLookup[T any](scale []T, position int) T {
	v, err := Lookup(scale, position)
	if err != nil {
		panic(err)
	}
	return v
}
