package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for engine operations.
var (
	// ErrRestitutionRange indicates a restitution percentage outside [0, 99].
	ErrRestitutionRange = errors.New("dynamo: restitution must be in [0, 99]")

	// ErrInvalidMass indicates a non-positive or non-finite mass.
	ErrInvalidMass = errors.New("dynamo: mass must be positive and finite")

	// ErrInvalidConfig indicates a simulation config with unusable values.
	ErrInvalidConfig = errors.New("dynamo: invalid simulation config")

	// ErrNegativeDt indicates a negative or non-finite frame delta.
	ErrNegativeDt = errors.New("dynamo: delta time must be finite and non-negative")

	// ErrInvalidState indicates a body state containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
)

// SimulationError wraps an error with the frame it happened on.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
