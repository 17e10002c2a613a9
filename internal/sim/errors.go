package sim

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the sentinel matched by every *ConfigurationError.
var ErrConfiguration = errors.New("sim: invalid configuration")

// ConfigurationError reports simulation parameters that cannot produce a valid world.
// It is returned at construction time and the caller may retry with other values.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("sim: invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// InvariantViolation reports corrupted simulation state.
// Tick panics with a *InvariantViolation; Validate returns one as an error.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return "sim: invariant violated: " + e.Reason
}

func configErr(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
