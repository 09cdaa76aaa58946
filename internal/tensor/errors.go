package tensor

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrConfig  = errors.New("invalid reorg configuration")
	ErrShape   = errors.New("shape not divisible by reorg stride")
	ErrInPlace = errors.New("reorg does not allow in-place computation")
)

// ConfigError describes a rejected operator configuration.
type ConfigError struct {
	Field   string // Offending field (e.g., "stride")
	Details string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfig, e.Field, e.Details)
}

// Unwrap makes errors.Is(err, ErrConfig) hold.
func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

// ShapeError describes an input shape that cannot be reorganized with the
// configured stride and direction.
type ShapeError struct {
	Op      string // "pack" or "unpack"
	Shape   Shape
	Stride  int
	Details string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s %v with stride %d: %s", ErrShape, e.Op, e.Shape, e.Stride, e.Details)
}

// Unwrap makes errors.Is(err, ErrShape) hold.
func (e *ShapeError) Unwrap() error {
	return ErrShape
}
