package param

import (
	"errors"
	"fmt"
)

// Configuration and input errors.
var (
	// ErrUnknownType indicates a type tag outside the supported set, or a tag
	// used with the wrong widget kind.
	ErrUnknownType = errors.New("param: unknown or unsupported type")

	// ErrDimensionMismatch indicates vector spec sequences of unequal length,
	// or a length that disagrees with the vector type.
	ErrDimensionMismatch = errors.New("param: vector spec dimension mismatch")

	// ErrBounds indicates min > max or a negative step.
	ErrBounds = errors.New("param: invalid bounds")

	// ErrParse indicates a raw control value that does not parse as its type.
	ErrParse = errors.New("param: cannot parse control value")

	// ErrDuplicateCode indicates two definitions addressing the same code.
	ErrDuplicateCode = errors.New("param: duplicate parameter code")

	// ErrDuplicateLabel indicates two vector groups sharing a display label.
	ErrDuplicateLabel = errors.New("param: duplicate vector label")

	// ErrEmptyGroup indicates a text entry group with no entries.
	ErrEmptyGroup = errors.New("param: entry group needs at least one entry")
)

// ConfigError ties a configuration failure to the definition that caused it.
type ConfigError struct {
	Code    Code
	Label   string
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("parameter %d (%q): %v", e.Code, e.Label, e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

// ParseError carries the raw text that failed to parse.
type ParseError struct {
	Type    Type
	Raw     string
	Wrapped error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("param: parse %q as %s: %v", e.Raw, e.Type, e.Wrapped)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Wrapped}
}
