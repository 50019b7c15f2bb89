package types

import (
	"errors"
	"strings"
)

// ErrEmptyLocation is returned in strict mode when a resolver that requires
// a location receives an empty string.
var ErrEmptyLocation = errors.New("empty resource location")

// NotFoundError reports that the target of a resource location does not exist.
type NotFoundError struct {
	Location string // location as given by the caller, e.g. "missing.png"
	Target   string // fully-qualified target, e.g. "/attachments/missing.png"
	Err      error
}

// Error returns the string representation of the NotFoundError.
// The message names the caller's location, not the fully-qualified target.
func (e *NotFoundError) Error() string {
	return "resource not found: " + e.Location
}

// Unwrap returns the underlying error.
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ReadError reports an I/O failure other than not-found while loading a resource.
type ReadError struct {
	Location string
	Target   string
	Err      error
}

// Error returns the string representation of the ReadError.
func (e *ReadError) Error() string {
	var sb strings.Builder
	sb.WriteString("failed to read resource '")
	sb.WriteString(e.Location)
	sb.WriteString("'")

	if e.Target != "" && e.Target != e.Location {
		sb.WriteString(" (target '")
		sb.WriteString(e.Target)
		sb.WriteString("')")
	}

	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// ConfigError reports one or more problems with a resolver configuration.
type ConfigError struct {
	Source string // file path or source name
	Errors []error
}

// Error returns the string representation of the ConfigError.
func (e *ConfigError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid resolver configuration")
	if e.Source != "" {
		sb.WriteString(" from ")
		sb.WriteString(e.Source)
	}

	switch len(e.Errors) {
	case 0:
		return sb.String()
	case 1:
		sb.WriteString(": ")
		sb.WriteString(e.Errors[0].Error())

		return sb.String()
	}

	sb.WriteString(":\n")
	for i, err := range e.Errors {
		sb.WriteString("  - ")
		sb.WriteString(err.Error())
		if i < len(e.Errors)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// Unwrap returns all wrapped errors.
func (e *ConfigError) Unwrap() []error {
	return e.Errors
}
