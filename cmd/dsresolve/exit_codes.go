package main

import (
	"errors"
	"os"

	"github.com/arloliu/datasource"
)

// Exit codes for the dsresolve CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All locations resolved or skipped
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Resource not found or unreadable, output not writable
)

var (
	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("invalid usage")
	// ErrConfig marks a resolver config that cannot be loaded.
	ErrConfig = errors.New("invalid resolver config")
	// ErrWriteOutput marks a failure to write a resolved payload.
	ErrWriteOutput = errors.New("failed to write output")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	var cfgErr *datasource.ConfigError
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrConfig) ||
		errors.As(err, &cfgErr) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	var notFound *datasource.NotFoundError
	var readErr *datasource.ReadError
	if errors.As(err, &notFound) ||
		errors.As(err, &readErr) ||
		errors.Is(err, datasource.ErrEmptyLocation) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
