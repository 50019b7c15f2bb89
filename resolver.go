package datasource

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/arloliu/datasource/internal/classify"
)

// Resolver turns a resource location into a *DataSource.
// Implementations MUST be safe for concurrent use by multiple goroutines.
//
// A nil *DataSource with a nil error means the location was not resolved:
// either it is outside the resolver's responsibility (such as "cid:"
// references) or the resolver is lenient and the target could not be loaded.
type Resolver interface {
	// Resolve resolves location using the resolver's configured leniency.
	Resolve(ctx context.Context, location string) (*DataSource, error)

	// ResolveWith resolves location with an explicit leniency for this call.
	ResolveWith(ctx context.Context, location string, lenient bool) (*DataSource, error)
}

// failure applies the leniency policy to a load error.
// Lenient resolution suppresses not-found and I/O errors alike; strict
// resolution maps them to *NotFoundError and *ReadError. Cancellation of
// ctx is returned as-is in both modes.
func failure(ctx context.Context, logger *slog.Logger, location, target string, err error, lenient bool) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return err
	}

	if lenient {
		logger.DebugContext(ctx, "lenient resolution suppressed error",
			slog.String("location", location),
			slog.String("target", target),
			slog.Any("error", err),
		)

		return nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return &NotFoundError{Location: location, Target: target, Err: err}
	}

	return &ReadError{Location: location, Target: target, Err: err}
}

// skipped logs a location the resolver is not responsible for.
func skipped(ctx context.Context, logger *slog.Logger, location string, class classify.Class) {
	logger.DebugContext(ctx, "location skipped",
		slog.String("location", location),
		slog.String("class", class.String()),
	)
}
