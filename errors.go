package datasource

import "github.com/arloliu/datasource/internal/types"

// NotFoundError reports that the target of a resource location does not exist.
// It is returned only by strict resolution.
type NotFoundError = types.NotFoundError

// ReadError reports any other I/O failure while loading a resource.
// It is returned only by strict resolution.
type ReadError = types.ReadError

// ConfigError reports an invalid resolver configuration.
type ConfigError = types.ConfigError

// ErrEmptyLocation is returned by the URL resolver in strict mode when the
// location is empty.
var ErrEmptyLocation = types.ErrEmptyLocation
