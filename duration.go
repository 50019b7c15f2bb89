package datasource

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a non-negative time span used for Config.Timeout.
//
// It is written as a Go duration string ("5s", "1m30s"). A bare integer is
// taken as whole seconds, so "timeout: 30" means thirty seconds. The same
// rules apply to YAML, JSON, environment variables and the --timeout flag.
type Duration time.Duration

// ParseDuration parses s as a Duration. Negative values are rejected.
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid duration: empty value")
	}

	var d time.Duration
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		if secs > int64(time.Duration(1<<63-1)/time.Second) {
			return 0, fmt.Errorf("invalid duration %q: out of range", s)
		}
		d = time.Duration(secs) * time.Second
	} else {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		d = parsed
	}

	if d < 0 {
		return 0, fmt.Errorf("invalid duration %q: must not be negative", s)
	}

	return Duration(d), nil
}

// Duration returns the value as a time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// String returns the Go duration string, e.g. "30s".
func (d Duration) String() string {
	return time.Duration(d).String()
}

// Set parses s into d. Together with String and Type it lets Duration
// serve as a command-line flag value.
func (d *Duration) Set(s string) error {
	parsed, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = parsed

	return nil
}

// Type returns the flag type name.
func (d *Duration) Type() string {
	return "duration"
}

// MarshalJSON outputs the duration as a quoted string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Unquoted numbers arrive as their literal text.
		s = string(data)
	}

	return d.Set(s)
}

// MarshalYAML outputs the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML accepts a duration string or a number of seconds.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected scalar value for duration, got %v", node.Kind)
	}

	return d.Set(node.Value)
}
