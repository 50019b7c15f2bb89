package datasource

import (
	"encoding/json"
	"fmt"

	"github.com/arloliu/datasource/internal/bytesize"
	"gopkg.in/yaml.v3"
)

// ByteSize represents a size in bytes with human-readable JSON/YAML serialization.
// It supports parsing both IEC (binary) and SI (decimal) units.
//
// It is used for Config.MaxSize:
//
//	# YAML
//	maxSize: 10MiB
//	// JSON
//	{"maxSize": "10MiB"}
type ByteSize int64

// Int64 returns the underlying int64 value (bytes).
func (b ByteSize) Int64() int64 {
	return int64(b)
}

// String returns the size in the largest IEC unit that represents it
// exactly, e.g. "16MiB" or "1500B". The result is accepted by the parser.
func (b ByteSize) String() string {
	n := int64(b)

	units := []struct {
		suffix string
		size   int64
	}{
		{"TiB", 1 << 40},
		{"GiB", 1 << 30},
		{"MiB", 1 << 20},
		{"KiB", 1 << 10},
	}

	for _, u := range units {
		if n != 0 && n%u.size == 0 {
			return fmt.Sprintf("%d%s", n/u.size, u.suffix)
		}
	}

	return fmt.Sprintf("%dB", n)
}

// Set parses s into b. Together with String and Type it lets ByteSize
// serve as a command-line flag value.
func (b *ByteSize) Set(s string) error {
	parsed, err := bytesize.Parse(s)
	if err != nil {
		return err
	}
	*b = ByteSize(parsed)

	return nil
}

// Type returns the flag type name.
func (b *ByteSize) Type() string {
	return "bytesize"
}

// MarshalJSON outputs size as quoted string.
func (b ByteSize) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON parses size from string or number (bytes).
func (b *ByteSize) UnmarshalJSON(data []byte) error {
	// Try string first (preferred format)
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := bytesize.Parse(s)
		if err != nil {
			return fmt.Errorf("invalid byte size string %q: %w", s, err)
		}
		*b = ByteSize(parsed)

		return nil
	}

	// A plain number is taken as bytes
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("byte size must be string or number, got: %s", string(data))
	}
	if n < 0 {
		return fmt.Errorf("negative byte size: %d", n)
	}
	*b = ByteSize(n)

	return nil
}

// MarshalYAML outputs size as string.
func (b ByteSize) MarshalYAML() (any, error) {
	return b.String(), nil
}

// UnmarshalYAML parses size from string or number (bytes).
func (b *ByteSize) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected scalar value for byte size, got %v", node.Kind)
	}

	// Try as size string first (preferred format)
	parsed, err := bytesize.Parse(node.Value)
	if err == nil {
		*b = ByteSize(parsed)

		return nil
	}

	// A plain number is taken as bytes
	var n int64
	if err := node.Decode(&n); err == nil && n >= 0 {
		*b = ByteSize(n)

		return nil
	}

	return fmt.Errorf("invalid byte size value: %s", node.Value)
}
