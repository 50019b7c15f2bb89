// Package bytesize parses human-readable byte sizes such as "16MiB" or "2.5MB".
package bytesize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// units maps lowercase unit suffixes to their byte multipliers.
var units = map[string]int64{
	"b":   1,
	"kb":  1000,
	"mb":  1000 * 1000,
	"gb":  1000 * 1000 * 1000,
	"kib": 1 << 10,
	"mib": 1 << 20,
	"gib": 1 << 30,
	"tib": 1 << 40,
}

// Parse converts s into a number of bytes.
// A bare integer is taken as bytes. Negative and fractional results are
// rejected, as is anything that does not fit in an int64.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty size")
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative size: %s", s)
		}

		return n, nil
	}

	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	if i == 0 || i == len(s) {
		return 0, fmt.Errorf("invalid size format: %s", s)
	}

	num, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size number %q: %w", s[:i], err)
	}

	mult, ok := units[strings.ToLower(strings.TrimSpace(s[i:]))]
	if !ok {
		return 0, fmt.Errorf("unknown size unit: %s", s[i:])
	}

	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	total := num * float64(mult)
	if total >= math.MaxInt64 {
		return 0, fmt.Errorf("size out of range: %s", s)
	}
	if total != math.Trunc(total) {
		return 0, fmt.Errorf("size is not a whole number of bytes: %s", s)
	}

	return int64(total), nil
}
