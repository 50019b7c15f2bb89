package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/arloliu/datasource"
	"github.com/stretchr/testify/assert"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		{"usage", ErrUsage, ExitUsage},
		{"wrapped usage", fmt.Errorf("%w: unknown flag", ErrUsage), ExitUsage},
		{"config", fmt.Errorf("%w: %w", ErrConfig, os.ErrNotExist), ExitUsage},
		{"config error", &datasource.ConfigError{Errors: []error{errors.New("bad kind")}}, ExitUsage},

		{"not found", &datasource.NotFoundError{Location: "logo.png"}, ExitIO},
		{"read", &datasource.ReadError{Location: "logo.png", Err: errors.New("boom")}, ExitIO},
		{"empty location", datasource.ErrEmptyLocation, ExitIO},
		{"write output", fmt.Errorf("%w: out/logo.png", ErrWriteOutput), ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},

		{"unknown", errors.New("unexpected"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 1, ExitGeneral)
	assert.Equal(t, 2, ExitUsage)
	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO} {
		assert.Less(t, code, 126)
	}
}
