package main

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout    io.Writer
	Stderr    io.Writer
	Fs        afero.Fs // resources, config, dotenv and output files
	LookupEnv func(string) (string, bool)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Fs:        afero.NewOsFs(),
		LookupEnv: os.LookupEnv,
	}
}
