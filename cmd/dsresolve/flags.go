package main

import (
	"fmt"
	"io"

	"github.com/arloliu/datasource"
	flag "github.com/spf13/pflag"
)

// cliFlags holds the parsed command-line flags.
type cliFlags struct {
	config    string
	kind      string
	base      string
	lenient   bool
	sniff     bool
	maxSize   datasource.ByteSize
	timeout   datasource.Duration
	output    string
	envPrefix string
	envFiles  []string
	verbose   bool
	version   bool

	// changed records which resolver flags were set explicitly.
	changed func(name string) bool
}

// parseFlags parses args (without the program name).
// It returns the flags, the remaining locations, and flag.ErrHelp for -h.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	f := &cliFlags{}

	fs := flag.NewFlagSet("dsresolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr, fs) }

	fs.StringVarP(&f.config, "config", "c", "", "resolver config file (YAML or JSON)")
	fs.StringVarP(&f.kind, "kind", "k", "", "resolver kind: classpath, file or url")
	fs.StringVarP(&f.base, "base", "b", "", "base path, base directory or base URL")
	fs.BoolVarP(&f.lenient, "lenient", "l", false, "skip missing or unreadable resources")
	fs.BoolVar(&f.sniff, "sniff", false, "detect MIME type from content for unknown extensions")
	fs.Var(&f.maxSize, "max-size", "maximum resource size, e.g. 10MiB")
	f.timeout = datasource.Duration(datasource.DefaultTimeout)
	fs.Var(&f.timeout, "timeout", "HTTP fetch timeout, e.g. 5s or 30")
	fs.StringVarP(&f.output, "output", "o", "", "directory to write resolved payloads to")
	fs.StringVar(&f.envPrefix, "env-prefix", datasource.DefaultEnvPrefix, "prefix of environment overrides")
	fs.StringArrayVar(&f.envFiles, "env-file", nil, "dotenv file with overrides (repeatable)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log resolution details to stderr")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, nil, err
		}

		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	f.changed = fs.Changed

	return f, fs.Args(), nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: dsresolve [flags] LOCATION...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Resolves each location and prints: location, content type, size.")
	fmt.Fprintln(w, "Locations that are not resolved print: location, skipped.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0  success")
	fmt.Fprintln(w, "  1  general error")
	fmt.Fprintln(w, "  2  invalid usage or config")
	fmt.Fprintln(w, "  3  resource not found or unreadable")
}
