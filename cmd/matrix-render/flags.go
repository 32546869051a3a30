package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

type stringSlice []string

func (s *stringSlice) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// usageOut receives subcommand help.
var usageOut io.Writer = os.Stderr

// parseFlags parses args into fs. On -h/--help it prints the flag defaults to
// usageOut and reports done, which callers treat as a clean exit.
func parseFlags(fs *flag.FlagSet, args []string) (done bool, err error) {
	err = fs.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		_, _ = fmt.Fprintf(usageOut, "Usage: matrix-render %s [flags]\n", fs.Name())
		fs.SetOutput(usageOut)
		fs.PrintDefaults()
		return true, nil
	}
	return false, err
}
