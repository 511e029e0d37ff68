package main

import (
	"os"

	"github.com/praxis-labs/praxis/internal/cli"
	"github.com/praxis-labs/praxis/internal/errs"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		errs.Print(os.Stderr, err)
		os.Exit(errs.ExitCode(err))
	}
}
