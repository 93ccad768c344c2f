package main

import (
	"os"

	"github.com/rshade/pokedeck/internal/cli"
	"github.com/rshade/pokedeck/pkg/version"
)

// exitCodeFailure is returned for any command error. Cobra has already
// printed the message by the time run returns.
const exitCodeFailure = 1

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.Execute()
}

func main() {
	if err := run(); err != nil {
		os.Exit(exitCodeFailure)
	}
}
