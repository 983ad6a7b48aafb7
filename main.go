package main

import (
	"os"

	"github.com/thenoetrevino/corkboard/cmd"
	"github.com/thenoetrevino/corkboard/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
