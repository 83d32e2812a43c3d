package main

import (
	"os"

	"github.com/armkit/armkit/internal/cli"
)

func main() {
	deps := &cli.Dependencies{}
	if err := cli.Execute(deps); err != nil {
		os.Exit(cli.ExitCodeForError(err))
	}
}
