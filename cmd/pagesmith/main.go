package main

import (
	"os"

	"github.com/skylarmartinex/pagesmith/internal/cli"
)

// set by the linker at release time
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
