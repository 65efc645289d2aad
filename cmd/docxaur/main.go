package main

import (
	"os"

	"github.com/nekoprog/DocXaur/internal/cli"
)

// version is injected via -ldflags "-X main.version=..." at release time.
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
