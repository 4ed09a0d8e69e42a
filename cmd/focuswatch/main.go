package main

import (
	"fmt"
	"os"

	"github.com/runnerr0/focuswatch/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		fmt.Fprintf(os.Stderr, "focuswatch: %v\n", err)
		os.Exit(1)
	}
}
