package main

import (
	"fmt"
	"os"

	"github.com/ignite/mailcore/cmd/mailcore/cli"
)

// Set via -ldflags at build time
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
