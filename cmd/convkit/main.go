package main

import (
	"os"

	"github.com/convkit/convkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
