package main

import (
	"os"

	"github.com/fnug-run/fnug/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
