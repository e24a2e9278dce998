package main

import (
	"os"

	"github.com/mkalvas/montage/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
