package main

import (
	"os"

	"github.com/mos1128/scoop-easy/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
