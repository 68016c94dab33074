package main

import (
	"os"

	"github.com/blinkenlight/minimon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
