package main

import (
	"os"

	"github.com/fakeyudi/storydemon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
