package main

import (
	"os"

	"github.com/learninglab/bitlab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
