package main

import (
	"os"

	"github.com/socratesone/knowledge-navigator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
