package main

import (
	"os"

	"github.com/pagesmith/pagesmith/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
