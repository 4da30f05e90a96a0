package main

import (
	"os"

	"github.com/sharvarianand/intervuex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
