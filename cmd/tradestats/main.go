package main

import (
	"os"

	"github.com/robdata/tradestats/cmd/tradestats/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
