package main

import (
	"os"

	"github.com/depotops/crewboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
