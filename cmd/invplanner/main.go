package main

import (
	"fmt"
	"os"

	"invplanner/cmd/invplanner/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
