// Package main provides the insight CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/harshajxn/gecf-knowledge-insight/cmd/insight-cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
