// Package main provides the entry point for the workouttimer command.
//
// With no subcommand it starts the terminal UI. See workouttimer --help for
// the scripted commands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/riordanpawley/workouttimer/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
