// main is the entry point for the devscope CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/devscope/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
