// Command docklint validates the syntax of Dockerfiles.
package main

import (
	"fmt"
	"os"

	"github.com/wharflab/docklint/cmd/docklint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cmd.ExitConfigError)
	}
}
