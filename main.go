// ABOUTME: Entry point for the voxdeck binary
// ABOUTME: Executes the cobra command tree
package main

import (
	"fmt"
	"os"

	"github.com/voxdeck/voxdeck-go/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
