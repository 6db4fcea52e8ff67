// Command analogclock renders an animated analog clock face to an image file.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/analogclock/cmd/analogclock/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
