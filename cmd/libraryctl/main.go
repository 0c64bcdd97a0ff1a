// Command libraryctl is the administration console for the library backend.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(defaultApp()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
