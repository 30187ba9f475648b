// Command presenters runs presenter lifecycle scenarios.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/presenters/cmd/presenters/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
