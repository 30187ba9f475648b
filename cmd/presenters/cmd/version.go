package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func init() {
	RegisterCommand(func(*options) *cobra.Command {
		return &cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "presenters version %s (built %s) %s/%s\n",
					Version, BuildTime, runtime.GOOS, runtime.GOARCH)
			},
		}
	})
}
