package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/presenters/cmd/presenters/internal/scenario"
)

func init() {
	RegisterCommand(func(*options) *cobra.Command {
		return &cobra.Command{
			Use:   "validate FILE",
			Short: "Check a scenario file without running it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				sc, err := scenario.Load(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d presenters, %d steps)\n", args[0], len(sc.Presenters), len(sc.Steps))
				return nil
			},
		}
	})
}
