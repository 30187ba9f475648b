package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-drift/presenters/cmd/presenters/internal/scenario"
)

func init() {
	RegisterCommand(newRunCommand)
}

func newRunCommand(opts *options) *cobra.Command {
	var quiet bool
	c := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a lifecycle scenario",
		Long: `Run a lifecycle scenario and print every hook call.

Exits with an error if any expectation fails or an operation fails
with an error the scenario did not ask for.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(opts.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if quiet {
				out = io.Discard
			}
			runner := &scenario.Runner{Out: out, Logger: log}
			log.Debug().Str("file", args[0]).Int("steps", len(sc.Steps)).Msg("running scenario")

			report, err := runner.Run(cmd.Context(), sc)
			if err != nil {
				return err
			}
			if !report.OK() {
				for _, f := range report.Failures {
					log.Error().Msg(f)
				}
				return fmt.Errorf("%d of %d steps failed", len(report.Failures), report.Steps)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PASS: %d steps, %d hook calls\n", report.Steps, len(report.Trace))
			return nil
		},
	}
	c.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the result")
	return c
}
