// Package cmd implements the presenters CLI commands.
//
// The root command dispatches to subcommands (run, validate, version). Each
// subcommand registers itself from its own file.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// commands holds constructors registered by the subcommand files.
var commands []func(*options) *cobra.Command

// RegisterCommand adds a subcommand constructor to the CLI.
func RegisterCommand(fn func(*options) *cobra.Command) {
	commands = append(commands, fn)
}

// options are the persistent flags shared by every subcommand.
type options struct {
	logLevel string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "presenters",
		Short: "Run presenter lifecycle scenarios",
		Long: `presenters drives a tree of presenters through a lifecycle scenario.

A scenario file declares presenters and sets, then lists operations
(prepare, start, stop, destroy, add, remove) and state expectations.
Every operation runs on a dedicated UI thread unless marked off_thread.

Use "presenters <command> --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addLogFlags(root.PersistentFlags(), opts)
	for _, fn := range commands {
		root.AddCommand(fn(opts))
	}
	return root
}

// Execute runs the CLI with os.Args.
func Execute() error {
	root := NewRootCommand()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
