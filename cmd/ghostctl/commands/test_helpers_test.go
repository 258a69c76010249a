package commands_test

import "github.com/spf13/cobra"

// findSubcommand returns parent's direct subcommand with the given name, or
// nil when no such subcommand is registered.
func findSubcommand(parent *cobra.Command, name string) *cobra.Command {
	for _, sub := range parent.Commands() {
		if sub.Name() == name {
			return sub
		}
	}

	return nil
}
