package commands

import (
	"github.com/fivetwenty-io/ghost-client/pkg/ghost"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command. Build metadata is injected
// at link time by the caller.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show ghostctl version",
		Long:  "Display the ghostctl build version, commit, and build date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderRecord(ghost.Record{
				"version": version,
				"commit":  commit,
				"built":   date,
			})
		},
	}
}
