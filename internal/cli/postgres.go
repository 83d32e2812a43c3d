package cli

import (
	"github.com/spf13/cobra"

	"github.com/armkit/armkit/core"
	"github.com/armkit/armkit/module"
	"github.com/armkit/armkit/postgre"
)

func newPostgresCommand(deps *Dependencies) *cobra.Command {
	command := &cobra.Command{
		Use:   "postgres",
		Short: "Manage PostgreSQL flexible servers",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
	}

	ref := func(toolkit *core.Toolkit) (*module.Module[postgre.Server], error) {
		return toolkit.PostgresServers()
	}
	command.AddCommand(newResourceCommands(deps, "postgres server", ref)...)
	command.AddCommand(&cobra.Command{
		Use:   "versions",
		Short: "List provisionable server versions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			return deps.render(command.OutOrStdout(), postgre.SupportedVersions())
		},
	})
	return command
}
