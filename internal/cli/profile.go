package cli

import (
	"github.com/spf13/cobra"

	"github.com/armkit/armkit/config"
)

func (d *Dependencies) configService() *config.Service {
	return &config.Service{Path: d.flags.ConfigFile}
}

func newProfileCommand(deps *Dependencies) *cobra.Command {
	command := &cobra.Command{
		Use:   "profile",
		Short: "Manage the profile catalog",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
	}
	command.AddCommand(
		newProfileListCommand(deps),
		newProfileShowCommand(deps),
		newProfileSetCommand(deps),
		newProfileUseCommand(deps),
		newProfileDeleteCommand(deps),
	)
	return command
}

func newProfileListCommand(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog profiles",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			catalog, err := deps.configService().Load()
			if err != nil {
				return err
			}
			return deps.render(command.OutOrStdout(), catalog)
		},
	}
}

func newProfileShowCommand(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active profile",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			profile, err := deps.configService().Current(deps.flags.Profile)
			if err != nil {
				return err
			}
			return deps.render(command.OutOrStdout(), profile)
		},
	}
}

func newProfileSetCommand(deps *Dependencies) *cobra.Command {
	profile := config.Profile{}
	command := &cobra.Command{
		Use:   "set <name>",
		Short: "Add or replace a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			profile.Name = args[0]
			return deps.configService().Set(profile)
		},
	}
	flags := command.Flags()
	flags.StringVar(&profile.Subscription, "subscription", "", "subscription id the profile targets")
	flags.StringVar(&profile.TenantID, "tenant", "", "tenant id for credential acquisition")
	flags.IntVar(&profile.Preferences.PageSize, "page-size", 0, "listing page size")
	flags.Float64Var(&profile.Preferences.RequestsPerSecond, "requests-per-second", 0, "control-plane request throttle")
	flags.StringVar(&profile.Preferences.Output, "default-output", "", "default output format, json or yaml")
	return command
}

func newProfileUseCommand(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Switch the current profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			return deps.configService().Use(args[0])
		},
	}
}

func newProfileDeleteCommand(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a profile from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			confirmed, err := deps.confirmDelete("profile", args[0])
			if err != nil {
				return err
			}
			if !confirmed {
				return nil
			}
			return deps.configService().Delete(args[0])
		},
	}
}
