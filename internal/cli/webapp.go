package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/armkit/armkit/appservice"
	"github.com/armkit/armkit/core"
	"github.com/armkit/armkit/module"
	"github.com/armkit/armkit/resource"
)

func newWebAppCommand(deps *Dependencies) *cobra.Command {
	command := &cobra.Command{
		Use:   "webapp",
		Short: "Manage web apps, their slots, and their sidecar",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
	}

	ref := func(toolkit *core.Toolkit) (*module.Module[appservice.Site], error) {
		webApps, err := toolkit.WebApps()
		if err != nil {
			return nil, err
		}
		return webApps.Module, nil
	}
	command.AddCommand(newResourceCommands(deps, "web app", ref)...)
	command.AddCommand(
		newWebAppSlotsCommand(deps),
		newWebAppSwapCommand(deps),
		newWebAppLinkersCommand(deps),
		newWebAppFilesCommand(deps),
		newWebAppProcessesCommand(deps),
		newWebAppExecCommand(deps),
		newWebAppTunnelCommand(deps),
	)
	return command
}

// webApp resolves one loaded web app entity along with its module.
func (d *Dependencies) webApp(ctx context.Context, name, resourceGroup string) (*appservice.WebAppModule, *resource.Entity[appservice.Site], error) {
	toolkit, err := d.toolkit()
	if err != nil {
		return nil, nil, err
	}
	webApps, err := toolkit.WebApps()
	if err != nil {
		return nil, nil, err
	}
	entity, err := webApps.Get(ctx, name, resourceGroup)
	if err != nil {
		return nil, nil, err
	}
	if entity == nil {
		return nil, nil, notFound("web app", name)
	}
	return webApps, entity, nil
}

func newWebAppSlotsCommand(deps *Dependencies) *cobra.Command {
	var resourceGroup string
	command := &cobra.Command{
		Use:   "slots <app>",
		Short: "List the deployment slots of a web app",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			webApps, entity, err := deps.webApp(command.Context(), args[0], resourceGroup)
			if err != nil {
				return err
			}
			slots, err := webApps.Slots(entity).List(command.Context(), "")
			if err != nil {
				return err
			}
			return deps.render(command.OutOrStdout(), viewsOf(slots))
		},
	}
	addResourceGroupFlag(command.Flags(), &resourceGroup, "resource group of the web app")
	return command
}

func newWebAppSwapCommand(deps *Dependencies) *cobra.Command {
	var resourceGroup, slot string
	command := &cobra.Command{
		Use:   "swap <app>",
		Short: "Swap a deployment slot into production",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			webApps, entity, err := deps.webApp(command.Context(), args[0], resourceGroup)
			if err != nil {
				return err
			}
			return webApps.SwapSlot(command.Context(), entity, slot)
		},
	}
	addResourceGroupFlag(command.Flags(), &resourceGroup, "resource group of the web app")
	command.Flags().StringVar(&slot, "slot", "staging", "slot to swap into production")
	return command
}

func newWebAppLinkersCommand(deps *Dependencies) *cobra.Command {
	var resourceGroup string
	command := &cobra.Command{
		Use:   "linkers <app>",
		Short: "List the service connections of a web app",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			webApps, entity, err := deps.webApp(command.Context(), args[0], resourceGroup)
			if err != nil {
				return err
			}
			linkers, err := webApps.Linkers(entity).List(command.Context(), "")
			if err != nil {
				return err
			}
			return deps.render(command.OutOrStdout(), viewsOf(linkers))
		},
	}
	addResourceGroupFlag(command.Flags(), &resourceGroup, "resource group of the web app")
	return command
}
