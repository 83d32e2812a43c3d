package cli

import (
	"github.com/spf13/cobra"

	"github.com/armkit/armkit/azure"
	"github.com/armkit/armkit/core"
	"github.com/armkit/armkit/module"
)

func newSubscriptionCommand(deps *Dependencies) *cobra.Command {
	command := &cobra.Command{
		Use:   "subscription",
		Short: "Inspect the subscriptions visible to the session",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
	}

	ref := func(toolkit *core.Toolkit) (*module.Module[azure.Subscription], error) {
		return toolkit.Subscriptions()
	}
	command.AddCommand(
		newListCommand(deps, "subscription", ref),
		newGetCommand(deps, "subscription", ref),
	)
	return command
}
