package cli

import (
	"github.com/spf13/cobra"

	"github.com/armkit/armkit/core"
	"github.com/armkit/armkit/module"
	"github.com/armkit/armkit/servicebus"
)

func newServiceBusCommand(deps *Dependencies) *cobra.Command {
	command := &cobra.Command{
		Use:   "servicebus",
		Short: "Manage Service Bus namespaces",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
	}

	ref := func(toolkit *core.Toolkit) (*module.Module[servicebus.Namespace], error) {
		return toolkit.ServiceBusNamespaces()
	}
	command.AddCommand(newResourceCommands(deps, "service bus namespace", ref)...)
	return command
}
