package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/armkit/armkit/core"
	"github.com/armkit/armkit/faults"
	"github.com/armkit/armkit/module"
	"github.com/armkit/armkit/resource"
)

type moduleRef[R any] func(*core.Toolkit) (*module.Module[R], error)

func resolve[R any](deps *Dependencies, ref moduleRef[R]) (*module.Module[R], error) {
	toolkit, err := deps.toolkit()
	if err != nil {
		return nil, err
	}
	return ref(toolkit)
}

func notFound(kind, name string) error {
	return faults.NewTypedError(faults.NotFoundError, fmt.Sprintf("%s %q not found", kind, name), nil)
}

func addResourceGroupFlag(flags *pflag.FlagSet, target *string, usage string) {
	flags.StringVarP(target, "resource-group", "g", "", usage)
}

// newResourceCommands builds the uniform list/get/delete/create/update
// subtree every module-backed resource kind shares.
func newResourceCommands[R any](deps *Dependencies, kind string, ref moduleRef[R]) []*cobra.Command {
	return []*cobra.Command{
		newListCommand(deps, kind, ref),
		newGetCommand(deps, kind, ref),
		newDeleteCommand(deps, kind, ref),
		newCreateCommand(deps, kind, ref),
		newUpdateCommand(deps, kind, ref),
	}
}

func newListCommand[R any](deps *Dependencies, kind string, ref moduleRef[R]) *cobra.Command {
	var resourceGroup string
	command := &cobra.Command{
		Use:   "list",
		Short: "List " + kind + "s",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			mod, err := resolve(deps, ref)
			if err != nil {
				return err
			}
			entities, err := mod.List(command.Context(), resourceGroup)
			if err != nil {
				return err
			}
			return deps.render(command.OutOrStdout(), viewsOf(entities))
		},
	}
	addResourceGroupFlag(command.Flags(), &resourceGroup, "restrict the listing to one resource group")
	return command
}

func newGetCommand[R any](deps *Dependencies, kind string, ref moduleRef[R]) *cobra.Command {
	var resourceGroup string
	command := &cobra.Command{
		Use:   "get <name>",
		Short: "Show one " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			mod, err := resolve(deps, ref)
			if err != nil {
				return err
			}
			entity, err := mod.Get(command.Context(), args[0], resourceGroup)
			if err != nil {
				return err
			}
			if entity == nil {
				return notFound(kind, args[0])
			}
			return deps.render(command.OutOrStdout(), viewOf(entity))
		},
	}
	addResourceGroupFlag(command.Flags(), &resourceGroup, "resource group of the "+kind)
	return command
}

func newDeleteCommand[R any](deps *Dependencies, kind string, ref moduleRef[R]) *cobra.Command {
	var resourceGroup string
	command := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete one " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			mod, err := resolve(deps, ref)
			if err != nil {
				return err
			}
			entity, err := mod.Get(command.Context(), args[0], resourceGroup)
			if err != nil {
				return err
			}
			if entity == nil {
				return notFound(kind, args[0])
			}

			confirmed, err := deps.confirmDelete(kind, args[0])
			if err != nil {
				return err
			}
			if !confirmed {
				return nil
			}
			return mod.Delete(command.Context(), entity.ID())
		},
	}
	addResourceGroupFlag(command.Flags(), &resourceGroup, "resource group of the "+kind)
	return command
}

func newCreateCommand[R any](deps *Dependencies, kind string, ref moduleRef[R]) *cobra.Command {
	var resourceGroup string
	var assignments []string
	command := &cobra.Command{
		Use:   "create <name>",
		Short: "Create one " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			mod, err := resolve(deps, ref)
			if err != nil {
				return err
			}
			fields, err := parseFields(assignments)
			if err != nil {
				return err
			}

			draft, err := mod.NewDraftForCreate(args[0], resourceGroup)
			if err != nil {
				return err
			}
			for key, value := range fields {
				draft.Set(key, value)
			}
			entity, err := draft.Commit(command.Context())
			if err != nil {
				return err
			}
			return deps.render(command.OutOrStdout(), viewOf(entity))
		},
	}
	addResourceGroupFlag(command.Flags(), &resourceGroup, "resource group for the new "+kind)
	command.Flags().StringArrayVar(&assignments, "set", nil, "draft field as key=value, repeatable")
	return command
}

func newUpdateCommand[R any](deps *Dependencies, kind string, ref moduleRef[R]) *cobra.Command {
	var resourceGroup string
	var assignments []string
	command := &cobra.Command{
		Use:   "update <name>",
		Short: "Update one " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			mod, err := resolve(deps, ref)
			if err != nil {
				return err
			}
			entity, err := mod.Get(command.Context(), args[0], resourceGroup)
			if err != nil {
				return err
			}
			if entity == nil {
				return notFound(kind, args[0])
			}
			fields, err := parseFields(assignments)
			if err != nil {
				return err
			}

			draft, err := mod.NewDraftForUpdate(entity)
			if err != nil {
				return err
			}
			for key, value := range fields {
				draft.Set(key, value)
			}
			updated, err := draft.Commit(command.Context())
			if err != nil {
				return err
			}
			return deps.render(command.OutOrStdout(), viewOf(updated))
		},
	}
	addResourceGroupFlag(command.Flags(), &resourceGroup, "resource group of the "+kind)
	command.Flags().StringArrayVar(&assignments, "set", nil, "draft field as key=value, repeatable")
	return command
}

// parseFields turns key=value assignments into a draft field bag; values
// that read as booleans or integers are typed accordingly.
func parseFields(assignments []string) (resource.FieldBag, error) {
	fields := resource.FieldBag{}
	for _, assignment := range assignments {
		key, value, ok := strings.Cut(assignment, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, faults.Configurationf("invalid field assignment %q: expected key=value", assignment)
		}

		switch {
		case value == "true" || value == "false":
			fields[key] = value == "true"
		default:
			if number, err := strconv.Atoi(value); err == nil {
				fields[key] = number
			} else {
				fields[key] = value
			}
		}
	}
	return fields, nil
}
