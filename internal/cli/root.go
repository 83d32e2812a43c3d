package cli

import (
	"log/slog"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/armkit/armkit/config"
	"github.com/armkit/armkit/faults"
)

type globalFlags struct {
	Profile    string
	ConfigFile string
	Output     string
	Query      string
	Verbose    bool
	Yes        bool
}

func NewRootCommand(deps *Dependencies) *cobra.Command {
	root := &cobra.Command{
		Use:   "armkit",
		Short: "Manage cloud resources through cached, draft-committed modules",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
		PersistentPreRunE: func(command *cobra.Command, _ []string) error {
			switch deps.flags.Output {
			case "", config.OutputJSON, config.OutputYAML:
				return nil
			default:
				return faults.Configurationf("invalid output format %q: use json or yaml", deps.flags.Output)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&deps.flags.Profile, "profile", "p", "", "profile to use instead of the catalog's current one")
	flags.StringVar(&deps.flags.ConfigFile, "config", "", "path to the profile catalog")
	flags.StringVarP(&deps.flags.Output, "output", "o", "", "output format, json or yaml")
	flags.StringVarP(&deps.flags.Query, "query", "q", "", "jq expression applied to the output")
	flags.BoolVarP(&deps.flags.Verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVarP(&deps.flags.Yes, "yes", "y", false, "skip confirmation prompts")

	root.AddCommand(
		newProfileCommand(deps),
		newSubscriptionCommand(deps),
		newWebAppCommand(deps),
		newPostgresCommand(deps),
		newServiceBusCommand(deps),
	)
	return root
}

// logger builds the command logger: silent by default, slog text on stderr
// with --verbose.
func (d *Dependencies) logger() logr.Logger {
	if d.Bootstrap.Logger.GetSink() != nil {
		return d.Bootstrap.Logger
	}
	if !d.flags.Verbose {
		return logr.Discard()
	}
	handler := slog.NewTextHandler(stderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
	return logr.FromSlogHandler(handler)
}
