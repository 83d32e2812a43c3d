package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/armkit/armkit/kudu"
)

// sidecarFlags are shared by every command that talks to a web app's sidecar.
type sidecarFlags struct {
	resourceGroup string
	username      string
}

func (f *sidecarFlags) bind(command *cobra.Command) {
	addResourceGroupFlag(command.Flags(), &f.resourceGroup, "resource group of the web app")
	command.Flags().StringVar(&f.username, "username", "", "override the publishing user; the password is prompted")
}

// sidecar builds a sidecar client: publishing credentials by default, a
// prompted basic credential when --username is given.
func (d *Dependencies) sidecar(ctx context.Context, app string, flags *sidecarFlags) (*kudu.Client, error) {
	webApps, entity, err := d.webApp(ctx, app, flags.resourceGroup)
	if err != nil {
		return nil, err
	}
	if flags.username == "" {
		return webApps.Kudu(entity)
	}

	password, err := promptPassword("Password for " + flags.username)
	if err != nil {
		return nil, err
	}
	client, err := webApps.Kudu(entity)
	if err != nil {
		return nil, err
	}
	toolkit, err := d.toolkit()
	if err != nil {
		return nil, err
	}
	return kudu.NewClient(client.Endpoint(), app,
		kudu.StaticCredentials{Username: flags.username, Password: password},
		&kudu.Options{ClientOptions: toolkit.Session.ClientOptions().ClientOptions})
}

func newWebAppFilesCommand(deps *Dependencies) *cobra.Command {
	command := &cobra.Command{
		Use:   "files",
		Short: "Browse and edit a web app's remote file system",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
	}
	command.AddCommand(
		newFilesListCommand(deps),
		newFilesCatCommand(deps),
		newFilesPutCommand(deps),
		newFilesMkdirCommand(deps),
		newFilesRemoveCommand(deps),
	)
	return command
}

func newFilesListCommand(deps *Dependencies) *cobra.Command {
	flags := &sidecarFlags{}
	command := &cobra.Command{
		Use:   "ls <app> <dir>",
		Short: "List a remote directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := deps.sidecar(command.Context(), args[0], flags)
			if err != nil {
				return err
			}
			files, err := client.ListFilesInDirectory(command.Context(), args[1])
			if err != nil {
				return err
			}
			return deps.render(command.OutOrStdout(), files)
		},
	}
	flags.bind(command)
	return command
}

func newFilesCatCommand(deps *Dependencies) *cobra.Command {
	flags := &sidecarFlags{}
	command := &cobra.Command{
		Use:   "cat <app> <path>",
		Short: "Print a remote file",
		Args:  cobra.ExactArgs(2),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := deps.sidecar(command.Context(), args[0], flags)
			if err != nil {
				return err
			}
			content, err := client.GetFileContent(command.Context(), args[1])
			if err != nil {
				return err
			}
			_, err = command.OutOrStdout().Write(content)
			return err
		},
	}
	flags.bind(command)
	return command
}

func newFilesPutCommand(deps *Dependencies) *cobra.Command {
	flags := &sidecarFlags{}
	command := &cobra.Command{
		Use:   "put <app> <local> <remote>",
		Short: "Upload a file, overwriting the remote copy",
		Args:  cobra.ExactArgs(3),
		RunE: func(command *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			client, err := deps.sidecar(command.Context(), args[0], flags)
			if err != nil {
				return err
			}
			return client.UploadFile(command.Context(), args[2], content)
		},
	}
	flags.bind(command)
	return command
}

func newFilesMkdirCommand(deps *Dependencies) *cobra.Command {
	flags := &sidecarFlags{}
	command := &cobra.Command{
		Use:   "mkdir <app> <dir>",
		Short: "Create a remote directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := deps.sidecar(command.Context(), args[0], flags)
			if err != nil {
				return err
			}
			return client.CreateDirectory(command.Context(), args[1])
		},
	}
	flags.bind(command)
	return command
}

func newFilesRemoveCommand(deps *Dependencies) *cobra.Command {
	flags := &sidecarFlags{}
	command := &cobra.Command{
		Use:   "rm <app> <path>",
		Short: "Delete a remote file",
		Args:  cobra.ExactArgs(2),
		RunE: func(command *cobra.Command, args []string) error {
			confirmed, err := deps.confirmDelete("remote file", args[1])
			if err != nil {
				return err
			}
			if !confirmed {
				return nil
			}
			client, err := deps.sidecar(command.Context(), args[0], flags)
			if err != nil {
				return err
			}
			return client.DeleteFile(command.Context(), args[1])
		},
	}
	flags.bind(command)
	return command
}

func newWebAppProcessesCommand(deps *Dependencies) *cobra.Command {
	flags := &sidecarFlags{}
	command := &cobra.Command{
		Use:   "processes <app>",
		Short: "List the processes running in a web app",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := deps.sidecar(command.Context(), args[0], flags)
			if err != nil {
				return err
			}
			processes, err := client.ListProcesses(command.Context())
			if err != nil {
				return err
			}
			return deps.render(command.OutOrStdout(), processes)
		},
	}
	flags.bind(command)
	return command
}

func newWebAppExecCommand(deps *Dependencies) *cobra.Command {
	flags := &sidecarFlags{}
	var workingDir string
	command := &cobra.Command{
		Use:   "exec <app> -- <command...>",
		Short: "Run a command inside a web app",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := deps.sidecar(command.Context(), args[0], flags)
			if err != nil {
				return err
			}
			output, err := client.ExecuteCommand(command.Context(), strings.Join(args[1:], " "), workingDir)
			if err != nil {
				return err
			}
			return deps.render(command.OutOrStdout(), output)
		},
	}
	flags.bind(command)
	command.Flags().StringVar(&workingDir, "dir", "site/wwwroot", "remote working directory")
	return command
}

func newWebAppTunnelCommand(deps *Dependencies) *cobra.Command {
	flags := &sidecarFlags{}
	command := &cobra.Command{
		Use:   "tunnel <app>",
		Short: "Show the web app's tunnel status",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			client, err := deps.sidecar(command.Context(), args[0], flags)
			if err != nil {
				return err
			}
			status, err := client.GetTunnelStatus(command.Context())
			if err != nil {
				return err
			}
			return deps.render(command.OutOrStdout(), status)
		},
	}
	flags.bind(command)
	return command
}
