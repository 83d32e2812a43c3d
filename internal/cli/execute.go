package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/armkit/armkit/core"
	"github.com/armkit/armkit/faults"
)

// Dependencies carries everything the command tree needs. The toolkit is
// built lazily so catalog-only commands work without a resolvable profile.
type Dependencies struct {
	Bootstrap core.BootstrapConfig

	// Toolkit short-circuits bootstrap, e.g. in tests.
	Toolkit *core.Toolkit

	flags globalFlags
}

func Execute(deps *Dependencies) error {
	root := NewRootCommand(deps)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(root.ErrOrStderr(), strings.TrimSpace(err.Error()))
		return err
	}
	return nil
}

// ExitCodeForError maps fault categories onto stable process exit codes.
func ExitCodeForError(err error) int {
	if err == nil {
		return 0
	}

	var typedErr *faults.TypedError
	if !errors.As(err, &typedErr) {
		return 1
	}

	switch typedErr.Category {
	case faults.ConfigurationError:
		return 2
	case faults.NotFoundError:
		return 3
	case faults.RemoteOperationError:
		return 4
	case faults.InvariantViolation:
		return 5
	default:
		return 1
	}
}

func (d *Dependencies) toolkit() (*core.Toolkit, error) {
	if d.Toolkit != nil {
		return d.Toolkit, nil
	}

	bootstrap := d.Bootstrap
	if d.flags.ConfigFile != "" {
		bootstrap.ConfigFilePath = d.flags.ConfigFile
	}
	if d.flags.Profile != "" {
		bootstrap.ProfileName = d.flags.Profile
	}
	bootstrap.Logger = d.logger()
	toolkit, err := core.NewToolkit(bootstrap)
	if err != nil {
		return nil, err
	}
	d.Toolkit = toolkit
	return toolkit, nil
}
