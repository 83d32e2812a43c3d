package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// confirmDelete asks before destructive operations; --yes skips the prompt.
func (d *Dependencies) confirmDelete(kind, name string) (bool, error) {
	if d.flags.Yes {
		return true, nil
	}

	confirmed := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete %s %q?", kind, name)).
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// promptPassword reads a secret without echo.
func promptPassword(label string) (string, error) {
	fmt.Fprintf(stderr(), "%s: ", label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(stderr())
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
