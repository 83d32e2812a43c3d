package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/armkit/armkit/faults"
)

func runCommand(t *testing.T, deps *Dependencies, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(deps)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestProfileCommandsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	deps := &Dependencies{}
	if _, err := runCommand(t, deps, "--config", path,
		"profile", "set", "dev", "--subscription", "sub-1", "--page-size", "25"); err != nil {
		t.Fatalf("profile set: %v", err)
	}

	out, err := runCommand(t, deps, "--config", path, "profile", "show")
	if err != nil {
		t.Fatalf("profile show: %v", err)
	}
	if !strings.Contains(out, "sub-1") || !strings.Contains(out, "dev") {
		t.Fatalf("unexpected show output:\n%s", out)
	}

	if _, err := runCommand(t, deps, "--config", path, "-y", "profile", "delete", "dev"); err != nil {
		t.Fatalf("profile delete: %v", err)
	}
	if _, err := runCommand(t, deps, "--config", path, "profile", "show"); !faults.IsCategory(err, faults.ConfigurationError) {
		t.Fatalf("show after delete = %v, want configuration fault", err)
	}
}

func TestRootRejectsUnknownOutputFormat(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, &Dependencies{}, "-o", "xml", "profile", "list")
	if !faults.IsCategory(err, faults.ConfigurationError) {
		t.Fatalf("expected configuration fault, got %v", err)
	}
}
