package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/armkit/armkit/faults"
)

type fakeCredential struct{}

func (fakeCredential) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "fake", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestNewToolkitResolvesProfile(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, `
profiles:
  - name: prod
    subscription: 11111111-0000-0000-0000-000000000000
    preferences:
      page-size: 25
current-profile: prod
`)

	toolkit, err := NewToolkit(BootstrapConfig{
		ConfigFilePath: path,
		Credential:     fakeCredential{},
	})
	if err != nil {
		t.Fatalf("NewToolkit: %v", err)
	}
	if toolkit.Profile.Name != "prod" {
		t.Fatalf("profile = %+v", toolkit.Profile)
	}
	if toolkit.Session.PageSize() != 25 {
		t.Fatalf("page size preference not applied: %d", toolkit.Session.PageSize())
	}

	webApps, err := toolkit.WebApps()
	if err != nil {
		t.Fatalf("WebApps: %v", err)
	}
	if webApps.ModuleName() != "Microsoft.Web/sites" {
		t.Fatalf("module name = %q", webApps.ModuleName())
	}
}

func TestNewToolkitWithoutProfileFails(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, "profiles: []\n")
	_, err := NewToolkit(BootstrapConfig{ConfigFilePath: path, Credential: fakeCredential{}})
	if !faults.IsCategory(err, faults.ConfigurationError) {
		t.Fatalf("expected configuration fault, got %v", err)
	}
}

func TestServiceRootsRequireSubscription(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, `
profiles:
  - name: nosub
current-profile: nosub
`)
	toolkit, err := NewToolkit(BootstrapConfig{ConfigFilePath: path, Credential: fakeCredential{}})
	if err != nil {
		t.Fatalf("NewToolkit: %v", err)
	}

	if _, err := toolkit.WebApps(); !faults.IsCategory(err, faults.ConfigurationError) {
		t.Fatalf("expected configuration fault, got %v", err)
	}
	if _, err := toolkit.PostgresServers(); !faults.IsCategory(err, faults.ConfigurationError) {
		t.Fatalf("expected configuration fault, got %v", err)
	}
	if _, err := toolkit.ServiceBusNamespaces(); !faults.IsCategory(err, faults.ConfigurationError) {
		t.Fatalf("expected configuration fault, got %v", err)
	}
}
