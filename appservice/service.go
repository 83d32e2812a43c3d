// Package appservice adapts the App Service control plane to the module
// framework: web apps with deployment-slot and service-linker submodules,
// slot swapping, and sidecar client construction from publishing credentials.
package appservice

import (
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v2"

	"github.com/armkit/armkit/azure"
	"github.com/armkit/armkit/faults"
)

// Site is the raw web-app shape handled by this adapter's modules.
type Site = armappservice.Site

// Service is the App Service root. One instance per session; per-subscription
// modules are built on demand.
type Service struct {
	session *azure.Session
}

func New(session *azure.Session) *Service {
	return &Service{session: session}
}

// WebApps builds the web-app module of one subscription.
func (s *Service) WebApps(subscription string) (*WebAppModule, error) {
	if subscription == "" {
		return nil, faults.Configurationf("web app module requires a subscription")
	}
	client, err := armappservice.NewWebAppsClient(subscription, s.session.Credential(), s.session.ClientOptions())
	if err != nil {
		return nil, faults.Configurationf("building web apps client: %v", err)
	}
	return newWebAppModule(s.session, client, subscription), nil
}
