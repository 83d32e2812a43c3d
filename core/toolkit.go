package core

import (
	"github.com/armkit/armkit/appservice"
	"github.com/armkit/armkit/azure"
	"github.com/armkit/armkit/config"
	"github.com/armkit/armkit/module"
	"github.com/armkit/armkit/postgre"
	"github.com/armkit/armkit/servicebus"
)

// NewToolkit resolves the profile and wires the session and service roots.
func NewToolkit(opts BootstrapConfig) (*Toolkit, error) {
	configService := &config.Service{Path: opts.ConfigFilePath}
	profile, err := configService.Current(opts.ProfileName)
	if err != nil {
		return nil, err
	}

	session, err := azure.NewSession(azure.SessionOptions{
		Credential:        opts.Credential,
		ClientOptions:     opts.ClientOptions,
		RequestsPerSecond: profile.Preferences.RequestsPerSecond,
		PageSize:          profile.Preferences.PageSize,
		MetricsRegisterer: opts.MetricsRegisterer,
		Logger:            opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Toolkit{
		Profile:    profile,
		Config:     configService,
		Session:    session,
		AppService: appservice.New(session),
		Postgres:   postgre.New(session),
		ServiceBus: servicebus.New(session),
	}, nil
}

// Subscriptions is the root module of the toolkit's resource tree.
func (t *Toolkit) Subscriptions() (*module.Module[azure.Subscription], error) {
	return t.Session.Subscriptions()
}

// WebApps builds the web-app module of the profile's subscription.
func (t *Toolkit) WebApps() (*appservice.WebAppModule, error) {
	return t.AppService.WebApps(t.Profile.Subscription)
}

// PostgresServers builds the flexible-server module of the profile's
// subscription.
func (t *Toolkit) PostgresServers() (*module.Module[postgre.Server], error) {
	return t.Postgres.Servers(t.Profile.Subscription)
}

// ServiceBusNamespaces builds the namespace module of the profile's
// subscription.
func (t *Toolkit) ServiceBusNamespaces() (*module.Module[servicebus.Namespace], error) {
	return t.ServiceBus.Namespaces(t.Profile.Subscription)
}
