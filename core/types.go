package core

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/armkit/armkit/appservice"
	"github.com/armkit/armkit/azure"
	"github.com/armkit/armkit/config"
	"github.com/armkit/armkit/postgre"
	"github.com/armkit/armkit/servicebus"
)

// Toolkit is the composition root the CLI consumes: one resolved profile,
// one session, and the service roots built on it.
type Toolkit struct {
	Profile config.Profile
	Config  *config.Service
	Session *azure.Session

	AppService *appservice.Service
	Postgres   *postgre.Service
	ServiceBus *servicebus.Service
}

type BootstrapConfig struct {
	// ConfigFilePath overrides the catalog location; empty falls back to the
	// environment variable, then the home directory default.
	ConfigFilePath string

	// ProfileName selects a profile; empty uses the catalog's current one.
	ProfileName string

	// Credential overrides the default credential chain, e.g. in tests.
	Credential    azcore.TokenCredential
	ClientOptions azcore.ClientOptions

	// MetricsRegisterer receives the session's cache and mutation counters;
	// nil leaves them unregistered.
	MetricsRegisterer prometheus.Registerer

	Logger logr.Logger
}
