package azure

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	armruntime "github.com/Azure/azure-sdk-for-go/sdk/azcore/arm/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/armkit/armkit/faults"
	"github.com/armkit/armkit/module"
)

// DefaultPageSize is the listing chunk size when the profile does not set one.
const DefaultPageSize = 99

// SessionOptions configures a control-plane session.
type SessionOptions struct {
	// Credential authenticates every client built from the session. Nil
	// falls back to the default environment credential chain.
	Credential azcore.TokenCredential

	// ClientOptions seeds the pipeline options shared by all clients, e.g.
	// a custom transport or cloud configuration.
	ClientOptions azcore.ClientOptions

	// RequestsPerSecond throttles outgoing calls; zero disables throttling.
	RequestsPerSecond float64
	Burst             int

	// PageSize re-chunks remote listings; zero picks DefaultPageSize.
	PageSize int

	// MetricsRegisterer receives the cache and mutation counters shared by
	// every module built from this session. Nil keeps the counters
	// unregistered but still functional.
	MetricsRegisterer prometheus.Registerer

	Logger logr.Logger
}

// Session carries the credential and pipeline configuration every module
// backend needs. One session is shared across all service roots.
type Session struct {
	cred       azcore.TokenCredential
	clientOpts arm.ClientOptions
	pageSize   int
	metrics    *module.Metrics
	log        logr.Logger
}

func NewSession(opts SessionOptions) (*Session, error) {
	cred := opts.Credential
	if cred == nil {
		chain, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, faults.Configurationf("building default credential chain: %v", err)
		}
		cred = chain
	}

	clientOpts := opts.ClientOptions
	if opts.RequestsPerSecond > 0 {
		clientOpts.PerCallPolicies = append(clientOpts.PerCallPolicies,
			newThrottlePolicy(opts.RequestsPerSecond, opts.Burst))
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	return &Session{
		cred:       cred,
		clientOpts: arm.ClientOptions{ClientOptions: clientOpts},
		pageSize:   pageSize,
		metrics:    module.NewMetrics(opts.MetricsRegisterer),
		log:        log,
	}, nil
}

func (s *Session) Credential() azcore.TokenCredential {
	return s.cred
}

// ClientOptions returns a copy so callers cannot mutate the shared pipeline
// configuration.
func (s *Session) ClientOptions() *arm.ClientOptions {
	clientOpts := s.clientOpts
	return &clientOpts
}

func (s *Session) PageSize() int {
	return s.pageSize
}

// Metrics returns the session-wide module instrumentation.
func (s *Session) Metrics() *module.Metrics {
	return s.metrics
}

func (s *Session) Logger() logr.Logger {
	return s.log
}

// Pipeline builds a raw ARM pipeline for providers that have no typed client
// in this toolkit.
func (s *Session) Pipeline(module, version string) (runtime.Pipeline, error) {
	pl, err := armruntime.NewPipeline(module, version, s.cred, runtime.PipelineOptions{}, s.ClientOptions())
	if err != nil {
		return runtime.Pipeline{}, faults.Configurationf("building %s pipeline: %v", module, err)
	}
	return pl, nil
}
