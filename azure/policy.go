package azure

import (
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"golang.org/x/time/rate"
)

// throttlePolicy paces outgoing control-plane calls so a busy cache reload
// cannot trip the provider's request quotas.
type throttlePolicy struct {
	limiter *rate.Limiter
}

func newThrottlePolicy(requestsPerSecond float64, burst int) *throttlePolicy {
	if burst <= 0 {
		burst = 1
	}
	return &throttlePolicy{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

func (p *throttlePolicy) Do(req *policy.Request) (*http.Response, error) {
	if err := p.limiter.Wait(req.Raw().Context()); err != nil {
		return nil, err
	}
	return req.Next()
}
