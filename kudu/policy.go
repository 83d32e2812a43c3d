package kudu

import (
	"context"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/google/uuid"
)

// Credentials are the sidecar's basic-auth publishing credentials.
type Credentials struct {
	Username string
	Password string
}

// CredentialsProvider hands out publishing credentials for the pipeline's
// auth policy. Implementations may fetch them lazily from the control plane.
type CredentialsProvider interface {
	BasicCredentials(ctx context.Context) (Credentials, error)
}

// StaticCredentials is a CredentialsProvider over fixed credentials.
type StaticCredentials Credentials

func (c StaticCredentials) BasicCredentials(context.Context) (Credentials, error) {
	return Credentials(c), nil
}

type basicAuthPolicy struct {
	provider CredentialsProvider
}

func (p *basicAuthPolicy) Do(req *policy.Request) (*http.Response, error) {
	creds, err := p.provider.BasicCredentials(req.Raw().Context())
	if err != nil {
		return nil, err
	}
	req.Raw().SetBasicAuth(creds.Username, creds.Password)
	return req.Next()
}

type requestIDPolicy struct{}

func (requestIDPolicy) Do(req *policy.Request) (*http.Response, error) {
	const header = "x-ms-client-request-id"
	if req.Raw().Header.Get(header) == "" {
		req.Raw().Header.Set(header, uuid.NewString())
	}
	return req.Next()
}
