package faults

import (
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// StatusCode surfaces the HTTP status carried by a wrapped transport error.
// The second result is false when no response error is in the chain.
func StatusCode(err error) (int, bool) {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode, true
	}
	return 0, false
}
