package faults

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

func TestStatusCode(t *testing.T) {
	t.Parallel()

	respErr := &azcore.ResponseError{StatusCode: http.StatusConflict}
	wrapped := WrapRemote(respErr, "committing draft")

	code, ok := StatusCode(wrapped)
	if !ok || code != http.StatusConflict {
		t.Fatalf("StatusCode = (%d, %v), want (409, true)", code, ok)
	}

	if _, ok := StatusCode(errors.New("boom")); ok {
		t.Fatal("plain errors carry no status code")
	}
	if _, ok := StatusCode(nil); ok {
		t.Fatal("nil carries no status code")
	}
}
