package azure

import (
	"net/http"

	"github.com/armkit/armkit/faults"
)

// IsNotFound reports whether err is the provider saying the resource does
// not exist. Backends use it to turn 404 responses into absent results.
func IsNotFound(err error) bool {
	code, ok := faults.StatusCode(err)
	return ok && code == http.StatusNotFound
}
