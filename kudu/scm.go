package kudu

import (
	"strings"

	"github.com/armkit/armkit/faults"
)

// SCMHost derives the sidecar endpoint from a resource's default hostname:
// "myapp.azurewebsites.net" becomes "https://myapp.scm.azurewebsites.net".
func SCMHost(hostname string) (string, error) {
	host := strings.TrimSpace(hostname)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimSuffix(host, "/")

	name, rest, ok := strings.Cut(host, ".")
	if !ok || name == "" || rest == "" {
		return "", faults.Configurationf("hostname %q cannot be rewritten to its scm form", hostname)
	}
	if strings.HasPrefix(rest, "scm.") {
		return "https://" + host, nil
	}
	return "https://" + name + ".scm." + rest, nil
}
