package kudu

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"

	"github.com/armkit/armkit/faults"
)

const (
	moduleName    = "github.com/armkit/armkit/kudu"
	moduleVersion = "v0.1.0"

	// The sidecar keeps a pending trace artifact in every LogFiles listing;
	// it is an implementation detail, not a user file.
	traceArtifactName = "LogFiles-kudu-trace_pending.xml"
	traceArtifactMime = "text/xml"
)

// Options configures the client's transport pipeline.
type Options struct {
	azcore.ClientOptions
}

// Client is a synchronous facade over the sidecar's REST surface. It does no
// retrying of its own; reliability belongs to the pipeline underneath. Every
// call blocks until the remote responds.
type Client struct {
	endpoint string
	resource string
	pl       runtime.Pipeline
}

// NewClient builds a client for the sidecar endpoint (see SCMHost). The
// resource name annotates returned file descriptors with their owner.
func NewClient(endpoint, resource string, provider CredentialsProvider, opts *Options) (*Client, error) {
	if !strings.HasPrefix(endpoint, "https://") && !strings.HasPrefix(endpoint, "http://") {
		return nil, faults.Configurationf("sidecar endpoint %q must be an absolute URL", endpoint)
	}
	if provider == nil {
		return nil, faults.Configurationf("sidecar client requires a credentials provider")
	}
	if opts == nil {
		opts = &Options{}
	}

	pl := runtime.NewPipeline(moduleName, moduleVersion, runtime.PipelineOptions{
		PerCall:  []policy.Policy{requestIDPolicy{}},
		PerRetry: []policy.Policy{&basicAuthPolicy{provider: provider}},
	}, &opts.ClientOptions)

	return &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		resource: resource,
		pl:       pl,
	}, nil
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// GetFileContent reads the whole file into memory.
func (c *Client) GetFileContent(ctx context.Context, filePath string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, c.vfsURL(filePath, false), nil, http.StatusOK)
	if err != nil {
		return nil, faults.WrapRemote(err, "reading file %q", filePath)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, faults.WrapRemote(err, "reading file %q", filePath)
	}
	return content, nil
}

// ListFilesInDirectory lists one directory. The sidecar's pending trace
// artifact is filtered out; every entry carries its owning resource and its
// full path within the remote file system.
func (c *Client) ListFilesInDirectory(ctx context.Context, dir string) ([]FileInfo, error) {
	resp, err := c.do(ctx, http.MethodGet, c.vfsURL(dir, true), nil, http.StatusOK)
	if err != nil {
		return nil, faults.WrapRemote(err, "listing directory %q", dir)
	}

	var entries []FileInfo
	if err := runtime.UnmarshalAsJSON(resp, &entries); err != nil {
		return nil, faults.WrapRemote(err, "listing directory %q", dir)
	}

	files := entries[:0]
	for _, entry := range entries {
		if entry.Name == traceArtifactName && entry.Mime == traceArtifactMime {
			continue
		}
		entry.Resource = c.resource
		entry.Path = path.Join(dir, entry.Name)
		files = append(files, entry)
	}
	return files, nil
}

// GetFileByPath lists the parent directory and matches on name. A missing
// file is an absent result, not an error.
func (c *Client) GetFileByPath(ctx context.Context, filePath string) (*FileInfo, error) {
	dir, name := path.Split(filePath)
	files, err := c.ListFilesInDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}
	for i := range files {
		if files[i].Name == name {
			return &files[i], nil
		}
	}
	return nil, nil
}

// UploadFile overwrites the remote file unconditionally.
func (c *Client) UploadFile(ctx context.Context, filePath string, content []byte) error {
	resp, err := c.do(ctx, http.MethodPut, c.vfsURL(filePath, false), func(req *policy.Request) error {
		req.Raw().Header.Set("If-Match", "*")
		return req.SetBody(streaming.NopCloser(bytes.NewReader(content)), "application/octet-stream")
	}, http.StatusOK, http.StatusCreated, http.StatusNoContent)
	if err != nil {
		return faults.WrapRemote(err, "uploading file %q", filePath)
	}
	resp.Body.Close()
	return nil
}

func (c *Client) CreateDirectory(ctx context.Context, dir string) error {
	resp, err := c.do(ctx, http.MethodPut, c.vfsURL(dir, true), nil, http.StatusOK, http.StatusCreated, http.StatusNoContent)
	if err != nil {
		return faults.WrapRemote(err, "creating directory %q", dir)
	}
	resp.Body.Close()
	return nil
}

func (c *Client) DeleteFile(ctx context.Context, filePath string) error {
	resp, err := c.do(ctx, http.MethodDelete, c.vfsURL(filePath, false), func(req *policy.Request) error {
		req.Raw().Header.Set("If-Match", "*")
		return nil
	}, http.StatusOK, http.StatusNoContent)
	if err != nil {
		return faults.WrapRemote(err, "deleting file %q", filePath)
	}
	resp.Body.Close()
	return nil
}

func (c *Client) ListProcesses(ctx context.Context) ([]ProcessInfo, error) {
	resp, err := c.do(ctx, http.MethodGet, c.endpoint+"/api/processes", nil, http.StatusOK)
	if err != nil {
		return nil, faults.WrapRemote(err, "listing processes")
	}

	var processes []ProcessInfo
	if err := runtime.UnmarshalAsJSON(resp, &processes); err != nil {
		return nil, faults.WrapRemote(err, "listing processes")
	}
	return processes, nil
}

// ExecuteCommand runs one shell command in the given working directory and
// returns the response envelope. A non-zero remote exit code is reported in
// the envelope, not as an error.
func (c *Client) ExecuteCommand(ctx context.Context, command, workingDir string) (*CommandOutput, error) {
	body := struct {
		Command string `json:"command"`
		Dir     string `json:"dir"`
	}{Command: command, Dir: workingDir}

	resp, err := c.do(ctx, http.MethodPost, c.endpoint+"/api/command", func(req *policy.Request) error {
		return runtime.MarshalAsJSON(req, body)
	}, http.StatusOK)
	if err != nil {
		return nil, faults.WrapRemote(err, "executing command %q", command)
	}

	output := &CommandOutput{}
	if err := runtime.UnmarshalAsJSON(resp, output); err != nil {
		return nil, faults.WrapRemote(err, "executing command %q", command)
	}
	return output, nil
}

// GetTunnelStatus queries the legacy tunnel status endpoint.
func (c *Client) GetTunnelStatus(ctx context.Context) (*TunnelStatus, error) {
	resp, err := c.do(ctx, http.MethodGet, c.endpoint+"/AppServiceTunnel/Tunnel.ashx", func(req *policy.Request) error {
		req.Raw().URL.RawQuery = "GetStatus&GetStatusAPIVer=2"
		return nil
	}, http.StatusOK)
	if err != nil {
		return nil, faults.WrapRemote(err, "querying tunnel status")
	}

	status := &TunnelStatus{}
	if err := runtime.UnmarshalAsJSON(resp, status); err != nil {
		return nil, faults.WrapRemote(err, "querying tunnel status")
	}
	return status, nil
}

func (c *Client) do(ctx context.Context, method, url string, prepare func(*policy.Request) error, okCodes ...int) (*http.Response, error) {
	req, err := runtime.NewRequest(ctx, method, url)
	if err != nil {
		return nil, err
	}
	if prepare != nil {
		if err := prepare(req); err != nil {
			return nil, err
		}
	}

	resp, err := c.pl.Do(req)
	if err != nil {
		return nil, err
	}
	if !runtime.HasStatusCode(resp, okCodes...) {
		return nil, runtime.NewResponseError(resp)
	}
	return resp, nil
}

// vfsURL escapes each path segment individually so names with spaces or
// reserved characters survive; a trailing slash selects directory semantics.
func (c *Client) vfsURL(p string, dir bool) string {
	trimmed := strings.Trim(p, "/")
	u := c.endpoint + "/api/vfs/"
	if trimmed != "" {
		segments := strings.Split(trimmed, "/")
		for i := range segments {
			segments[i] = url.PathEscape(segments[i])
		}
		u += strings.Join(segments, "/")
		if dir {
			u += "/"
		}
	}
	return u
}
