package kudu

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/armkit/armkit/faults"
)

type fakeTransport struct {
	requests []*http.Request
	bodies   []string
	respond  func(req *http.Request) *http.Response
}

func (t *fakeTransport) Do(req *http.Request) (*http.Response, error) {
	body := ""
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		body = string(raw)
	}
	t.requests = append(t.requests, req)
	t.bodies = append(t.bodies, body)
	return t.respond(req), nil
}

func respondWith(status int, body string) func(*http.Request) *http.Response {
	return func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}
	}
}

func newTestClient(t *testing.T, transport *fakeTransport) *Client {
	t.Helper()
	client, err := NewClient("https://myapp.scm.azurewebsites.net", "myapp",
		StaticCredentials{Username: "$myapp", Password: "hunter2"},
		&Options{ClientOptions: azcore.ClientOptions{Transport: transport}})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestSCMHost(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		hostname string
		want     string
		wantErr  bool
	}{
		{name: "default hostname", hostname: "myapp.azurewebsites.net", want: "https://myapp.scm.azurewebsites.net"},
		{name: "already scm form", hostname: "myapp.scm.azurewebsites.net", want: "https://myapp.scm.azurewebsites.net"},
		{name: "scheme and trailing slash", hostname: "https://myapp.azurewebsites.net/", want: "https://myapp.scm.azurewebsites.net"},
		{name: "no domain", hostname: "myapp", wantErr: true},
		{name: "blank", hostname: "  ", wantErr: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			got, err := SCMHost(testCase.hostname)
			if testCase.wantErr {
				if !faults.IsCategory(err, faults.ConfigurationError) {
					t.Fatalf("expected configuration fault, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SCMHost(%q): %v", testCase.hostname, err)
			}
			if got != testCase.want {
				t.Fatalf("SCMHost(%q) = %q, want %q", testCase.hostname, got, testCase.want)
			}
		})
	}
}

func TestListFilesFiltersTraceArtifact(t *testing.T) {
	t.Parallel()

	listing := `[
		{"name": "app.log", "size": 128, "mime": "text/plain", "href": "https://x/api/vfs/LogFiles/app.log"},
		{"name": "LogFiles-kudu-trace_pending.xml", "size": 4, "mime": "text/xml", "href": "https://x/api/vfs/LogFiles/LogFiles-kudu-trace_pending.xml"},
		{"name": "eventlog.xml", "size": 64, "mime": "text/xml", "href": "https://x/api/vfs/LogFiles/eventlog.xml"}
	]`
	transport := &fakeTransport{respond: respondWith(http.StatusOK, listing)}
	client := newTestClient(t, transport)

	files, err := client.ListFilesInDirectory(context.Background(), "LogFiles")
	if err != nil {
		t.Fatalf("ListFilesInDirectory: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2 (trace artifact must be filtered)", len(files))
	}
	if files[0].Path != "LogFiles/app.log" || files[1].Path != "LogFiles/eventlog.xml" {
		t.Fatalf("unexpected paths: %q, %q", files[0].Path, files[1].Path)
	}
	for _, file := range files {
		if file.Resource != "myapp" {
			t.Fatalf("file %q not annotated with its owner", file.Name)
		}
	}

	req := transport.requests[0]
	if got := req.URL.String(); got != "https://myapp.scm.azurewebsites.net/api/vfs/LogFiles/" {
		t.Fatalf("directory listing URL = %q", got)
	}
	if user, pass, ok := req.BasicAuth(); !ok || user != "$myapp" || pass != "hunter2" {
		t.Fatal("request must carry the publishing credentials as basic auth")
	}
	if req.Header.Get("x-ms-client-request-id") == "" {
		t.Fatal("request must carry a client request id")
	}
}

func TestGetFileByPath(t *testing.T) {
	t.Parallel()

	listing := `[
		{"name": "app.log", "size": 128, "mime": "text/plain"},
		{"name": "other.log", "size": 1, "mime": "text/plain"}
	]`
	transport := &fakeTransport{respond: respondWith(http.StatusOK, listing)}
	client := newTestClient(t, transport)

	file, err := client.GetFileByPath(context.Background(), "LogFiles/app.log")
	if err != nil {
		t.Fatalf("GetFileByPath: %v", err)
	}
	if file == nil || file.Path != "LogFiles/app.log" {
		t.Fatalf("unexpected match: %+v", file)
	}

	missing, err := client.GetFileByPath(context.Background(), "LogFiles/nope.log")
	if err != nil {
		t.Fatalf("GetFileByPath for absent file: %v", err)
	}
	if missing != nil {
		t.Fatalf("absent file must yield nil, got %+v", missing)
	}
}

func TestGetFileContent(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{respond: respondWith(http.StatusOK, "hello from the log")}
	client := newTestClient(t, transport)

	content, err := client.GetFileContent(context.Background(), "LogFiles/app.log")
	if err != nil {
		t.Fatalf("GetFileContent: %v", err)
	}
	if string(content) != "hello from the log" {
		t.Fatalf("content = %q", content)
	}
	if got := transport.requests[0].URL.Path; got != "/api/vfs/LogFiles/app.log" {
		t.Fatalf("file URL path = %q", got)
	}
}

func TestGetFileContentSurfacesStatusCode(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{respond: respondWith(http.StatusNotFound, `{"Message":"not found"}`)}
	client := newTestClient(t, transport)

	_, err := client.GetFileContent(context.Background(), "LogFiles/nope.log")
	if !faults.IsCategory(err, faults.RemoteOperationError) {
		t.Fatalf("expected remote operation fault, got %v", err)
	}
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) || respErr.StatusCode != http.StatusNotFound {
		t.Fatalf("status code must survive wrapping, got %v", err)
	}
}

func TestUploadFileOverwritesUnconditionally(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{respond: respondWith(http.StatusCreated, "")}
	client := newTestClient(t, transport)

	if err := client.UploadFile(context.Background(), "site/wwwroot/app.jar", []byte("payload")); err != nil {
		t.Fatalf("UploadFile: %v", err)
	}

	req := transport.requests[0]
	if req.Method != http.MethodPut {
		t.Fatalf("method = %s, want PUT", req.Method)
	}
	if req.Header.Get("If-Match") != "*" {
		t.Fatal("upload must be an unconditional overwrite")
	}
	if transport.bodies[0] != "payload" {
		t.Fatalf("body = %q", transport.bodies[0])
	}
}

func TestDeleteFileSetsIfMatch(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{respond: respondWith(http.StatusOK, "")}
	client := newTestClient(t, transport)

	if err := client.DeleteFile(context.Background(), "site/wwwroot/old.jar"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	req := transport.requests[0]
	if req.Method != http.MethodDelete || req.Header.Get("If-Match") != "*" {
		t.Fatalf("unexpected delete request: %s, If-Match=%q", req.Method, req.Header.Get("If-Match"))
	}
}

func TestExecuteCommand(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{respond: respondWith(http.StatusOK, `{"Output":"total 0\n","Error":"","ExitCode":0}`)}
	client := newTestClient(t, transport)

	output, err := client.ExecuteCommand(context.Background(), "ls -l", "/home/site/wwwroot")
	if err != nil {
		t.Fatalf("ExecuteCommand: %v", err)
	}
	if output.Output != "total 0\n" || output.ExitCode != 0 {
		t.Fatalf("unexpected output: %+v", output)
	}

	var body struct {
		Command string `json:"command"`
		Dir     string `json:"dir"`
	}
	if err := json.Unmarshal([]byte(transport.bodies[0]), &body); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if body.Command != "ls -l" || body.Dir != "/home/site/wwwroot" {
		t.Fatalf("unexpected request body: %+v", body)
	}
}

func TestGetTunnelStatus(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{respond: respondWith(http.StatusOK, `{"state":"Started","port":2222,"canReachPort":true,"msg":"ok"}`)}
	client := newTestClient(t, transport)

	status, err := client.GetTunnelStatus(context.Background())
	if err != nil {
		t.Fatalf("GetTunnelStatus: %v", err)
	}
	if status.State != "Started" || status.Port != 2222 || !status.CanReachPort {
		t.Fatalf("unexpected status: %+v", status)
	}

	req := transport.requests[0]
	if req.URL.Path != "/AppServiceTunnel/Tunnel.ashx" || req.URL.RawQuery != "GetStatus&GetStatusAPIVer=2" {
		t.Fatalf("tunnel URL = %q", req.URL.String())
	}
}
