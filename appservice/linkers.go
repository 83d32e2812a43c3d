package appservice

import (
	"context"
	"net/http"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	"github.com/armkit/armkit/azure"

	"github.com/armkit/armkit/faults"
	"github.com/armkit/armkit/module"
	"github.com/armkit/armkit/resource"
)

const (
	linkerProvider   = "Microsoft.ServiceLinker/linkers"
	linkerAPIVersion = "2022-05-01"
)

// Linker is one service connection attached to a web app. The provider has
// no typed SDK client in this toolkit, so the shape stays close to the wire.
type Linker struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// Linkers is the service-linker submodule of one web app, served by a plain
// ARM pipeline rather than a generated client.
func (m *WebAppModule) Linkers(parent *resource.Entity[Site]) *module.Module[Linker] {
	backend := &linkerBackend{
		session: m.session,
		parent:  parent,
	}
	return module.New[Linker](parent.ID(), backend, module.Options[Linker]{
		Capabilities: module.NewCapabilities(module.Deletable),
		Logger:       m.session.Logger(),
		Metrics:      m.session.Metrics(),
	})
}

type linkerBackend struct {
	session *azure.Session
	parent  *resource.Entity[Site]

	once sync.Once
	pl   runtime.Pipeline
	err  error
}

func (b *linkerBackend) ModuleName() string { return linkerProvider }

func (b *linkerBackend) Resolved() bool {
	_, ok := b.parent.Remote().Value()
	return ok
}

func (b *linkerBackend) scope() (string, error) {
	raw, ok := b.parent.Remote().Value()
	if !ok || raw.ID == nil {
		return "", faults.Configurationf("web app %q has no resource id yet", b.parent.Name())
	}
	return b.endpoint() + *raw.ID + "/providers/" + linkerProvider, nil
}

func (b *linkerBackend) endpoint() string {
	opts := b.session.ClientOptions()
	if cfg, ok := opts.Cloud.Services[cloud.ResourceManager]; ok && cfg.Endpoint != "" {
		return cfg.Endpoint
	}
	return "https://management.azure.com"
}

func (b *linkerBackend) LoadPages(ctx context.Context) module.PageIterator[Linker] {
	if !b.Resolved() {
		return module.EmptyPages[Linker]()
	}
	scope, err := b.scope()
	if err != nil {
		return module.EmptyPages[Linker]()
	}
	return &linkerPages{backend: b, next: scope + "?api-version=" + linkerAPIVersion}
}

func (b *linkerBackend) Load(ctx context.Context, name, resourceGroup string) (*Linker, error) {
	scope, err := b.scope()
	if err != nil {
		return nil, err
	}
	resp, err := b.do(ctx, http.MethodGet, scope+"/"+name+"?api-version="+linkerAPIVersion)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, nil
	}
	if !runtime.HasStatusCode(resp, http.StatusOK) {
		return nil, runtime.NewResponseError(resp)
	}

	linker := &Linker{}
	if err := runtime.UnmarshalAsJSON(resp, linker); err != nil {
		return nil, err
	}
	return linker, nil
}

func (b *linkerBackend) Delete(ctx context.Context, id resource.ID) error {
	scope, err := b.scope()
	if err != nil {
		return err
	}
	resp, err := b.do(ctx, http.MethodDelete, scope+"/"+id.Name+"?api-version="+linkerAPIVersion)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if !runtime.HasStatusCode(resp, http.StatusOK, http.StatusAccepted, http.StatusNoContent) {
		return runtime.NewResponseError(resp)
	}
	return nil
}

func (b *linkerBackend) Create(ctx context.Context, name, resourceGroup string, fields resource.FieldBag) (*Linker, error) {
	return nil, faults.Invariantf("service linkers are created by the provider tooling, not this toolkit")
}

func (b *linkerBackend) Update(ctx context.Context, origin *Linker, fields resource.FieldBag) (*Linker, error) {
	return nil, faults.Invariantf("service linkers are not updatable through this toolkit")
}

func (b *linkerBackend) Describe(raw *Linker) module.Ref {
	if raw == nil {
		return module.Ref{}
	}
	return module.Ref{Name: raw.Name, ResourceGroup: b.parent.ResourceGroup()}
}

func (b *linkerBackend) do(ctx context.Context, method, url string) (*http.Response, error) {
	b.once.Do(func() {
		b.pl, b.err = b.session.Pipeline("github.com/armkit/armkit/appservice", "v0.1.0")
	})
	if b.err != nil {
		return nil, b.err
	}
	req, err := runtime.NewRequest(ctx, method, url)
	if err != nil {
		return nil, err
	}
	return b.pl.Do(req)
}

type linkerPages struct {
	backend *linkerBackend
	next    string
}

func (p *linkerPages) More() bool {
	return p.next != ""
}

func (p *linkerPages) Next(ctx context.Context) (module.Page[Linker], error) {
	resp, err := p.backend.do(ctx, http.MethodGet, p.next)
	if err != nil {
		return module.Page[Linker]{}, err
	}
	if !runtime.HasStatusCode(resp, http.StatusOK) {
		return module.Page[Linker]{}, runtime.NewResponseError(resp)
	}

	var body struct {
		Value    []Linker `json:"value"`
		NextLink string   `json:"nextLink"`
	}
	if err := runtime.UnmarshalAsJSON(resp, &body); err != nil {
		return module.Page[Linker]{}, err
	}
	p.next = body.NextLink
	return module.Page[Linker]{Items: body.Value}, nil
}
