package appservice

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v2"

	"github.com/armkit/armkit/azure"
	"github.com/armkit/armkit/faults"
	"github.com/armkit/armkit/kudu"
	"github.com/armkit/armkit/module"
	"github.com/armkit/armkit/resource"
)

// WebAppModule is the web-app module of one subscription, extended with the
// operations the generic framework does not model: slot swapping and sidecar
// client construction.
type WebAppModule struct {
	*module.Module[Site]

	session      *azure.Session
	client       *armappservice.WebAppsClient
	subscription string
}

func newWebAppModule(session *azure.Session, client *armappservice.WebAppsClient, subscription string) *WebAppModule {
	wam := &WebAppModule{
		session:      session,
		client:       client,
		subscription: subscription,
	}

	backend := &webAppBackend{client: client, pageSize: session.PageSize()}
	parent := resource.NewID(subscription, "", nil, "")
	wam.Module = module.New[Site](parent, backend, module.Options[Site]{
		RequireResourceGroup: true,
		Capabilities:         module.NewCapabilities(module.Deletable, module.Updatable, module.HasSubModules, module.ServiceLinked),
		SubModules: func(entity *resource.Entity[Site]) []module.Node {
			return []module.Node{wam.Slots(entity), wam.Linkers(entity)}
		},
		Logger:  session.Logger(),
		Metrics: session.Metrics(),
	})
	return wam
}

// Slots is the deployment-slot submodule of one web app.
func (m *WebAppModule) Slots(parent *resource.Entity[Site]) *module.Module[Site] {
	backend := &slotBackend{
		client:   m.client,
		parent:   parent,
		pageSize: m.session.PageSize(),
	}
	return module.New[Site](parent.ID(), backend, module.Options[Site]{
		Capabilities: module.NewCapabilities(module.Deletable, module.Updatable),
		Logger:       m.session.Logger(),
		Metrics:      m.session.Metrics(),
	})
}

// SwapSlot swaps a deployment slot into production. The entity stays in its
// updating state for the duration of the remote swap.
func (m *WebAppModule) SwapSlot(ctx context.Context, entity *resource.Entity[Site], slot string) error {
	if entity == nil {
		return faults.Invariantf("slot swap requires a web app entity")
	}
	raw, ok := entity.Remote().Value()
	if !ok {
		return faults.Configurationf("cannot swap slots of %q before it is loaded", entity.Name())
	}
	if err := entity.MarkUpdating(resource.FieldBag{"swapSourceSlot": slot}); err != nil {
		return err
	}

	poller, err := m.client.BeginSwapSlotWithProduction(ctx, entity.ResourceGroup(), entity.Name(),
		armappservice.CsmSlotEntity{TargetSlot: to.Ptr(slot), PreserveVnet: to.Ptr(true)}, nil)
	if err == nil {
		_, err = poller.PollUntilDone(ctx, nil)
	}
	if err != nil {
		wrapped := faults.WrapRemote(err, "swapping slot %q into %q", slot, entity.Name())
		_ = entity.MarkError(wrapped)
		return wrapped
	}
	return entity.MarkActive(raw)
}

// Kudu builds the sidecar client of one web app. The endpoint is the scm
// rewrite of the app's default hostname; publishing credentials are fetched
// lazily on the first sidecar call and cached for the client's lifetime.
func (m *WebAppModule) Kudu(entity *resource.Entity[Site]) (*kudu.Client, error) {
	if entity == nil {
		return nil, faults.Invariantf("sidecar client requires a web app entity")
	}
	raw, ok := entity.Remote().Value()
	if !ok {
		return nil, faults.Configurationf("cannot reach the sidecar of %q before it is loaded", entity.Name())
	}
	if raw.Properties == nil || raw.Properties.DefaultHostName == nil {
		return nil, faults.Configurationf("web app %q has no default hostname", entity.Name())
	}

	endpoint, err := kudu.SCMHost(*raw.Properties.DefaultHostName)
	if err != nil {
		return nil, err
	}
	provider := &publishingCredentials{
		client:        m.client,
		resourceGroup: entity.ResourceGroup(),
		site:          entity.Name(),
	}
	return kudu.NewClient(endpoint, entity.Name(), provider, &kudu.Options{
		ClientOptions: m.session.ClientOptions().ClientOptions,
	})
}

type webAppBackend struct {
	client   *armappservice.WebAppsClient
	pageSize int
}

func (b *webAppBackend) ModuleName() string { return "Microsoft.Web/sites" }

func (b *webAppBackend) Resolved() bool { return true }

func (b *webAppBackend) LoadPages(ctx context.Context) module.PageIterator[Site] {
	pager := b.client.NewListPager(nil)
	return azure.Pages(pager, func(resp armappservice.WebAppsClientListResponse) []*Site {
		return resp.Value
	}, b.pageSize)
}

func (b *webAppBackend) Load(ctx context.Context, name, resourceGroup string) (*Site, error) {
	resp, err := b.client.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		if azure.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &resp.Site, nil
}

func (b *webAppBackend) Delete(ctx context.Context, id resource.ID) error {
	_, err := b.client.Delete(ctx, id.ResourceGroup, id.Name, nil)
	return err
}

func (b *webAppBackend) Create(ctx context.Context, name, resourceGroup string, fields resource.FieldBag) (*Site, error) {
	site, err := siteFromFields(Site{}, fields, true)
	if err != nil {
		return nil, err
	}
	poller, err := b.client.BeginCreateOrUpdate(ctx, resourceGroup, name, site, nil)
	if err != nil {
		return nil, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Site, nil
}

func (b *webAppBackend) Update(ctx context.Context, origin *Site, fields resource.FieldBag) (*Site, error) {
	ref := b.Describe(origin)
	site, err := siteFromFields(*origin, fields, false)
	if err != nil {
		return nil, err
	}
	poller, err := b.client.BeginCreateOrUpdate(ctx, ref.ResourceGroup, ref.Name, site, nil)
	if err != nil {
		return nil, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Site, nil
}

func (b *webAppBackend) Describe(raw *Site) module.Ref {
	ref := module.Ref{}
	if raw == nil {
		return ref
	}
	if raw.Name != nil {
		ref.Name = *raw.Name
	}
	if raw.Properties != nil && raw.Properties.ResourceGroup != nil {
		ref.ResourceGroup = *raw.Properties.ResourceGroup
	}
	return ref
}

// siteFromFields maps draft fields onto a site envelope. Creates demand a
// location; updates keep the origin's.
func siteFromFields(site Site, fields resource.FieldBag, creating bool) (Site, error) {
	if location, ok := fields.String("location"); ok {
		site.Location = to.Ptr(location)
	}
	if creating && site.Location == nil {
		return site, faults.Configurationf("web app drafts require a location field")
	}
	if kind, ok := fields.String("kind"); ok {
		site.Kind = to.Ptr(kind)
	}

	if site.Properties == nil {
		site.Properties = &armappservice.SiteProperties{}
	}
	if plan, ok := fields.String("serverFarmId"); ok {
		site.Properties.ServerFarmID = to.Ptr(plan)
	}
	if httpsOnly, ok := fields["httpsOnly"].(bool); ok {
		site.Properties.HTTPSOnly = to.Ptr(httpsOnly)
	}
	if tags, ok := fields["tags"].(map[string]string); ok {
		site.Tags = map[string]*string{}
		for key, value := range tags {
			site.Tags[key] = to.Ptr(value)
		}
	}
	return site, nil
}
