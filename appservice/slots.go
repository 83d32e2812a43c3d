package appservice

import (
	"context"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v2"

	"github.com/armkit/armkit/azure"
	"github.com/armkit/armkit/module"
	"github.com/armkit/armkit/resource"
)

// slotBackend serves the deployment slots of one web app. The backend stays
// unresolved until the owning web app's remote handle is loaded, so listing
// slots of an unloaded app yields an empty sequence rather than an error.
type slotBackend struct {
	client   *armappservice.WebAppsClient
	parent   *resource.Entity[Site]
	pageSize int
}

func (b *slotBackend) ModuleName() string { return "slots" }

func (b *slotBackend) Resolved() bool {
	_, ok := b.parent.Remote().Value()
	return ok
}

func (b *slotBackend) LoadPages(ctx context.Context) module.PageIterator[Site] {
	if !b.Resolved() {
		return module.EmptyPages[Site]()
	}
	pager := b.client.NewListSlotsPager(b.parent.ResourceGroup(), b.parent.Name(), nil)
	return azure.Pages(pager, func(resp armappservice.WebAppsClientListSlotsResponse) []*Site {
		return resp.Value
	}, b.pageSize)
}

func (b *slotBackend) Load(ctx context.Context, name, resourceGroup string) (*Site, error) {
	resp, err := b.client.GetSlot(ctx, b.parent.ResourceGroup(), b.parent.Name(), name, nil)
	if err != nil {
		if azure.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &resp.Site, nil
}

func (b *slotBackend) Delete(ctx context.Context, id resource.ID) error {
	_, err := b.client.DeleteSlot(ctx, b.parent.ResourceGroup(), b.parent.Name(), id.Name, nil)
	return err
}

func (b *slotBackend) Create(ctx context.Context, name, resourceGroup string, fields resource.FieldBag) (*Site, error) {
	origin, ok := b.parent.Remote().Value()
	if !ok {
		origin = &Site{}
	}
	// A new slot starts from the production site's envelope unless the draft
	// overrides it.
	site, err := siteFromFields(*origin, fields, false)
	if err != nil {
		return nil, err
	}
	poller, err := b.client.BeginCreateOrUpdateSlot(ctx, b.parent.ResourceGroup(), b.parent.Name(), name, site, nil)
	if err != nil {
		return nil, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Site, nil
}

func (b *slotBackend) Update(ctx context.Context, origin *Site, fields resource.FieldBag) (*Site, error) {
	slot := b.Describe(origin).Name
	site, err := siteFromFields(*origin, fields, false)
	if err != nil {
		return nil, err
	}
	poller, err := b.client.BeginCreateOrUpdateSlot(ctx, b.parent.ResourceGroup(), b.parent.Name(), slot, site, nil)
	if err != nil {
		return nil, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Site, nil
}

// Describe strips the "site/" prefix the provider puts on slot names.
func (b *slotBackend) Describe(raw *Site) module.Ref {
	ref := module.Ref{}
	if raw == nil {
		return ref
	}
	if raw.Name != nil {
		ref.Name = *raw.Name
		if _, slot, ok := strings.Cut(ref.Name, "/"); ok {
			ref.Name = slot
		}
	}
	if raw.Properties != nil && raw.Properties.ResourceGroup != nil {
		ref.ResourceGroup = *raw.Properties.ResourceGroup
	}
	return ref
}
