// Package servicebus adapts Service Bus namespaces to the module framework.
package servicebus

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/servicebus/armservicebus/v2"

	"github.com/armkit/armkit/azure"
	"github.com/armkit/armkit/faults"
	"github.com/armkit/armkit/module"
	"github.com/armkit/armkit/resource"
)

// Namespace is the raw namespace shape handled by this adapter.
type Namespace = armservicebus.SBNamespace

// Service is the Service Bus root.
type Service struct {
	session *azure.Session
}

func New(session *azure.Session) *Service {
	return &Service{session: session}
}

// Namespaces builds the namespace module of one subscription.
func (s *Service) Namespaces(subscription string) (*module.Module[Namespace], error) {
	if subscription == "" {
		return nil, faults.Configurationf("service bus namespace module requires a subscription")
	}
	client, err := armservicebus.NewNamespacesClient(subscription, s.session.Credential(), s.session.ClientOptions())
	if err != nil {
		return nil, faults.Configurationf("building service bus namespaces client: %v", err)
	}

	backend := &namespaceBackend{client: client, pageSize: s.session.PageSize()}
	parent := resource.NewID(subscription, "", nil, "")
	return module.New[Namespace](parent, backend, module.Options[Namespace]{
		RequireResourceGroup: true,
		Capabilities:         module.NewCapabilities(module.Deletable, module.Updatable),
		Logger:               s.session.Logger(),
		Metrics:              s.session.Metrics(),
	}), nil
}

type namespaceBackend struct {
	client   *armservicebus.NamespacesClient
	pageSize int
}

func (b *namespaceBackend) ModuleName() string { return "Microsoft.ServiceBus/namespaces" }

func (b *namespaceBackend) Resolved() bool { return true }

func (b *namespaceBackend) LoadPages(ctx context.Context) module.PageIterator[Namespace] {
	pager := b.client.NewListPager(nil)
	return azure.Pages(pager, func(resp armservicebus.NamespacesClientListResponse) []*Namespace {
		return resp.Value
	}, b.pageSize)
}

func (b *namespaceBackend) Load(ctx context.Context, name, resourceGroup string) (*Namespace, error) {
	resp, err := b.client.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		if azure.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &resp.SBNamespace, nil
}

func (b *namespaceBackend) Delete(ctx context.Context, id resource.ID) error {
	poller, err := b.client.BeginDelete(ctx, id.ResourceGroup, id.Name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (b *namespaceBackend) Create(ctx context.Context, name, resourceGroup string, fields resource.FieldBag) (*Namespace, error) {
	namespace, err := namespaceFromFields(fields)
	if err != nil {
		return nil, err
	}
	poller, err := b.client.BeginCreateOrUpdate(ctx, resourceGroup, name, namespace, nil)
	if err != nil {
		return nil, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &resp.SBNamespace, nil
}

func (b *namespaceBackend) Update(ctx context.Context, origin *Namespace, fields resource.FieldBag) (*Namespace, error) {
	ref := b.Describe(origin)
	resp, err := b.client.Update(ctx, ref.ResourceGroup, ref.Name, updateFromFields(fields), nil)
	if err != nil {
		return nil, err
	}
	return &resp.SBNamespace, nil
}

func (b *namespaceBackend) Describe(raw *Namespace) module.Ref {
	ref := module.Ref{}
	if raw == nil {
		return ref
	}
	if raw.Name != nil {
		ref.Name = *raw.Name
	}
	if raw.ID != nil {
		if id, err := resource.ParseID(*raw.ID); err == nil {
			ref.ResourceGroup = id.ResourceGroup
		}
	}
	return ref
}

func namespaceFromFields(fields resource.FieldBag) (Namespace, error) {
	namespace := Namespace{}

	location, ok := fields.String("location")
	if !ok {
		return namespace, faults.Configurationf("service bus namespace drafts require a location field")
	}
	namespace.Location = to.Ptr(location)

	if skuName, ok := fields.String("skuName"); ok {
		namespace.SKU = &armservicebus.SBSKU{Name: to.Ptr(armservicebus.SKUName(skuName))}
		if tier, ok := fields.String("skuTier"); ok {
			namespace.SKU.Tier = to.Ptr(armservicebus.SKUTier(tier))
		}
	}
	if tags, ok := fields["tags"].(map[string]string); ok {
		namespace.Tags = map[string]*string{}
		for key, value := range tags {
			namespace.Tags[key] = to.Ptr(value)
		}
	}
	return namespace, nil
}

func updateFromFields(fields resource.FieldBag) armservicebus.SBNamespaceUpdateParameters {
	update := armservicebus.SBNamespaceUpdateParameters{}
	if skuName, ok := fields.String("skuName"); ok {
		update.SKU = &armservicebus.SBSKU{Name: to.Ptr(armservicebus.SKUName(skuName))}
		if tier, ok := fields.String("skuTier"); ok {
			update.SKU.Tier = to.Ptr(armservicebus.SKUTier(tier))
		}
	}
	if tags, ok := fields["tags"].(map[string]string); ok {
		update.Tags = map[string]*string{}
		for key, value := range tags {
			update.Tags[key] = to.Ptr(value)
		}
	}
	return update
}
