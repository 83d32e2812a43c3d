package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"

	"github.com/armkit/armkit/faults"
	"github.com/armkit/armkit/module"
	"github.com/armkit/armkit/resource"
)

// Subscription is the raw listing entry of the subscription root module.
type Subscription = armsubscriptions.Subscription

// Subscriptions builds the root module: the read-only listing of
// subscriptions visible to the session's credential. Every service root
// hangs its per-subscription modules off these entities.
func (s *Session) Subscriptions() (*module.Module[Subscription], error) {
	client, err := armsubscriptions.NewClient(s.cred, s.ClientOptions())
	if err != nil {
		return nil, faults.Configurationf("building subscriptions client: %v", err)
	}

	backend := &subscriptionBackend{client: client, pageSize: s.pageSize}
	return module.New[Subscription](resource.ID{}, backend, module.Options[Subscription]{
		IDFor: func(ref module.Ref) resource.ID {
			return resource.ID{Subscription: ref.Name}
		},
		Logger:  s.log,
		Metrics: s.metrics,
	}), nil
}

type subscriptionBackend struct {
	client   *armsubscriptions.Client
	pageSize int
}

func (b *subscriptionBackend) ModuleName() string { return "subscriptions" }

func (b *subscriptionBackend) Resolved() bool { return true }

func (b *subscriptionBackend) LoadPages(ctx context.Context) module.PageIterator[Subscription] {
	pager := b.client.NewListPager(nil)
	return Pages(pager, func(resp armsubscriptions.ClientListResponse) []*Subscription {
		return resp.Value
	}, b.pageSize)
}

func (b *subscriptionBackend) Load(ctx context.Context, name, resourceGroup string) (*Subscription, error) {
	resp, err := b.client.Get(ctx, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &resp.Subscription, nil
}

func (b *subscriptionBackend) Delete(ctx context.Context, id resource.ID) error {
	return faults.Invariantf("subscriptions cannot be deleted through this toolkit")
}

func (b *subscriptionBackend) Create(ctx context.Context, name, resourceGroup string, fields resource.FieldBag) (*Subscription, error) {
	return nil, faults.Invariantf("subscriptions cannot be created through this toolkit")
}

func (b *subscriptionBackend) Update(ctx context.Context, origin *Subscription, fields resource.FieldBag) (*Subscription, error) {
	return nil, faults.Invariantf("subscriptions cannot be updated through this toolkit")
}

func (b *subscriptionBackend) Describe(raw *Subscription) module.Ref {
	if raw == nil || raw.SubscriptionID == nil {
		return module.Ref{}
	}
	return module.Ref{Name: *raw.SubscriptionID}
}
