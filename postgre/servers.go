// Package postgre adapts PostgreSQL flexible servers to the module framework.
package postgre

import (
	"context"
	"sort"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/postgresql/armpostgresqlflexibleservers/v4"
	"github.com/Masterminds/semver/v3"

	"github.com/armkit/armkit/azure"
	"github.com/armkit/armkit/faults"
	"github.com/armkit/armkit/module"
	"github.com/armkit/armkit/resource"
)

// Server is the raw flexible-server shape handled by this adapter.
type Server = armpostgresqlflexibleservers.Server

// Service is the PostgreSQL root.
type Service struct {
	session *azure.Session
}

func New(session *azure.Session) *Service {
	return &Service{session: session}
}

// Servers builds the flexible-server module of one subscription.
func (s *Service) Servers(subscription string) (*module.Module[Server], error) {
	if subscription == "" {
		return nil, faults.Configurationf("postgres server module requires a subscription")
	}
	client, err := armpostgresqlflexibleservers.NewServersClient(subscription, s.session.Credential(), s.session.ClientOptions())
	if err != nil {
		return nil, faults.Configurationf("building postgres servers client: %v", err)
	}

	backend := &serverBackend{client: client, pageSize: s.session.PageSize()}
	parent := resource.NewID(subscription, "", nil, "")
	return module.New[Server](parent, backend, module.Options[Server]{
		RequireResourceGroup: true,
		Capabilities:         module.NewCapabilities(module.Deletable, module.Updatable),
		Logger:               s.session.Logger(),
		Metrics:              s.session.Metrics(),
	}), nil
}

// SupportedVersions lists the server versions this adapter can provision,
// newest first.
func SupportedVersions() []string {
	versions := make([]string, 0)
	for _, version := range armpostgresqlflexibleservers.PossibleServerVersionValues() {
		versions = append(versions, string(version))
	}
	sort.Slice(versions, func(i, j int) bool {
		left, leftErr := semver.NewVersion(versions[i])
		right, rightErr := semver.NewVersion(versions[j])
		if leftErr != nil || rightErr != nil {
			return versions[i] > versions[j]
		}
		return left.GreaterThan(right)
	})
	return versions
}

type serverBackend struct {
	client   *armpostgresqlflexibleservers.ServersClient
	pageSize int
}

func (b *serverBackend) ModuleName() string { return "Microsoft.DBforPostgreSQL/flexibleServers" }

func (b *serverBackend) Resolved() bool { return true }

func (b *serverBackend) LoadPages(ctx context.Context) module.PageIterator[Server] {
	pager := b.client.NewListPager(nil)
	return azure.Pages(pager, func(resp armpostgresqlflexibleservers.ServersClientListResponse) []*Server {
		return resp.Value
	}, b.pageSize)
}

func (b *serverBackend) Load(ctx context.Context, name, resourceGroup string) (*Server, error) {
	resp, err := b.client.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		if azure.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &resp.Server, nil
}

func (b *serverBackend) Delete(ctx context.Context, id resource.ID) error {
	poller, err := b.client.BeginDelete(ctx, id.ResourceGroup, id.Name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (b *serverBackend) Create(ctx context.Context, name, resourceGroup string, fields resource.FieldBag) (*Server, error) {
	server, err := serverFromFields(fields)
	if err != nil {
		return nil, err
	}
	poller, err := b.client.BeginCreate(ctx, resourceGroup, name, server, nil)
	if err != nil {
		return nil, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Server, nil
}

func (b *serverBackend) Update(ctx context.Context, origin *Server, fields resource.FieldBag) (*Server, error) {
	ref := b.Describe(origin)
	update := updateFromFields(fields)
	poller, err := b.client.BeginUpdate(ctx, ref.ResourceGroup, ref.Name, update, nil)
	if err != nil {
		return nil, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Server, nil
}

// Describe recovers the resource group from the server's ARM id; the listing
// shape does not carry it as a property.
func (b *serverBackend) Describe(raw *Server) module.Ref {
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

func serverFromFields(fields resource.FieldBag) (Server, error) {
	server := Server{Properties: &armpostgresqlflexibleservers.ServerProperties{}}

	location, ok := fields.String("location")
	if !ok {
		return server, faults.Configurationf("postgres server drafts require a location field")
	}
	server.Location = to.Ptr(location)

	if login, ok := fields.String("administratorLogin"); ok {
		server.Properties.AdministratorLogin = to.Ptr(login)
	}
	if password, ok := fields.String("administratorLoginPassword"); ok {
		server.Properties.AdministratorLoginPassword = to.Ptr(password)
	}
	if version, ok := fields.String("version"); ok {
		server.Properties.Version = to.Ptr(armpostgresqlflexibleservers.ServerVersion(version))
	}
	if size, ok := fields["storageSizeGb"].(int); ok {
		server.Properties.Storage = &armpostgresqlflexibleservers.Storage{StorageSizeGB: to.Ptr(int32(size))}
	}
	if skuName, ok := fields.String("skuName"); ok {
		server.SKU = &armpostgresqlflexibleservers.SKU{Name: to.Ptr(skuName)}
		if tier, ok := fields.String("skuTier"); ok {
			server.SKU.Tier = to.Ptr(armpostgresqlflexibleservers.SKUTier(tier))
		}
	}
	return server, nil
}

func updateFromFields(fields resource.FieldBag) armpostgresqlflexibleservers.ServerForUpdate {
	update := armpostgresqlflexibleservers.ServerForUpdate{
		Properties: &armpostgresqlflexibleservers.ServerPropertiesForUpdate{},
	}
	if password, ok := fields.String("administratorLoginPassword"); ok {
		update.Properties.AdministratorLoginPassword = to.Ptr(password)
	}
	if version, ok := fields.String("version"); ok {
		update.Properties.Version = to.Ptr(armpostgresqlflexibleservers.ServerVersion(version))
	}
	if size, ok := fields["storageSizeGb"].(int); ok {
		update.Properties.Storage = &armpostgresqlflexibleservers.Storage{StorageSizeGB: to.Ptr(int32(size))}
	}
	if skuName, ok := fields.String("skuName"); ok {
		update.SKU = &armpostgresqlflexibleservers.SKU{Name: to.Ptr(skuName)}
		if tier, ok := fields.String("skuTier"); ok {
			update.SKU.Tier = to.Ptr(armpostgresqlflexibleservers.SKUTier(tier))
		}
	}
	return update
}
