package module

import (
	"context"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"golang.org/x/sync/singleflight"

	"github.com/armkit/armkit/faults"
	"github.com/armkit/armkit/resource"
)

// Options tunes a module for one resource kind.
type Options[R any] struct {
	// RequireResourceGroup rejects lookups and create drafts without a
	// resource group for kinds that live inside one.
	RequireResourceGroup bool

	Capabilities Capabilities

	// SubModules builds the child module instances of one entity, e.g. the
	// deployment-slot module of a web app. Only consulted when the
	// HasSubModules capability is set.
	SubModules func(parent *resource.Entity[R]) []Node

	// IDFor overrides ID composition for kinds that do not follow the
	// parent/provider/name layout, such as subscriptions themselves.
	IDFor func(ref Ref) resource.ID

	Logger  logr.Logger
	Metrics *Metrics
}

// Module manages one kind of resource within a parent scope: a cache of
// entities keyed by normalized ID, populated from the backend's page loader,
// and the draft/commit protocol for mutations.
//
// The cache is shared by all callers. Population is single-flight per
// (module, resource group) scope and all-or-nothing: concurrent callers of
// an uninitialized scope block on one load and observe the same result.
type Module[R any] struct {
	name     string
	parentID resource.ID
	backend  Backend[R]
	opts     Options[R]
	log      logr.Logger

	mu      sync.RWMutex
	entries map[string]*resource.Entity[R]
	order   map[string][]string
	loaded  map[string]bool
	flight  singleflight.Group
}

func New[R any](parentID resource.ID, backend Backend[R], opts Options[R]) *Module[R] {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Module[R]{
		name:     backend.ModuleName(),
		parentID: parentID,
		backend:  backend,
		opts:     opts,
		log:      log.WithValues("module", backend.ModuleName()),
		entries:  map[string]*resource.Entity[R]{},
		order:    map[string][]string{},
		loaded:   map[string]bool{},
	}
}

func (m *Module[R]) ModuleName() string {
	return m.name
}

func (m *Module[R]) ParentID() resource.ID {
	return m.parentID
}

func (m *Module[R]) Capabilities() Capabilities {
	return m.opts.Capabilities
}

// SubModules enumerates the child modules of one entity. The framework never
// cascades operations into submodules; that is the adapter's call.
func (m *Module[R]) SubModules(parent *resource.Entity[R]) []Node {
	if parent == nil || !m.opts.Capabilities.Has(HasSubModules) || m.opts.SubModules == nil {
		return nil
	}
	return m.opts.SubModules(parent)
}

// List returns every cached entity of the given resource group scope, in
// provider page order. An empty resourceGroup lists the whole parent scope.
// The first call per scope drains the backend's page loader synchronously.
func (m *Module[R]) List(ctx context.Context, resourceGroup string) ([]*resource.Entity[R], error) {
	scope := scopeKey(resourceGroup)

	if m.scopeLoaded(scope) {
		m.opts.Metrics.hit(m.name)
		return m.snapshot(scope), nil
	}
	m.opts.Metrics.miss(m.name)

	_, err, _ := m.flight.Do("list:"+scope, func() (any, error) {
		if m.scopeLoaded(scope) {
			return nil, nil
		}
		return nil, m.loadScope(ctx, scope, resourceGroup)
	})
	if err != nil {
		return nil, err
	}
	return m.snapshot(scope), nil
}

// Get answers from the cache when possible; a miss triggers a point fetch,
// never a full list. Absence is cached so repeated lookups of a missing name
// stay local until Invalidate. A nil entity with a nil error means not found.
func (m *Module[R]) Get(ctx context.Context, name, resourceGroup string) (*resource.Entity[R], error) {
	if strings.TrimSpace(name) == "" {
		return nil, faults.Invariantf("resource name must not be blank")
	}
	if m.opts.RequireResourceGroup && strings.TrimSpace(resourceGroup) == "" {
		return nil, faults.Configurationf("%s requires a resource group for lookups", m.name)
	}

	key := m.idFor(Ref{Name: name, ResourceGroup: resourceGroup}).Normalized()
	if entity, ok := m.entry(key); ok {
		m.opts.Metrics.hit(m.name)
		return visible(entity), nil
	}
	m.opts.Metrics.miss(m.name)

	result, err, _ := m.flight.Do("get:"+key, func() (any, error) {
		if entity, ok := m.entry(key); ok {
			return entity, nil
		}
		return m.fetch(ctx, key, name, resourceGroup)
	})
	if err != nil {
		return nil, err
	}
	entity, _ := result.(*resource.Entity[R])
	return visible(entity), nil
}

// Delete removes the resource remotely and evicts it from the cache. On
// failure the entity stays cached in its error state so readers see the
// failure until the entry is invalidated or the delete retried.
func (m *Module[R]) Delete(ctx context.Context, id resource.ID) error {
	if !m.opts.Capabilities.Has(Deletable) {
		return faults.Invariantf("%s resources are not deletable", m.name)
	}
	if !m.backend.Resolved() {
		return faults.Configurationf("cannot delete %s %q before the parent is resolved", m.name, id.Name)
	}

	key := id.Normalized()
	entity := m.materialize(key, id)
	if err := entity.MarkDeleting(); err != nil {
		return err
	}

	if err := m.backend.Delete(ctx, id); err != nil {
		wrapped := faults.WrapRemote(err, "deleting %s %q", m.name, id.Name)
		_ = entity.MarkError(wrapped)
		m.opts.Metrics.mutation(m.name, "error")
		return wrapped
	}

	_ = entity.MarkDeleted()
	m.evict(key)
	m.opts.Metrics.mutation(m.name, "deleted")
	m.log.V(1).Info("deleted resource", "name", id.Name)
	return nil
}

// NewDraftForCreate opens a draft for a resource that does not exist yet.
func (m *Module[R]) NewDraftForCreate(name, resourceGroup string) (*Draft[R], error) {
	if strings.TrimSpace(name) == "" {
		return nil, faults.Invariantf("resource name must not be blank")
	}
	if m.opts.RequireResourceGroup && strings.TrimSpace(resourceGroup) == "" {
		return nil, faults.Configurationf("a resource group is required to create %s %q", m.name, name)
	}
	return &Draft[R]{
		module:        m,
		name:          name,
		resourceGroup: resourceGroup,
		fields:        resource.FieldBag{},
	}, nil
}

// NewDraftForUpdate opens a draft over a loaded entity.
func (m *Module[R]) NewDraftForUpdate(origin *resource.Entity[R]) (*Draft[R], error) {
	if origin == nil {
		return nil, faults.Invariantf("update draft requires an origin entity")
	}
	if !m.opts.Capabilities.Has(Updatable) {
		return nil, faults.Invariantf("%s resources are not updatable", m.name)
	}
	if _, ok := origin.Remote().Value(); !ok {
		return nil, faults.Configurationf("cannot update %s %q before it is loaded", m.name, origin.Name())
	}
	return &Draft[R]{
		module:        m,
		name:          origin.Name(),
		resourceGroup: origin.ResourceGroup(),
		origin:        origin,
		fields:        resource.FieldBag{},
	}, nil
}

// CreateOrUpdate commits a draft: the create path for drafts without an
// origin, the update path otherwise. On success the cache holds the freshly
// wrapped remote state; on failure the provider error is propagated and the
// entity is left in its error state, never silently marked active.
func (m *Module[R]) CreateOrUpdate(ctx context.Context, draft *Draft[R]) (*resource.Entity[R], error) {
	if draft == nil || draft.module != m {
		return nil, faults.Invariantf("draft does not belong to module %s", m.name)
	}
	if !m.backend.Resolved() {
		return nil, faults.Configurationf("cannot commit %s %q before the parent is resolved", m.name, draft.name)
	}
	if draft.origin == nil {
		return m.create(ctx, draft)
	}
	return m.update(ctx, draft)
}

// Invalidate clears the whole cache; the next list or lookup reloads.
func (m *Module[R]) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = map[string]*resource.Entity[R]{}
	m.order = map[string][]string{}
	m.loaded = map[string]bool{}
}

// InvalidateID drops a single entry, e.g. after a failed create or to force
// a fresh point fetch.
func (m *Module[R]) InvalidateID(id resource.ID) {
	m.evict(id.Normalized())
}

func (m *Module[R]) create(ctx context.Context, draft *Draft[R]) (*resource.Entity[R], error) {
	id := m.idFor(Ref{Name: draft.name, ResourceGroup: draft.resourceGroup})
	key := id.Normalized()

	entity := m.materialize(key, id)
	if err := entity.MarkCreating(draft.fields); err != nil {
		return nil, err
	}

	raw, err := m.backend.Create(ctx, draft.name, draft.resourceGroup, draft.Fields())
	if err != nil {
		wrapped := faults.WrapRemote(err, "creating %s %q", m.name, draft.name)
		_ = entity.MarkError(wrapped)
		m.opts.Metrics.mutation(m.name, "error")
		return entity, wrapped
	}

	if err := entity.MarkActive(raw); err != nil {
		return nil, err
	}
	m.index(key, scopeKey(draft.resourceGroup))
	m.opts.Metrics.mutation(m.name, "created")
	m.log.V(1).Info("created resource", "name", draft.name)
	return entity, nil
}

func (m *Module[R]) update(ctx context.Context, draft *Draft[R]) (*resource.Entity[R], error) {
	entity := draft.origin
	origin, ok := entity.Remote().Value()
	if !ok {
		return nil, faults.Configurationf("cannot update %s %q before it is loaded", m.name, entity.Name())
	}
	if err := entity.MarkUpdating(draft.fields); err != nil {
		return nil, err
	}

	raw, err := m.backend.Update(ctx, origin, draft.Fields())
	if err != nil {
		wrapped := faults.WrapRemote(err, "updating %s %q", m.name, entity.Name())
		_ = entity.MarkError(wrapped)
		m.opts.Metrics.mutation(m.name, "error")
		return entity, wrapped
	}

	if err := entity.MarkActive(raw); err != nil {
		return nil, err
	}
	m.opts.Metrics.mutation(m.name, "updated")
	m.log.V(1).Info("updated resource", "name", entity.Name())
	return entity, nil
}

// fetch performs the point load on a cache miss and caches the outcome,
// including the not-found marker that keeps repeated misses local.
func (m *Module[R]) fetch(ctx context.Context, key, name, resourceGroup string) (*resource.Entity[R], error) {
	if !m.backend.Resolved() {
		return nil, nil
	}

	raw, err := m.backend.Load(ctx, name, resourceGroup)
	if err != nil {
		return nil, faults.WrapRemote(err, "loading %s %q", m.name, name)
	}

	id := m.idFor(Ref{Name: name, ResourceGroup: resourceGroup})
	entity := resource.NewEntity[R](id)
	if err := entity.MarkLoading(); err != nil {
		return nil, err
	}
	if raw == nil {
		if err := entity.MarkNotFound(); err != nil {
			return nil, err
		}
		m.store(key, entity)
		return entity, nil
	}

	ref := m.backend.Describe(raw)
	if err := entity.MarkActive(raw); err != nil {
		return nil, err
	}
	m.store(key, entity)
	m.index(key, scopeKey(ref.ResourceGroup))
	return entity, nil
}

// loadScope drains the page loader fully before publishing anything:
// partially loaded scopes are never visible to callers.
func (m *Module[R]) loadScope(ctx context.Context, scope, resourceGroup string) error {
	pages := m.backend.LoadPages(ctx)

	var raws []R
	for pages.More() {
		page, err := pages.Next(ctx)
		if err != nil {
			return faults.WrapRemote(err, "listing %s", m.name)
		}
		raws = append(raws, page.Items...)
	}
	m.opts.Metrics.load(m.name)

	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(raws))
	for i := range raws {
		raw := raws[i]
		ref := m.backend.Describe(&raw)
		if resourceGroup != "" && !strings.EqualFold(ref.ResourceGroup, resourceGroup) {
			continue
		}

		id := m.idFor(ref)
		key := id.Normalized()
		entity := m.entries[key]
		if entity == nil {
			entity = resource.NewEntity[R](id)
			m.entries[key] = entity
		}
		if err := activate(entity, &raw); err != nil {
			// An in-flight mutation owns this entry; keep it listed as is.
			m.log.V(1).Info("skipped refresh of busy entry", "name", ref.Name, "status", entity.Status())
		}
		ids = append(ids, key)
	}

	m.order[scope] = ids
	m.loaded[scope] = true
	m.log.V(1).Info("loaded scope", "scope", scope, "count", len(ids))
	return nil
}

// activate moves an entity to Active, routing through Loading for states
// that cannot reach Active directly.
func activate[R any](entity *resource.Entity[R], raw *R) error {
	if !entity.Status().CanTransition(resource.StatusActive) {
		if err := entity.MarkLoading(); err != nil {
			return err
		}
	}
	return entity.MarkActive(raw)
}

// visible hides not-found markers from callers.
func visible[R any](entity *resource.Entity[R]) *resource.Entity[R] {
	if entity == nil || entity.Status() == resource.StatusNotFound {
		return nil
	}
	return entity
}

func (m *Module[R]) idFor(ref Ref) resource.ID {
	if m.opts.IDFor != nil {
		return m.opts.IDFor(ref)
	}
	id := m.parentID.Child(m.name, ref.Name)
	if ref.ResourceGroup != "" {
		id.ResourceGroup = ref.ResourceGroup
	}
	return id
}

func (m *Module[R]) scopeLoaded(scope string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded[scope]
}

func (m *Module[R]) entry(key string) (*resource.Entity[R], bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entity, ok := m.entries[key]
	return entity, ok
}

func (m *Module[R]) store(key string, entity *resource.Entity[R]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entity
}

// materialize returns the cached entity or installs a placeholder for an
// identity the module has not seen yet.
func (m *Module[R]) materialize(key string, id resource.ID) *resource.Entity[R] {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entity, ok := m.entries[key]; ok {
		return entity
	}
	entity := resource.NewEntity[R](id)
	m.entries[key] = entity
	return entity
}

// index appends a point-fetched or created entity to already loaded scopes
// so later listings include it without a reload.
func (m *Module[R]) index(key, scope string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, target := range []string{scope, ""} {
		if !m.loaded[target] {
			continue
		}
		if !contains(m.order[target], key) {
			m.order[target] = append(m.order[target], key)
		}
		if target == scope {
			break
		}
	}
}

func (m *Module[R]) evict(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	for scope, ids := range m.order {
		m.order[scope] = remove(ids, key)
	}
}

func (m *Module[R]) snapshot(scope string) []*resource.Entity[R] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*resource.Entity[R], 0, len(m.order[scope]))
	for _, key := range m.order[scope] {
		entity, ok := m.entries[key]
		if !ok {
			continue
		}
		status := entity.Status()
		if status == resource.StatusNotFound || status == resource.StatusDeleted {
			continue
		}
		out = append(out, entity)
	}
	return out
}

func scopeKey(resourceGroup string) string {
	return strings.ToLower(strings.TrimSpace(resourceGroup))
}

func contains(ids []string, key string) bool {
	for _, id := range ids {
		if id == key {
			return true
		}
	}
	return false
}

func remove(ids []string, key string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != key {
			out = append(out, id)
		}
	}
	return out
}
