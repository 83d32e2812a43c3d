package module

import (
	"context"

	"github.com/armkit/armkit/faults"
	"github.com/armkit/armkit/resource"
)

// Draft is a pending create or update session. A draft belongs to the caller
// that opened it until Commit; it is not safe for concurrent use and is
// spent once committed.
type Draft[R any] struct {
	module        *Module[R]
	name          string
	resourceGroup string
	origin        *resource.Entity[R]
	fields        resource.FieldBag
	committed     bool
}

func (d *Draft[R]) Name() string {
	return d.name
}

func (d *Draft[R]) ResourceGroup() string {
	return d.resourceGroup
}

// Origin is the entity an update draft was opened from, nil for creates.
func (d *Draft[R]) Origin() *resource.Entity[R] {
	return d.origin
}

func (d *Draft[R]) Set(key string, value any) *Draft[R] {
	if d.fields == nil {
		d.fields = resource.FieldBag{}
	}
	d.fields[key] = value
	return d
}

func (d *Draft[R]) Fields() resource.FieldBag {
	return d.fields.Clone()
}

// Commit pushes the draft to the remote provider through the owning module.
// On success the cache holds a fresh active entity; on failure the error is
// surfaced and the cache entry is left inspectable in its error state.
func (d *Draft[R]) Commit(ctx context.Context) (*resource.Entity[R], error) {
	if d.committed {
		return nil, faults.Invariantf("draft for %q has already been committed", d.name)
	}
	entity, err := d.module.CreateOrUpdate(ctx, d)
	if err == nil {
		d.committed = true
	}
	return entity, err
}
