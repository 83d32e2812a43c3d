package module

import (
	"context"

	"github.com/armkit/armkit/resource"
)

// Ref is the addressing information a backend can extract from a raw remote
// resource; the module composes full IDs from it.
type Ref struct {
	Name          string
	ResourceGroup string
}

// Backend is the adapter contract implemented once per resource kind. The
// framework depends only on this interface, never on concrete service types.
//
// Resolved reports whether the backing provider client exists. While it is
// false, LoadPages must return an empty iterator and Load must report
// absence; mutating calls fail with a configuration fault before reaching
// the backend.
type Backend[R any] interface {
	// ModuleName is the resource type path, e.g. "Microsoft.Web/sites".
	ModuleName() string

	Resolved() bool

	// LoadPages returns a fresh, restartable page iterator over the parent
	// scope. It must terminate when the provider stops handing out
	// continuation tokens.
	LoadPages(ctx context.Context) PageIterator[R]

	// Load fetches a single resource; (nil, nil) means nothing found.
	Load(ctx context.Context, name, resourceGroup string) (*R, error)

	Delete(ctx context.Context, id resource.ID) error

	// Create and Update translate a draft's field bag into provider calls
	// and block until the provider acknowledges, returning the fresh raw
	// resource.
	Create(ctx context.Context, name, resourceGroup string, fields resource.FieldBag) (*R, error)
	Update(ctx context.Context, origin *R, fields resource.FieldBag) (*R, error)

	// Describe extracts addressing info from a raw remote resource.
	Describe(raw *R) Ref
}
