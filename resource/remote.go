package resource

// RemoteKind distinguishes the three states a remote handle can be in, so
// consumers must treat "never fetched" and "deleted" explicitly instead of
// guessing from a nil.
type RemoteKind uint8

const (
	RemoteUnresolved RemoteKind = iota
	RemoteResolved
	RemoteDeleted
)

func (k RemoteKind) String() string {
	switch k {
	case RemoteResolved:
		return "Resolved"
	case RemoteDeleted:
		return "Deleted"
	default:
		return "Unresolved"
	}
}

// Remote is the authoritative-state handle of an entity.
type Remote[R any] struct {
	kind  RemoteKind
	value *R
}

func Unresolved[R any]() Remote[R] {
	return Remote[R]{kind: RemoteUnresolved}
}

func Resolved[R any](value *R) Remote[R] {
	if value == nil {
		return Remote[R]{kind: RemoteUnresolved}
	}
	return Remote[R]{kind: RemoteResolved, value: value}
}

func DeletedRemote[R any]() Remote[R] {
	return Remote[R]{kind: RemoteDeleted}
}

func (r Remote[R]) Kind() RemoteKind {
	return r.kind
}

// Value returns the resolved handle, reporting false for the unresolved and
// deleted variants.
func (r Remote[R]) Value() (*R, bool) {
	if r.kind != RemoteResolved {
		return nil, false
	}
	return r.value, true
}
