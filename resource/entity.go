package resource

import (
	"sync"

	"github.com/armkit/armkit/faults"
)

// Entity is the cached view of one remote resource: an authoritative remote
// handle, an optional bag of pending local changes, and a lifecycle status.
// All accessors are safe under concurrent use; transitions are validated
// against the status table and fail fast on misuse.
type Entity[R any] struct {
	id ID

	mu     sync.RWMutex
	remote Remote[R]
	local  FieldBag
	status Status
	err    error
}

func NewEntity[R any](id ID) *Entity[R] {
	return &Entity[R]{
		id:     id,
		remote: Unresolved[R](),
	}
}

func (e *Entity[R]) ID() ID {
	return e.id
}

func (e *Entity[R]) Name() string {
	return e.id.Name
}

func (e *Entity[R]) ResourceGroup() string {
	return e.id.ResourceGroup
}

func (e *Entity[R]) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

// Err returns the failure that drove the entity into StatusError, nil
// otherwise.
func (e *Entity[R]) Err() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.err
}

func (e *Entity[R]) Remote() Remote[R] {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.remote
}

// Local returns a copy of the pending draft fields, nil when none are staged.
func (e *Entity[R]) Local() FieldBag {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.local.Clone()
}

func (e *Entity[R]) MarkLoading() error {
	return e.transition(StatusLoading, func() {})
}

func (e *Entity[R]) MarkCreating(local FieldBag) error {
	return e.transition(StatusCreating, func() {
		e.local = local.Clone()
	})
}

func (e *Entity[R]) MarkUpdating(local FieldBag) error {
	return e.transition(StatusUpdating, func() {
		e.local = local.Clone()
	})
}

func (e *Entity[R]) MarkDeleting() error {
	return e.transition(StatusDeleting, func() {})
}

// MarkActive installs a fresh remote handle and drops any staged local
// fields; the remote value is authoritative from here on.
func (e *Entity[R]) MarkActive(remote *R) error {
	if remote == nil {
		return faults.Invariantf("entity %s cannot become active without a remote handle", e.id)
	}
	return e.transition(StatusActive, func() {
		e.remote = Resolved(remote)
		e.local = nil
		e.err = nil
	})
}

func (e *Entity[R]) MarkNotFound() error {
	return e.transition(StatusNotFound, func() {
		e.remote = Unresolved[R]()
		e.local = nil
		e.err = nil
	})
}

func (e *Entity[R]) MarkError(cause error) error {
	return e.transition(StatusError, func() {
		e.err = cause
	})
}

func (e *Entity[R]) MarkDeleted() error {
	return e.transition(StatusDeleted, func() {
		e.remote = DeletedRemote[R]()
		e.local = nil
		e.err = nil
	})
}

func (e *Entity[R]) transition(next Status, apply func()) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.status.CanTransition(next) {
		return faults.Invariantf("entity %s cannot move from %s to %s", e.id, e.status, next)
	}
	e.status = next
	apply()
	return nil
}
