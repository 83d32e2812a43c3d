package module

import "context"

// Page is one provider page of raw remote resources, in provider order.
type Page[R any] struct {
	Items []R
}

// PageIterator walks a lazy page sequence. Implementations terminate when
// the provider signals no continuation; every LoadPages call must hand out
// a fresh iterator with no shared cursor state.
type PageIterator[R any] interface {
	More() bool
	Next(ctx context.Context) (Page[R], error)
}

type slicePages[R any] struct {
	pages [][]R
	index int
}

func (p *slicePages[R]) More() bool {
	return p.index < len(p.pages)
}

func (p *slicePages[R]) Next(ctx context.Context) (Page[R], error) {
	if err := ctx.Err(); err != nil {
		return Page[R]{}, err
	}
	page := Page[R]{Items: p.pages[p.index]}
	p.index++
	return page, nil
}

// EmptyPages is the short-circuit for backends whose parent is not resolved
// yet: nothing to list is not an error.
func EmptyPages[R any]() PageIterator[R] {
	return &slicePages[R]{}
}

// PagesOf wraps static pages into an iterator.
func PagesOf[R any](pages ...[]R) PageIterator[R] {
	return &slicePages[R]{pages: pages}
}
