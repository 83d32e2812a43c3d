package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	"github.com/armkit/armkit/module"
)

// Pages adapts an SDK pager to the module framework's page iterator. The
// items function extracts one response's slice; nil entries are dropped.
// A positive pageSize re-chunks the stream so downstream consumers see
// uniformly sized pages regardless of what the provider returned.
func Pages[T any, R any](pager *runtime.Pager[T], items func(T) []*R, pageSize int) module.PageIterator[R] {
	return &pagerIterator[T, R]{pager: pager, items: items, pageSize: pageSize}
}

type pagerIterator[T any, R any] struct {
	pager    *runtime.Pager[T]
	items    func(T) []*R
	pageSize int
	buffered []R
}

func (p *pagerIterator[T, R]) More() bool {
	return len(p.buffered) > 0 || p.pager.More()
}

func (p *pagerIterator[T, R]) Next(ctx context.Context) (module.Page[R], error) {
	for len(p.buffered) == 0 && p.pager.More() {
		resp, err := p.pager.NextPage(ctx)
		if err != nil {
			return module.Page[R]{}, err
		}
		for _, item := range p.items(resp) {
			if item != nil {
				p.buffered = append(p.buffered, *item)
			}
		}
	}

	if len(p.buffered) == 0 {
		return module.Page[R]{}, nil
	}
	take := len(p.buffered)
	if p.pageSize > 0 && take > p.pageSize {
		take = p.pageSize
	}
	page := module.Page[R]{Items: p.buffered[:take:take]}
	p.buffered = p.buffered[take:]
	return page, nil
}
