package azure

import (
	"context"
	"errors"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
)

type fakeListResponse struct {
	items []*string
}

func newFakePager(pages [][]string, failOn int) *runtime.Pager[fakeListResponse] {
	index := 0
	return runtime.NewPager(runtime.PagingHandler[fakeListResponse]{
		More: func(fakeListResponse) bool {
			return index < len(pages)
		},
		Fetcher: func(ctx context.Context, _ *fakeListResponse) (fakeListResponse, error) {
			if failOn >= 0 && index == failOn {
				return fakeListResponse{}, errors.New("listing failed")
			}
			page := pages[index]
			index++
			items := make([]*string, len(page))
			for i := range page {
				items[i] = &page[i]
			}
			return fakeListResponse{items: items}, nil
		},
	})
}

func TestPagesRechunksToPageSize(t *testing.T) {
	t.Parallel()

	pager := newFakePager([][]string{{"a", "b", "c"}, {"d", "e"}}, -1)
	iterator := Pages(pager, func(resp fakeListResponse) []*string { return resp.items }, 2)

	var sizes []int
	var all []string
	for iterator.More() {
		page, err := iterator.Next(context.Background())
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		sizes = append(sizes, len(page.Items))
		all = append(all, page.Items...)
	}

	want := []string{"a", "b", "c", "d", "e"}
	if len(all) != len(want) {
		t.Fatalf("drained %d items, want %d", len(all), len(want))
	}
	for i := range want {
		if all[i] != want[i] {
			t.Fatalf("item %d = %q, want %q", i, all[i], want[i])
		}
	}
	for i, size := range sizes {
		if size > 2 {
			t.Fatalf("page %d has %d items, page size is 2", i, size)
		}
	}
}

func TestPagesPropagatesFetchError(t *testing.T) {
	t.Parallel()

	pager := newFakePager([][]string{{"a"}, {"b"}}, 1)
	iterator := Pages(pager, func(resp fakeListResponse) []*string { return resp.items }, 0)

	if _, err := iterator.Next(context.Background()); err != nil {
		t.Fatalf("first page: %v", err)
	}
	if _, err := iterator.Next(context.Background()); err == nil {
		t.Fatal("expected the second fetch to fail")
	}
}

func TestPagesRestartable(t *testing.T) {
	t.Parallel()

	// Two independent iterators over freshly built pagers must both see the
	// full sequence.
	for i := 0; i < 2; i++ {
		pager := newFakePager([][]string{{"a", "b"}}, -1)
		iterator := Pages(pager, func(resp fakeListResponse) []*string { return resp.items }, 0)

		var count int
		for iterator.More() {
			page, err := iterator.Next(context.Background())
			if err != nil {
				t.Fatalf("Next: %v", err)
			}
			count += len(page.Items)
		}
		if count != 2 {
			t.Fatalf("run %d drained %d items, want 2", i, count)
		}
	}
}
