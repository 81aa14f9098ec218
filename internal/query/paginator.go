// Package query is the paginated query layer between the HTTP surface and
// the backend fetchers. Pages are cached under resource-scoped keys with a
// staleness TTL, and concurrent requests for the same page are collapsed into
// one backend fetch.
package query

import (
	"context"
	"sync"
	"time"

	"github.com/trendmart/storefront-client/internal/cache"
	"github.com/trendmart/storefront-client/internal/models"
)

// Fetcher retrieves one cursor page from the backend.
type Fetcher[T any] func(ctx context.Context, cursor string) (models.Page[T], error)

const firstPageKey = "first"

// Paginator serves cursor pages for one resource (and, for per-user
// resources, one user), consulting the shared cache before the backend.
type Paginator[T any] struct {
	cache  cache.Cache
	fetch  Fetcher[T]
	prefix string
	ttl    time.Duration

	mu       sync.Mutex
	inflight map[string]chan struct{}
}

func NewPaginator[T any](c cache.Cache, prefix string, ttl time.Duration, fetch Fetcher[T]) *Paginator[T] {
	return &Paginator[T]{
		cache:    c,
		fetch:    fetch,
		prefix:   prefix,
		ttl:      ttl,
		inflight: make(map[string]chan struct{}),
	}
}

func (p *Paginator[T]) key(cursor string) string {
	if cursor == "" {
		cursor = firstPageKey
	}

	return cache.Key(p.prefix, cursor)
}

// IsLoading reports whether a fetch for the given cursor is in flight. The UI
// uses it to scope loading indicators to a single page.
func (p *Paginator[T]) IsLoading(cursor string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, loading := p.inflight[p.key(cursor)]

	return loading
}

// Page returns the page at the given cursor, from cache when fresh. A miss
// triggers exactly one backend fetch per key; concurrent callers wait for it
// and then read the filled cache.
func (p *Paginator[T]) Page(ctx context.Context, cursor string) (models.Page[T], error) {

	key := p.key(cursor)

	for {
		var page models.Page[T]

		hit, err := p.cache.Get(ctx, key, &page)
		if err == nil && hit {
			return page, nil
		}

		// Cache errors degrade to a direct fetch.

		p.mu.Lock()

		waiter, running := p.inflight[key]
		if !running {
			waiter = make(chan struct{})
			p.inflight[key] = waiter
		}

		p.mu.Unlock()

		if running {
			select {
			case <-waiter:
				continue
			case <-ctx.Done():
				return models.Page[T]{}, ctx.Err()
			}
		}

		page, err = p.fetch(ctx, cursor)

		p.mu.Lock()
		delete(p.inflight, key)
		p.mu.Unlock()
		close(waiter)

		if err != nil {
			return models.Page[T]{}, err
		}

		// Best effort: a failed Set only costs a refetch later.
		_ = p.cache.Set(ctx, key, page, p.ttl)

		return page, nil
	}
}

// Invalidate drops the cached page for a cursor, forcing the next read to hit
// the backend.
func (p *Paginator[T]) Invalidate(ctx context.Context, cursor string) error {
	return p.cache.Delete(ctx, p.key(cursor))
}

// FetchAll drains cursors from the first page, for full syncs feeding the
// session store. maxPages bounds runaway cursor chains; zero means no bound.
func (p *Paginator[T]) FetchAll(ctx context.Context, maxPages int) ([]T, error) {

	var all []T

	cursor := ""

	for pages := 0; ; pages++ {
		if maxPages > 0 && pages >= maxPages {
			break
		}

		page, err := p.Page(ctx, cursor)
		if err != nil {
			return nil, err
		}

		all = append(all, page.Items...)

		if !page.HasMore() {
			break
		}

		cursor = page.NextCursor
	}

	return all, nil
}
