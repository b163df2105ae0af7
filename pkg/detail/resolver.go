package detail

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/herhollywood/adaptations/pkg/common/jsoncompat"
	"github.com/herhollywood/adaptations/pkg/store"
	"github.com/herhollywood/adaptations/pkg/types"
)

// NotFoundError reports a detail document that does not exist, usually a bad
// or stale slug in a shared link.
type NotFoundError struct {
	Entity types.EntityType
	Slug   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s with slug %q", e.Entity.Singular(), e.Slug)
}

// Resolver loads per entity detail documents and keeps every successfully
// resolved document in memory for the lifetime of the process. A document is
// fetched at most once per resolver instance; repeat resolves are served from
// the local map, never refetched.
type Resolver struct {
	mu     sync.Mutex
	source store.DocumentSource
	shared SharedCache
	cache  map[string]Record
}

func NewResolver(source store.DocumentSource, shared SharedCache) *Resolver {
	return &Resolver{
		source: source,
		shared: shared,
		cache:  make(map[string]Record),
	}
}

func cacheKey(entity types.EntityType, slug string) string {
	return entity.Singular() + "-" + slug
}

func documentPath(entity types.EntityType, slug string) string {
	return fmt.Sprintf("/data/database/%s/%s.json", entity.Singular(), slug)
}

func newRecord(entity types.EntityType) Record {
	switch entity {
	case types.Authors:
		return &AuthorDetail{}
	case types.Works:
		return &WorkDetail{}
	default:
		return &FilmDetail{}
	}
}

// Resolve returns the detail document for one entity. Missing documents come
// back as *NotFoundError; other fetch failures are returned as is and leave
// the cache untouched so a later resolve retries.
func (r *Resolver) Resolve(ctx context.Context, entity types.EntityType, slug string) (Record, error) {
	if !entity.Valid() {
		return nil, fmt.Errorf("unknown entity type %q", entity)
	}
	key := cacheKey(entity, slug)

	r.mu.Lock()
	cached, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return cached, nil
	}

	rec := newRecord(entity)
	if r.shared != nil {
		if err := r.shared.Get(ctx, key, rec); err == nil {
			return r.store(key, rec), nil
		}
	}

	data, err := r.source.FetchDocument(ctx, documentPath(entity, slug))
	if err != nil {
		var nf *store.NotFoundError
		if errors.As(err, &nf) {
			return nil, &NotFoundError{Entity: entity, Slug: slug}
		}
		return nil, err
	}
	if err := jsoncompat.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("decoding %s detail %q: %w", entity.Singular(), slug, err)
	}

	rec = r.store(key, rec)
	if r.shared != nil {
		// Best effort, a shared tier miss only costs one extra fetch.
		_ = r.shared.Set(ctx, key, rec, 24*time.Hour)
	}
	return rec, nil
}

// store keeps the first resolved document for a key and returns the cached
// one. Concurrent resolves of the same slug may both fetch, the winner is
// whichever stores first.
func (r *Resolver) store(key string, rec Record) Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.cache[key]; ok {
		return existing
	}
	r.cache[key] = rec
	return rec
}

// Cached reports whether a document is already resolved, without fetching.
func (r *Resolver) Cached(entity types.EntityType, slug string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.cache[cacheKey(entity, slug)]
	return ok
}
