package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/herhollywood/adaptations/pkg/common/jsoncompat"
	"github.com/herhollywood/adaptations/pkg/types"
)

// DataLoadError wraps an index or media document load failure. The caller
// shows an inline error state; there is no automatic retry.
type DataLoadError struct {
	Entity types.EntityType
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Entity, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// Collection is one loaded entity collection with its lookup indices.
// Immutable once built; the dataset never changes within a session.
type Collection struct {
	Entity        types.EntityType
	Records       []types.Record
	Metadata      IndexMetadata
	FilterOptions FilterOptions

	// DominantNationality backs the authors tab's "Other" filter.
	DominantNationality string

	byId   map[uint]types.Record
	bySlug map[string]types.Record
}

// ById resolves a record by its numeric id.
func (c *Collection) ById(id uint) (types.Record, bool) {
	r, ok := c.byId[id]
	return r, ok
}

// BySlug resolves a record by slug; a bare numeric id is accepted as a
// fallback for records whose empty title yields no slug.
func (c *Collection) BySlug(slug string) (types.Record, bool) {
	if r, ok := c.bySlug[slug]; ok {
		return r, true
	}
	if id, err := strconv.ParseUint(slug, 10, 64); err == nil {
		return c.ById(uint(id))
	}
	return nil, false
}

// Store loads and holds the three entity collections plus the media
// document. Collections load on demand, one per active tab, and are cached
// for the rest of the session.
type Store struct {
	mu     sync.Mutex
	source DocumentSource

	collections map[types.EntityType]*Collection
	media       map[uint][]types.MediaItem
	mediaLoaded bool
}

func NewStore(source DocumentSource) *Store {
	return &Store{
		source:      source,
		collections: make(map[types.EntityType]*Collection),
	}
}

// Load fetches the index document for an entity type, builds the lookup
// maps and derived flags, and caches the collection. A loaded collection is
// immutable; repeated calls return the cached value without refetching.
func (s *Store) Load(ctx context.Context, entity types.EntityType) (*Collection, error) {
	if !entity.Valid() {
		return nil, &DataLoadError{Entity: entity, Err: fmt.Errorf("unknown entity type")}
	}

	s.mu.Lock()
	if c, ok := s.collections[entity]; ok {
		s.mu.Unlock()
		return c, nil
	}
	s.mu.Unlock()

	data, err := s.source.FetchDocument(ctx, indexDocumentPath(entity))
	if err != nil {
		return nil, &DataLoadError{Entity: entity, Err: err}
	}
	var doc indexDocument
	if err := jsoncompat.Unmarshal(data, &doc); err != nil {
		return nil, &DataLoadError{Entity: entity, Err: err}
	}

	c := buildCollection(entity, &doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.collections[entity]; ok {
		// another caller won the race; the first build stands
		return cached, nil
	}
	if entity == types.Films && s.mediaLoaded {
		s.decorateFilms(c)
	}
	s.collections[entity] = c
	return c, nil
}

// Loaded returns the cached collection without fetching.
func (s *Store) Loaded(entity types.EntityType) (*Collection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[entity]
	return c, ok
}

// LoadMedia fetches the media document, drops hidden items, orders the rest
// for the gallery and back fills media flags on the films collection.
func (s *Store) LoadMedia(ctx context.Context) error {
	s.mu.Lock()
	if s.mediaLoaded {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	data, err := s.source.FetchDocument(ctx, mediaDocumentPath)
	if err != nil {
		return &DataLoadError{Entity: types.Films, Err: err}
	}
	var doc mediaDocument
	if err := jsoncompat.Unmarshal(data, &doc); err != nil {
		return &DataLoadError{Entity: types.Films, Err: err}
	}

	grouped := make(map[uint][]types.MediaItem)
	for _, item := range doc.Media {
		id := uint(item.FilmId.Int())
		grouped[id] = append(grouped[id], item)
	}
	for id, items := range grouped {
		grouped[id] = types.VisibleMedia(items)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.media = grouped
	s.mediaLoaded = true
	if films, ok := s.collections[types.Films]; ok {
		s.decorateFilms(films)
	}
	return nil
}

// MediaForFilm returns the visible, ordered gallery items for a film.
func (s *Store) MediaForFilm(id uint) []types.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.media[id]
}

func (s *Store) decorateFilms(c *Collection) {
	for _, r := range c.Records {
		film, ok := r.(*types.Film)
		if !ok {
			continue
		}
		items := s.media[film.Id]
		if len(items) == 0 {
			continue
		}
		film.HasMedia = true
		if film.FeaturedMedia == nil {
			film.FeaturedMedia = &types.FeaturedMedia{
				ThumbnailUrl: items[0].ThumbnailUrl,
				Caption:      items[0].Caption,
			}
		}
	}
}

func buildCollection(entity types.EntityType, doc *indexDocument) *Collection {
	c := &Collection{
		Entity:        entity,
		Metadata:      doc.Metadata,
		FilterOptions: doc.FilterOptions,
		byId:          make(map[uint]types.Record),
		bySlug:        make(map[string]types.Record),
	}

	switch entity {
	case types.Films:
		adaptationsPerWork := make(map[uint]int)
		for _, f := range doc.Films {
			if f.WorkId != 0 {
				adaptationsPerWork[f.WorkId]++
			}
		}
		for _, f := range doc.Films {
			normalizeFilm(f, adaptationsPerWork)
			c.add(f)
		}
	case types.Authors:
		counts := make(map[string]int)
		for _, a := range doc.Authors {
			if a.Slug == "" {
				a.Slug = types.Slugify(a.Name, 0)
			}
			a.IsTwentyTimer = a.FilmCount >= types.TwentyTimerThreshold
			if a.Nationality != "" {
				counts[a.Nationality]++
			}
			c.add(a)
		}
		c.DominantNationality = dominant(counts)
	case types.Works:
		for _, w := range doc.Works {
			if w.Slug == "" {
				w.Slug = types.Slugify(w.Title, 0)
			}
			w.IsRemakeChampion = w.AdaptationCount >= types.RemakeChampionThreshold
			c.add(w)
		}
	}

	c.Records = make([]types.Record, 0, len(c.byId))
	switch entity {
	case types.Films:
		for _, f := range doc.Films {
			c.Records = append(c.Records, f)
		}
	case types.Authors:
		for _, a := range doc.Authors {
			c.Records = append(c.Records, a)
		}
	case types.Works:
		for _, w := range doc.Works {
			c.Records = append(c.Records, w)
		}
	}
	return c
}

func normalizeFilm(f *types.Film, adaptationsPerWork map[uint]int) {
	if f.Slug == "" {
		f.Slug = types.Slugify(f.Title, f.Year)
	}
	if f.Decade == 0 && f.Year > 0 {
		f.Decade = f.Year / 10 * 10
	}
	if !f.IsRemake && f.WorkId != 0 && adaptationsPerWork[f.WorkId] > 1 {
		f.IsRemake = true
	}
}

// add registers a record in the lookup maps. Slug collisions are resolved
// deterministically: the first record owns the bare slug, later colliders
// are registered under "<slug>-<id>".
func (c *Collection) add(r types.Record) {
	c.byId[r.GetId()] = r
	slug := r.GetSlug()
	if slug == "" {
		return
	}
	if _, taken := c.bySlug[slug]; taken {
		slug = fmt.Sprintf("%s-%d", slug, r.GetId())
	}
	c.bySlug[slug] = r
}

func dominant(counts map[string]int) string {
	best := ""
	bestCount := 0
	for value, count := range counts {
		if count > bestCount || (count == bestCount && value < best) {
			best = value
			bestCount = count
		}
	}
	return best
}
