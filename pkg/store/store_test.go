package store

import (
	"context"
	"errors"
	"testing"

	"github.com/herhollywood/adaptations/pkg/types"
)

type fakeSource struct {
	docs    map[string][]byte
	fetches map[string]int
}

func (s *fakeSource) FetchDocument(ctx context.Context, path string) ([]byte, error) {
	if s.fetches == nil {
		s.fetches = make(map[string]int)
	}
	s.fetches[path]++
	data, ok := s.docs[path]
	if !ok {
		return nil, &NotFoundError{Path: path}
	}
	return data, nil
}

const filmsDoc = `{
	"metadata": {"totalCount": 3, "yearRange": [1917, 1920]},
	"filterOptions": {"studio": [{"value": "Paramount", "label": "Paramount"}]},
	"films": [
		{"id": 1, "title": "Pollyanna", "year": 1920, "workId": 5},
		{"id": 2, "title": "Rebecca of Sunnybrook Farm", "year": 1917, "workId": 6},
		{"id": 3, "title": "Pollyanna", "year": 1920, "workId": 5}
	]
}`

const authorsDoc = `{
	"metadata": {"totalCount": 3},
	"authors": [
		{"id": 1, "name": "Eleanor H. Porter", "nationality": "American", "filmCount": 21},
		{"id": 2, "name": "Frances Hodgson Burnett", "nationality": "British", "filmCount": 13},
		{"id": 3, "name": "Kate Douglas Wiggin", "nationality": "American", "filmCount": 9}
	]
}`

const worksDoc = `{
	"metadata": {"totalCount": 2},
	"works": [
		{"id": 5, "title": "Pollyanna", "adaptationCount": 4},
		{"id": 6, "title": "Rebecca of Sunnybrook Farm", "adaptationCount": 3}
	]
}`

const mediaDoc = `{
	"media": [
		{"id": 1, "film_id": 1, "media_type": "still", "thumbnail_url": "/t/1.jpg", "is_featured": "1", "quality_score": 5},
		{"id": 2, "film_id": 1, "media_type": "poster", "thumbnail_url": "/t/2.jpg", "is_hidden": "1"},
		{"id": 3, "film_id": 2, "media_type": "still", "thumbnail_url": "/t/3.jpg"}
	]
}`

func newTestStore() (*Store, *fakeSource) {
	src := &fakeSource{docs: map[string][]byte{
		"/data/database/films-index.min.json":   []byte(filmsDoc),
		"/data/database/authors-index.min.json": []byte(authorsDoc),
		"/data/database/works-index.min.json":   []byte(worksDoc),
		"/data/database/film-media.json":        []byte(mediaDoc),
	}}
	return NewStore(src), src
}

func TestLoadBuildsLookups(t *testing.T) {
	s, src := newTestStore()
	col, err := s.Load(context.Background(), types.Films)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(col.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(col.Records))
	}
	if _, ok := col.ById(2); !ok {
		t.Error("id lookup failed")
	}
	if r, ok := col.BySlug("rebecca-of-sunnybrook-farm-1917"); !ok || r.GetId() != 2 {
		t.Error("slug lookup failed")
	}
	if _, ok := col.BySlug("2"); !ok {
		t.Error("numeric id fallback failed")
	}

	if _, err := s.Load(context.Background(), types.Films); err != nil {
		t.Fatal(err)
	}
	if src.fetches["/data/database/films-index.min.json"] != 1 {
		t.Error("loaded collection must be served from cache")
	}
}

func TestLoadSlugCollision(t *testing.T) {
	s, _ := newTestStore()
	col, err := s.Load(context.Background(), types.Films)
	if err != nil {
		t.Fatal(err)
	}
	first, ok := col.BySlug("pollyanna-1920")
	if !ok || first.GetId() != 1 {
		t.Error("first record should own the bare slug")
	}
	second, ok := col.BySlug("pollyanna-1920-3")
	if !ok || second.GetId() != 3 {
		t.Error("collider should be reachable under the id suffixed slug")
	}
}

func TestLoadDerivedFlags(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	films, err := s.Load(ctx, types.Films)
	if err != nil {
		t.Fatal(err)
	}
	f1, _ := films.ById(1)
	if !f1.(*types.Film).IsRemake {
		t.Error("two adaptations of one work should both be remakes")
	}
	f2, _ := films.ById(2)
	if f2.(*types.Film).IsRemake {
		t.Error("a single adaptation is not a remake")
	}
	if f1.(*types.Film).Decade != 1920 {
		t.Errorf("expected decade 1920, got %d", f1.(*types.Film).Decade)
	}

	authors, err := s.Load(ctx, types.Authors)
	if err != nil {
		t.Fatal(err)
	}
	if authors.DominantNationality != "American" {
		t.Errorf("expected American as dominant nationality, got %q", authors.DominantNationality)
	}
	a1, _ := authors.ById(1)
	if !a1.(*types.Author).IsTwentyTimer {
		t.Error("21 films should mark a twenty timer")
	}

	works, err := s.Load(ctx, types.Works)
	if err != nil {
		t.Fatal(err)
	}
	w5, _ := works.ById(5)
	if !w5.(*types.Work).IsRemakeChampion {
		t.Error("four adaptations should mark a remake champion")
	}
	w6, _ := works.ById(6)
	if w6.(*types.Work).IsRemakeChampion {
		t.Error("three adaptations is below the champion threshold")
	}
}

func TestLoadMediaBackfillsFilms(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	films, err := s.Load(ctx, types.Films)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.LoadMedia(ctx); err != nil {
		t.Fatalf("media load failed: %v", err)
	}

	f1, _ := films.ById(1)
	film := f1.(*types.Film)
	if !film.HasMedia {
		t.Error("film 1 has visible media")
	}
	if film.FeaturedMedia == nil || film.FeaturedMedia.ThumbnailUrl != "/t/1.jpg" {
		t.Errorf("expected featured thumbnail of the top ordered item, got %+v", film.FeaturedMedia)
	}

	items := s.MediaForFilm(1)
	if len(items) != 1 {
		t.Fatalf("hidden media should be dropped, got %d items", len(items))
	}

	f3, _ := films.ById(3)
	if f3.(*types.Film).HasMedia {
		t.Error("film without media entries should stay unflagged")
	}
}

func TestLoadMediaBeforeFilms(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	if err := s.LoadMedia(ctx); err != nil {
		t.Fatal(err)
	}
	films, err := s.Load(ctx, types.Films)
	if err != nil {
		t.Fatal(err)
	}
	f1, _ := films.ById(1)
	if !f1.(*types.Film).HasMedia {
		t.Error("media flags should apply regardless of load order")
	}
}

func TestLoadFailure(t *testing.T) {
	s := NewStore(&fakeSource{docs: map[string][]byte{}})
	_, err := s.Load(context.Background(), types.Works)
	var le *DataLoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *DataLoadError, got %v", err)
	}
	if le.Entity != types.Works {
		t.Errorf("unexpected entity %q", le.Entity)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Error("the wrapped cause should unwrap")
	}
}
