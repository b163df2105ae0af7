package app

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/herhollywood/adaptations/pkg/common/jsoncompat"
	"github.com/herhollywood/adaptations/pkg/detail"
	"github.com/herhollywood/adaptations/pkg/router"
	"github.com/herhollywood/adaptations/pkg/store"
	"github.com/herhollywood/adaptations/pkg/types"
)

type fakeHistory struct {
	mu       sync.Mutex
	current  *url.URL
	pushes   int
	replaces int
}

func (h *fakeHistory) Push(href string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current, _ = url.Parse(href)
	h.pushes++
}

func (h *fakeHistory) Replace(href string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current, _ = url.Parse(href)
	h.replaces++
}

func (h *fakeHistory) Location() *url.URL {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

type fakeRenderer struct {
	mu      sync.Mutex
	lists   []ListView
	details []detail.Record
	errs    []error
}

func (r *fakeRenderer) RenderList(view ListView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists = append(r.lists, view)
}

func (r *fakeRenderer) RenderDetail(rec detail.Record, _ router.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.details = append(r.details, rec)
}

func (r *fakeRenderer) RenderError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *fakeRenderer) lastList(t *testing.T) ListView {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errs) > 0 {
		t.Fatalf("renderer saw errors: %v", r.errs)
	}
	if len(r.lists) == 0 {
		t.Fatal("no list was rendered")
	}
	return r.lists[len(r.lists)-1]
}

func (r *fakeRenderer) listCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lists)
}

type fakeSource struct {
	docs map[string][]byte
}

func (s *fakeSource) FetchDocument(ctx context.Context, path string) ([]byte, error) {
	data, ok := s.docs[path]
	if !ok {
		return nil, &store.NotFoundError{Path: path}
	}
	return data, nil
}

// testSource publishes 120 film records matching "pollyanna" plus a small
// authors collection.
func testSource(t *testing.T) *fakeSource {
	t.Helper()
	films := make([]map[string]any, 0, 120)
	for i := 0; i < 120; i++ {
		films = append(films, map[string]any{
			"id":         i + 1,
			"title":      fmt.Sprintf("Pollyanna %d", i+1),
			"year":       1900 + i%30,
			"searchText": fmt.Sprintf("pollyanna %d", i+1),
		})
	}
	filmsDoc, err := jsoncompat.Marshal(map[string]any{
		"metadata": map[string]any{"totalCount": len(films)},
		"films":    films,
	})
	if err != nil {
		t.Fatal(err)
	}
	authorsDoc, err := jsoncompat.Marshal(map[string]any{
		"metadata": map[string]any{"totalCount": 2},
		"authors": []map[string]any{
			{"id": 1, "name": "Eleanor H. Porter", "nationality": "American", "filmCount": 6},
			{"id": 2, "name": "Frances Hodgson Burnett", "nationality": "British", "filmCount": 13},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return &fakeSource{docs: map[string][]byte{
		"/data/database/films-index.min.json":   filmsDoc,
		"/data/database/authors-index.min.json": authorsDoc,
		"/data/database/film-media.json":        []byte(`{"media":[]}`),
	}}
}

func newTestController(t *testing.T, startURL string, opts Options) (*Controller, *fakeRenderer, *fakeHistory) {
	t.Helper()
	u, err := url.Parse(startURL)
	if err != nil {
		t.Fatal(err)
	}
	src := testSource(t)
	hist := &fakeHistory{current: u}
	urlSync := &router.Synchronizer{Loc: router.PathLocation{Base: "/database"}, Hist: hist}
	renderer := &fakeRenderer{}
	ctrl := NewController(store.NewStore(src), detail.NewResolver(src, nil), urlSync, renderer, opts)
	return ctrl, renderer, hist
}

func TestStartRestoresThroughPage(t *testing.T) {
	ctrl, renderer, hist := newTestController(t, "https://example.org/database/films?search=pollyanna&page=3", Options{})
	ctrl.Start(context.Background())

	view := renderer.lastList(t)
	if view.State.Page != 2 {
		t.Errorf("expected zero based page 2 from url page 3, got %d", view.State.Page)
	}
	if view.Showing != 120 || view.Total != 120 {
		t.Errorf("restore should show every page through the recorded one: showing %d of %d", view.Showing, view.Total)
	}
	if view.HasMore {
		t.Error("no more records should remain")
	}
	if hist.pushes != 0 {
		t.Errorf("restoring state must not push history entries, got %d", hist.pushes)
	}
}

func TestStartClampsPagePastEnd(t *testing.T) {
	ctrl, renderer, _ := newTestController(t, "https://example.org/database/films?page=9", Options{})
	ctrl.Start(context.Background())

	view := renderer.lastList(t)
	if view.State.Page != 0 {
		t.Errorf("page past the end should clamp to 0, got %d", view.State.Page)
	}
	if view.Showing != 50 {
		t.Errorf("expected one page of 50, got %d", view.Showing)
	}
}

func TestLoadMoreExtendsWindow(t *testing.T) {
	ctrl, renderer, _ := newTestController(t, "https://example.org/database/films", Options{})
	ctx := context.Background()
	ctrl.Start(ctx)

	if view := renderer.lastList(t); view.Showing != 50 || !view.HasMore {
		t.Fatalf("expected first window of 50 with more remaining, got %+v", view)
	}
	ctrl.LoadMore(ctx)
	if view := renderer.lastList(t); view.Showing != 100 {
		t.Errorf("second window should show 100, got %d", view.Showing)
	}
	ctrl.LoadMore(ctx)
	view := renderer.lastList(t)
	if view.Showing != 120 || view.HasMore {
		t.Errorf("final window should show all 120, got %+v", view)
	}

	renders := renderer.listCount()
	ctrl.LoadMore(ctx)
	if renderer.listCount() != renders {
		t.Error("load more past the end must be a no-op")
	}
}

func TestSwitchTabResetsFiltersKeepsSearch(t *testing.T) {
	ctrl, renderer, hist := newTestController(t, "https://example.org/database/films?search=pollyanna&year=1920s", Options{})
	ctx := context.Background()
	ctrl.Start(ctx)

	ctrl.SwitchTab(ctx, types.Authors)

	view := renderer.lastList(t)
	if view.State.Entity != types.Authors {
		t.Fatalf("expected authors tab, got %s", view.State.Entity)
	}
	if view.State.Search != "pollyanna" {
		t.Errorf("search should survive a tab switch, got %q", view.State.Search)
	}
	if len(view.State.Filters) != 0 {
		t.Errorf("filters must reset on tab switch, got %v", view.State.Filters)
	}
	if view.State.Sort != "name-asc" {
		t.Errorf("expected tab default sort, got %q", view.State.Sort)
	}
	if hist.pushes != 1 {
		t.Errorf("tab switch should push exactly one history entry, got %d", hist.pushes)
	}
}

func TestSetSearchDebounces(t *testing.T) {
	ctrl, renderer, _ := newTestController(t, "https://example.org/database/films", Options{SearchDelay: 10 * time.Millisecond})
	ctx := context.Background()
	ctrl.Start(ctx)
	renders := renderer.listCount()

	ctrl.SetSearch(ctx, "pol")
	ctrl.SetSearch(ctx, "polly")
	ctrl.SetSearch(ctx, "pollyanna 7")

	deadline := time.Now().Add(2 * time.Second)
	for renderer.listCount() == renders && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	view := renderer.lastList(t)
	if view.State.Search != "pollyanna 7" {
		t.Errorf("only the last query should render, got %q", view.State.Search)
	}
	if renderer.listCount() != renders+1 {
		t.Errorf("coalesced typing should render once, got %d extra renders", renderer.listCount()-renders)
	}
}

func TestSetSortRejectsForeignKey(t *testing.T) {
	ctrl, renderer, _ := newTestController(t, "https://example.org/database/films", Options{})
	ctx := context.Background()
	ctrl.Start(ctx)
	renders := renderer.listCount()

	ctrl.SetSort(ctx, "films-desc") // an authors key
	if renderer.listCount() != renders {
		t.Error("a sort key the tab does not offer must be ignored")
	}
	ctrl.SetSort(ctx, "year-desc")
	if view := renderer.lastList(t); view.State.Sort != "year-desc" {
		t.Errorf("expected year-desc, got %q", view.State.Sort)
	}
}

func TestOpenDetailPushesAndRenders(t *testing.T) {
	ctrl, renderer, hist := newTestController(t, "https://example.org/database/films", Options{})
	ctx := context.Background()
	ctrl.Start(ctx)

	src := testSource(t)
	src.docs["/data/database/film/pollyanna-1920.json"] = []byte(`{"id":1,"title":"Pollyanna","release_year":1920}`)
	// rebuild with the detail doc available
	hist2 := &fakeHistory{current: hist.Location()}
	urlSync := &router.Synchronizer{Loc: router.PathLocation{Base: "/database"}, Hist: hist2}
	ctrl = NewController(store.NewStore(src), detail.NewResolver(src, nil), urlSync, renderer, Options{})
	ctrl.Start(ctx)

	ctrl.OpenDetail(ctx, types.Films, "pollyanna-1920")

	renderer.mu.Lock()
	gotDetail := len(renderer.details)
	renderer.mu.Unlock()
	if gotDetail != 1 {
		t.Fatalf("expected one detail render, got %d", gotDetail)
	}
	if hist2.pushes != 1 {
		t.Errorf("detail navigation should push one entry, got %d", hist2.pushes)
	}
	if got := hist2.Location().Path; got != "/database/film/pollyanna-1920" {
		t.Errorf("unexpected detail url %q", got)
	}
}

type hookedSource struct {
	inner  *fakeSource
	onPath map[string]func()
}

func (s *hookedSource) FetchDocument(ctx context.Context, path string) ([]byte, error) {
	if fn, ok := s.onPath[path]; ok {
		fn()
	}
	return s.inner.FetchDocument(ctx, path)
}

func TestStaleDetailFetchNeverRenders(t *testing.T) {
	src := testSource(t)
	src.docs["/data/database/film/pollyanna-1920.json"] = []byte(`{"id":1,"title":"Pollyanna"}`)

	u, _ := url.Parse("https://example.org/database/films")
	hist := &fakeHistory{current: u}
	urlSync := &router.Synchronizer{Loc: router.PathLocation{Base: "/database"}, Hist: hist}
	renderer := &fakeRenderer{}

	hooked := &hookedSource{inner: src, onPath: map[string]func(){}}
	resolver := detail.NewResolver(hooked, nil)
	ctrl := NewController(store.NewStore(src), resolver, urlSync, renderer, Options{})
	ctx := context.Background()
	ctrl.Start(ctx)

	// the user clicks over to another tab while the detail fetch is in flight
	hooked.onPath["/data/database/film/pollyanna-1920.json"] = func() {
		ctrl.SwitchTab(ctx, types.Authors)
	}
	ctrl.OpenDetail(ctx, types.Films, "pollyanna-1920")

	renderer.mu.Lock()
	gotDetail := len(renderer.details)
	renderer.mu.Unlock()
	if gotDetail != 0 {
		t.Error("a detail response arriving after a route change must not render")
	}
	if !resolver.Cached(types.Films, "pollyanna-1920") {
		t.Error("the late response should still populate the cache")
	}
}

func TestBackNavigationRestoresList(t *testing.T) {
	ctrl, renderer, hist := newTestController(t, "https://example.org/database/films?page=2", Options{})
	ctx := context.Background()
	ctrl.Start(ctx)

	// simulate the browser going back to page 1
	hist.mu.Lock()
	hist.current, _ = url.Parse("https://example.org/database/films")
	hist.mu.Unlock()
	ctrl.HandleLocationChange(ctx)

	view := renderer.lastList(t)
	if view.State.Page != 0 || view.Showing != 50 {
		t.Errorf("back navigation should restore page 0 with 50 items, got page %d showing %d", view.State.Page, view.Showing)
	}
}
