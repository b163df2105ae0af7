package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/herhollywood/adaptations/pkg/common"
	"github.com/herhollywood/adaptations/pkg/detail"
	"github.com/herhollywood/adaptations/pkg/filter"
	"github.com/herhollywood/adaptations/pkg/paging"
	"github.com/herhollywood/adaptations/pkg/router"
	"github.com/herhollywood/adaptations/pkg/sorting"
	"github.com/herhollywood/adaptations/pkg/store"
	"github.com/herhollywood/adaptations/pkg/types"
)

// DefaultSearchDelay matches the debounce used on the search input.
const DefaultSearchDelay = 300 * time.Millisecond

// ListView is everything a list render needs: the accumulated result window
// plus the counters the header shows.
type ListView struct {
	State         router.State
	Items         []types.Record
	Total         int
	Showing       int
	HasMore       bool
	FilterOptions store.FilterOptions
}

// Renderer receives view updates from the controller. Implementations draw a
// UI or, in tests, record what they were asked to draw.
type Renderer interface {
	RenderList(view ListView)
	RenderDetail(rec detail.Record, state router.State)
	RenderError(err error)
}

// Controller owns the navigation state and drives the filter, sort and
// pagination pipeline. All mutation goes through its methods; the URL is kept
// in sync after every change.
type Controller struct {
	mu       sync.Mutex
	state    router.State
	store    *store.Store
	details  *detail.Resolver
	sync     *router.Synchronizer
	renderer Renderer
	debounce *common.Debouncer
	pageSize int
	total    int // matched records in the last list render
}

type Options struct {
	PageSize    int
	SearchDelay time.Duration
}

func NewController(st *store.Store, details *detail.Resolver, sync *router.Synchronizer, renderer Renderer, opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = paging.DefaultPageSize
	}
	if opts.SearchDelay == 0 {
		opts.SearchDelay = DefaultSearchDelay
	}
	return &Controller{
		state:    router.DefaultState(),
		store:    st,
		details:  details,
		sync:     sync,
		renderer: renderer,
		debounce: common.NewDebouncer(opts.SearchDelay),
		pageSize: opts.PageSize,
	}
}

// State returns a snapshot of the current navigation state.
func (c *Controller) State() router.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start resolves the initial state from the URL and renders it. Unrecognized
// URLs fall back to the default films list.
func (c *Controller) Start(ctx context.Context) {
	state, ok := c.sync.Resolve()
	if !ok {
		state = router.DefaultState()
	}
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
	c.apply(ctx, state)
}

// apply renders a state and writes it back to the URL. Detail states resolve
// their document first; a stale check before rendering drops results the user
// has already navigated away from.
func (c *Controller) apply(ctx context.Context, state router.State) {
	if state.Kind == router.DetailRoute {
		c.applyDetail(ctx, state)
		return
	}
	c.applyList(ctx, state)
}

func (c *Controller) applyList(ctx context.Context, state router.State) {
	col, err := c.store.Load(ctx, state.Entity)
	if err != nil {
		c.renderer.RenderError(err)
		return
	}
	if state.Entity == types.Films {
		// Media flags are cosmetic; a failed load only degrades the grid.
		if err := c.store.LoadMedia(ctx); err != nil {
			log.Printf("media document unavailable: %v", err)
		}
	}

	fctx := filter.Context{DominantNationality: col.DominantNationality}
	matched := filter.Apply(col.Records, state.Search, state.Filters, fctx)
	sorting.Apply(matched, state.Sort)

	state.Page = paging.Clamp(state.Page, c.pageSize, len(matched))
	items := paging.Through(matched, state.Page, c.pageSize)

	c.mu.Lock()
	if !sameRoute(c.state, state) {
		// The user navigated elsewhere while this list was loading.
		c.mu.Unlock()
		return
	}
	c.state = state
	c.total = len(matched)
	c.mu.Unlock()

	c.renderer.RenderList(ListView{
		State:         state,
		Items:         items,
		Total:         len(matched),
		Showing:       len(items),
		HasMore:       paging.HasMore(state.Page, c.pageSize, len(matched)),
		FilterOptions: col.FilterOptions,
	})
	c.sync.Update(state)
}

func (c *Controller) applyDetail(ctx context.Context, state router.State) {
	rec, err := c.details.Resolve(ctx, state.Entity, state.Slug)
	if err != nil {
		c.renderer.RenderError(err)
		return
	}

	c.mu.Lock()
	stale := !sameRoute(c.state, state)
	c.mu.Unlock()
	if stale {
		return
	}
	c.renderer.RenderDetail(rec, state)
	c.sync.Update(state)
}

func sameRoute(a, b router.State) bool {
	return a.Kind == b.Kind && a.Entity == b.Entity && a.Slug == b.Slug
}

// mutateList takes the current list state, applies fn and re-renders. Detail
// states are first collapsed to the entity's list.
func (c *Controller) mutateList(ctx context.Context, fn func(s *router.State)) {
	c.mu.Lock()
	state := c.state
	if state.Kind == router.DetailRoute {
		state = router.DefaultState()
		state.Entity = c.state.Entity
		state.Sort = router.DefaultSort(state.Entity)
	}
	fn(&state)
	c.state = state
	c.mu.Unlock()
	c.apply(ctx, state)
}

// SetSearch updates the search query after the debounce delay, so one render
// happens per pause in typing rather than per keystroke.
func (c *Controller) SetSearch(ctx context.Context, query string) {
	c.debounce.Do(func() {
		c.SearchNow(ctx, query)
	})
}

// SearchNow applies a search query immediately, bypassing the debounce.
func (c *Controller) SearchNow(ctx context.Context, query string) {
	c.mutateList(ctx, func(s *router.State) {
		s.Search = query
		s.Page = 0
	})
}

func (c *Controller) ClearSearch(ctx context.Context) {
	c.debounce.Stop()
	c.SearchNow(ctx, "")
}

// SetFilter sets one filter value; an empty value removes the key. Any filter
// change resets pagination.
func (c *Controller) SetFilter(ctx context.Context, key, value string) {
	c.mutateList(ctx, func(s *router.State) {
		filters := s.Filters.Clone()
		if value == "" {
			delete(filters, key)
		} else {
			filters[key] = value
		}
		s.Filters = filters
		s.Page = 0
	})
}

func (c *Controller) ClearFilters(ctx context.Context) {
	c.mutateList(ctx, func(s *router.State) {
		s.Filters = filter.Values{}
		s.Page = 0
	})
}

// SetSort changes the sort key. Keys the current tab does not offer are
// ignored.
func (c *Controller) SetSort(ctx context.Context, key string) {
	c.mu.Lock()
	valid := router.ValidSort(c.state.Entity, key)
	c.mu.Unlock()
	if !valid {
		return
	}
	c.mutateList(ctx, func(s *router.State) {
		s.Sort = key
		s.Page = 0
	})
}

func (c *Controller) SwitchView(ctx context.Context, view string) {
	if view != router.ListView && view != router.GridView {
		return
	}
	c.mutateList(ctx, func(s *router.State) {
		s.View = view
	})
}

// LoadMore extends the visible window by one page. No-op when everything is
// already showing.
func (c *Controller) LoadMore(ctx context.Context) {
	c.mu.Lock()
	state := c.state
	total := c.total
	c.mu.Unlock()
	if state.Kind != router.ListRoute || !paging.HasMore(state.Page, c.pageSize, total) {
		return
	}
	c.mutateList(ctx, func(s *router.State) {
		s.Page++
	})
}

// SwitchTab navigates to another entity list. Filters and sort reset to the
// tab's defaults; the search query carries over. Tab switches push a history
// entry so back returns to the previous tab.
func (c *Controller) SwitchTab(ctx context.Context, entity types.EntityType) {
	if !entity.Valid() {
		return
	}
	c.mu.Lock()
	state := router.DefaultState()
	state.Entity = entity
	state.Sort = router.DefaultSort(entity)
	state.Search = c.state.Search
	state.View = c.state.View
	c.state = state
	c.mu.Unlock()

	c.sync.Navigate(state)
	c.apply(ctx, state)
}

// OpenDetail navigates to an entity's detail page with a history push.
func (c *Controller) OpenDetail(ctx context.Context, entity types.EntityType, slug string) {
	if !entity.Valid() || slug == "" {
		return
	}
	c.mu.Lock()
	state := router.State{Kind: router.DetailRoute, Entity: entity, Slug: slug}
	c.state = state
	c.mu.Unlock()

	c.sync.Navigate(state)
	c.applyDetail(ctx, state)
}

// HandleLocationChange re-resolves state from the URL after back or forward
// navigation. Restored list states render every page up to the recorded one
// so the user lands where they left off.
func (c *Controller) HandleLocationChange(ctx context.Context) {
	state, ok := c.sync.Resolve()
	if !ok {
		state = router.DefaultState()
	}
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
	c.apply(ctx, state)
}

// Close stops any pending debounced search.
func (c *Controller) Close() {
	c.debounce.Stop()
}
