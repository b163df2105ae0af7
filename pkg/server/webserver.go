package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/herhollywood/adaptations/pkg/common"
	"github.com/herhollywood/adaptations/pkg/detail"
	"github.com/herhollywood/adaptations/pkg/filter"
	"github.com/herhollywood/adaptations/pkg/paging"
	"github.com/herhollywood/adaptations/pkg/router"
	"github.com/herhollywood/adaptations/pkg/sorting"
	"github.com/herhollywood/adaptations/pkg/store"
	"github.com/herhollywood/adaptations/pkg/tracking"
	"github.com/herhollywood/adaptations/pkg/types"
)

var (
	noListRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adaptations_list_requests_total",
		Help: "The total number of processed list requests",
	})
	noDetailRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adaptations_detail_requests_total",
		Help: "The total number of processed detail requests",
	})
	noDetailMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adaptations_detail_misses_total",
		Help: "The total number of detail requests for unknown slugs",
	})
)

// WebServer serves the browse API: list endpoints running the filter, sort
// and pagination pipeline plus detail endpoints backed by the resolver.
type WebServer struct {
	Store    *store.Store
	Details  *detail.Resolver
	Tracking tracking.Tracking
	BasePath string
	PageSize int
}

func (ws *WebServer) basePath() string {
	if ws.BasePath == "" {
		return "/database"
	}
	return ws.BasePath
}

func (ws *WebServer) pageSize() int {
	if ws.PageSize <= 0 {
		return paging.DefaultPageSize
	}
	return ws.PageSize
}

// ListResponse is the JSON body of a list request.
type ListResponse struct {
	Items     []types.Record      `json:"items"`
	Total     int                 `json:"total"`
	Showing   int                 `json:"showing"`
	Page      int                 `json:"page"`
	HasMore   bool                `json:"hasMore"`
	Canonical string              `json:"canonical"`
	Options   store.FilterOptions `json:"filterOptions,omitempty"`
	Meta      store.IndexMetadata `json:"metadata"`
}

// DetailResponse wraps a detail document together with its canonical URL.
type DetailResponse struct {
	Entity    types.EntityType  `json:"entity"`
	Canonical string            `json:"canonical"`
	Record    detail.Record     `json:"record"`
	Media     []types.MediaItem `json:"media,omitempty"`
}

type errorResponse struct {
	Error    string `json:"error"`
	BackLink string `json:"backLink,omitempty"`
}

// Handler returns the full route table of the browse API.
func (ws *WebServer) Handler() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(ws.basePath()+"/", common.JsonHandler(ws.Tracking, ws.handleBrowse))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// handleBrowse parses the request URL exactly like the client router and
// dispatches to the list or detail pipeline.
func (ws *WebServer) handleBrowse(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	loc := router.PathLocation{Base: ws.basePath()}
	path, query := loc.Extract(r.URL)
	state, ok := router.Parse(path, query)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		return enc.Encode(errorResponse{Error: "unknown route", BackLink: loc.Href(router.Serialize(router.DefaultState()))})
	}
	if state.Kind == router.DetailRoute {
		return ws.handleDetail(w, r, sessionId, enc, state)
	}
	return ws.handleList(w, r, sessionId, enc, state)
}

func (ws *WebServer) handleList(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder, state router.State) error {
	noListRequests.Inc()

	col, err := ws.Store.Load(r.Context(), state.Entity)
	if err != nil {
		return writeLoadError(w, enc, err)
	}
	if state.Entity == types.Films {
		// media flags only decorate the grid, ignore a missing document
		_ = ws.Store.LoadMedia(r.Context())
	}

	fctx := filter.Context{DominantNationality: col.DominantNationality}
	matched := filter.Apply(col.Records, state.Search, state.Filters, fctx)
	sorting.Apply(matched, state.Sort)

	size := ws.pageSize()
	state.Page = paging.Clamp(state.Page, size, len(matched))
	items := paging.Page(matched, state.Page, size)
	if items == nil {
		items = []types.Record{}
	}

	if ws.Tracking != nil {
		go ws.Tracking.TrackSearch(sessionId, state.Entity, state.Search, state.Filters, len(matched), state.Page, r)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, stale-while-revalidate=120")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(ListResponse{
		Items:     items,
		Total:     len(matched),
		Showing:   state.Page*size + len(items),
		Page:      state.Page,
		HasMore:   paging.HasMore(state.Page, size, len(matched)),
		Canonical: ws.basePath() + router.Serialize(state),
		Options:   col.FilterOptions,
		Meta:      col.Metadata,
	})
}

func (ws *WebServer) handleDetail(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder, state router.State) error {
	noDetailRequests.Inc()

	rec, err := ws.Details.Resolve(r.Context(), state.Entity, state.Slug)
	if err != nil {
		var nf *detail.NotFoundError
		if errors.As(err, &nf) {
			noDetailMisses.Inc()
			backState := router.DefaultState()
			backState.Entity = state.Entity
			backState.Sort = router.DefaultSort(state.Entity)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			return enc.Encode(errorResponse{
				Error:    nf.Error(),
				BackLink: router.PathLocation{Base: ws.basePath()}.Href(router.Serialize(backState)),
			})
		}
		return writeLoadError(w, enc, err)
	}

	var media []types.MediaItem
	if film, ok := rec.(*detail.FilmDetail); ok && len(film.Media) == 0 {
		if err := ws.Store.LoadMedia(r.Context()); err == nil {
			media = ws.Store.MediaForFilm(film.Id)
		}
	}

	if ws.Tracking != nil {
		go ws.Tracking.TrackDetailView(sessionId, state.Entity, state.Slug, r)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, stale-while-revalidate=120")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(DetailResponse{
		Entity:    state.Entity,
		Canonical: ws.basePath() + router.Serialize(state),
		Record:    rec,
		Media:     media,
	})
}

// writeLoadError maps upstream document failures onto 502 so callers can
// tell a broken data source from a bad request.
func writeLoadError(w http.ResponseWriter, enc *json.Encoder, err error) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	return enc.Encode(errorResponse{Error: err.Error()})
}
