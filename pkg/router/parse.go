package router

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"

	"github.com/herhollywood/adaptations/pkg/filter"
	"github.com/herhollywood/adaptations/pkg/types"
)

type listQuery struct {
	Search string `schema:"search"`
	Sort   string `schema:"sort"`
	Page   int    `schema:"page"`
	View   string `schema:"view"`
}

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// Parse derives a State from an app relative path plus query values. The
// second return value is false for unrecognized path shapes; the caller
// falls back to the films list with replace navigation.
func Parse(path string, query url.Values) (State, bool) {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })

	switch len(segments) {
	case 0:
		return parseList(types.Films, query), true
	case 1:
		entity := types.EntityType(segments[0])
		if !entity.Valid() {
			return DefaultState(), false
		}
		return parseList(entity, query), true
	case 2:
		entity, ok := types.EntityFromSingular(segments[0])
		if !ok {
			return DefaultState(), false
		}
		slug, err := url.PathUnescape(segments[1])
		if err != nil || slug == "" {
			return DefaultState(), false
		}
		return State{Kind: DetailRoute, Entity: entity, Slug: slug}, true
	}
	return DefaultState(), false
}

func parseList(entity types.EntityType, query url.Values) State {
	var q listQuery
	// decode errors (a non numeric page, say) leave the zero values in place
	_ = queryDecoder.Decode(&q, query)

	state := State{
		Kind:    ListRoute,
		Entity:  entity,
		Search:  q.Search,
		Sort:    q.Sort,
		View:    ListView,
		Filters: filter.Values{},
	}
	// the URL carries one based page numbers
	if q.Page > 1 {
		state.Page = q.Page - 1
	}
	if q.View == GridView {
		state.View = GridView
	}
	if !ValidSort(entity, state.Sort) {
		state.Sort = DefaultSort(entity)
	}
	for _, key := range filter.Keys(entity) {
		if v := query.Get(key); v != "" {
			state.Filters[key] = v
		}
	}
	return state
}

// Serialize renders a State into its canonical app relative URL. The output
// is deterministic: defaults are omitted and keys appear in a fixed order,
// so an unchanged state always serializes to the identical string.
func Serialize(s State) string {
	if s.Kind == DetailRoute {
		return "/" + s.Entity.Singular() + "/" + url.PathEscape(s.Slug)
	}

	var b strings.Builder
	b.WriteByte('/')
	b.WriteString(string(s.Entity))

	params := make([]string, 0, 4+len(s.Filters))
	appendParam := func(key, value string) {
		if value != "" {
			params = append(params, key+"="+url.QueryEscape(value))
		}
	}
	appendParam("search", s.Search)
	if s.Sort != DefaultSort(s.Entity) {
		appendParam("sort", s.Sort)
	}
	if s.Page > 0 {
		params = append(params, "page="+strconv.Itoa(s.Page+1))
	}
	if s.View == GridView {
		appendParam("view", s.View)
	}
	for _, key := range filter.Keys(s.Entity) {
		appendParam(key, s.Filters.Get(key))
	}

	if len(params) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(params, "&"))
	}
	return b.String()
}
