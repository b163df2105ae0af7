package router

import (
	"slices"

	"github.com/herhollywood/adaptations/pkg/filter"
	"github.com/herhollywood/adaptations/pkg/types"
)

// RouteKind distinguishes list views from single entity detail views.
type RouteKind int

const (
	ListRoute RouteKind = iota
	DetailRoute
)

// View modes for list routes.
const (
	ListView = "list"
	GridView = "grid"
)

// State is the full navigation state of the application. It is the only
// thing the URL encodes and is therefore shareable and bookmarkable.
type State struct {
	Kind   RouteKind
	Entity types.EntityType
	Slug   string // detail routes only

	Search  string
	Sort    string
	Page    int // zero based; the URL carries it one based
	View    string
	Filters filter.Values // entity specific keys only
}

// DefaultState is the films list with the tab's default sort.
func DefaultState() State {
	return State{
		Kind:    ListRoute,
		Entity:  types.Films,
		Sort:    DefaultSort(types.Films),
		View:    ListView,
		Filters: filter.Values{},
	}
}

// SortKeys lists the sort options offered per tab, default first.
func SortKeys(entity types.EntityType) []string {
	switch entity {
	case types.Films:
		return []string{"year-asc", "year-desc", "title-asc", "title-desc", "author-asc"}
	case types.Authors:
		return []string{"name-asc", "name-desc", "films-desc", "films-asc"}
	case types.Works:
		return []string{"title-asc", "title-desc", "author-asc", "year-desc", "year-asc", "adaptations-desc"}
	}
	return nil
}

// DefaultSort is the sort key a tab starts with.
func DefaultSort(entity types.EntityType) string {
	keys := SortKeys(entity)
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// ValidSort reports whether a sort key is offered on the given tab.
func ValidSort(entity types.EntityType, key string) bool {
	return slices.Contains(SortKeys(entity), key)
}
