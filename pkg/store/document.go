package store

import (
	"fmt"

	"github.com/herhollywood/adaptations/pkg/types"
)

// Document paths below the data base URL. The build step publishes one index
// document per entity type plus one media document for all films.
const (
	mediaDocumentPath = "/data/database/film-media.json"
)

func indexDocumentPath(entity types.EntityType) string {
	return fmt.Sprintf("/data/database/%s-index.min.json", entity)
}

// IndexMetadata is the summary block of an index document.
type IndexMetadata struct {
	TotalCount int    `json:"totalCount"`
	YearRange  []int  `json:"yearRange,omitempty"`
	Generated  string `json:"generated,omitempty"`
}

// FilterOption is one selectable value in a filter dropdown.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterOptions maps filter names to their selectable values, as published
// by the build (authors, studios, genres and so on).
type FilterOptions map[string][]FilterOption

// indexDocument is the wire shape of an index document; exactly one of the
// three record arrays is populated, matching the entity in the path.
type indexDocument struct {
	Metadata      IndexMetadata   `json:"metadata"`
	FilterOptions FilterOptions   `json:"filterOptions"`
	Films         []*types.Film   `json:"films,omitempty"`
	Authors       []*types.Author `json:"authors,omitempty"`
	Works         []*types.Work   `json:"works,omitempty"`
}

// mediaDocument associates film ids with their media items.
type mediaDocument struct {
	Media []types.MediaItem `json:"media"`
}
