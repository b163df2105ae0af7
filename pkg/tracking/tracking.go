package tracking

import (
	"net/http"

	"github.com/herhollywood/adaptations/pkg/filter"
	"github.com/herhollywood/adaptations/pkg/types"
)

// Tracking receives anonymous browse analytics. A nil Tracking is valid and
// means analytics are disabled.
type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackSearch(sessionId string, entity types.EntityType, query string, filters filter.Values, results int, page int, r *http.Request)
	TrackDetailView(sessionId string, entity types.EntityType, slug string, r *http.Request)
}
