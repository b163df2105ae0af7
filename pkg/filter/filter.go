package filter

import (
	"strings"

	"github.com/herhollywood/adaptations/pkg/types"
)

// Values maps filter names to their active value. An absent or empty value
// means the predicate is always true. The search term travels separately so
// it survives tab switches while entity specific keys are reset.
type Values map[string]string

func (v Values) Get(key string) string {
	if v == nil {
		return ""
	}
	return v[key]
}

func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Keys lists the entity specific filter names for a tab, in the order they
// are presented (and serialized into the URL).
func Keys(entity types.EntityType) []string {
	switch entity {
	case types.Films:
		return []string{"year", "author", "studio", "genre", "media"}
	case types.Authors:
		return []string{"pattern", "nationality"}
	case types.Works:
		return []string{"workType", "hasMagazine", "hasPhotoplay", "author"}
	}
	return nil
}

// Context carries collection level facts some predicates depend on.
type Context struct {
	// DominantNationality is the single most common nationality in the
	// loaded author collection; the "Other" filter matches everything else.
	DominantNationality string
}

// Apply returns the records satisfying the search term and every active
// filter value. Predicates compose with AND and the result order follows the
// input order. Pure: the input slice is never mutated.
func Apply(records []types.Record, search string, values Values, ctx Context) []types.Record {
	out := make([]types.Record, 0, len(records))
	term := strings.ToLower(strings.TrimSpace(search))
	for _, r := range records {
		if term != "" && !strings.Contains(strings.ToLower(r.GetSearchText()), term) {
			continue
		}
		if Match(r, values, ctx) {
			out = append(out, r)
		}
	}
	return out
}

// Match reports whether a single record satisfies all active filter values.
// Malformed filter values or record fields count as "no match" for that
// predicate, never an error.
func Match(r types.Record, values Values, ctx Context) bool {
	switch rec := r.(type) {
	case *types.Film:
		return matchFilm(rec, values)
	case *types.Author:
		return matchAuthor(rec, values, ctx.DominantNationality)
	case *types.Work:
		return matchWork(rec, values)
	}
	return true
}
