package sorting

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/herhollywood/adaptations/pkg/types"
)

// collator is shared; collate.Collator is not safe for concurrent use so
// comparisons take the lock.
var (
	collatorMu sync.Mutex
	collator   = collate.New(language.English, collate.Loose)
)

func compareStrings(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// ParseKey splits a "field-direction" sort key. Direction defaults to asc.
func ParseKey(key string) (field string, descending bool) {
	if i := strings.LastIndex(key, "-"); i >= 0 {
		return key[:i], key[i+1:] == "desc"
	}
	return key, false
}

// Apply orders records in place by the given sort key. String fields use
// locale aware comparison. Numeric fields with a missing value sort to the
// end in BOTH directions; this boundary rule is deliberate and load bearing
// for the year columns. An unknown field leaves the input order untouched.
func Apply(records []types.Record, key string) {
	field, desc := ParseKey(key)

	switch field {
	case "title", "name", "author":
		sort.SliceStable(records, func(i, j int) bool {
			c := compareStrings(stringField(records[i], field), stringField(records[j], field))
			if desc {
				return c > 0
			}
			return c < 0
		})
	case "year", "films", "adaptations":
		sort.SliceStable(records, func(i, j int) bool {
			a, aok := numericField(records[i], field)
			b, bok := numericField(records[j], field)
			if aok != bok {
				return aok // present values always precede missing ones
			}
			if !aok {
				return false
			}
			if desc {
				return a > b
			}
			return a < b
		})
	default:
		// unknown sort field is a no-op, not an error
	}
}

func stringField(r types.Record, field string) string {
	switch rec := r.(type) {
	case *types.Film:
		switch field {
		case "title":
			return rec.Title
		case "author":
			return rec.AuthorName
		}
	case *types.Author:
		switch field {
		case "title", "name":
			return rec.Name
		}
	case *types.Work:
		switch field {
		case "title":
			return rec.Title
		case "author":
			return rec.AuthorName
		}
	}
	return ""
}

func numericField(r types.Record, field string) (int, bool) {
	switch rec := r.(type) {
	case *types.Film:
		if field == "year" {
			return rec.Year, rec.Year > 0
		}
	case *types.Author:
		if field == "films" {
			return rec.FilmCount, true
		}
	case *types.Work:
		switch field {
		case "year":
			return rec.PublicationYear, rec.PublicationYear > 0
		case "adaptations":
			return rec.AdaptationCount, true
		}
	}
	return 0, false
}
