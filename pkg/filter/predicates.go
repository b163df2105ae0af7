package filter

import (
	"slices"
	"strconv"
	"strings"

	"github.com/herhollywood/adaptations/pkg/types"
)

func matchFilm(f *types.Film, values Values) bool {
	if year := values.Get("year"); year != "" {
		if strings.HasSuffix(year, "s") {
			// decade token, "1920s" matches 1920-1929
			decade, err := strconv.Atoi(strings.TrimSuffix(year, "s"))
			if err != nil || f.ReleaseDecade() != decade {
				return false
			}
		} else {
			y, err := strconv.Atoi(year)
			if err != nil || f.Year != y {
				return false
			}
		}
	}
	if author := values.Get("author"); author != "" {
		id, err := strconv.Atoi(author)
		if err != nil || f.AuthorId != uint(id) {
			return false
		}
	}
	if studio := values.Get("studio"); studio != "" && f.Studio != studio {
		return false
	}
	if genre := values.Get("genre"); genre != "" && !slices.Contains(f.Genres, genre) {
		return false
	}
	switch values.Get("media") {
	case "with":
		if !f.HasMedia {
			return false
		}
	case "without":
		if f.HasMedia {
			return false
		}
	}
	return true
}

func matchAuthor(a *types.Author, values Values, dominant string) bool {
	switch values.Get("pattern") {
	case "twenty-timer":
		if a.FilmCount < types.TwentyTimerThreshold {
			return false
		}
	case "most-adapted":
		if a.FilmCount < types.MostAdaptedThreshold {
			return false
		}
	case "single-film":
		if a.FilmCount != 1 {
			return false
		}
	}
	if nat := values.Get("nationality"); nat != "" {
		if nat == "Other" {
			if a.Nationality == "" || a.Nationality == dominant {
				return false
			}
		} else if a.Nationality != nat {
			return false
		}
	}
	return true
}

func matchWork(w *types.Work, values Values) bool {
	if wt := values.Get("workType"); wt != "" && w.WorkType != wt {
		return false
	}
	if mag := values.Get("hasMagazine"); mag != "" {
		if mag == "true" && !w.HasMagazinePublication.Bool() {
			return false
		}
		if mag == "false" && w.HasMagazinePublication.Bool() {
			return false
		}
	}
	if pp := values.Get("hasPhotoplay"); pp != "" {
		if pp == "true" && !w.HasPhotoplayEdition.Bool() {
			return false
		}
		if pp == "false" && w.HasPhotoplayEdition.Bool() {
			return false
		}
	}
	if author := values.Get("author"); author != "" {
		id, err := strconv.Atoi(author)
		if err != nil || w.AuthorId != uint(id) {
			return false
		}
	}
	return true
}
