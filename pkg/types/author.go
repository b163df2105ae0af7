package types

import "strings"

// TwentyTimerThreshold is the film count that admits an author to the twenty
// timers club.
const TwentyTimerThreshold = 20

// MostAdaptedThreshold marks authors with ten or more adaptations.
const MostAdaptedThreshold = 10

// AuthorStats is the aggregate block embedded in author detail documents.
type AuthorStats struct {
	TotalFilms      int `json:"total_films"`
	WorksAdapted    int `json:"works_adapted"`
	FirstAdaptation int `json:"first_adaptation,omitempty"`
	LastAdaptation  int `json:"last_adaptation,omitempty"`
}

// Author is one index record from the authors collection.
type Author struct {
	Id                uint       `json:"id"`
	Name              string     `json:"name"`
	Slug              string     `json:"slug,omitempty"`
	BirthYear         int        `json:"birthYear,omitempty"`
	DeathYear         int        `json:"deathYear,omitempty"`
	Nationality       string     `json:"nationality,omitempty"`
	LiteraryMovement  string     `json:"literary_movement,omitempty"`
	BiographicalNotes string     `json:"biographical_notes,omitempty"`
	Occupations       StringList `json:"occupations,omitempty"`
	Themes            StringList `json:"themes,omitempty"`
	Associations      StringList `json:"associations,omitempty"`
	Archives          StringList `json:"archives,omitempty"`

	FilmCount     int  `json:"filmCount"`
	WorkCount     int  `json:"workCount,omitempty"`
	IsTwentyTimer bool `json:"isTwentyTimer,omitempty"`

	SearchText string `json:"searchText,omitempty"`
}

func (a *Author) GetId() uint      { return a.Id }
func (a *Author) Kind() EntityType { return Authors }

func (a *Author) GetSlug() string {
	if a.Slug != "" {
		return a.Slug
	}
	return Slugify(a.Name, 0)
}

func (a *Author) GetSearchText() string {
	if a.SearchText != "" {
		return a.SearchText
	}
	return strings.ToLower(a.Name)
}
