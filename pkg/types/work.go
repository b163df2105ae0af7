package types

import "strings"

// RemakeChampionThreshold marks works adapted four or more times.
const RemakeChampionThreshold = 4

// Work is one index record from the works collection.
type Work struct {
	Id        uint   `json:"id"`
	Title     string `json:"title"`
	HtmlTitle string `json:"html_title,omitempty"`
	Slug      string `json:"slug,omitempty"`

	AuthorId   uint   `json:"authorId,omitempty"`
	AuthorName string `json:"authorName,omitempty"`
	AuthorSlug string `json:"authorSlug,omitempty"`

	PublicationYear int    `json:"publicationYear,omitempty"`
	Genre           string `json:"genre,omitempty"`
	WorkType        string `json:"workType,omitempty"`

	AdaptationCount     int  `json:"adaptationCount"`
	FirstAdaptationYear int  `json:"firstAdaptationYear,omitempty"`
	IsRemakeChampion    bool `json:"isRemakeChampion,omitempty"`

	HasMagazinePublication FlexBool `json:"hasMagazinePublication,omitempty"`
	HasPhotoplayEdition    FlexBool `json:"hasPhotoplayEdition,omitempty"`

	SearchText string `json:"searchText,omitempty"`
}

func (w *Work) GetId() uint      { return w.Id }
func (w *Work) Kind() EntityType { return Works }

func (w *Work) GetSlug() string {
	if w.Slug != "" {
		return w.Slug
	}
	return Slugify(w.Title, 0)
}

func (w *Work) GetSearchText() string {
	if w.SearchText != "" {
		return w.SearchText
	}
	return strings.ToLower(w.Title + " " + w.AuthorName)
}
