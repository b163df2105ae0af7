package types

import "strings"

// FeaturedMedia is the poster thumbnail embedded in film index records.
type FeaturedMedia struct {
	ThumbnailUrl string `json:"thumbnailUrl,omitempty"`
	Caption      string `json:"caption,omitempty"`
}

// Film is one index record from the films collection. The index document is
// pre joined by the data build, so author and source work fields arrive
// denormalized.
type Film struct {
	Id             uint       `json:"id"`
	Title          string     `json:"title"`
	HtmlTitle      string     `json:"html_title,omitempty"`
	Slug           string     `json:"slug,omitempty"`
	Year           int        `json:"year,omitempty"`
	Decade         int        `json:"decade,omitempty"`
	Studio         string     `json:"studio,omitempty"`
	Directors      string     `json:"directors,omitempty"`
	Writers        string     `json:"writers,omitempty"`
	CastMembers    string     `json:"cast_members,omitempty"`
	RuntimeMinutes int        `json:"runtime_minutes,omitempty"`
	Country        string     `json:"country,omitempty"`
	Language       string     `json:"language,omitempty"`
	Genres         StringList `json:"genres,omitempty"`
	AdaptationType string     `json:"adaptation_type,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	ImdbId         string     `json:"imdb_id,omitempty"`
	AfiCatalogId   string     `json:"afi_catalog_id,omitempty"`

	AuthorId   uint   `json:"authorId,omitempty"`
	AuthorName string `json:"authorName,omitempty"`
	AuthorSlug string `json:"authorSlug,omitempty"`
	WorkId     uint   `json:"workId,omitempty"`
	WorkTitle  string `json:"workTitle,omitempty"`
	WorkSlug   string `json:"workSlug,omitempty"`

	HasMedia      bool           `json:"hasMedia,omitempty"`
	IsRemake      bool           `json:"isRemake,omitempty"`
	FeaturedMedia *FeaturedMedia `json:"featuredMedia,omitempty"`

	SearchText string `json:"searchText,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

func (f *Film) GetId() uint      { return f.Id }
func (f *Film) Kind() EntityType { return Films }

// GetSlug returns the stored slug, deriving it from title and year when the
// build did not supply one. Empty when the film has no title.
func (f *Film) GetSlug() string {
	if f.Slug != "" {
		return f.Slug
	}
	return Slugify(f.Title, f.Year)
}

func (f *Film) GetSearchText() string {
	if f.SearchText != "" {
		return f.SearchText
	}
	return strings.ToLower(strings.Join([]string{f.Title, f.AuthorName, f.Studio, f.Directors}, " "))
}

// DirectorNames splits the pipe delimited directors field.
func (f *Film) DirectorNames() []string { return SplitPipe(f.Directors) }

// WriterNames splits the pipe delimited writers field.
func (f *Film) WriterNames() []string { return SplitPipe(f.Writers) }

// CastNames splits the pipe delimited cast field.
func (f *Film) CastNames() []string { return SplitPipe(f.CastMembers) }

// ReleaseDecade returns the decade start year (1924 -> 1920), zero when the
// release year is unknown.
func (f *Film) ReleaseDecade() int {
	if f.Decade > 0 {
		return f.Decade
	}
	if f.Year > 0 {
		return f.Year / 10 * 10
	}
	return 0
}
