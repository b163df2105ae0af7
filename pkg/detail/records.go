package detail

import (
	"sort"

	"github.com/herhollywood/adaptations/pkg/types"
)

// Record is a fully joined detail document for one entity. All joins are
// precomputed by the data build; nothing is assembled at request time.
type Record interface {
	Kind() types.EntityType
	DisplayTitle() string
}

// FilmRef is a film reference embedded in other detail documents.
type FilmRef struct {
	Slug      string `json:"slug"`
	Title     string `json:"title,omitempty"`
	HtmlTitle string `json:"html_title,omitempty"`
	Year      int    `json:"year,omitempty"`
	Studio    string `json:"studio,omitempty"`
	Directors string `json:"directors,omitempty"`
}

// WorkRef is the source work block embedded in a film detail.
type WorkRef struct {
	Slug             string `json:"slug"`
	Title            string `json:"title,omitempty"`
	HtmlTitle        string `json:"html_title,omitempty"`
	PublicationYear  int    `json:"publication_year,omitempty"`
	YearToAdaptation *int   `json:"year_to_adaptation,omitempty"`
}

// AuthorRef is the author block embedded in film and work details.
type AuthorRef struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// WorkListItem is a work reference in an author detail.
type WorkListItem struct {
	Slug            string `json:"slug"`
	Title           string `json:"title,omitempty"`
	HtmlTitle       string `json:"html_title,omitempty"`
	PublicationYear int    `json:"publication_year,omitempty"`
	AdaptationCount int    `json:"adaptation_count,omitempty"`
}

// FilmDetail is the film detail document.
type FilmDetail struct {
	Id               uint              `json:"id"`
	Title            string            `json:"title"`
	HtmlTitle        string            `json:"html_title,omitempty"`
	Slug             string            `json:"slug,omitempty"`
	ReleaseYear      int               `json:"release_year,omitempty"`
	Studio           string            `json:"studio,omitempty"`
	RuntimeMinutes   int               `json:"runtime_minutes,omitempty"`
	Directors        string            `json:"directors,omitempty"`
	Writers          string            `json:"writers,omitempty"`
	CastMembers      string            `json:"cast_members,omitempty"`
	Genres           types.StringList  `json:"genres,omitempty"`
	SourceWork       *WorkRef          `json:"source_work,omitempty"`
	Author           *AuthorRef        `json:"author,omitempty"`
	OtherAdaptations []FilmRef         `json:"other_adaptations,omitempty"`
	Media            []types.MediaItem `json:"media,omitempty"`
}

func (d *FilmDetail) Kind() types.EntityType { return types.Films }
func (d *FilmDetail) DisplayTitle() string   { return d.Title }

// AuthorDetail is the author detail document.
type AuthorDetail struct {
	Id                uint              `json:"id"`
	Name              string            `json:"name"`
	Slug              string            `json:"slug,omitempty"`
	BirthYear         int               `json:"birth_year,omitempty"`
	DeathYear         int               `json:"death_year,omitempty"`
	Nationality       string            `json:"nationality,omitempty"`
	BiographicalNotes string            `json:"biographical_notes,omitempty"`
	Stats             types.AuthorStats `json:"stats"`
	AdaptedWorks      []WorkListItem    `json:"adapted_works,omitempty"`
	Films             []FilmRef         `json:"films,omitempty"`
}

func (d *AuthorDetail) Kind() types.EntityType { return types.Authors }
func (d *AuthorDetail) DisplayTitle() string   { return d.Name }

// MagazinePublication is the original magazine appearance of a work.
type MagazinePublication struct {
	MagazineTitle     string `json:"magazine_title"`
	MagazinePubDate   string `json:"magazine_pub_date,omitempty"`
	MagazineIssueInfo string `json:"magazine_issue_info,omitempty"`
	Serialized        bool   `json:"serialized,omitempty"`
	SerialParts       int    `json:"serial_parts,omitempty"`
	DigitizedUrl      string `json:"digitized_url,omitempty"`
	FMILink           string `json:"FMI_link,omitempty"`
}

// ExternalUrl is one reading link attached to a work, ordered by priority.
type ExternalUrl struct {
	Url      string `json:"url"`
	Source   string `json:"source"`
	Priority int    `json:"priority"`
}

// WorkStats is the aggregate block of a work detail.
type WorkStats struct {
	AdaptationCount            int     `json:"adaptation_count"`
	AverageGapBetweenAdaptions float64 `json:"average_gap_between_adaptations,omitempty"`
}

// WorkDetail is the work detail document.
type WorkDetail struct {
	Id                   uint                 `json:"id"`
	Title                string               `json:"title"`
	HtmlTitle            string               `json:"html_title,omitempty"`
	Slug                 string               `json:"slug,omitempty"`
	WorkType             string               `json:"work_type,omitempty"`
	PublicationYear      int                  `json:"publication_year,omitempty"`
	PlotSummary          string               `json:"plot_summary,omitempty"`
	LiterarySignificance string               `json:"literary_significance,omitempty"`
	Author               *AuthorRef           `json:"author,omitempty"`
	MagazinePublication  *MagazinePublication `json:"magazine_publication,omitempty"`
	ExternalUrls         []ExternalUrl        `json:"external_urls,omitempty"`
	HasPhotoplayEdition  types.FlexBool       `json:"has_photoplay_edition,omitempty"`
	Stats                WorkStats            `json:"stats"`
	Adaptations          []FilmRef            `json:"adaptations,omitempty"`
	AdaptationGaps       []int                `json:"adaptation_gaps,omitempty"`
}

func (d *WorkDetail) Kind() types.EntityType { return types.Works }
func (d *WorkDetail) DisplayTitle() string   { return d.Title }

// ReadingLinks orders the external urls by priority and applies the display
// rules: Project Gutenberg and Internet Archive always appear, Open Library
// only when there is no Internet Archive link, WorldCat only when nothing
// else qualifies.
func (d *WorkDetail) ReadingLinks() []ExternalUrl {
	if len(d.ExternalUrls) == 0 {
		return nil
	}
	sorted := make([]ExternalUrl, len(d.ExternalUrls))
	copy(sorted, d.ExternalUrls)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

	hasInternetArchive := false
	for _, u := range sorted {
		if u.Source == "Internet Archive" {
			hasInternetArchive = true
		}
	}

	out := make([]ExternalUrl, 0, len(sorted))
	for _, u := range sorted {
		switch u.Source {
		case "Project Gutenberg", "Internet Archive":
			out = append(out, u)
		case "Open Library":
			if !hasInternetArchive {
				out = append(out, u)
			}
		}
	}
	if len(out) == 0 {
		for _, u := range sorted {
			if u.Source == "WorldCat" {
				out = append(out, u)
			}
		}
	}
	return out
}
