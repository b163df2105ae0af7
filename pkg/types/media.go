package types

import "sort"

const defaultDisplayOrder = 999

// MediaItem is one row of the film media document. Booleans and numbers
// arrive string encoded from the source data and are coerced on decode.
type MediaItem struct {
	FilmId       FlexInt  `json:"film_id"`
	MediaType    string   `json:"media_type,omitempty"`
	Url          string   `json:"url,omitempty"`
	ThumbnailUrl string   `json:"thumbnail_url,omitempty"`
	Caption      string   `json:"caption,omitempty"`
	Source       string   `json:"source,omitempty"`
	Attribution  string   `json:"attribution,omitempty"`
	License      string   `json:"license,omitempty"`
	QualityScore FlexInt  `json:"quality_score,omitempty"`
	DisplayOrder *FlexInt `json:"display_order,omitempty"`
	IsFeatured   FlexBool `json:"is_featured,omitempty"`
	IsHidden     FlexBool `json:"is_hidden,omitempty"`
	Verified     FlexBool `json:"verified,omitempty"`
}

func (m *MediaItem) displayOrder() int {
	if m.DisplayOrder == nil {
		return defaultDisplayOrder
	}
	return m.DisplayOrder.Int()
}

// VisibleMedia drops hidden items and orders the rest for the gallery:
// featured first, then by quality score descending, then by display order.
// Hidden items are excluded here, at load time, not per query.
func VisibleMedia(items []MediaItem) []MediaItem {
	visible := make([]MediaItem, 0, len(items))
	for _, m := range items {
		if !m.IsHidden.Bool() {
			visible = append(visible, m)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if a.IsFeatured != b.IsFeatured {
			return a.IsFeatured.Bool()
		}
		if a.QualityScore != b.QualityScore {
			return a.QualityScore > b.QualityScore
		}
		return a.displayOrder() < b.displayOrder()
	})
	return visible
}
