package types

// EntityType identifies one of the three top level collections.
type EntityType string

const (
	Films   EntityType = "films"
	Authors EntityType = "authors"
	Works   EntityType = "works"
)

// Record is implemented by all list records regardless of entity type.
type Record interface {
	GetId() uint
	GetSlug() string
	GetSearchText() string
	Kind() EntityType
}

func (e EntityType) Valid() bool {
	return e == Films || e == Authors || e == Works
}

// Singular returns the path segment used for detail routes (/film/<slug>).
func (e EntityType) Singular() string {
	switch e {
	case Films:
		return "film"
	case Authors:
		return "author"
	case Works:
		return "work"
	}
	return string(e)
}

// EntityFromSingular maps a detail path segment back to its collection.
func EntityFromSingular(s string) (EntityType, bool) {
	switch s {
	case "film":
		return Films, true
	case "author":
		return Authors, true
	case "work":
		return Works, true
	}
	return "", false
}
