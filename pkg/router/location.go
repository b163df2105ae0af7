package router

import (
	"net/url"
	"strings"
)

// Location translates between browser URLs and app relative paths. Two
// adapters exist: path based (history API style) and hash based for static
// hosting without rewrite rules. Parsing and serialization of the state
// itself is shared; only the URL carrier differs.
type Location interface {
	// Extract returns the app relative path and its query values.
	Extract(u *url.URL) (string, url.Values)
	// Href renders a serialized state (path plus encoded query) into the
	// form the browser address bar carries.
	Href(pathAndQuery string) string
}

// PathLocation keeps the app path in the URL pathname, below Base
// (e.g. "/database").
type PathLocation struct {
	Base string
}

func (l PathLocation) Extract(u *url.URL) (string, url.Values) {
	path := u.Path
	if l.Base != "" {
		// the base segment may be nested below a host prefix
		if idx := strings.Index(path, l.Base); idx >= 0 {
			path = path[idx+len(l.Base):]
		}
	}
	if path == "" {
		path = "/"
	}
	return path, u.Query()
}

func (l PathLocation) Href(pathAndQuery string) string {
	if pathAndQuery == "/" {
		return l.Base
	}
	return l.Base + pathAndQuery
}

// HashLocation keeps the app path in the URL fragment: /database/#/films?page=2.
type HashLocation struct {
	Base string
}

func (l HashLocation) Extract(u *url.URL) (string, url.Values) {
	frag := u.Fragment
	if frag == "" {
		return "/", url.Values{}
	}
	path, rawQuery, _ := strings.Cut(frag, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	if path == "" {
		path = "/"
	}
	return path, query
}

func (l HashLocation) Href(pathAndQuery string) string {
	return l.Base + "/#" + pathAndQuery
}
