package router

import "net/url"

// History is the browser history collaborator. Push adds a history entry,
// Replace rewrites the current one, Location reports the current URL.
// Back/forward navigation is delivered to the application out of band (the
// controller re-resolves state from Location when notified).
type History interface {
	Push(href string)
	Replace(href string)
	Location() *url.URL
}

// Synchronizer binds application state to the browser URL through a Location
// adapter and a History. It owns no state itself; it translates.
type Synchronizer struct {
	Loc  Location
	Hist History
}

// Resolve derives the state encoded in the current URL. The second return
// value is false when the URL has an unrecognized shape.
func (s *Synchronizer) Resolve() (State, bool) {
	path, query := s.Loc.Extract(s.Hist.Location())
	return Parse(path, query)
}

// Href renders a state into the URL form the browser carries.
func (s *Synchronizer) Href(state State) string {
	return s.Loc.Href(Serialize(state))
}

// Update re-serializes state into the URL with replace semantics. It is
// idempotent: when the current URL already encodes the same state nothing is
// written, so repeated calls never create redundant history churn.
func (s *Synchronizer) Update(state State) {
	if current, ok := s.Resolve(); ok && Serialize(current) == Serialize(state) {
		return
	}
	s.Hist.Replace(s.Href(state))
}

// Navigate pushes a new history entry for the state. Used for tab switches
// and detail navigation; everything else goes through Update.
func (s *Synchronizer) Navigate(state State) {
	s.Hist.Push(s.Href(state))
}
