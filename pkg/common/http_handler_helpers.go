package common

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/herhollywood/adaptations/pkg/tracking"
)

// JsonHandler wraps a handler with OPTIONS handling, the session cookie and
// a ready JSON encoder. Handler errors are logged, not surfaced; the handler
// is expected to have written its own error response.
func JsonHandler(trk tracking.Tracking, fn func(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)

		if err := fn(w, r, sessionId, json.NewEncoder(w)); err != nil {
			log.Printf("error handling %s: %v", r.URL.Path, err)
		}
	}
}

// RespondToOptions answers CORS preflight requests.
func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if origin := r.Header.Get("Origin"); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.WriteHeader(http.StatusAccepted)
}
