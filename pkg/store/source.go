package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// DocumentSource fetches the read only data documents the build step
// publishes. Implementations report *NotFoundError for missing documents so
// callers can distinguish a bad slug from a broken fetch.
type DocumentSource interface {
	FetchDocument(ctx context.Context, path string) ([]byte, error)
}

// NotFoundError marks a document that does not exist (HTTP 404).
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document not found: %s", e.Path)
}

// HTTPSource loads documents by URL below a base like
// https://example.org/adapted-from-women.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func (s *HTTPSource) FetchDocument(ctx context.Context, path string) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{Path: path}
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", path, res.Status)
	}
	return io.ReadAll(res.Body)
}
