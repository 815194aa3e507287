// Package musiclink turns platform track IDs into shareable URLs and fetches song metadata for them.
package musiclink

import (
	"context"
	"errors"
	"time"
)

// ErrUnsupportedURL is returned when no provider recognises a URL.
var ErrUnsupportedURL = errors.New("no resolver found for URL")

// Song holds metadata about a playable track.
type Song struct {
	ID        string
	Title     string
	Artist    string
	URL       string
	Platform  string
	Thumbnail string
	Duration  time.Duration
}

// DisplayName returns "Artist - Title", or just the title when the artist is unknown.
func (s *Song) DisplayName() string {
	if s.Artist == "" {
		return s.Title
	}
	return s.Artist + " - " + s.Title
}

// Resolver fetches song metadata for a URL. A nil song with a nil error
// means the provider had nothing for the URL.
type Resolver interface {
	GetInfo(ctx context.Context, url string) (*Song, error)
}
