package musiclink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"
)

const (
	// defaultHTTPTimeout is the default timeout for oEmbed requests.
	defaultHTTPTimeout = 10 * time.Second
	// maxHTTPRedirects is the maximum number of HTTP redirects to follow.
	maxHTTPRedirects = 3
	// expectedSplitParts is the expected number of parts when splitting title/artist strings.
	expectedSplitParts = 2
)

// ErrTooManyRedirects is returned when too many redirects are encountered.
var ErrTooManyRedirects = errors.New("too many redirects")

// titleNoise matches video-specific decorations in YouTube titles.
var titleNoise = regexp.MustCompile(`(?i)\s*[\(\[](official (music )?video|official audio|lyric video|lyrics|hd|4k)[\)\]]`)

// oEmbedResponse is the subset of the oEmbed schema we read.
type oEmbedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// provider describes one oEmbed-capable platform.
type provider struct {
	platform string
	hosts    []string
	endpoint string
	trackID  func(u *url.URL) string
	split    func(resp *oEmbedResponse) (title, artist string)
}

func (p *provider) matches(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	for _, h := range p.hosts {
		if host == h {
			return true
		}
	}
	return false
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: defaultHTTPTimeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxHTTPRedirects {
				return ErrTooManyRedirects
			}
			return nil
		},
	}
}

func lastPathSegment(u *url.URL) string {
	return path.Base(strings.TrimSuffix(u.Path, "/"))
}

func youTubeID(u *url.URL) string {
	if strings.EqualFold(u.Hostname(), "youtu.be") {
		return strings.Trim(u.Path, "/")
	}
	return u.Query().Get("v")
}

// splitDash reads "Artist - Title" YouTube titles, falling back to the channel name.
func splitDash(resp *oEmbedResponse) (title, artist string) {
	cleaned := strings.TrimSpace(titleNoise.ReplaceAllString(resp.Title, ""))
	if parts := strings.SplitN(cleaned, " - ", expectedSplitParts); len(parts) == expectedSplitParts {
		return strings.TrimSpace(parts[1]), strings.TrimSpace(parts[0])
	}
	return cleaned, strings.TrimSuffix(resp.AuthorName, " - Topic")
}

// splitBy reads SoundCloud's "Title by Artist" titles.
func splitBy(resp *oEmbedResponse) (title, artist string) {
	if parts := strings.SplitN(resp.Title, " by ", expectedSplitParts); len(parts) == expectedSplitParts {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(resp.Title), strings.TrimSpace(resp.AuthorName)
}

func plainTitle(resp *oEmbedResponse) (title, artist string) {
	return strings.TrimSpace(resp.Title), strings.TrimSpace(resp.AuthorName)
}

func defaultProviders() []*provider {
	return []*provider{
		{
			platform: PlatformYouTube,
			hosts:    []string{"youtube.com", "www.youtube.com", "m.youtube.com", "music.youtube.com", "youtu.be"},
			endpoint: "https://www.youtube.com/oembed",
			trackID:  youTubeID,
			split:    splitDash,
		},
		{
			platform: PlatformSpotify,
			hosts:    []string{"open.spotify.com"},
			endpoint: "https://open.spotify.com/oembed",
			trackID:  lastPathSegment,
			split:    plainTitle,
		},
		{
			platform: PlatformSoundCloud,
			hosts:    []string{"soundcloud.com", "www.soundcloud.com", "m.soundcloud.com", "api.soundcloud.com"},
			endpoint: "https://soundcloud.com/oembed",
			trackID:  lastPathSegment,
			split:    splitBy,
		},
		{
			platform: PlatformTidal,
			hosts:    []string{"tidal.com", "www.tidal.com", "listen.tidal.com"},
			endpoint: "https://oembed.tidal.com/",
			trackID:  lastPathSegment,
			split:    plainTitle,
		},
	}
}

// fetchOEmbed fetches metadata for target from an oEmbed endpoint. A 404
// yields (nil, nil): the provider knows nothing about the URL.
func fetchOEmbed(ctx context.Context, client *http.Client, endpoint, target string) (*oEmbedResponse, error) {
	reqURL := fmt.Sprintf("%s?url=%s&format=json", endpoint, url.QueryEscape(target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusUnauthorized, http.StatusForbidden:
		return nil, nil
	default:
		return nil, fmt.Errorf("oEmbed API returned status %d", resp.StatusCode)
	}

	var out oEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode oEmbed response: %w", err)
	}
	if out.Title == "" {
		return nil, nil
	}
	return &out, nil
}
