package musiclink

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Manager resolves song metadata across all supported platforms.
type Manager struct {
	client    *http.Client
	providers []*provider
}

// NewManager creates a manager with every supported provider.
func NewManager() *Manager {
	return &Manager{
		client:    newHTTPClient(),
		providers: defaultProviders(),
	}
}

func (m *Manager) providerFor(rawURL string) (*provider, *url.URL) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, nil
	}
	for _, p := range m.providers {
		if p.matches(u) {
			return p, u
		}
	}
	return nil, nil
}

// GetInfo fetches song metadata for rawURL.
func (m *Manager) GetInfo(ctx context.Context, rawURL string) (*Song, error) {
	p, u := m.providerFor(rawURL)
	if p == nil {
		return nil, ErrUnsupportedURL
	}

	resp, err := fetchOEmbed(ctx, m.client, p.endpoint, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s metadata: %w", p.platform, err)
	}
	if resp == nil {
		return nil, nil
	}

	title, artist := p.split(resp)
	return &Song{
		ID:        p.trackID(u),
		Title:     title,
		Artist:    artist,
		URL:       rawURL,
		Platform:  p.platform,
		Thumbnail: resp.ThumbnailURL,
	}, nil
}
