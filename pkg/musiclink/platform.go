package musiclink

import (
	"net/url"
	"strings"
)

// Platform names as they appear in callback payloads.
const (
	PlatformYouTube    = "youtube"
	PlatformSpotify    = "spotify"
	PlatformSoundCloud = "soundcloud"
	PlatformTidal      = "tidal"
)

var platformURLFormats = map[string]string{
	PlatformYouTube:    "https://www.youtube.com/watch?v=",
	PlatformSpotify:    "https://open.spotify.com/track/",
	PlatformSoundCloud: "https://api.soundcloud.com/tracks/",
	PlatformTidal:      "https://tidal.com/browse/track/",
}

// PlatformURL builds the shareable URL for a track ID on a platform.
func PlatformURL(platform, id string) (string, bool) {
	prefix, ok := platformURLFormats[strings.ToLower(platform)]
	if !ok || id == "" {
		return "", false
	}
	return prefix + url.PathEscape(id), true
}
