package handlers

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		data     string
		action   Action
		platform string
		songID   string
		language string
	}{
		{data: "play_skip", action: ActionSkip},
		{data: "play_stop", action: ActionStop},
		{data: "play_pause", action: ActionPause},
		{data: "play_resume", action: ActionResume},
		{data: "play_close", action: ActionClose},
		{data: "play_timer", action: ActionTimer},
		{data: "play_c_queue_2", action: ActionProgress},
		{data: "play_youtube_dQw4w9WgXcQ", action: ActionSong, platform: "youtube", songID: "dQw4w9WgXcQ"},
		{data: "cplay_spotify_4uLU6hMC", action: ActionSong, platform: "spotify", songID: "4uLU6hMC"},
		{data: "play_youtube_a_b-c", action: ActionSong, platform: "youtube", songID: "a_b-c"},
		{data: "lang_ch_be", action: ActionLanguage, language: "ch_be"},
		{data: "lang_xx", action: ActionLanguage, language: "xx"},
		{data: "lang_", action: ActionInvalid},
		{data: "cplay_skip", action: ActionInvalid},
		{data: "play_youtube", action: ActionInvalid},
		{data: "play__123", action: ActionInvalid},
		{data: "play_", action: ActionInvalid},
		{data: "xplay_skip", action: ActionInvalid},
		{data: "", action: ActionInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			p := DecodePayload(tt.data)
			if p.Action != tt.action || p.Platform != tt.platform || p.SongID != tt.songID || p.Language != tt.language {
				t.Errorf("DecodePayload(%q) = %+v", tt.data, p)
			}
			if p.Raw != tt.data {
				t.Errorf("Raw = %q, expected %q", p.Raw, tt.data)
			}
		})
	}
}

func TestActionRequirements(t *testing.T) {
	tests := []struct {
		action Action
		admin  bool
		active bool
	}{
		{ActionSkip, true, true},
		{ActionStop, true, true},
		{ActionPause, true, true},
		{ActionResume, true, true},
		{ActionClose, true, false},
		{ActionTimer, false, true},
		{ActionProgress, false, false},
		{ActionSong, false, false},
		{ActionLanguage, false, false},
		{ActionInvalid, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			if got := tt.action.RequiresAdmin(); got != tt.admin {
				t.Errorf("RequiresAdmin = %v, expected %v", got, tt.admin)
			}
			if got := tt.action.RequiresActive(); got != tt.active {
				t.Errorf("RequiresActive = %v, expected %v", got, tt.active)
			}
		})
	}
}

func TestDecodePayloadProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("song payloads round-trip platform and id", prop.ForAll(
		func(platform, id string) bool {
			p := DecodePayload("cplay_" + platform + "_" + id)
			return p.Action == ActionSong && p.Platform == platform && p.SongID == id
		},
		gen.RegexMatch(`^[a-z]{2,10}$`),
		gen.RegexMatch(`^[A-Za-z0-9_-]{1,20}$`),
	))

	properties.Property("data without a known prefix is invalid", prop.ForAll(
		func(data string) bool {
			if strings.HasPrefix(data, "play_") || strings.HasPrefix(data, "cplay_") || strings.HasPrefix(data, "lang_") {
				return true
			}
			return DecodePayload(data).Action == ActionInvalid
		},
		gen.AnyString(),
	))

	properties.Property("decoded song fields are never empty", prop.ForAll(
		func(data string) bool {
			p := DecodePayload(data)
			if p.Action != ActionSong {
				return true
			}
			return p.Platform != "" && p.SongID != ""
		},
		gen.RegexMatch(`^c?play(_[a-z0-9]{0,4}){0,3}$`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
