package handlers

import (
	"regexp"
	"strings"

	"tgmusicbot/internal/call"
)

// CallbackPattern matches the callback data this package handles.
var CallbackPattern = regexp.MustCompile(`^(c?play|lang)_\w+`)

const (
	// progressPrefix marks payloads owned by the progress sub-handler.
	progressPrefix = "play_c_"
	// languagePrefix marks language selection payloads.
	languagePrefix = "lang_"
)

// Action is the decoded kind of a callback payload.
type Action int

// Callback actions.
const (
	ActionInvalid Action = iota
	ActionSkip
	ActionStop
	ActionPause
	ActionResume
	ActionClose
	ActionTimer
	ActionProgress
	ActionSong
	ActionLanguage
)

var actionNames = map[Action]string{
	ActionInvalid:  "invalid",
	ActionSkip:     "skip",
	ActionStop:     "stop",
	ActionPause:    "pause",
	ActionResume:   "resume",
	ActionClose:    "close",
	ActionTimer:    "timer",
	ActionProgress: "progress",
	ActionSong:     "song",
	ActionLanguage: "language",
}

var controlActions = map[string]Action{
	call.DataSkip:   ActionSkip,
	call.DataStop:   ActionStop,
	call.DataPause:  ActionPause,
	call.DataResume: ActionResume,
	call.DataClose:  ActionClose,
	call.DataTimer:  ActionTimer,
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// RequiresAdmin reports whether only chat admins may trigger the action.
func (a Action) RequiresAdmin() bool {
	switch a {
	case ActionSkip, ActionStop, ActionPause, ActionResume, ActionClose:
		return true
	default:
		return false
	}
}

// RequiresActive reports whether the action needs a playback session.
func (a Action) RequiresActive() bool {
	switch a {
	case ActionSkip, ActionStop, ActionPause, ActionResume, ActionTimer:
		return true
	default:
		return false
	}
}

// Payload is decoded callback data.
type Payload struct {
	Action   Action
	Raw      string
	Platform string
	SongID   string
	Language string
}

// DecodePayload parses callback data of the forms play_<action>,
// play_c_<anything>, lang_<code> and [c]play_<platform>_<songId>.
func DecodePayload(data string) Payload {
	p := Payload{Action: ActionInvalid, Raw: data}
	if !CallbackPattern.MatchString(data) {
		return p
	}

	if action, ok := controlActions[data]; ok {
		p.Action = action
		return p
	}
	if strings.HasPrefix(data, progressPrefix) {
		p.Action = ActionProgress
		return p
	}
	if code, ok := strings.CutPrefix(data, languagePrefix); ok {
		p.Action = ActionLanguage
		p.Language = code
		return p
	}

	parts := strings.SplitN(data, "_", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return p
	}
	p.Action = ActionSong
	p.Platform = parts[1]
	p.SongID = parts[2]
	return p
}
