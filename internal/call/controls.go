package call

import (
	"fmt"
	"time"

	"tgmusicbot/internal/chat"
	"tgmusicbot/internal/i18n"
)

// Callback payloads carried by the control keyboard.
const (
	DataSkip   = "play_skip"
	DataStop   = "play_stop"
	DataPause  = "play_pause"
	DataResume = "play_resume"
	DataClose  = "play_close"
	DataTimer  = "play_timer"
	DataQueue  = "play_c_queue_1"
)

// State selects which toggle the control keyboard shows.
type State int

const (
	// StatePlaying shows a pause button.
	StatePlaying State = iota
	// StatePaused shows a resume button.
	StatePaused
)

// ControlMarkup builds the playback control keyboard.
func ControlMarkup(l *i18n.Localizer, state State) chat.Markup {
	toggle := chat.Button{Text: l.T("button.pause"), Data: DataPause}
	if state == StatePaused {
		toggle = chat.Button{Text: l.T("button.resume"), Data: DataResume}
	}

	return chat.Markup{
		{
			toggle,
			{Text: l.T("button.skip"), Data: DataSkip},
			{Text: l.T("button.stop"), Data: DataStop},
		},
		{
			{Text: l.T("button.timer"), Data: DataTimer},
			{Text: l.T("button.queue"), Data: DataQueue},
			{Text: l.T("button.close"), Data: DataClose},
		},
	}
}

// FormatDuration renders d as m:ss, or h:mm:ss past an hour.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
