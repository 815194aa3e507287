package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"tgmusicbot/internal/call"
	"tgmusicbot/internal/chat"
	"tgmusicbot/pkg/musiclink"
)

const controlMessageID = 77

func (f *fixture) press(userID int64, data string) *chat.Callback {
	cb := &chat.Callback{
		ID:        "cb-1",
		ChatID:    groupChat,
		MessageID: controlMessageID,
		Data:      data,
		From:      chat.User{ID: userID},
		Message:   &chat.Message{ID: controlMessageID, ChatID: groupChat, Text: "now playing", IsGroup: true},
	}
	f.handlers.HandleCallback(context.Background(), cb)
	return cb
}

func (f *fixture) expectAlert(t *testing.T, expected string) {
	t.Helper()
	answer, ok := f.frontend.LastAnswer()
	if !ok {
		t.Fatal("expected a callback answer")
	}
	if answer.Text != expected || !answer.Alert {
		t.Errorf("answer = %+v, expected alert %q", answer, expected)
	}
}

func (f *fixture) expectNoOps(t *testing.T) {
	t.Helper()
	if len(f.calls.ops) != 0 {
		t.Errorf("expected no call-control operations, got %v", f.calls.ops)
	}
}

func TestCallbackLookupFailures(t *testing.T) {
	t.Run("message lookup", func(t *testing.T) {
		f := newFixture(t)
		f.seed(groupChat, 1)
		f.frontend.GetMessageErr = errBoom

		f.press(adminID, call.DataSkip)

		if len(f.frontend.Answers) != 0 || len(f.frontend.Edits) != 0 {
			t.Error("lookup failure must abort silently")
		}
		f.expectNoOps(t)
	})

	t.Run("user lookup", func(t *testing.T) {
		f := newFixture(t)
		f.seed(groupChat, 1)

		f.press(12345, call.DataSkip)

		if len(f.frontend.Answers) != 0 {
			t.Error("lookup failure must abort silently")
		}
		f.expectNoOps(t)
	})
}

func TestCallbackPermissions(t *testing.T) {
	for _, data := range []string{call.DataSkip, call.DataStop, call.DataPause, call.DataResume, call.DataClose} {
		t.Run(data, func(t *testing.T) {
			f := newFixture(t)
			f.seed(groupChat, 1)

			f.press(memberID, data)

			f.expectAlert(t, f.l.T("error.admin_required"))
			f.expectNoOps(t)
			if len(f.frontend.Deleted) != 0 {
				t.Error("nothing may be deleted")
			}
			if f.admins.loads != 1 {
				t.Errorf("admin cache loaded %d times", f.admins.loads)
			}
		})
	}
}

func TestCallbackRequiresActiveSession(t *testing.T) {
	for _, data := range []string{call.DataSkip, call.DataStop, call.DataPause, call.DataResume, call.DataTimer} {
		t.Run(data, func(t *testing.T) {
			f := newFixture(t)

			f.press(adminID, data)

			f.expectAlert(t, f.l.T("playback.not_active"))
			f.expectNoOps(t)
		})
	}
}

func TestCallbackSkip(t *testing.T) {
	f := newFixture(t)
	f.seed(groupChat, 2)

	f.press(adminID, call.DataSkip)

	if f.calls.count("play_next") != 1 {
		t.Fatalf("play_next ran %d times", f.calls.count("play_next"))
	}
	edit, ok := f.frontend.LastEdit()
	if !ok || edit.Text != f.l.T("playback.skipped") {
		t.Errorf("edit = %+v", edit)
	}
	if len(f.frontend.Deleted) != 1 || f.frontend.Deleted[0].MessageID != controlMessageID {
		t.Errorf("control message should be deleted, got %v", f.frontend.Deleted)
	}
}

func TestCallbackSkipFailure(t *testing.T) {
	f := newFixture(t)
	f.seed(groupChat, 2)
	f.calls.errs["play_next"] = errBoom

	f.press(adminID, call.DataSkip)

	f.expectAlert(t, f.l.T("callback.playback_error", "boom"))
	if len(f.frontend.Deleted) != 0 || len(f.frontend.Edits) != 0 {
		t.Error("failed skip must not touch the message")
	}
	if len(f.metrics.errors) != 1 || f.metrics.errors[0] != "play_next" {
		t.Errorf("call errors = %v", f.metrics.errors)
	}
}

func TestCallbackStop(t *testing.T) {
	f := newFixture(t)
	f.seed(groupChat, 2)

	f.press(ownerID, call.DataStop)

	if f.calls.count("end") != 1 {
		t.Fatalf("end ran %d times", f.calls.count("end"))
	}
	edit, _ := f.frontend.LastEdit()
	if edit.Text != f.l.T("playback.stopped_by", f.frontend.Users[ownerID].Mention()) {
		t.Errorf("edit text = %q", edit.Text)
	}

	f.calls.errs["end"] = errBoom
	f.press(ownerID, call.DataStop)
	f.expectAlert(t, f.l.T("callback.stop_failed", "boom"))
}

func TestCallbackPauseResumeMarkup(t *testing.T) {
	tests := []struct {
		data     string
		op       string
		key      string
		toggle   string
		buttons  bool
		pressing int64
	}{
		{data: call.DataPause, op: "pause", key: "playback.paused_by", toggle: call.DataResume, buttons: true, pressing: adminID},
		{data: call.DataPause, op: "pause", key: "playback.paused_by", buttons: false, pressing: ownerID},
		{data: call.DataResume, op: "resume", key: "playback.resumed_by", toggle: call.DataPause, buttons: true, pressing: ownerID},
		{data: call.DataResume, op: "resume", key: "playback.resumed_by", buttons: false, pressing: adminID},
	}

	for _, tt := range tests {
		name := tt.op
		if !tt.buttons {
			name += " without buttons"
		}
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.seed(groupChat, 1)
			f.settings.buttons[groupChat] = tt.buttons

			f.press(tt.pressing, tt.data)

			if f.calls.count(tt.op) != 1 {
				t.Fatalf("%s ran %d times", tt.op, f.calls.count(tt.op))
			}
			edit, ok := f.frontend.LastEdit()
			if !ok {
				t.Fatal("expected an edit")
			}
			if edit.Text != f.l.T(tt.key, f.frontend.Users[tt.pressing].Mention()) {
				t.Errorf("edit text = %q", edit.Text)
			}
			if !tt.buttons {
				if edit.Markup != nil {
					t.Errorf("expected no markup, got %v", edit.Markup)
				}
				return
			}
			if len(edit.Markup) == 0 || edit.Markup[0][0].Data != tt.toggle {
				t.Errorf("expected control markup with %q toggle, got %v", tt.toggle, edit.Markup)
			}
		})
	}
}

func TestCallbackPauseFailure(t *testing.T) {
	f := newFixture(t)
	f.seed(groupChat, 1)
	f.calls.errs["pause"] = errBoom

	f.press(adminID, call.DataPause)

	f.expectAlert(t, f.l.T("callback.pause_failed", "boom"))
	if len(f.frontend.Edits) != 0 {
		t.Error("failed pause must not edit the message")
	}
}

func TestCallbackClose(t *testing.T) {
	f := newFixture(t)

	f.press(adminID, call.DataClose)

	f.expectAlert(t, f.l.T("callback.close_success"))
	if len(f.frontend.Deleted) != 1 || f.frontend.Deleted[0].MessageID != controlMessageID {
		t.Errorf("deleted = %v", f.frontend.Deleted)
	}

	f.frontend.DeleteErr = errBoom
	f.press(adminID, call.DataClose)
	f.expectAlert(t, f.l.T("callback.close_failed", "boom"))
}

func TestCallbackTimer(t *testing.T) {
	f := newFixture(t)
	f.seed(groupChat, 1)
	f.calls.elapsed = 65 * time.Second

	f.press(memberID, call.DataTimer)

	f.expectAlert(t, f.l.T("playback.timer", "Track 1", "1:05", "3:00"))
}

func TestCallbackInvalidPayload(t *testing.T) {
	for _, data := range []string{"play_", "cplay_skip", "play_youtube", "cplay_x_"} {
		t.Run(data, func(t *testing.T) {
			f := newFixture(t)
			f.seed(groupChat, 3)

			f.press(adminID, data)

			f.expectAlert(t, f.l.T("callback.invalid_request"))
			f.expectNoOps(t)
			if f.queue.QueueLength(groupChat) != 3 {
				t.Error("queue must not change")
			}
		})
	}
}

func TestCallbackProgressDelegates(t *testing.T) {
	f := newFixture(t)
	f.seed(groupChat, 12)

	f.press(memberID, "play_c_queue_2")

	edit, ok := f.frontend.LastEdit()
	if !ok {
		t.Fatal("expected the queue page")
	}
	text, _ := RenderPage(f.l, f.queue.GetQueue(groupChat), 2)
	if edit.Text != text {
		t.Errorf("edit = %q, expected %q", edit.Text, text)
	}
}

func TestCallbackSong(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		song     *musiclink.Song
		err      error
		playErr  error
		expected func(f *fixture) string
		played   bool
	}{
		{
			name:     "unsupported platform",
			data:     "cplay_napster_123",
			expected: func(f *fixture) string { return f.l.T("error.unsupported_platform", "napster") },
		},
		{
			name:     "resolver error",
			data:     "play_youtube_dQw4w9WgXcQ",
			err:      errors.New("timeout"),
			expected: func(f *fixture) string { return f.l.T("error.retrieval", "timeout") },
		},
		{
			name:     "no content",
			data:     "play_youtube_dQw4w9WgXcQ",
			expected: func(f *fixture) string { return f.l.T("error.content_not_found") },
		},
		{
			name:     "play failure",
			data:     "play_spotify_4uLU6hMCjMI75M1A2tKUQC",
			song:     &musiclink.Song{ID: "4uLU6hMCjMI75M1A2tKUQC", Title: "Song"},
			playErr:  errBoom,
			expected: func(f *fixture) string { return f.l.T("callback.playback_error", "boom") },
		},
		{
			name:     "plays",
			data:     "cplay_youtube_dQw4w9WgXcQ",
			song:     &musiclink.Song{ID: "dQw4w9WgXcQ", Title: "Song"},
			expected: func(f *fixture) string { return f.l.T("callback.searching", "User3") },
			played:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.resolver.song = tt.song
			f.resolver.err = tt.err
			if tt.playErr != nil {
				f.calls.errs["play"] = tt.playErr
			}

			f.press(memberID, tt.data)

			if len(f.frontend.Answers) == 0 || f.frontend.Answers[0].Text != f.l.T("callback.preparing", "User3") {
				t.Errorf("expected preparing alert first, got %v", f.frontend.Answers)
			}
			edit, _ := f.frontend.LastEdit()
			if edit.Text != tt.expected(f) {
				t.Errorf("last edit = %q, expected %q", edit.Text, tt.expected(f))
			}
			if got := len(f.calls.played) == 1; got != tt.played {
				t.Errorf("played = %v, expected %v", got, tt.played)
			}
		})
	}
}

func TestCallbackSongEditFailureAborts(t *testing.T) {
	f := newFixture(t)
	f.frontend.EditErr = errBoom
	f.resolver.song = &musiclink.Song{ID: "x", Title: "Song"}

	f.press(memberID, "play_youtube_dQw4w9WgXcQ")

	if len(f.resolver.urls) != 0 {
		t.Error("resolver must not run when the searching edit fails")
	}
}

func TestCallbackThrottled(t *testing.T) {
	f := newFixture(t)
	f.seed(groupChat, 2)
	f.handlers.limiter = &fakeLimiter{allow: false}

	f.press(adminID, call.DataSkip)

	f.expectAlert(t, f.l.T("error.slow_down"))
	f.expectNoOps(t)
}

func TestCallbackMetrics(t *testing.T) {
	f := newFixture(t)
	f.seed(groupChat, 2)

	f.press(adminID, call.DataSkip)
	f.press(memberID, call.DataSkip)

	expected := []recordedMetric{{"skip", outcomeOK}, {"skip", outcomeDenied}}
	if len(f.metrics.callbacks) != len(expected) {
		t.Fatalf("callbacks = %v", f.metrics.callbacks)
	}
	for i := range expected {
		if f.metrics.callbacks[i] != expected[i] {
			t.Errorf("callback metric %d = %v, expected %v", i, f.metrics.callbacks[i], expected[i])
		}
	}
	if f.metrics.observed["callback"] != 2 {
		t.Errorf("observed %d callback durations, expected 2", f.metrics.observed["callback"])
	}
}
