package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestSettings(t *testing.T) *Settings {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestDefaultsForUnknownChat(t *testing.T) {
	s := openTestSettings(t)
	ctx := context.Background()

	buttons, err := s.GetButtonsStatus(ctx, -100)
	if err != nil || !buttons {
		t.Errorf("GetButtonsStatus = %v, %v; expected true, nil", buttons, err)
	}

	thumb, err := s.GetThumbnailStatus(ctx, -100)
	if err != nil || !thumb {
		t.Errorf("GetThumbnailStatus = %v, %v; expected true, nil", thumb, err)
	}

	lang, err := s.GetChatLanguage(ctx, -100)
	if err != nil || lang != "" {
		t.Errorf("GetChatLanguage = %q, %v; expected empty", lang, err)
	}
}

func TestToggleSettings(t *testing.T) {
	s := openTestSettings(t)
	ctx := context.Background()
	const chatID int64 = -1001

	tests := []struct {
		name string
		set  func(bool) error
		get  func() (bool, error)
	}{
		{
			name: "buttons",
			set:  func(v bool) error { return s.SetButtonsStatus(ctx, chatID, v) },
			get:  func() (bool, error) { return s.GetButtonsStatus(ctx, chatID) },
		},
		{
			name: "thumbnail",
			set:  func(v bool) error { return s.SetThumbnailStatus(ctx, chatID, v) },
			get:  func() (bool, error) { return s.GetThumbnailStatus(ctx, chatID) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range []bool{false, true, false} {
				if err := tt.set(want); err != nil {
					t.Fatalf("set(%v) failed: %v", want, err)
				}
				got, err := tt.get()
				if err != nil {
					t.Fatalf("get failed: %v", err)
				}
				if got != want {
					t.Errorf("got %v, expected %v", got, want)
				}
			}
		})
	}
}

func TestSettingsAreIndependent(t *testing.T) {
	s := openTestSettings(t)
	ctx := context.Background()

	if err := s.SetButtonsStatus(ctx, -1, false); err != nil {
		t.Fatal(err)
	}

	thumb, _ := s.GetThumbnailStatus(ctx, -1)
	if !thumb {
		t.Error("disabling buttons must not disable thumbnails")
	}
	other, _ := s.GetButtonsStatus(ctx, -2)
	if !other {
		t.Error("settings leaked to another chat")
	}
}

func TestReopenKeepsKnownChats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetThumbnailStatus(ctx, -42, false); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	thumb, err := s.GetThumbnailStatus(ctx, -42)
	if err != nil {
		t.Fatal(err)
	}
	if thumb {
		t.Error("thumbnail setting lost after reopen")
	}
}

func TestChatActivity(t *testing.T) {
	s := openTestSettings(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.UpdateChatActivity(ctx, -1); err != nil {
		t.Fatal(err)
	}
	now = now.Add(48 * time.Hour)
	if err := s.UpdateChatActivity(ctx, -2); err != nil {
		t.Fatal(err)
	}

	var first, second int64
	if err := s.db.QueryRowContext(ctx, `SELECT last_activity FROM chats WHERE chat_id = -1`).Scan(&first); err != nil {
		t.Fatal(err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT last_activity FROM chats WHERE chat_id = -2`).Scan(&second); err != nil {
		t.Fatal(err)
	}
	if second != now.Unix() || second-first != int64((48*time.Hour).Seconds()) {
		t.Errorf("last_activity = %d, %d; expected %d apart ending at %d", first, second, int64((48 * time.Hour).Seconds()), now.Unix())
	}

	if err := s.SetChatLanguage(ctx, -2, "de"); err != nil {
		t.Fatal(err)
	}
	lang, _ := s.GetChatLanguage(ctx, -2)
	if lang != "de" {
		t.Errorf("GetChatLanguage = %q, expected de", lang)
	}
}
