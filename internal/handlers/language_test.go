package handlers

import (
	"context"
	"strings"
	"testing"

	"tgmusicbot/internal/chat"
	"tgmusicbot/internal/i18n"
)

func TestLanguageCommand(t *testing.T) {
	tests := []struct {
		name    string
		chatID  int64
		user    int64
		picker  bool
		replied string
	}{
		{name: "member in group rejected", chatID: groupChat, user: memberID, replied: "error.admin_required"},
		{name: "admin in group", chatID: groupChat, user: adminID, picker: true},
		{name: "private chat", chatID: privateChat, user: memberID, picker: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.command(tt.chatID, tt.user, "/language")

			sent, ok := f.frontend.LastSent()
			if !ok {
				t.Fatal("expected a message")
			}
			if !tt.picker {
				f.expectReply(t, f.l.T(tt.replied))
				return
			}
			if len(sent.Markup) != len(i18n.GetSupportedLanguages()) {
				t.Fatalf("picker has %d rows, expected one per language", len(sent.Markup))
			}
			if sent.Markup[0][0].Data != "lang_"+i18n.DefaultLanguage || !strings.HasPrefix(sent.Markup[0][0].Text, "✅") {
				t.Errorf("current language should be marked first, got %+v", sent.Markup[0][0])
			}
			if !strings.Contains(sent.Text, i18n.DisplayName(i18n.DefaultLanguage)) {
				t.Errorf("picker text %q should name the current language", sent.Text)
			}
		})
	}
}

func TestLanguageCallback(t *testing.T) {
	t.Run("admin changes group language", func(t *testing.T) {
		f := newFixture(t)

		f.press(adminID, "lang_"+i18n.BerneseGermanMessages)

		if f.settings.langs[groupChat] != i18n.BerneseGermanMessages {
			t.Fatalf("stored language = %q", f.settings.langs[groupChat])
		}
		chosen := i18n.NewLocalizer(i18n.BerneseGermanMessages)
		f.expectAlert(t, chosen.T("language.changed", i18n.DisplayName(i18n.BerneseGermanMessages)))

		edit, ok := f.frontend.LastEdit()
		if !ok || !strings.HasPrefix(edit.Text, chosen.T("language.title")) {
			t.Fatalf("picker should be redrawn in the new language, got %+v", edit)
		}
		if !strings.HasPrefix(edit.Markup[1][0].Text, "✅") {
			t.Errorf("new language should be marked, got %+v", edit.Markup)
		}
	})

	t.Run("member rejected in group", func(t *testing.T) {
		f := newFixture(t)

		f.press(memberID, "lang_"+i18n.BerneseGermanMessages)

		f.expectAlert(t, f.l.T("error.admin_required"))
		if _, ok := f.settings.langs[groupChat]; ok {
			t.Error("language must not change")
		}
	})

	t.Run("unsupported code", func(t *testing.T) {
		f := newFixture(t)

		f.press(adminID, "lang_xx")

		f.expectAlert(t, f.l.T("callback.invalid_request"))
		if _, ok := f.settings.langs[groupChat]; ok {
			t.Error("language must not change")
		}
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)
		f.settings.setErr = errBoom

		f.press(adminID, "lang_"+i18n.DefaultLanguage)

		f.expectAlert(t, f.l.T("language.failed"))
		if len(f.metrics.errors) != 1 || f.metrics.errors[0] != "set_language" {
			t.Errorf("call errors = %v", f.metrics.errors)
		}
	})

	t.Run("private chat skips admin checks", func(t *testing.T) {
		f := newFixture(t)
		cb := &chat.Callback{
			ID:        "cb-2",
			ChatID:    privateChat,
			MessageID: 5,
			Data:      "lang_" + i18n.BerneseGermanMessages,
			From:      chat.User{ID: memberID},
			Message:   &chat.Message{ID: 5, ChatID: privateChat, Text: "picker"},
		}

		f.handlers.HandleCallback(context.Background(), cb)

		if f.settings.langs[privateChat] != i18n.BerneseGermanMessages {
			t.Errorf("stored language = %q", f.settings.langs[privateChat])
		}
		if f.admins.loads != 0 {
			t.Errorf("admin cache loaded %d times in a private chat", f.admins.loads)
		}
	})
}

func TestLanguageAppliesToReplies(t *testing.T) {
	f := newFixture(t)
	f.settings.langs[groupChat] = i18n.BerneseGermanMessages

	f.command(groupChat, memberID, "/loop 2")

	f.expectReply(t, i18n.NewLocalizer(i18n.BerneseGermanMessages).T("error.admin_required"))
}
