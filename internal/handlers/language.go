package handlers

import (
	"context"

	"go.uber.org/zap"

	"tgmusicbot/internal/chat"
	"tgmusicbot/internal/i18n"
)

// languageMarkup lists every supported language, marking the current one.
func languageMarkup(current string) chat.Markup {
	langs := i18n.GetSupportedLanguages()
	markup := make(chat.Markup, 0, len(langs))
	for _, code := range langs {
		prefix := "🌐 "
		if code == current {
			prefix = "✅ "
		}
		markup = append(markup, []chat.Button{{
			Text: prefix + i18n.DisplayName(code),
			Data: languagePrefix + code,
		}})
	}
	return markup
}

func languageText(l *i18n.Localizer) string {
	return l.T("language.title") + "\n\n" +
		l.T("language.current", i18n.DisplayName(l.Language())) + "\n\n" +
		l.T("language.select")
}

// handleLanguage shows the language picker. In groups only admins may change it.
func (h *Handlers) handleLanguage(ctx context.Context, msg *chat.Message) string {
	l := h.localizer(ctx, msg.ChatID, msg.From)

	if isGroupChat(msg.ChatID) && !h.isAdmin(ctx, msg.ChatID, msg.From.ID) {
		h.notify(ctx, replyTo(msg), l.T("error.admin_required"))
		return outcomeDenied
	}

	if _, err := h.frontend.SendText(ctx, msg.ChatID, languageText(l), languageMarkup(l.Language())); err != nil {
		h.logger.Warn("Failed to send language picker", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
		return outcomeFailed
	}
	return outcomeOK
}

func (h *Handlers) callbackLanguage(
	ctx context.Context,
	cb *chat.Callback,
	msg *chat.Message,
	user *chat.User,
	code string,
	l *i18n.Localizer,
) string {
	if isGroupChat(cb.ChatID) && !h.isAdmin(ctx, cb.ChatID, user.ID) {
		h.notify(ctx, alertOn(cb), l.T("error.admin_required"))
		return outcomeDenied
	}
	if !i18n.IsSupported(code) {
		h.notify(ctx, alertOn(cb), l.T("callback.invalid_request"))
		return outcomeInvalid
	}

	if err := h.settings.SetChatLanguage(ctx, cb.ChatID, code); err != nil {
		h.fail(ctx, alertOn(cb), "set_language", err, l.T("language.failed"))
		return outcomeFailed
	}

	h.logger.Info("Chat language changed",
		zap.Int64("chat_id", cb.ChatID),
		zap.Int64("user_id", user.ID),
		zap.String("language", code))

	chosen := h.locales.For(code)
	h.notify(ctx, alertOn(cb), chosen.T("language.changed", i18n.DisplayName(code)))
	h.edit(ctx, msg, languageText(chosen), languageMarkup(code))
	return outcomeOK
}
