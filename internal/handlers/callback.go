package handlers

import (
	"context"
	"html"
	"time"

	"go.uber.org/zap"

	"tgmusicbot/internal/call"
	"tgmusicbot/internal/chat"
	"tgmusicbot/internal/i18n"
	"tgmusicbot/pkg/musiclink"
)

// HandleCallback processes an inline-button press.
func (h *Handlers) HandleCallback(ctx context.Context, cb *chat.Callback) {
	start := time.Now()
	payload := DecodePayload(cb.Data)
	outcome := h.handleCallback(ctx, cb, payload)
	h.metrics.ObserveHandler("callback", time.Since(start))
	h.metrics.RecordCallback(payload.Action.String(), outcome)
}

func (h *Handlers) handleCallback(ctx context.Context, cb *chat.Callback, payload Payload) string {
	logger := h.logger.With(
		zap.Int64("chat_id", cb.ChatID),
		zap.String("data", cb.Data))

	msg, err := h.frontend.GetMessage(ctx, cb)
	if err != nil {
		logger.Warn("Failed to get callback message", zap.Error(err))
		return outcomeIgnored
	}
	user, err := h.frontend.GetUser(ctx, cb.ChatID, cb.From.ID)
	if err != nil {
		logger.Warn("Failed to get user info", zap.Int64("user_id", cb.From.ID), zap.Error(err))
		return outcomeIgnored
	}

	l := h.localizer(ctx, cb.ChatID, *user)

	if h.limiter != nil && !h.limiter.Allow(cb.ChatID, user.ID) {
		h.notify(ctx, alertOn(cb), l.T("error.slow_down"))
		return outcomeThrottled
	}

	if isGroupChat(cb.ChatID) {
		if err := h.admins.Load(ctx, cb.ChatID, false); err != nil {
			logger.Warn("Failed to load admin cache", zap.Error(err))
		}
	}

	if payload.Action.RequiresAdmin() && !h.isAdmin(ctx, cb.ChatID, user.ID) {
		h.notify(ctx, alertOn(cb), l.T("error.admin_required"))
		return outcomeDenied
	}
	if payload.Action.RequiresActive() && !h.queue.IsActive(cb.ChatID) {
		h.notify(ctx, alertOn(cb), l.T("playback.not_active"))
		return outcomeDenied
	}

	switch payload.Action {
	case ActionSkip:
		return h.callbackSkip(ctx, cb, msg, l)
	case ActionStop:
		return h.callbackStop(ctx, cb, msg, user, l)
	case ActionPause:
		return h.callbackPause(ctx, cb, msg, user, l)
	case ActionResume:
		return h.callbackResume(ctx, cb, msg, user, l)
	case ActionClose:
		return h.callbackClose(ctx, cb, l)
	case ActionTimer:
		return h.callbackTimer(ctx, cb, l)
	case ActionProgress:
		return h.progress.HandleProgress(ctx, cb, msg, user, payload.Raw)
	case ActionSong:
		return h.callbackSong(ctx, cb, msg, user, payload, l)
	case ActionLanguage:
		return h.callbackLanguage(ctx, cb, msg, user, payload.Language, l)
	case ActionInvalid:
		logger.Error("Malformed callback data received")
		h.notify(ctx, alertOn(cb), l.T("callback.invalid_request"))
		return outcomeInvalid
	}
	return outcomeInvalid
}

func (h *Handlers) callbackSkip(ctx context.Context, cb *chat.Callback, msg *chat.Message, l *i18n.Localizer) string {
	if err := h.calls.PlayNext(ctx, cb.ChatID); err != nil {
		h.fail(ctx, alertOn(cb), "play_next", err, l.T("callback.playback_error", err.Error()))
		return outcomeFailed
	}
	h.edit(ctx, msg, l.T("playback.skipped"), nil)
	h.deleteMessage(ctx, cb.ChatID, msg.ID)
	h.ack(ctx, cb)
	return outcomeOK
}

func (h *Handlers) callbackStop(ctx context.Context, cb *chat.Callback, msg *chat.Message, user *chat.User, l *i18n.Localizer) string {
	if err := h.calls.End(ctx, cb.ChatID); err != nil {
		h.fail(ctx, alertOn(cb), "end", err, l.T("callback.stop_failed", err.Error()))
		return outcomeFailed
	}
	h.edit(ctx, msg, l.T("playback.stopped_by", user.Mention()), nil)
	h.ack(ctx, cb)
	return outcomeOK
}

func (h *Handlers) callbackPause(ctx context.Context, cb *chat.Callback, msg *chat.Message, user *chat.User, l *i18n.Localizer) string {
	if err := h.calls.Pause(ctx, cb.ChatID); err != nil {
		h.fail(ctx, alertOn(cb), "pause", err, l.T("callback.pause_failed", err.Error()))
		return outcomeFailed
	}
	h.edit(ctx, msg, l.T("playback.paused_by", user.Mention()), h.controlMarkup(ctx, cb.ChatID, l, call.StatePaused))
	h.ack(ctx, cb)
	return outcomeOK
}

func (h *Handlers) callbackResume(ctx context.Context, cb *chat.Callback, msg *chat.Message, user *chat.User, l *i18n.Localizer) string {
	if err := h.calls.Resume(ctx, cb.ChatID); err != nil {
		h.fail(ctx, alertOn(cb), "resume", err, l.T("callback.resume_failed", err.Error()))
		return outcomeFailed
	}
	h.edit(ctx, msg, l.T("playback.resumed_by", user.Mention()), h.controlMarkup(ctx, cb.ChatID, l, call.StatePlaying))
	h.ack(ctx, cb)
	return outcomeOK
}

// controlMarkup returns the control keyboard when the chat shows buttons.
func (h *Handlers) controlMarkup(ctx context.Context, chatID int64, l *i18n.Localizer, state call.State) chat.Markup {
	if !h.buttonsEnabled(ctx, chatID) {
		return nil
	}
	return call.ControlMarkup(l, state)
}

func (h *Handlers) callbackClose(ctx context.Context, cb *chat.Callback, l *i18n.Localizer) string {
	if err := h.frontend.DeleteMessage(ctx, cb.ChatID, cb.MessageID); err != nil {
		h.fail(ctx, alertOn(cb), "close", err, l.T("callback.close_failed", err.Error()))
		return outcomeFailed
	}
	h.notify(ctx, alertOn(cb), l.T("callback.close_success"))
	return outcomeOK
}

func (h *Handlers) callbackTimer(ctx context.Context, cb *chat.Callback, l *i18n.Localizer) string {
	track, elapsed, ok := h.calls.Elapsed(cb.ChatID)
	if !ok {
		h.notify(ctx, alertOn(cb), l.T("playback.not_active"))
		return outcomeDenied
	}
	text := l.T("playback.timer",
		truncateName(track.Name, maxNameLength),
		call.FormatDuration(elapsed),
		call.FormatDuration(track.Duration))
	h.notify(ctx, alertOn(cb), text)
	return outcomeOK
}

func (h *Handlers) callbackSong(
	ctx context.Context,
	cb *chat.Callback,
	msg *chat.Message,
	user *chat.User,
	payload Payload,
	l *i18n.Localizer,
) string {
	logger := h.logger.With(
		zap.Int64("chat_id", cb.ChatID),
		zap.String("platform", payload.Platform),
		zap.String("song_id", payload.SongID))

	h.notify(ctx, alertOn(cb), l.T("callback.preparing", user.DisplayName()))

	reply := h.edit(ctx, msg, l.T("callback.searching", html.EscapeString(user.DisplayName())), nil)
	if reply == nil {
		return outcomeFailed
	}

	url, ok := musiclink.PlatformURL(payload.Platform, payload.SongID)
	if !ok {
		logger.Error("Unsupported platform")
		h.edit(ctx, reply, l.T("error.unsupported_platform", html.EscapeString(payload.Platform)), nil)
		return outcomeInvalid
	}

	song, err := h.resolver.GetInfo(ctx, url)
	if err != nil {
		logger.Warn("Failed to fetch song info", zap.String("url", url), zap.Error(err))
		h.metrics.RecordCallError("get_info")
		h.edit(ctx, reply, l.T("error.retrieval", html.EscapeString(err.Error())), nil)
		return outcomeFailed
	}
	if song == nil {
		h.edit(ctx, reply, l.T("error.content_not_found"), nil)
		return outcomeFailed
	}

	if err := h.calls.Play(ctx, cb.ChatID, reply, song, user.DisplayName()); err != nil {
		logger.Warn("Failed to start playback", zap.Error(err))
		h.metrics.RecordCallError("play")
		h.edit(ctx, reply, l.T("callback.playback_error", html.EscapeString(err.Error())), nil)
		return outcomeFailed
	}
	return outcomeOK
}
