package handlers

import (
	"context"
	"html"

	"go.uber.org/zap"

	"tgmusicbot/internal/chat"
	"tgmusicbot/internal/i18n"
)

// adminOrReply checks that the chat is playing and the sender is an admin.
// When a check fails the sender gets a reply and ok is false.
func (h *Handlers) adminOrReply(ctx context.Context, msg *chat.Message, l *i18n.Localizer) bool {
	var text string
	switch {
	case !h.queue.IsActive(msg.ChatID):
		text = l.T("playback.not_active")
	case !h.isAdmin(ctx, msg.ChatID, msg.From.ID):
		text = l.T("error.admin_required")
	default:
		return true
	}

	if _, err := h.frontend.Reply(ctx, msg, text); err != nil {
		h.logger.Warn("Admin check reply failed", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
	}
	return false
}

// recordActivity stamps group chats as active in the store and the cache.
func (h *Handlers) recordActivity(ctx context.Context, chatID int64) {
	if !isGroupChat(chatID) {
		return
	}
	if err := h.settings.UpdateChatActivity(ctx, chatID); err != nil {
		h.logger.Warn("Failed to record chat activity", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	h.queue.UpdateActivity(chatID)
}

// handleSkip serves /skip and /cskip. Feedback comes from the call layer's
// now-playing notice.
func (h *Handlers) handleSkip(ctx context.Context, msg *chat.Message) string {
	l := h.localizer(ctx, msg.ChatID, msg.From)
	if !h.adminOrReply(ctx, msg, l) {
		return outcomeDenied
	}

	h.recordActivity(ctx, msg.ChatID)
	h.deleteMessage(ctx, msg.ChatID, msg.ID)

	if err := h.calls.PlayNext(ctx, msg.ChatID); err != nil {
		h.logger.Warn("Failed to skip track", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
		h.metrics.RecordCallError("play_next")
		return outcomeFailed
	}
	return outcomeOK
}

// playbackAction is a call-control operation exposed as a command.
type playbackAction struct {
	op         string
	run        func(ctx context.Context, chatID int64) error
	successKey string
	failKey    string
}

func (h *Handlers) runPlaybackAction(ctx context.Context, msg *chat.Message, action playbackAction) string {
	l := h.localizer(ctx, msg.ChatID, msg.From)
	if !h.adminOrReply(ctx, msg, l) {
		return outcomeDenied
	}

	h.recordActivity(ctx, msg.ChatID)

	if err := action.run(ctx, msg.ChatID); err != nil {
		h.fail(ctx, replyTo(msg), action.op, err,
			l.T("error.func_failed", l.T(action.failKey), html.EscapeString(err.Error())))
		return outcomeFailed
	}

	h.notify(ctx, replyTo(msg), l.T("command.success_by", l.T(action.successKey), msg.From.Mention()))
	return outcomeOK
}

func (h *Handlers) handlePause(ctx context.Context, msg *chat.Message) string {
	return h.runPlaybackAction(ctx, msg, playbackAction{
		op:         "pause",
		run:        h.calls.Pause,
		successKey: "command.paused",
		failKey:    "command.pause_failed",
	})
}

func (h *Handlers) handleResume(ctx context.Context, msg *chat.Message) string {
	return h.runPlaybackAction(ctx, msg, playbackAction{
		op:         "resume",
		run:        h.calls.Resume,
		successKey: "command.resumed",
		failKey:    "command.resume_failed",
	})
}

func (h *Handlers) handleStop(ctx context.Context, msg *chat.Message) string {
	return h.runPlaybackAction(ctx, msg, playbackAction{
		op:         "end",
		run:        h.calls.End,
		successKey: "command.stopped",
		failKey:    "command.stop_failed",
	})
}
