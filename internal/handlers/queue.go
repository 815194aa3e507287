package handlers

import (
	"context"
	"errors"
	"html"
	"strconv"

	"go.uber.org/zap"

	"tgmusicbot/internal/cache"
	"tgmusicbot/internal/chat"
	"tgmusicbot/internal/i18n"
)

// requireQueueControl checks the group, admin and active-session
// preconditions shared by /loop and /remove, replying when one fails.
func (h *Handlers) requireQueueControl(ctx context.Context, msg *chat.Message, l *i18n.Localizer) bool {
	if !isGroupChat(msg.ChatID) {
		h.notify(ctx, replyTo(msg), l.T("error.groups_only"))
		return false
	}
	if !h.isAdmin(ctx, msg.ChatID, msg.From.ID) {
		h.notify(ctx, replyTo(msg), l.T("error.admin_required"))
		return false
	}
	if !h.queue.IsActive(msg.ChatID) {
		h.notify(ctx, replyTo(msg), l.T("playback.not_active"))
		return false
	}
	return true
}

func (h *Handlers) handleLoop(ctx context.Context, msg *chat.Message) string {
	l := h.localizer(ctx, msg.ChatID, msg.From)
	if !h.requireQueueControl(ctx, msg, l) {
		return outcomeDenied
	}

	arg := extractArgument(msg.Text, true)
	if arg == "" {
		h.notify(ctx, replyTo(msg), l.T("queue.loop_usage"))
		return outcomeInvalid
	}

	loop, err := strconv.Atoi(arg)
	if err != nil || loop < 0 || loop > cache.MaxLoopCount {
		h.notify(ctx, replyTo(msg), l.T("error.loop_range"))
		return outcomeInvalid
	}

	if !h.queue.SetLoopCount(msg.ChatID, loop) {
		h.notify(ctx, replyTo(msg), l.T("queue.empty"))
		return outcomeDenied
	}

	h.logger.Info("Loop count changed",
		zap.Int64("chat_id", msg.ChatID),
		zap.Int64("user_id", msg.From.ID),
		zap.Int("loop", loop))

	if loop == 0 {
		h.notify(ctx, replyTo(msg), l.T("queue.loop_disabled", msg.From.Mention()))
	} else {
		h.notify(ctx, replyTo(msg), l.T("queue.loop_set", loop, msg.From.Mention()))
	}
	return outcomeOK
}

func (h *Handlers) handleRemove(ctx context.Context, msg *chat.Message) string {
	l := h.localizer(ctx, msg.ChatID, msg.From)
	if !h.requireQueueControl(ctx, msg, l) {
		return outcomeDenied
	}

	arg := extractArgument(msg.Text, false)
	if arg == "" {
		h.notify(ctx, replyTo(msg), l.T("queue.remove_usage"))
		return outcomeInvalid
	}

	// Digits too large for an int are a position past the end, not garbage.
	pos, err := strconv.Atoi(arg)
	outOfRange := errors.Is(err, strconv.ErrRange)
	if err != nil && !outOfRange {
		h.notify(ctx, replyTo(msg), l.T("error.remove_invalid"))
		return outcomeInvalid
	}

	length := h.queue.QueueLength(msg.ChatID)
	if length == 0 {
		h.notify(ctx, replyTo(msg), l.T("queue.empty"))
		return outcomeDenied
	}
	if outOfRange || pos < 1 || pos > length {
		h.notify(ctx, replyTo(msg), l.T("error.remove_range", length))
		return outcomeInvalid
	}

	removed, ok := h.queue.RemoveTrack(msg.ChatID, pos)
	if !ok {
		// The queue shrank since it was measured.
		h.notify(ctx, replyTo(msg), l.T("error.remove_range", h.queue.QueueLength(msg.ChatID)))
		return outcomeInvalid
	}

	h.logger.Info("Track removed",
		zap.Int64("chat_id", msg.ChatID),
		zap.Int64("user_id", msg.From.ID),
		zap.Int("position", pos),
		zap.String("track", removed.Name))

	name := html.EscapeString(truncateName(removed.Name, maxNameLength))
	h.notify(ctx, replyTo(msg), l.T("queue.removed", name, msg.From.Mention()))
	return outcomeOK
}

// handleClear ends playback and drops the whole queue.
func (h *Handlers) handleClear(ctx context.Context, msg *chat.Message) string {
	l := h.localizer(ctx, msg.ChatID, msg.From)
	if !h.requireQueueControl(ctx, msg, l) {
		return outcomeDenied
	}
	if h.queue.QueueLength(msg.ChatID) == 0 {
		h.notify(ctx, replyTo(msg), l.T("queue.empty"))
		return outcomeDenied
	}

	h.recordActivity(ctx, msg.ChatID)

	if err := h.calls.End(ctx, msg.ChatID); err != nil {
		h.fail(ctx, replyTo(msg), "end", err,
			l.T("error.func_failed", l.T("queue.clear_failed"), html.EscapeString(err.Error())))
		return outcomeFailed
	}

	h.logger.Info("Queue cleared",
		zap.Int64("chat_id", msg.ChatID),
		zap.Int64("user_id", msg.From.ID))

	h.notify(ctx, replyTo(msg), l.T("queue.cleared", msg.From.Mention()))
	return outcomeOK
}
