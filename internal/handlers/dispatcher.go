package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tgmusicbot/internal/chat"
)

type commandFunc func(ctx context.Context, msg *chat.Message) string

func (h *Handlers) commands() map[string]commandFunc {
	return map[string]commandFunc{
		"buttons":   h.handleButtons,
		"thumbnail": h.handleThumbnail,
		"thumb":     h.handleThumbnail,
		"loop":      h.handleLoop,
		"remove":    h.handleRemove,
		"skip":      h.handleSkip,
		"cskip":     h.handleSkip,
		"pause":     h.handlePause,
		"resume":    h.handleResume,
		"stop":      h.handleStop,
		"end":       h.handleStop,
		"queue":     h.handleQueue,
		"clear":     h.handleClear,
		"language":  h.handleLanguage,
		"lang":      h.handleLanguage,
	}
}

// Commands lists the command names HandleCommand serves.
func (h *Handlers) Commands() []string {
	names := make([]string, 0, len(h.commands()))
	for name := range h.commands() {
		names = append(names, name)
	}
	return names
}

// HandleCommand routes a command message to its handler. Messages that are
// not one of our commands are ignored.
func (h *Handlers) HandleCommand(ctx context.Context, msg *chat.Message) {
	name, ok := parseCommand(msg.Text, h.botUsername)
	if !ok {
		return
	}
	handler, ok := h.commands()[name]
	if !ok {
		return
	}

	if h.limiter != nil && !h.limiter.Allow(msg.ChatID, msg.From.ID) {
		h.logger.Debug("Command throttled",
			zap.Int64("chat_id", msg.ChatID),
			zap.Int64("user_id", msg.From.ID),
			zap.String("command", name))
		h.metrics.RecordCommand(name, outcomeThrottled)
		return
	}

	h.logger.Debug("Handling command",
		zap.Int64("chat_id", msg.ChatID),
		zap.Int64("user_id", msg.From.ID),
		zap.String("command", name))

	start := time.Now()
	outcome := handler(ctx, msg)
	h.metrics.ObserveHandler("command", time.Since(start))
	h.metrics.RecordCommand(name, outcome)
}
