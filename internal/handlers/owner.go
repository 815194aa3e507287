package handlers

import (
	"context"
	"strings"

	"tgmusicbot/internal/chat"
)

// chatToggle is an owner-controlled on/off chat setting.
type chatToggle struct {
	name        string
	usage       string
	statusKey   string
	enabledKey  string
	disabledKey string
	get         func(ctx context.Context, chatID int64) (bool, error)
	set         func(ctx context.Context, chatID int64, enabled bool) error
}

func (h *Handlers) buttonsToggle() chatToggle {
	return chatToggle{
		name:        "buttons",
		usage:       "/buttons [on|off|enable|disable]",
		statusKey:   "settings.buttons_status",
		enabledKey:  "settings.buttons_enabled",
		disabledKey: "settings.buttons_disabled",
		get:         h.settings.GetButtonsStatus,
		set:         h.settings.SetButtonsStatus,
	}
}

func (h *Handlers) thumbnailToggle() chatToggle {
	return chatToggle{
		name:        "thumbnail",
		usage:       "/thumb [on|off|enable|disable]",
		statusKey:   "settings.thumb_status",
		enabledKey:  "settings.thumb_enabled",
		disabledKey: "settings.thumb_disabled",
		get:         h.settings.GetThumbnailStatus,
		set:         h.settings.SetThumbnailStatus,
	}
}

// parseToggle maps on/enable and off/disable to a setting value.
func parseToggle(arg string) (value, ok bool) {
	switch strings.ToLower(arg) {
	case "on", "enable":
		return true, true
	case "off", "disable":
		return false, true
	default:
		return false, false
	}
}

func (h *Handlers) handleButtons(ctx context.Context, msg *chat.Message) string {
	return h.handleToggle(ctx, msg, h.buttonsToggle())
}

func (h *Handlers) handleThumbnail(ctx context.Context, msg *chat.Message) string {
	return h.handleToggle(ctx, msg, h.thumbnailToggle())
}

func (h *Handlers) handleToggle(ctx context.Context, msg *chat.Message, t chatToggle) string {
	l := h.localizer(ctx, msg.ChatID, msg.From)

	if !isGroupChat(msg.ChatID) {
		h.notify(ctx, replyTo(msg), l.T("error.groups_only"))
		return outcomeDenied
	}
	if !h.isOwner(ctx, msg.ChatID, msg.From.ID) {
		h.notify(ctx, replyTo(msg), l.T("error.owner_required"))
		return outcomeDenied
	}

	arg := extractArgument(msg.Text, false)
	if arg == "" {
		current, err := t.get(ctx, msg.ChatID)
		if err != nil {
			h.fail(ctx, replyTo(msg), "get_"+t.name, err, l.T("error.generic"))
			return outcomeFailed
		}
		status := l.T("settings.disabled")
		if current {
			status = l.T("settings.enabled")
		}
		h.notify(ctx, replyTo(msg), l.T(t.statusKey, status, t.usage))
		return outcomeOK
	}

	value, ok := parseToggle(arg)
	if !ok {
		h.notify(ctx, replyTo(msg), l.T("error.owner_invalid_usage")+l.T("settings.correct_usage", t.usage))
		return outcomeInvalid
	}

	if err := t.set(ctx, msg.ChatID, value); err != nil {
		h.fail(ctx, replyTo(msg), "set_"+t.name, err, l.T("error.generic"))
		return outcomeFailed
	}

	key := t.disabledKey
	if value {
		key = t.enabledKey
	}
	h.notify(ctx, replyTo(msg), l.T(key))
	return outcomeOK
}
