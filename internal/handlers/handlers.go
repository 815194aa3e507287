// Package handlers implements the bot's chat commands and inline-button callbacks.
package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tgmusicbot/internal/cache"
	"tgmusicbot/internal/chat"
	"tgmusicbot/internal/i18n"
	"tgmusicbot/pkg/musiclink"
)

// Outcome labels reported to Metrics.
const (
	outcomeOK        = "ok"
	outcomeDenied    = "denied"
	outcomeInvalid   = "invalid"
	outcomeFailed    = "failed"
	outcomeThrottled = "throttled"
	outcomeIgnored   = "ignored"
)

// Queue is the per-chat playback session store.
type Queue interface {
	IsActive(chatID int64) bool
	GetQueue(chatID int64) []cache.Track
	QueueLength(chatID int64) int
	SetLoopCount(chatID int64, loop int) bool
	RemoveTrack(chatID int64, pos int) (cache.Track, bool)
	UpdateActivity(chatID int64)
}

// Admins answers permission questions for a chat.
type Admins interface {
	Load(ctx context.Context, chatID int64, force bool) error
	IsAdmin(ctx context.Context, chatID, userID int64) (bool, error)
	IsOwner(ctx context.Context, chatID, userID int64) (bool, error)
}

// Settings is the persistent per-chat settings store.
type Settings interface {
	GetButtonsStatus(ctx context.Context, chatID int64) (bool, error)
	SetButtonsStatus(ctx context.Context, chatID int64, enabled bool) error
	GetThumbnailStatus(ctx context.Context, chatID int64) (bool, error)
	SetThumbnailStatus(ctx context.Context, chatID int64, enabled bool) error
	GetChatLanguage(ctx context.Context, chatID int64) (string, error)
	SetChatLanguage(ctx context.Context, chatID int64, lang string) error
	UpdateChatActivity(ctx context.Context, chatID int64) error
}

// Calls is the call-control layer.
type Calls interface {
	PlayNext(ctx context.Context, chatID int64) error
	Pause(ctx context.Context, chatID int64) error
	Resume(ctx context.Context, chatID int64) error
	End(ctx context.Context, chatID int64) error
	Play(ctx context.Context, chatID int64, reply *chat.Message, song *musiclink.Song, requester string) error
	Elapsed(chatID int64) (cache.Track, time.Duration, bool)
}

// Progress handles play_c_* callbacks.
type Progress interface {
	HandleProgress(ctx context.Context, cb *chat.Callback, msg *chat.Message, user *chat.User, data string) string
}

// Limiter throttles users per chat.
type Limiter interface {
	Allow(chatID, userID int64) bool
}

// Metrics records handler outcomes.
type Metrics interface {
	RecordCommand(command, outcome string)
	RecordCallback(action, outcome string)
	RecordCallError(op string)
	ObserveHandler(kind string, duration time.Duration)
}

// Deps are the collaborators the handlers need. Limiter, Metrics and Progress are optional.
type Deps struct {
	Frontend chat.Frontend
	Queue    Queue
	Admins   Admins
	Settings Settings
	Calls    Calls
	Resolver musiclink.Resolver
	Locales  *i18n.Manager
	Limiter  Limiter
	Metrics  Metrics
	Progress Progress

	// BotUsername restricts /command@name forms to this bot.
	BotUsername string
}

// Handlers holds the command and callback handlers.
type Handlers struct {
	frontend    chat.Frontend
	queue       Queue
	admins      Admins
	settings    Settings
	calls       Calls
	resolver    musiclink.Resolver
	locales     *i18n.Manager
	limiter     Limiter
	metrics     Metrics
	progress    Progress
	botUsername string
	logger      *zap.Logger
}

type nopMetrics struct{}

func (nopMetrics) RecordCommand(string, string)  {}
func (nopMetrics) RecordCallback(string, string) {}
func (nopMetrics) RecordCallError(string)        {}

func (nopMetrics) ObserveHandler(string, time.Duration) {}

// New creates the handlers.
func New(deps Deps, logger *zap.Logger) *Handlers {
	h := &Handlers{
		frontend:    deps.Frontend,
		queue:       deps.Queue,
		admins:      deps.Admins,
		settings:    deps.Settings,
		calls:       deps.Calls,
		resolver:    deps.Resolver,
		locales:     deps.Locales,
		limiter:     deps.Limiter,
		metrics:     deps.Metrics,
		progress:    deps.Progress,
		botUsername: deps.BotUsername,
		logger:      logger,
	}
	if h.locales == nil {
		h.locales = i18n.NewManager(i18n.DefaultLanguage)
	}
	if h.metrics == nil {
		h.metrics = nopMetrics{}
	}
	if h.progress == nil {
		h.progress = NewQueuePager(deps.Frontend, deps.Queue, h.locales, deps.Settings, logger.Named("pager"))
	}
	return h
}

// isGroupChat reports whether the chat is a group; private chats have positive IDs.
func isGroupChat(chatID int64) bool {
	return chatID < 0
}

// localizer picks the chat's configured language, then the user's client language.
func (h *Handlers) localizer(ctx context.Context, chatID int64, user chat.User) *i18n.Localizer {
	lang, err := h.settings.GetChatLanguage(ctx, chatID)
	if err != nil {
		h.logger.Debug("Failed to read chat language", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	return h.locales.For(lang, user.LanguageCode)
}

func (h *Handlers) isAdmin(ctx context.Context, chatID, userID int64) bool {
	ok, err := h.admins.IsAdmin(ctx, chatID, userID)
	if err != nil {
		h.logger.Warn("Admin check failed",
			zap.Int64("chat_id", chatID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		return false
	}
	return ok
}

func (h *Handlers) isOwner(ctx context.Context, chatID, userID int64) bool {
	ok, err := h.admins.IsOwner(ctx, chatID, userID)
	if err != nil {
		h.logger.Warn("Owner check failed",
			zap.Int64("chat_id", chatID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		return false
	}
	return ok
}

func (h *Handlers) buttonsEnabled(ctx context.Context, chatID int64) bool {
	enabled, err := h.settings.GetButtonsStatus(ctx, chatID)
	if err != nil {
		h.logger.Warn("Failed to read buttons status", zap.Int64("chat_id", chatID), zap.Error(err))
		return false
	}
	return enabled
}

// notice addresses a user-facing message: a reply to a command message or an
// alert on a button press.
type notice struct {
	chatID int64
	msg    *chat.Message
	cb     *chat.Callback
}

func replyTo(msg *chat.Message) notice {
	return notice{chatID: msg.ChatID, msg: msg}
}

func alertOn(cb *chat.Callback) notice {
	return notice{chatID: cb.ChatID, cb: cb}
}

// notify delivers text, logging delivery failures.
func (h *Handlers) notify(ctx context.Context, to notice, text string) {
	var err error
	switch {
	case to.cb != nil:
		err = h.frontend.AnswerCallback(ctx, to.cb.ID, text, true)
	case to.msg != nil:
		_, err = h.frontend.Reply(ctx, to.msg, text)
	default:
		return
	}
	if err != nil {
		h.logger.Warn("Failed to deliver notice", zap.Int64("chat_id", to.chatID), zap.Error(err))
	}
}

// fail logs a failed operation, counts it and notifies the user once.
func (h *Handlers) fail(ctx context.Context, to notice, op string, err error, text string) {
	h.logger.Warn("Operation failed",
		zap.String("op", op),
		zap.Int64("chat_id", to.chatID),
		zap.Error(err))
	h.metrics.RecordCallError(op)
	h.notify(ctx, to, text)
}

// edit replaces msg's text, logging failures. It returns nil when the edit failed.
func (h *Handlers) edit(ctx context.Context, msg *chat.Message, text string, markup chat.Markup) *chat.Message {
	edited, err := h.frontend.EditText(ctx, msg, text, markup)
	if err != nil {
		h.logger.Warn("Failed to edit message",
			zap.Int64("chat_id", msg.ChatID),
			zap.Int("message_id", msg.ID),
			zap.Error(err))
		return nil
	}
	return edited
}

// deleteMessage removes a message; failures are expected when the bot lacks rights.
func (h *Handlers) deleteMessage(ctx context.Context, chatID int64, msgID int) {
	if err := h.frontend.DeleteMessage(ctx, chatID, msgID); err != nil {
		h.logger.Debug("Failed to delete message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", msgID),
			zap.Error(err))
	}
}

// ack stops the client's loading indicator on a button.
func (h *Handlers) ack(ctx context.Context, cb *chat.Callback) {
	if err := h.frontend.AnswerCallback(ctx, cb.ID, "", false); err != nil {
		h.logger.Debug("Failed to answer callback", zap.Int64("chat_id", cb.ChatID), zap.Error(err))
	}
}
