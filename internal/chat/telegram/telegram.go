// Package telegram provides Telegram Bot API integration using go-telegram/bot library.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"tgmusicbot/internal/admins"
	"tgmusicbot/internal/chat"
)

const (
	chatTypeGroup      = "group"
	chatTypeSuperGroup = "supergroup"

	callbackPrefix         = "play_"
	compactCallbackPrefix  = "cplay_"
	languageCallbackPrefix = "lang_"
)

// ErrMessageInaccessible is returned when a callback's message is too old or deleted.
var ErrMessageInaccessible = errors.New("callback message is no longer accessible")

// Config holds Telegram-specific configuration
type Config struct {
	BotToken    string
	BotUsername string
}

// Router receives normalized commands and button presses.
type Router interface {
	HandleCommand(ctx context.Context, msg *chat.Message)
	HandleCallback(ctx context.Context, cb *chat.Callback)
}

// Seen drops updates that were already handled.
type Seen interface {
	Mark(key string) bool
}

// api is the subset of *bot.Bot the frontend calls.
type api interface {
	GetMe(ctx context.Context) (*models.User, error)
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	EditMessageCaption(ctx context.Context, params *bot.EditMessageCaptionParams) (*models.Message, error)
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
	GetChatMember(ctx context.Context, params *bot.GetChatMemberParams) (*models.ChatMember, error)
	GetChatAdministrators(ctx context.Context, params *bot.GetChatAdministratorsParams) ([]models.ChatMember, error)
}

// Frontend implements chat.Frontend and admins.Source for Telegram
type Frontend struct {
	config *Config
	logger *zap.Logger
	seen   Seen

	bot    *bot.Bot
	api    api
	router Router
}

var (
	_ chat.Frontend = (*Frontend)(nil)
	_ admins.Source = (*Frontend)(nil)
)

// NewFrontend creates a new Telegram frontend. seen may be nil.
func NewFrontend(config *Config, seen Seen, logger *zap.Logger) *Frontend {
	return &Frontend{
		config: config,
		logger: logger,
		seen:   seen,
	}
}

// Start creates the bot client and resolves the bot's username.
func (f *Frontend) Start(ctx context.Context) error {
	opts := []bot.Option{
		bot.WithMiddlewares(f.dropDuplicates),
		bot.WithDefaultHandler(f.handleUpdate),
		bot.WithCallbackQueryDataHandler(callbackPrefix, bot.MatchTypePrefix, f.handleCallbackQuery),
		bot.WithCallbackQueryDataHandler(compactCallbackPrefix, bot.MatchTypePrefix, f.handleCallbackQuery),
		bot.WithCallbackQueryDataHandler(languageCallbackPrefix, bot.MatchTypePrefix, f.handleCallbackQuery),
	}

	b, err := bot.New(f.config.BotToken, opts...)
	if err != nil {
		return fmt.Errorf("failed to create telegram bot: %w", err)
	}

	f.bot = b
	f.api = b

	if err := f.resolveUsername(ctx); err != nil {
		return err
	}

	f.logger.Info("Telegram frontend started successfully",
		zap.String("bot_username", f.config.BotUsername))
	return nil
}

func (f *Frontend) resolveUsername(ctx context.Context) error {
	if f.config.BotUsername != "" {
		return nil
	}

	me, err := f.api.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bot identity: %w", err)
	}
	f.config.BotUsername = me.Username
	return nil
}

// BotUsername returns the configured or resolved bot username.
func (f *Frontend) BotUsername() string {
	return f.config.BotUsername
}

// Listen routes updates to router until ctx is done.
func (f *Frontend) Listen(ctx context.Context, router Router) error {
	if f.bot == nil {
		return fmt.Errorf("telegram frontend not started")
	}

	f.router = router
	f.bot.Start(ctx)
	return nil
}

// SendText sends an HTML message to a chat.
func (f *Frontend) SendText(ctx context.Context, chatID int64, text string, markup chat.Markup) (*chat.Message, error) {
	params := &bot.SendMessageParams{
		ChatID:             chatID,
		Text:               text,
		ParseMode:          models.ParseModeHTML,
		LinkPreviewOptions: noPreview(),
		ReplyMarkup:        toKeyboard(markup),
	}

	msg, err := f.api.SendMessage(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return toMessage(msg), nil
}

// SendPhoto sends a photo by URL with an HTML caption.
func (f *Frontend) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, markup chat.Markup) (*chat.Message, error) {
	msg, err := f.api.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileString{Data: photoURL},
		Caption:     caption,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: toKeyboard(markup),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send photo: %w", err)
	}
	return toMessage(msg), nil
}

// Reply sends an HTML message as a reply to msg.
func (f *Frontend) Reply(ctx context.Context, msg *chat.Message, text string) (*chat.Message, error) {
	params := &bot.SendMessageParams{
		ChatID:             msg.ChatID,
		Text:               text,
		ParseMode:          models.ParseModeHTML,
		LinkPreviewOptions: noPreview(),
		ReplyParameters: &models.ReplyParameters{
			MessageID:                msg.ID,
			AllowSendingWithoutReply: true,
		},
	}

	sent, err := f.api.SendMessage(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to send reply: %w", err)
	}
	return toMessage(sent), nil
}

// EditText replaces the text of msg, or its caption when msg carries media.
func (f *Frontend) EditText(ctx context.Context, msg *chat.Message, text string, markup chat.Markup) (*chat.Message, error) {
	var (
		edited *models.Message
		err    error
	)

	if msg.HasCaption() {
		edited, err = f.api.EditMessageCaption(ctx, &bot.EditMessageCaptionParams{
			ChatID:      msg.ChatID,
			MessageID:   msg.ID,
			Caption:     text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: toKeyboard(markup),
		})
	} else {
		edited, err = f.api.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:             msg.ChatID,
			MessageID:          msg.ID,
			Text:               text,
			ParseMode:          models.ParseModeHTML,
			LinkPreviewOptions: noPreview(),
			ReplyMarkup:        toKeyboard(markup),
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to edit message %d: %w", msg.ID, err)
	}

	if edited == nil {
		updated := *msg
		if msg.HasCaption() {
			updated.Caption = text
		} else {
			updated.Text = text
		}
		return &updated, nil
	}
	return toMessage(edited), nil
}

// DeleteMessage deletes a message by its ID
func (f *Frontend) DeleteMessage(ctx context.Context, chatID int64, msgID int) error {
	_, err := f.api.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: msgID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// AnswerCallback answers a button press, optionally as a modal alert.
func (f *Frontend) AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error {
	_, err := f.api.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		return fmt.Errorf("failed to answer callback: %w", err)
	}
	return nil
}

// GetMessage returns the message a callback is attached to. The Bot API has no
// message lookup, so only what arrived with the update is available.
func (f *Frontend) GetMessage(_ context.Context, cb *chat.Callback) (*chat.Message, error) {
	if cb.Message == nil {
		return nil, ErrMessageInaccessible
	}
	return cb.Message, nil
}

// GetUser resolves a user through their chat membership.
func (f *Frontend) GetUser(ctx context.Context, chatID, userID int64) (*chat.User, error) {
	member, err := f.api.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: chatID,
		UserID: userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get chat member %d: %w", userID, err)
	}

	user := memberUser(member)
	if user == nil {
		return nil, fmt.Errorf("chat member %d has no user", userID)
	}
	u := toUser(user)
	return &u, nil
}

// ChatAdministrators lists the administrators of a chat.
func (f *Frontend) ChatAdministrators(ctx context.Context, chatID int64) ([]admins.Member, error) {
	list, err := f.api.GetChatAdministrators(ctx, &bot.GetChatAdministratorsParams{
		ChatID: chatID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get chat administrators: %w", err)
	}

	members := make([]admins.Member, 0, len(list))
	for i := range list {
		admin := &list[i]
		user := memberUser(admin)
		if user == nil {
			continue
		}

		switch admin.Type {
		case models.ChatMemberTypeOwner:
			members = append(members, admins.Member{UserID: user.ID, IsOwner: true, IsBot: user.IsBot})
		case models.ChatMemberTypeAdministrator:
			members = append(members, admins.Member{UserID: user.ID, IsBot: user.IsBot})
		case models.ChatMemberTypeMember, models.ChatMemberTypeRestricted,
			models.ChatMemberTypeLeft, models.ChatMemberTypeBanned:
			continue
		}
	}

	f.logger.Debug("Retrieved chat administrators",
		zap.Int64("chat_id", chatID),
		zap.Int("count", len(members)))

	return members, nil
}

func (f *Frontend) dropDuplicates(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if f.seen != nil && f.seen.Mark(updateKey(update)) {
			f.logger.Debug("Dropping duplicate update", zap.Int64("update_id", update.ID))
			return
		}
		next(ctx, b, update)
	}
}

func updateKey(update *models.Update) string {
	if update.CallbackQuery != nil {
		return "cb:" + update.CallbackQuery.ID
	}
	return "u:" + strconv.FormatInt(update.ID, 10)
}

// handleUpdate routes bot commands; other messages are ignored.
func (f *Frontend) handleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.From.IsBot {
		return
	}
	if !strings.HasPrefix(msg.Text, "/") || f.router == nil {
		return
	}

	f.router.HandleCommand(ctx, toMessage(msg))
}

func (f *Frontend) handleCallbackQuery(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil || f.router == nil {
		return
	}
	f.router.HandleCallback(ctx, toCallback(update.CallbackQuery))
}

func toUser(u *models.User) chat.User {
	return chat.User{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		LanguageCode: u.LanguageCode,
	}
}

func toMessage(msg *models.Message) *chat.Message {
	if msg == nil {
		return nil
	}

	out := &chat.Message{
		ID:      msg.ID,
		ChatID:  msg.Chat.ID,
		Text:    msg.Text,
		Caption: msg.Caption,
		IsGroup: msg.Chat.Type == chatTypeGroup || msg.Chat.Type == chatTypeSuperGroup,
	}
	if msg.From != nil {
		out.From = toUser(msg.From)
	}
	return out
}

func toCallback(q *models.CallbackQuery) *chat.Callback {
	cb := &chat.Callback{
		ID:   q.ID,
		Data: q.Data,
		From: toUser(&q.From),
	}

	switch {
	case q.Message.Message != nil:
		cb.Message = toMessage(q.Message.Message)
		cb.ChatID = cb.Message.ChatID
		cb.MessageID = cb.Message.ID
	case q.Message.InaccessibleMessage != nil:
		cb.ChatID = q.Message.InaccessibleMessage.Chat.ID
		cb.MessageID = q.Message.InaccessibleMessage.MessageID
	}
	return cb
}

// toKeyboard returns a nil interface for an empty markup so the keyboard is dropped.
func toKeyboard(markup chat.Markup) models.ReplyMarkup {
	if len(markup) == 0 {
		return nil
	}

	rows := make([][]models.InlineKeyboardButton, 0, len(markup))
	for _, row := range markup {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, models.InlineKeyboardButton{Text: b.Text, CallbackData: b.Data})
		}
		rows = append(rows, buttons)
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func memberUser(m *models.ChatMember) *models.User {
	switch m.Type {
	case models.ChatMemberTypeOwner:
		if m.Owner != nil {
			return m.Owner.User
		}
	case models.ChatMemberTypeAdministrator:
		if m.Administrator != nil {
			return &m.Administrator.User
		}
	case models.ChatMemberTypeMember:
		if m.Member != nil {
			return m.Member.User
		}
	case models.ChatMemberTypeRestricted:
		if m.Restricted != nil {
			return m.Restricted.User
		}
	case models.ChatMemberTypeLeft:
		if m.Left != nil {
			return m.Left.User
		}
	case models.ChatMemberTypeBanned:
		if m.Banned != nil {
			return m.Banned.User
		}
	}
	return nil
}

func noPreview() *models.LinkPreviewOptions {
	disabled := true
	return &models.LinkPreviewOptions{IsDisabled: &disabled}
}
