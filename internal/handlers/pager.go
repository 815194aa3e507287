package handlers

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"tgmusicbot/internal/call"
	"tgmusicbot/internal/cache"
	"tgmusicbot/internal/chat"
	"tgmusicbot/internal/i18n"
)

const (
	queuePagePrefix = progressPrefix + "queue_"
	queuePageSize   = 10
)

// languageSource reports a chat's configured language.
type languageSource interface {
	GetChatLanguage(ctx context.Context, chatID int64) (string, error)
}

// QueuePager renders the chat queue page by page and serves the
// play_c_queue_<page> buttons.
type QueuePager struct {
	frontend chat.Frontend
	queue    Queue
	locales  *i18n.Manager
	langs    languageSource
	logger   *zap.Logger
}

// NewQueuePager creates a queue pager.
func NewQueuePager(frontend chat.Frontend, queue Queue, locales *i18n.Manager, langs languageSource, logger *zap.Logger) *QueuePager {
	return &QueuePager{
		frontend: frontend,
		queue:    queue,
		locales:  locales,
		langs:    langs,
		logger:   logger,
	}
}

func queuePageData(page int) string {
	return queuePagePrefix + strconv.Itoa(page)
}

// parseQueuePage extracts the page number from play_c_queue_<page>.
func parseQueuePage(data string) (int, bool) {
	rest, ok := strings.CutPrefix(data, queuePagePrefix)
	if !ok || !isDigits(rest) {
		return 0, false
	}
	page, err := strconv.Atoi(rest)
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}

// RenderPage formats one page of tracks. Pages past the end are clamped.
func RenderPage(l *i18n.Localizer, tracks []cache.Track, page int) (string, chat.Markup) {
	pages := (len(tracks) + queuePageSize - 1) / queuePageSize
	if pages == 0 {
		pages = 1
	}
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}

	var b strings.Builder
	b.WriteString(l.T("queue.page_header", len(tracks), page, pages))

	start := (page - 1) * queuePageSize
	end := min(start+queuePageSize, len(tracks))
	for i := start; i < end; i++ {
		name := html.EscapeString(truncateName(tracks[i].Name, maxNameLength))
		line := l.T("queue.page_line", i+1, name)
		if tracks[i].Duration > 0 {
			line = fmt.Sprintf("%s (%s)", line, call.FormatDuration(tracks[i].Duration))
		}
		b.WriteString("\n")
		b.WriteString(line)
	}

	var nav []chat.Button
	if page > 1 {
		nav = append(nav, chat.Button{Text: l.T("button.prev"), Data: queuePageData(page - 1)})
	}
	if page < pages {
		nav = append(nav, chat.Button{Text: l.T("button.next"), Data: queuePageData(page + 1)})
	}

	markup := chat.Markup{}
	if len(nav) > 0 {
		markup = append(markup, nav)
	}
	markup = append(markup, []chat.Button{{Text: l.T("button.close"), Data: call.DataClose}})
	return b.String(), markup
}

func (p *QueuePager) localizer(ctx context.Context, chatID int64, user *chat.User) *i18n.Localizer {
	lang, err := p.langs.GetChatLanguage(ctx, chatID)
	if err != nil {
		p.logger.Debug("Failed to read chat language", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	return p.locales.For(lang, user.LanguageCode)
}

// HandleProgress serves a play_c_* button press.
func (p *QueuePager) HandleProgress(ctx context.Context, cb *chat.Callback, msg *chat.Message, user *chat.User, data string) string {
	l := p.localizer(ctx, cb.ChatID, user)

	answer := func(text string) {
		if err := p.frontend.AnswerCallback(ctx, cb.ID, text, text != ""); err != nil {
			p.logger.Debug("Failed to answer callback", zap.Int64("chat_id", cb.ChatID), zap.Error(err))
		}
	}

	page, ok := parseQueuePage(data)
	if !ok {
		p.logger.Warn("Unknown progress callback", zap.Int64("chat_id", cb.ChatID), zap.String("data", data))
		answer(l.T("callback.invalid_request"))
		return outcomeInvalid
	}

	tracks := p.queue.GetQueue(cb.ChatID)
	if len(tracks) == 0 {
		answer(l.T("queue.empty"))
		return outcomeDenied
	}

	text, markup := RenderPage(l, tracks, page)
	if _, err := p.frontend.EditText(ctx, msg, text, markup); err != nil {
		p.logger.Warn("Failed to show queue page", zap.Int64("chat_id", cb.ChatID), zap.Error(err))
		answer(l.T("error.generic"))
		return outcomeFailed
	}
	answer("")
	return outcomeOK
}

// handleQueue serves /queue by posting the first page.
func (h *Handlers) handleQueue(ctx context.Context, msg *chat.Message) string {
	l := h.localizer(ctx, msg.ChatID, msg.From)

	if !isGroupChat(msg.ChatID) {
		h.notify(ctx, replyTo(msg), l.T("error.groups_only"))
		return outcomeDenied
	}

	tracks := h.queue.GetQueue(msg.ChatID)
	if len(tracks) == 0 {
		h.notify(ctx, replyTo(msg), l.T("queue.empty"))
		return outcomeDenied
	}
	if !h.queue.IsActive(msg.ChatID) {
		h.notify(ctx, replyTo(msg), l.T("playback.not_active"))
		return outcomeDenied
	}

	text, markup := RenderPage(l, tracks, 1)
	if _, err := h.frontend.SendText(ctx, msg.ChatID, text, markup); err != nil {
		h.logger.Warn("Failed to send queue", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
		return outcomeFailed
	}
	return outcomeOK
}
