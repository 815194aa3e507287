// Package call drives playback for a chat: it advances the queue cache, commands the media
// streamer and posts now-playing notices.
package call

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	"go.uber.org/zap"

	"tgmusicbot/internal/cache"
	"tgmusicbot/internal/chat"
	"tgmusicbot/internal/i18n"
	"tgmusicbot/pkg/musiclink"
)

var (
	// ErrNotActive is returned when a control targets a chat with nothing playing.
	ErrNotActive = errors.New("no active playback session")
	// ErrNoSong is returned when Play is handed an empty song.
	ErrNoSong = errors.New("no song to play")
)

// ChatSettings is the subset of the settings store playback needs.
type ChatSettings interface {
	GetButtonsStatus(ctx context.Context, chatID int64) (bool, error)
	GetThumbnailStatus(ctx context.Context, chatID int64) (bool, error)
	GetChatLanguage(ctx context.Context, chatID int64) (string, error)
}

// Controller implements play next, pause, resume and end for chats.
type Controller struct {
	queue    *cache.ChatCache
	frontend chat.Frontend
	settings ChatSettings
	locales  *i18n.Manager
	streamer Streamer
	logger   *zap.Logger
	now      func() time.Time
}

// NewController creates a call controller.
func NewController(
	queue *cache.ChatCache,
	frontend chat.Frontend,
	settings ChatSettings,
	locales *i18n.Manager,
	streamer Streamer,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		queue:    queue,
		frontend: frontend,
		settings: settings,
		locales:  locales,
		streamer: streamer,
		logger:   logger,
		now:      time.Now,
	}
}

func (c *Controller) localizer(ctx context.Context, chatID int64) *i18n.Localizer {
	lang, err := c.settings.GetChatLanguage(ctx, chatID)
	if err != nil {
		c.logger.Debug("Failed to read chat language", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	return c.locales.For(lang)
}

func (c *Controller) markup(ctx context.Context, chatID int64, l *i18n.Localizer, state State) chat.Markup {
	enabled, err := c.settings.GetButtonsStatus(ctx, chatID)
	if err != nil {
		c.logger.Debug("Failed to read buttons status", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	if !enabled {
		return nil
	}
	return ControlMarkup(l, state)
}

func (c *Controller) nowPlayingText(l *i18n.Localizer, track cache.Track) string {
	return l.T("playback.now_playing",
		html.EscapeString(track.Name), FormatDuration(track.Duration), html.EscapeString(track.Requester))
}

func (c *Controller) thumbnailsEnabled(ctx context.Context, chatID int64) bool {
	enabled, err := c.settings.GetThumbnailStatus(ctx, chatID)
	if err != nil {
		c.logger.Debug("Failed to read thumbnail status", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	return enabled
}

// announce posts the now-playing notice, as a photo when the track has a
// thumbnail and the chat shows them. A rejected photo falls back to text.
func (c *Controller) announce(ctx context.Context, chatID int64, track cache.Track) {
	l := c.localizer(ctx, chatID)
	text := c.nowPlayingText(l, track)
	markup := c.markup(ctx, chatID, l, StatePlaying)

	if track.Thumbnail != "" && c.thumbnailsEnabled(ctx, chatID) {
		_, err := c.frontend.SendPhoto(ctx, chatID, track.Thumbnail, text, markup)
		if err == nil {
			return
		}
		c.logger.Debug("Failed to send thumbnail", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	if _, err := c.frontend.SendText(ctx, chatID, text, markup); err != nil {
		c.logger.Warn("Failed to announce track", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// start streams the head of the queue and announces it. A started track
// counts as chat activity.
func (c *Controller) start(ctx context.Context, chatID int64) error {
	track, ok := c.queue.PlayingTrack(chatID)
	if !ok {
		return ErrNotActive
	}

	if err := c.streamer.Play(ctx, chatID, track); err != nil {
		return fmt.Errorf("failed to stream %q: %w", track.Name, err)
	}
	c.queue.SetActive(chatID, true)
	c.queue.MarkStarted(chatID, c.now())
	c.queue.UpdateActivity(chatID)

	c.announce(ctx, chatID, track)
	return nil
}

// PlayNext advances the chat to its next track. A looping head track is
// replayed instead; an exhausted queue ends the session.
func (c *Controller) PlayNext(ctx context.Context, chatID int64) error {
	if !c.queue.IsActive(chatID) {
		return ErrNotActive
	}

	if loop := c.queue.GetLoopCount(chatID); loop > 0 {
		c.queue.SetLoopCount(chatID, loop-1)
		return c.start(ctx, chatID)
	}

	c.queue.RemoveCurrent(chatID)
	if c.queue.QueueLength(chatID) == 0 {
		if err := c.End(ctx, chatID); err != nil {
			return err
		}
		l := c.localizer(ctx, chatID)
		if _, err := c.frontend.SendText(ctx, chatID, l.T("playback.queue_finished"), nil); err != nil {
			c.logger.Warn("Failed to announce end of queue", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		return nil
	}

	return c.start(ctx, chatID)
}

// Pause pauses the stream.
func (c *Controller) Pause(ctx context.Context, chatID int64) error {
	if !c.queue.IsActive(chatID) {
		return ErrNotActive
	}
	if err := c.streamer.Pause(ctx, chatID); err != nil {
		return fmt.Errorf("failed to pause: %w", err)
	}
	c.queue.MarkPaused(chatID, c.now())
	return nil
}

// Resume resumes a paused stream.
func (c *Controller) Resume(ctx context.Context, chatID int64) error {
	if !c.queue.IsActive(chatID) {
		return ErrNotActive
	}
	if err := c.streamer.Resume(ctx, chatID); err != nil {
		return fmt.Errorf("failed to resume: %w", err)
	}
	c.queue.MarkResumed(chatID, c.now())
	return nil
}

// End stops the stream and clears the chat session. The session is cleared
// even when the streamer fails.
func (c *Controller) End(ctx context.Context, chatID int64) error {
	err := c.streamer.Stop(ctx, chatID)
	c.queue.ClearChat(chatID)
	if err != nil {
		return fmt.Errorf("failed to stop stream: %w", err)
	}
	return nil
}

// Play queues song for the chat. If nothing is playing it starts right away;
// otherwise reply is edited to show the queue position.
func (c *Controller) Play(ctx context.Context, chatID int64, reply *chat.Message, song *musiclink.Song, requester string) error {
	if song == nil {
		return ErrNoSong
	}

	track := &cache.Track{
		ID:        song.ID,
		Name:      song.DisplayName(),
		URL:       song.URL,
		Platform:  song.Platform,
		Thumbnail: song.Thumbnail,
		Duration:  song.Duration,
		Requester: requester,
	}

	wasActive := c.queue.IsActive(chatID) && c.queue.QueueLength(chatID) > 0
	pos := c.queue.AddSong(chatID, track)
	c.queue.UpdateActivity(chatID)

	if !wasActive {
		if reply != nil {
			if err := c.frontend.DeleteMessage(ctx, chatID, reply.ID); err != nil {
				c.logger.Debug("Failed to delete search message", zap.Int64("chat_id", chatID), zap.Error(err))
			}
		}
		if err := c.start(ctx, chatID); err != nil {
			c.queue.ClearChat(chatID)
			return err
		}
		return nil
	}

	if reply == nil {
		return nil
	}
	l := c.localizer(ctx, chatID)
	text := l.T("playback.queued", html.EscapeString(track.Name), pos, html.EscapeString(requester))
	if _, err := c.frontend.EditText(ctx, reply, text, nil); err != nil {
		c.logger.Warn("Failed to report queue position", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	return nil
}

// Elapsed reports how much of the head track has been played, not counting pauses.
func (c *Controller) Elapsed(chatID int64) (cache.Track, time.Duration, bool) {
	track, ok := c.queue.PlayingTrack(chatID)
	if !ok {
		return cache.Track{}, 0, false
	}
	return track, track.Played(c.now()), true
}
