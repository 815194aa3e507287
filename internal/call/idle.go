package call

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// stillPlaying reports whether the head track is unpaused and within its known duration.
func (c *Controller) stillPlaying(chatID int64) bool {
	track, ok := c.queue.PlayingTrack(chatID)
	if !ok || track.StartedAt.IsZero() || !track.PausedAt.IsZero() || track.Duration <= 0 {
		return false
	}
	return track.Played(c.now()) < track.Duration
}

// EndIdle ends playback in every chat with no command or track start for
// longer than idle, unless a track is still playing. Each chat is told
// before the bot leaves. It returns the chats it ended.
func (c *Controller) EndIdle(ctx context.Context, idle time.Duration) []int64 {
	var ended []int64
	for _, chatID := range c.queue.InactiveChats(idle) {
		if c.stillPlaying(chatID) {
			continue
		}

		l := c.localizer(ctx, chatID)
		if _, err := c.frontend.SendText(ctx, chatID, l.T("playback.idle_left"), nil); err != nil {
			c.logger.Debug("Failed to announce idle leave", zap.Int64("chat_id", chatID), zap.Error(err))
		}

		ended = append(ended, chatID)
		if err := c.End(ctx, chatID); err != nil {
			c.logger.Warn("Failed to end idle chat", zap.Int64("chat_id", chatID), zap.Error(err))
			continue
		}
		c.logger.Info("Ended idle playback", zap.Int64("chat_id", chatID), zap.Duration("idle", idle))
	}
	return ended
}

// RunIdleSweeper calls EndIdle every interval until ctx is done. A non-positive
// idle only reports. report, if set, receives the number of active chats after each sweep.
func (c *Controller) RunIdleSweeper(ctx context.Context, interval, idle time.Duration, report func(active int)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if idle > 0 {
				c.EndIdle(ctx, idle)
			}
			if report != nil {
				report(len(c.queue.ActiveChats()))
			}
		}
	}
}
