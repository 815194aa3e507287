package call

import (
	"context"

	"go.uber.org/zap"

	"tgmusicbot/internal/cache"
)

// Streamer is the media engine that joins voice chats and streams audio.
type Streamer interface {
	Play(ctx context.Context, chatID int64, track cache.Track) error
	Pause(ctx context.Context, chatID int64) error
	Resume(ctx context.Context, chatID int64) error
	Stop(ctx context.Context, chatID int64) error
}

// LogStreamer records stream commands without producing audio. It stands in
// for the media engine when none is attached.
type LogStreamer struct {
	logger *zap.Logger
}

// NewLogStreamer creates a LogStreamer.
func NewLogStreamer(logger *zap.Logger) *LogStreamer {
	return &LogStreamer{logger: logger}
}

// Play logs the track that would start streaming.
func (s *LogStreamer) Play(_ context.Context, chatID int64, track cache.Track) error {
	s.logger.Info("Stream play",
		zap.Int64("chat_id", chatID),
		zap.String("track", track.Name),
		zap.String("url", track.URL))
	return nil
}

// Pause logs a pause.
func (s *LogStreamer) Pause(_ context.Context, chatID int64) error {
	s.logger.Info("Stream pause", zap.Int64("chat_id", chatID))
	return nil
}

// Resume logs a resume.
func (s *LogStreamer) Resume(_ context.Context, chatID int64) error {
	s.logger.Info("Stream resume", zap.Int64("chat_id", chatID))
	return nil
}

// Stop logs a stop.
func (s *LogStreamer) Stop(_ context.Context, chatID int64) error {
	s.logger.Info("Stream stop", zap.Int64("chat_id", chatID))
	return nil
}
