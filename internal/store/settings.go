// Package store persists per-chat settings in SQLite, guarded by a Bloom filter of known chats.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

const (
	// expectedChats sizes the Bloom filter.
	expectedChats = 100000
	// bloomFalsePositiveRate is the tolerated false positive rate of the known-chat filter.
	bloomFalsePositiveRate = 0.001

	columnButtons  = "buttons"
	columnThumb    = "thumb"
	columnLanguage = "language"
)

const schema = `
CREATE TABLE IF NOT EXISTS chats (
	chat_id       INTEGER PRIMARY KEY,
	buttons       INTEGER NOT NULL DEFAULT 1,
	thumb         INTEGER NOT NULL DEFAULT 1,
	language      TEXT    NOT NULL DEFAULT '',
	last_activity INTEGER NOT NULL DEFAULT 0
);
`

// Settings stores chat preferences. Chats without a row report the defaults:
// buttons and thumbnails enabled, no language override.
type Settings struct {
	db    *sql.DB
	mutex sync.RWMutex
	known *bloom.BloomFilter
	now   func() time.Time
}

// Open opens (or creates) the settings database at path and loads the known-chat filter.
func Open(ctx context.Context, path string) (*Settings, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply settings schema: %w", err)
	}

	s := &Settings{
		db:    db,
		known: bloom.NewWithEstimates(expectedChats, bloomFalsePositiveRate),
		now:   time.Now,
	}

	if err := s.loadKnownChats(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database.
func (s *Settings) Close() error {
	return s.db.Close()
}

func (s *Settings) loadKnownChats(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT chat_id FROM chats`)
	if err != nil {
		return fmt.Errorf("failed to load known chats: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for rows.Next() {
		var chatID int64
		if err := rows.Scan(&chatID); err != nil {
			return fmt.Errorf("failed to scan chat id: %w", err)
		}
		s.known.AddString(chatKey(chatID))
	}
	return rows.Err()
}

func chatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func (s *Settings) maybeKnown(chatID int64) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.known.TestString(chatKey(chatID))
}

func (s *Settings) markKnown(chatID int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.known.AddString(chatKey(chatID))
}

func (s *Settings) ensureChat(ctx context.Context, chatID int64) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO chats (chat_id) VALUES (?)`, chatID); err != nil {
		return fmt.Errorf("failed to register chat %d: %w", chatID, err)
	}
	s.markKnown(chatID)
	return nil
}

func (s *Settings) getBool(ctx context.Context, chatID int64, column string) (bool, error) {
	if !s.maybeKnown(chatID) {
		return true, nil
	}

	var value bool
	err := s.db.QueryRowContext(ctx,
		`SELECT `+column+` FROM chats WHERE chat_id = ?`, chatID).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return true, fmt.Errorf("failed to read %s for chat %d: %w", column, chatID, err)
	}
	return value, nil
}

func (s *Settings) setColumn(ctx context.Context, chatID int64, column string, value any) error {
	if err := s.ensureChat(ctx, chatID); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE chats SET `+column+` = ? WHERE chat_id = ?`, value, chatID); err != nil {
		return fmt.Errorf("failed to update %s for chat %d: %w", column, chatID, err)
	}
	return nil
}

// GetButtonsStatus reports whether playback control buttons are shown in the chat.
func (s *Settings) GetButtonsStatus(ctx context.Context, chatID int64) (bool, error) {
	return s.getBool(ctx, chatID, columnButtons)
}

// SetButtonsStatus enables or disables playback control buttons.
func (s *Settings) SetButtonsStatus(ctx context.Context, chatID int64, enabled bool) error {
	return s.setColumn(ctx, chatID, columnButtons, enabled)
}

// GetThumbnailStatus reports whether track thumbnails are shown in the chat.
func (s *Settings) GetThumbnailStatus(ctx context.Context, chatID int64) (bool, error) {
	return s.getBool(ctx, chatID, columnThumb)
}

// SetThumbnailStatus enables or disables track thumbnails.
func (s *Settings) SetThumbnailStatus(ctx context.Context, chatID int64, enabled bool) error {
	return s.setColumn(ctx, chatID, columnThumb, enabled)
}

// GetChatLanguage returns the chat's language override, or "" when unset.
func (s *Settings) GetChatLanguage(ctx context.Context, chatID int64) (string, error) {
	if !s.maybeKnown(chatID) {
		return "", nil
	}

	var lang string
	err := s.db.QueryRowContext(ctx,
		`SELECT language FROM chats WHERE chat_id = ?`, chatID).Scan(&lang)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read language for chat %d: %w", chatID, err)
	}
	return lang, nil
}

// SetChatLanguage stores the chat's language override.
func (s *Settings) SetChatLanguage(ctx context.Context, chatID int64, lang string) error {
	return s.setColumn(ctx, chatID, columnLanguage, lang)
}

// UpdateChatActivity stamps the chat's last activity with the current time.
func (s *Settings) UpdateChatActivity(ctx context.Context, chatID int64) error {
	return s.setColumn(ctx, chatID, "last_activity", s.now().Unix())
}
