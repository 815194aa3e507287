// Package flood rate-limits commands and button presses per user and chat.
package flood

import (
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// windowDuration is the sliding window for flood detection.
	windowDuration = 60 * time.Second
	// idleTimeout is how long an untouched entry is kept.
	idleTimeout = 10 * time.Minute
	// maxEntries bounds the number of tracked chat/user pairs.
	maxEntries = 50000
)

// Floodgate provides per-user, per-chat sliding window rate limiting.
type Floodgate struct {
	limitPerMinute int
	entries        *expirable.LRU[string, *userEntry]
	mutex          sync.Mutex
	now            func() time.Time
}

// userEntry tracks action timestamps for one user in one chat.
type userEntry struct {
	timestamps []time.Time
}

// New creates a Floodgate allowing limitPerMinute actions per user per chat.
// A non-positive limit disables limiting.
func New(limitPerMinute int) *Floodgate {
	return &Floodgate{
		limitPerMinute: limitPerMinute,
		entries:        expirable.NewLRU[string, *userEntry](maxEntries, nil, idleTimeout),
		now:            time.Now,
	}
}

func entryKey(chatID, userID int64) string {
	return strconv.FormatInt(chatID, 10) + ":" + strconv.FormatInt(userID, 10)
}

// Allow records an action and reports whether it is within the limit.
func (fg *Floodgate) Allow(chatID, userID int64) bool {
	if fg.limitPerMinute <= 0 {
		return true
	}

	key := entryKey(chatID, userID)
	now := fg.now()

	fg.mutex.Lock()
	defer fg.mutex.Unlock()

	entry, ok := fg.entries.Get(key)
	if !ok {
		entry = &userEntry{timestamps: make([]time.Time, 0, fg.limitPerMinute+1)}
	}

	windowStart := now.Add(-windowDuration)
	valid := entry.timestamps[:0]
	for _, ts := range entry.timestamps {
		if ts.After(windowStart) {
			valid = append(valid, ts)
		}
	}
	entry.timestamps = valid

	// Add refreshes the idle TTL.
	fg.entries.Add(key, entry)

	if len(entry.timestamps) >= fg.limitPerMinute {
		return false
	}
	entry.timestamps = append(entry.timestamps, now)
	return true
}

// GetStats returns statistics about the floodgate for monitoring.
func (fg *Floodgate) GetStats() Stats {
	return Stats{
		ActiveUsers:    fg.entries.Len(),
		LimitPerMinute: fg.limitPerMinute,
		WindowSeconds:  int(windowDuration.Seconds()),
	}
}

// Stats contains floodgate statistics.
type Stats struct {
	ActiveUsers    int `json:"active_users"`
	LimitPerMinute int `json:"limit_per_minute"`
	WindowSeconds  int `json:"window_seconds"`
}
