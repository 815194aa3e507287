// Package cache holds per-chat playback sessions: the active flag, the track queue and activity timestamps.
package cache

import (
	"sync"
	"time"
)

// MaxLoopCount is the highest loop count a track may carry.
const MaxLoopCount = 10

// Track is a queued song. The head of the queue is the one playing.
type Track struct {
	ID        string
	Name      string
	URL       string
	Platform  string
	Thumbnail string
	Duration  time.Duration
	Requester string
	Loop      int
	StartedAt time.Time
	// PausedAt is set while the track is paused.
	PausedAt time.Time
	// PausedFor is the total time spent paused before PausedAt.
	PausedFor time.Duration
}

// Played returns how much of the track has been heard at now, excluding pauses.
func (t Track) Played(now time.Time) time.Duration {
	if t.StartedAt.IsZero() {
		return 0
	}
	end := now
	if !t.PausedAt.IsZero() {
		end = t.PausedAt
	}
	if played := end.Sub(t.StartedAt) - t.PausedFor; played > 0 {
		return played
	}
	return 0
}

type session struct {
	active       bool
	queue        []*Track
	lastActivity time.Time
}

// ChatCache provides thread-safe access to playback sessions keyed by chat ID.
type ChatCache struct {
	mutex    sync.RWMutex
	sessions map[int64]*session
	now      func() time.Time
}

// NewChatCache creates an empty chat cache.
func NewChatCache() *ChatCache {
	return &ChatCache{
		sessions: make(map[int64]*session),
		now:      time.Now,
	}
}

func (c *ChatCache) getOrCreate(chatID int64) *session {
	s, ok := c.sessions[chatID]
	if !ok {
		s = &session{lastActivity: c.now()}
		c.sessions[chatID] = s
	}
	return s
}

// IsActive reports whether the chat has an active playback session.
func (c *ChatCache) IsActive(chatID int64) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	s, ok := c.sessions[chatID]
	return ok && s.active
}

// SetActive marks the chat session active or inactive.
func (c *ChatCache) SetActive(chatID int64, active bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.getOrCreate(chatID).active = active
}

// AddSong appends a track and returns its 1-based queue position.
// A chat receiving its first song becomes active.
func (c *ChatCache) AddSong(chatID int64, track *Track) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	s, ok := c.sessions[chatID]
	if !ok {
		s = &session{active: true, lastActivity: c.now()}
		c.sessions[chatID] = s
	}
	s.queue = append(s.queue, track)
	return len(s.queue)
}

// GetQueue returns a copy of the chat queue.
func (c *ChatCache) GetQueue(chatID int64) []Track {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	s, ok := c.sessions[chatID]
	if !ok {
		return nil
	}
	out := make([]Track, 0, len(s.queue))
	for _, t := range s.queue {
		out = append(out, *t)
	}
	return out
}

// QueueLength returns the number of queued tracks, including the playing one.
func (c *ChatCache) QueueLength(chatID int64) int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if s, ok := c.sessions[chatID]; ok {
		return len(s.queue)
	}
	return 0
}

// PlayingTrack returns a copy of the head track.
func (c *ChatCache) PlayingTrack(chatID int64) (Track, bool) {
	return c.trackAt(chatID, 0)
}

func (c *ChatCache) trackAt(chatID int64, idx int) (Track, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	s, ok := c.sessions[chatID]
	if !ok || idx >= len(s.queue) {
		return Track{}, false
	}
	return *s.queue[idx], true
}

// MarkStarted records the moment the head track began playing.
func (c *ChatCache) MarkStarted(chatID int64, at time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if s, ok := c.sessions[chatID]; ok && len(s.queue) > 0 {
		head := s.queue[0]
		head.StartedAt = at
		head.PausedAt = time.Time{}
		head.PausedFor = 0
	}
}

// MarkPaused records that the head track was paused at at. Repeated pauses keep the first.
func (c *ChatCache) MarkPaused(chatID int64, at time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if s, ok := c.sessions[chatID]; ok && len(s.queue) > 0 && s.queue[0].PausedAt.IsZero() {
		s.queue[0].PausedAt = at
	}
}

// MarkResumed adds the pause that ends at at to the head track's paused time.
func (c *ChatCache) MarkResumed(chatID int64, at time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	s, ok := c.sessions[chatID]
	if !ok || len(s.queue) == 0 || s.queue[0].PausedAt.IsZero() {
		return
	}
	head := s.queue[0]
	if at.After(head.PausedAt) {
		head.PausedFor += at.Sub(head.PausedAt)
	}
	head.PausedAt = time.Time{}
}

// RemoveCurrent pops the head track.
func (c *ChatCache) RemoveCurrent(chatID int64) (Track, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	s, ok := c.sessions[chatID]
	if !ok || len(s.queue) == 0 {
		return Track{}, false
	}
	head := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	return *head, true
}

// GetLoopCount returns the loop count of the playing track.
func (c *ChatCache) GetLoopCount(chatID int64) int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if s, ok := c.sessions[chatID]; ok && len(s.queue) > 0 {
		return s.queue[0].Loop
	}
	return 0
}

// SetLoopCount sets the loop count of the playing track. It returns false if
// the queue is empty or loop is outside [0, MaxLoopCount].
func (c *ChatCache) SetLoopCount(chatID int64, loop int) bool {
	if loop < 0 || loop > MaxLoopCount {
		return false
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	s, ok := c.sessions[chatID]
	if !ok || len(s.queue) == 0 {
		return false
	}
	s.queue[0].Loop = loop
	return true
}

// RemoveTrack removes the track at the 1-based position pos.
func (c *ChatCache) RemoveTrack(chatID int64, pos int) (Track, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	s, ok := c.sessions[chatID]
	if !ok || pos < 1 || pos > len(s.queue) {
		return Track{}, false
	}
	idx := pos - 1
	removed := s.queue[idx]
	s.queue = append(s.queue[:idx], s.queue[idx+1:]...)
	return *removed, true
}

// UpdateActivity stamps the chat as recently used.
func (c *ChatCache) UpdateActivity(chatID int64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.getOrCreate(chatID).lastActivity = c.now()
}

// ClearChat drops all session data for the chat.
func (c *ChatCache) ClearChat(chatID int64) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.sessions[chatID]; !ok {
		return false
	}
	delete(c.sessions, chatID)
	return true
}

// ActiveChats lists chats with an active session.
func (c *ChatCache) ActiveChats() []int64 {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var ids []int64
	for id, s := range c.sessions {
		if s.active {
			ids = append(ids, id)
		}
	}
	return ids
}

// InactiveChats lists active chats whose last activity is older than idle.
func (c *ChatCache) InactiveChats(idle time.Duration) []int64 {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	cutoff := c.now().Add(-idle)
	var ids []int64
	for id, s := range c.sessions {
		if s.active && s.lastActivity.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids
}
