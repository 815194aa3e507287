// Package admins caches per-chat administrator lists fetched from the chat platform.
package admins

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const (
	// DefaultTTL is how long a fetched admin list is trusted.
	DefaultTTL = 10 * time.Minute
	// DefaultSize bounds the number of chats kept in memory.
	DefaultSize = 5000
)

// Member is one administrator of a chat.
type Member struct {
	UserID  int64
	IsOwner bool
	IsBot   bool
}

// Source fetches the current administrators of a chat.
type Source interface {
	ChatAdministrators(ctx context.Context, chatID int64) ([]Member, error)
}

type adminList struct {
	owner  int64
	admins map[int64]struct{}
}

// Cache is an expiring LRU of chat administrator lists.
type Cache struct {
	source Source
	lists  *expirable.LRU[int64, *adminList]
	logger *zap.Logger
}

// NewCache creates an admin cache. A non-positive ttl or size selects the default.
func NewCache(source Source, size int, ttl time.Duration, logger *zap.Logger) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		source: source,
		lists:  expirable.NewLRU[int64, *adminList](size, nil, ttl),
		logger: logger,
	}
}

// Load makes sure the chat's admin list is cached, refetching when force is set.
func (c *Cache) Load(ctx context.Context, chatID int64, force bool) error {
	_, err := c.get(ctx, chatID, force)
	return err
}

func (c *Cache) get(ctx context.Context, chatID int64, force bool) (*adminList, error) {
	if !force {
		if list, ok := c.lists.Get(chatID); ok {
			return list, nil
		}
	}

	members, err := c.source.ChatAdministrators(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch administrators for chat %d: %w", chatID, err)
	}

	list := &adminList{admins: make(map[int64]struct{}, len(members))}
	for _, m := range members {
		if m.IsBot {
			continue
		}
		if m.IsOwner {
			list.owner = m.UserID
		}
		list.admins[m.UserID] = struct{}{}
	}
	c.lists.Add(chatID, list)

	c.logger.Debug("Cached chat administrators",
		zap.Int64("chat_id", chatID),
		zap.Int("count", len(list.admins)))

	return list, nil
}

// IsAdmin reports whether the user administers the chat. The owner counts as an admin.
func (c *Cache) IsAdmin(ctx context.Context, chatID, userID int64) (bool, error) {
	list, err := c.get(ctx, chatID, false)
	if err != nil {
		return false, err
	}
	_, ok := list.admins[userID]
	return ok, nil
}

// IsOwner reports whether the user created the chat.
func (c *Cache) IsOwner(ctx context.Context, chatID, userID int64) (bool, error) {
	list, err := c.get(ctx, chatID, false)
	if err != nil {
		return false, err
	}
	return list.owner != 0 && list.owner == userID, nil
}
