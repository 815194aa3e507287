// Package chat provides transport-neutral message types and the frontend interface used by handlers.
package chat

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// User is the person behind a message or button press.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Username     string
	LanguageCode string
}

// DisplayName returns the first and last name, falling back to the username.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" && u.Username != "" {
		return "@" + u.Username
	}
	if name == "" {
		return fmt.Sprintf("%d", u.ID)
	}
	return name
}

// Mention returns an HTML link to the user's profile.
func (u User) Mention() string {
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, u.ID, html.EscapeString(u.DisplayName()))
}

// Message represents a normalized chat message.
type Message struct {
	ID      int
	ChatID  int64
	From    User
	Text    string
	Caption string
	IsGroup bool
}

// HasCaption reports whether the message is a media message with a caption.
func (m *Message) HasCaption() bool {
	return m.Caption != ""
}

// Callback represents an inline button press.
type Callback struct {
	ID        string
	ChatID    int64
	MessageID int
	Data      string
	From      User
	// Message is the message carrying the pressed keyboard; nil if Telegram no longer has it.
	Message *Message
}

// Button is a single inline keyboard button.
type Button struct {
	Text string
	Data string
}

// Markup is an inline keyboard, row by row.
type Markup [][]Button

// Frontend defines the chat operations handlers rely on.
type Frontend interface {
	// SendText sends an HTML message to a chat.
	SendText(ctx context.Context, chatID int64, text string, markup Markup) (*Message, error)

	// SendPhoto sends a photo by URL with an HTML caption.
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, markup Markup) (*Message, error)

	// Reply sends an HTML message as a reply to msg.
	Reply(ctx context.Context, msg *Message, text string) (*Message, error)

	// EditText replaces the text (or caption for media messages) of msg.
	EditText(ctx context.Context, msg *Message, text string, markup Markup) (*Message, error)

	// DeleteMessage deletes a message by its ID.
	DeleteMessage(ctx context.Context, chatID int64, msgID int) error

	// AnswerCallback answers a button press, optionally as a modal alert.
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error

	// GetMessage fetches the message a callback is attached to.
	GetMessage(ctx context.Context, cb *Callback) (*Message, error)

	// GetUser resolves a user in the context of a chat.
	GetUser(ctx context.Context, chatID, userID int64) (*User, error)
}
