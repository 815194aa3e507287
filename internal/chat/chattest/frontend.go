// Package chattest provides a recording chat.Frontend for tests.
package chattest

import (
	"context"
	"errors"
	"sync"

	"tgmusicbot/internal/chat"
)

// ErrNotFound is returned by GetMessage and GetUser for unknown IDs.
var ErrNotFound = errors.New("not found")

// Sent records an outgoing text or photo.
type Sent struct {
	ChatID  int64
	ReplyTo int
	Text    string
	Photo   string
	Markup  chat.Markup
}

// Edit records a text or caption edit.
type Edit struct {
	ChatID    int64
	MessageID int
	Caption   bool
	Text      string
	Markup    chat.Markup
}

// Answer records a callback answer.
type Answer struct {
	CallbackID string
	Text       string
	Alert      bool
}

// Deleted records a message deletion.
type Deleted struct {
	ChatID    int64
	MessageID int
}

// Frontend records every call and can be told to fail.
type Frontend struct {
	mutex  sync.Mutex
	nextID int

	Sent    []Sent
	Edits   []Edit
	Answers []Answer
	Deleted []Deleted

	// Users resolves GetUser; a missing entry yields ErrNotFound.
	Users map[int64]chat.User

	SendErr       error
	PhotoErr      error
	EditErr       error
	DeleteErr     error
	AnswerErr     error
	GetMessageErr error
}

// New creates a recording frontend.
func New() *Frontend {
	return &Frontend{nextID: 1000, Users: make(map[int64]chat.User)}
}

func (f *Frontend) newMessage(chatID int64, text string) *chat.Message {
	f.nextID++
	return &chat.Message{ID: f.nextID, ChatID: chatID, Text: text, IsGroup: chatID < 0}
}

// SendText records a sent message.
func (f *Frontend) SendText(_ context.Context, chatID int64, text string, markup chat.Markup) (*chat.Message, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.SendErr != nil {
		return nil, f.SendErr
	}
	f.Sent = append(f.Sent, Sent{ChatID: chatID, Text: text, Markup: markup})
	return f.newMessage(chatID, text), nil
}

// SendPhoto records a sent photo; the caption is stored as Text.
func (f *Frontend) SendPhoto(_ context.Context, chatID int64, photoURL, caption string, markup chat.Markup) (*chat.Message, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.PhotoErr != nil {
		return nil, f.PhotoErr
	}
	f.Sent = append(f.Sent, Sent{ChatID: chatID, Text: caption, Photo: photoURL, Markup: markup})
	msg := f.newMessage(chatID, "")
	msg.Caption = caption
	return msg, nil
}

// Reply records a reply.
func (f *Frontend) Reply(_ context.Context, msg *chat.Message, text string) (*chat.Message, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.SendErr != nil {
		return nil, f.SendErr
	}
	f.Sent = append(f.Sent, Sent{ChatID: msg.ChatID, ReplyTo: msg.ID, Text: text})
	return f.newMessage(msg.ChatID, text), nil
}

// EditText records an edit.
func (f *Frontend) EditText(_ context.Context, msg *chat.Message, text string, markup chat.Markup) (*chat.Message, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.EditErr != nil {
		return nil, f.EditErr
	}
	f.Edits = append(f.Edits, Edit{
		ChatID:    msg.ChatID,
		MessageID: msg.ID,
		Caption:   msg.HasCaption(),
		Text:      text,
		Markup:    markup,
	})
	edited := *msg
	edited.Text = text
	return &edited, nil
}

// DeleteMessage records a deletion.
func (f *Frontend) DeleteMessage(_ context.Context, chatID int64, msgID int) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.Deleted = append(f.Deleted, Deleted{ChatID: chatID, MessageID: msgID})
	return nil
}

// AnswerCallback records a callback answer.
func (f *Frontend) AnswerCallback(_ context.Context, callbackID, text string, alert bool) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.AnswerErr != nil {
		return f.AnswerErr
	}
	f.Answers = append(f.Answers, Answer{CallbackID: callbackID, Text: text, Alert: alert})
	return nil
}

// GetMessage returns the callback's message.
func (f *Frontend) GetMessage(_ context.Context, cb *chat.Callback) (*chat.Message, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.GetMessageErr != nil {
		return nil, f.GetMessageErr
	}
	if cb.Message == nil {
		return nil, ErrNotFound
	}
	return cb.Message, nil
}

// GetUser resolves a user from Users.
func (f *Frontend) GetUser(_ context.Context, _, userID int64) (*chat.User, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	u, ok := f.Users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// LastAnswer returns the most recent callback answer.
func (f *Frontend) LastAnswer() (Answer, bool) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if len(f.Answers) == 0 {
		return Answer{}, false
	}
	return f.Answers[len(f.Answers)-1], true
}

// LastSent returns the most recent sent message or reply.
func (f *Frontend) LastSent() (Sent, bool) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if len(f.Sent) == 0 {
		return Sent{}, false
	}
	return f.Sent[len(f.Sent)-1], true
}

// LastEdit returns the most recent edit.
func (f *Frontend) LastEdit() (Edit, bool) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if len(f.Edits) == 0 {
		return Edit{}, false
	}
	return f.Edits[len(f.Edits)-1], true
}
