package model

import "time"

// Conversation is a chat thread with its messages in send order.
type Conversation struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Messages  []Message
}

// Message is a single chat message.
type Message struct {
	ID             string
	ConversationID string
	Role           MessageRole
	Content        string
	CreatedAt      time.Time
}

// IsUser reports whether the message was written by the user.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}
