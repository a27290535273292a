package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/omnisearch/internal/domain/model"
	"github.com/ericfisherdev/omnisearch/internal/domain/port/driven"
)

// Chat constants.
const (
	DefaultChatTitle = "New Chat"
	AssistantReply   = "I'm an AI assistant. How can I help you today?"
	titleRunes       = 30
)

// ErrEmptyMessage is returned by Send when the message is blank.
var ErrEmptyMessage = errors.New("message is empty")

// ChatService manages conversations. Replies are canned; no backend call is made.
type ChatService struct {
	store driven.ChatStore
	now   func() time.Time
	newID func() string
}

// NewChatService creates a new ChatService backed by store.
func NewChatService(store driven.ChatStore) *ChatService {
	return &ChatService{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Conversations lists conversations, most recently updated first.
func (s *ChatService) Conversations(ctx context.Context) ([]model.Conversation, error) {
	convs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return convs, nil
}

// Conversation returns one conversation with its messages, or
// driven.ErrConversationNotFound.
func (s *ChatService) Conversation(ctx context.Context, id string) (*model.Conversation, error) {
	conv, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get conversation %s: %w", id, err)
	}
	if conv == nil {
		return nil, fmt.Errorf("get conversation %s: %w", id, driven.ErrConversationNotFound)
	}
	return conv, nil
}

// NewConversation creates an empty conversation titled DefaultChatTitle.
func (s *ChatService) NewConversation(ctx context.Context) (*model.Conversation, error) {
	return s.create(ctx, DefaultChatTitle)
}

// Send appends text and the assistant reply to the conversation. An empty
// conversationID starts a new conversation titled after the message. Blank
// text returns ErrEmptyMessage and stores nothing.
func (s *ChatService) Send(ctx context.Context, conversationID, text string) (*model.Conversation, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	if conversationID == "" {
		conv, err := s.create(ctx, TitleFor(text))
		if err != nil {
			return nil, err
		}
		conversationID = conv.ID
	}

	now := s.now().UTC()
	user := model.Message{
		ID:             s.newID(),
		ConversationID: conversationID,
		Role:           model.RoleUser,
		Content:        text,
		CreatedAt:      now,
	}
	reply := model.Message{
		ID:             s.newID(),
		ConversationID: conversationID,
		Role:           model.RoleAssistant,
		Content:        AssistantReply,
		CreatedAt:      now,
	}

	if err := s.store.AppendMessages(ctx, conversationID, user, reply); err != nil {
		return nil, fmt.Errorf("send to %s: %w", conversationID, err)
	}
	return s.Conversation(ctx, conversationID)
}

// TitleFor derives a conversation title from its first message: the first 30
// characters followed by "...".
func TitleFor(text string) string {
	runes := []rune(text)
	if len(runes) > titleRunes {
		runes = runes[:titleRunes]
	}
	return string(runes) + "..."
}

func (s *ChatService) create(ctx context.Context, title string) (*model.Conversation, error) {
	now := s.now().UTC()
	conv := model.Conversation{
		ID:        s.newID(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return &conv, nil
}
