package driven

import (
	"context"

	"github.com/ericfisherdev/omnisearch/internal/domain/model"
)

// ChatStore defines the driven port for conversation persistence.
type ChatStore interface {
	// Create inserts a new conversation without messages.
	Create(ctx context.Context, conv model.Conversation) error

	// List returns all conversations, most recently updated first, without messages.
	List(ctx context.Context) ([]model.Conversation, error)

	// Get returns the conversation with its messages in send order, or nil if
	// no conversation has that ID.
	Get(ctx context.Context, id string) (*model.Conversation, error)

	// AppendMessages adds messages to an existing conversation and bumps its
	// updated_at. Returns ErrConversationNotFound if the conversation is absent.
	AppendMessages(ctx context.Context, conversationID string, msgs ...model.Message) error
}
