package repository

import (
	"context"

	"drivn/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// ListByConversation returns all messages of a conversation ordered by
	// creation time ascending.
	ListByConversation(ctx context.Context, conversationID string) ([]*entity.Message, error)
	// MarkRead flips read=true on every message of the conversation that was
	// not sent by viewerID and is still unread. Returns the number of
	// messages updated. Idempotent.
	MarkRead(ctx context.Context, conversationID, viewerID string) (int, error)
}
