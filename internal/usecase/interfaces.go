package usecase

import (
	"context"

	"drivn/internal/domain/entity"
)

// MessageFeed delivers realtime insert events for one conversation. Subscribe
// returns an unsubscribe function that must be safe to call more than once.
type MessageFeed interface {
	Subscribe(ctx context.Context, conversationID string, handler func(*entity.Message)) (func(), error)
}

// MessageSender is the write path used by the composer.
type MessageSender interface {
	SendMessage(ctx context.Context, viewer *entity.Session, conversationID, content string) (*entity.Message, error)
}
