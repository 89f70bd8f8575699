package repository

import (
	"context"

	"drivn/internal/domain/entity"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	// FindByTriple returns the first conversation matching the
	// (vehicle, buyer, seller) triple, or a NOT_FOUND error.
	FindByTriple(ctx context.Context, vehicleID, buyerID, sellerID string) (*entity.Conversation, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error)
	// UpdatePreview sets the denormalized last_message fields.
	UpdatePreview(ctx context.Context, conversation *entity.Conversation) error
}
