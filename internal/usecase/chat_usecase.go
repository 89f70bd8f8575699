package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"drivn/internal/domain/entity"
	"drivn/internal/domain/repository"
	"drivn/internal/infrastructure/ratelimit"
	"drivn/pkg/errors"
)

type ChatUseCase struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	vehicleRepo      repository.VehicleRepository
	rateLimiter      *ratelimit.Limiter
}

func NewChatUseCase(
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	vehicleRepo repository.VehicleRepository,
) *ChatUseCase {
	rateLimiter := ratelimit.NewLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		vehicleRepo:      vehicleRepo,
		rateLimiter:      rateLimiter,
	}
}

// MessageRepo exposes the message repository so callers can construct a
// ChatSession bound to the same store.
func (uc *ChatUseCase) MessageRepo() repository.MessageRepository {
	return uc.messageRepo
}

type ConversationResponse struct {
	*entity.Conversation
	Vehicle *entity.VehicleSummary `json:"vehicle,omitempty"`
}

// CanStartChat gates whether the viewer may open a chat on a listing. Owners
// cannot start a chat on their own listing unless an existing conversation
// (buyer context) is already known.
func (uc *ChatUseCase) CanStartChat(viewerID string, vehicle *entity.Vehicle, conversationID string) bool {
	if conversationID != "" {
		return true
	}
	if viewerID == "" || vehicle == nil {
		return false
	}
	return vehicle.OwnerID != viewerID
}

// ResolveConversation returns the single conversation for the
// (vehicle, viewer-as-buyer, seller) triple, creating one when absent.
// Lookup and insert are two separate round-trips with no transactional guard;
// a concurrent double-open can create a duplicate row, which is accepted.
func (uc *ChatUseCase) ResolveConversation(ctx context.Context, viewer *entity.Session, vehicleID, sellerID string) (*entity.Conversation, error) {
	if viewer == nil || viewer.UID == "" {
		return nil, errors.Unauthorized("Authentication required", nil)
	}
	if vehicleID == "" || sellerID == "" {
		return nil, errors.BadRequest("Vehicle and seller are required", nil)
	}
	if viewer.UID == sellerID {
		log.Printf("ResolveConversation: user %s attempted to open chat on own listing %s", viewer.UID, vehicleID)
		return nil, errors.Forbidden("You cannot open a chat on your own listing", nil)
	}

	existing, err := uc.conversationRepo.FindByTriple(ctx, vehicleID, viewer.UID, sellerID)
	if err == nil && existing != nil {
		return existing, nil
	}
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		log.Printf("ResolveConversation: lookup failed for vehicle %s: %v", vehicleID, err)
		return nil, err
	}

	if allowed := uc.rateLimiter.Allow(viewer.UID, "create_conversation"); !allowed {
		return nil, errors.TooManyRequests("Too many new conversations, please wait")
	}

	conversation := &entity.Conversation{
		VehicleID:    vehicleID,
		BuyerID:      viewer.UID,
		SellerID:     sellerID,
		Participants: []string{viewer.UID, sellerID},
		UnreadCount:  make(map[string]int),
	}
	if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
		log.Printf("ResolveConversation: insert failed for vehicle %s: %v", vehicleID, err)
		return nil, err
	}

	return conversation, nil
}

// GetConversationForViewer is the deep-link entry: the conversation ID is
// already known, so the resolver is skipped and the row is fetched directly,
// validating that the viewer participates and, when a vehicle ID travelled
// with the link, that the triple still matches.
func (uc *ChatUseCase) GetConversationForViewer(ctx context.Context, viewer *entity.Session, conversationID, vehicleID string) (*entity.Conversation, error) {
	if viewer == nil || viewer.UID == "" {
		return nil, errors.Unauthorized("Authentication required", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(viewer.UID) {
		return nil, errors.Forbidden("You are not part of this conversation", nil)
	}
	if vehicleID != "" && conversation.VehicleID != vehicleID {
		return nil, errors.NotFound("Conversation", nil)
	}

	return conversation, nil
}

func (uc *ChatUseCase) ListConversations(ctx context.Context, viewer *entity.Session, limit, offset int) ([]*entity.Conversation, int64, error) {
	if viewer == nil || viewer.UID == "" {
		return nil, 0, errors.Unauthorized("Authentication required", nil)
	}
	return uc.conversationRepo.ListByUserID(ctx, viewer.UID, limit, offset)
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, viewer *entity.Session, conversationID string) ([]*entity.Message, error) {
	if _, err := uc.GetConversationForViewer(ctx, viewer, conversationID, ""); err != nil {
		return nil, err
	}
	return uc.messageRepo.ListByConversation(ctx, conversationID)
}

// MarkConversationRead flips read=true on every message not sent by the
// viewer and resets the viewer's unread counter. Best effort: failures are
// logged and swallowed so read status never blocks another flow.
func (uc *ChatUseCase) MarkConversationRead(ctx context.Context, viewer *entity.Session, conversationID string) {
	if viewer == nil || viewer.UID == "" {
		return
	}

	if _, err := uc.messageRepo.MarkRead(ctx, conversationID, viewer.UID); err != nil {
		log.Printf("MarkConversationRead: failed for conversation %s: %v", conversationID, err)
		return
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return
	}
	if conversation.UnreadCount[viewer.UID] != 0 {
		conversation.UnreadCount[viewer.UID] = 0
		if err := uc.conversationRepo.UpdatePreview(ctx, conversation); err != nil {
			log.Printf("MarkConversationRead: unread counter reset failed for conversation %s: %v", conversationID, err)
		}
	}
}

// SendMessage inserts the message row and then refreshes the conversation's
// denormalized preview. A preview failure after a successful insert leaves
// the preview stale until the next send or poll refresh; the message list
// itself is unaffected, so only the insert error is returned to the caller.
func (uc *ChatUseCase) SendMessage(ctx context.Context, viewer *entity.Session, conversationID, content string) (*entity.Message, error) {
	if viewer == nil || viewer.UID == "" {
		return nil, errors.Unauthorized("Authentication required", nil)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}
	if conversationID == "" {
		return nil, errors.BadRequest("Conversation is required", nil)
	}

	if allowed := uc.rateLimiter.Allow(viewer.UID, "send_message"); !allowed {
		return nil, errors.TooManyRequests("Too many messages, please slow down")
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(viewer.UID) {
		return nil, errors.Forbidden("You are not part of this conversation", nil)
	}

	message := &entity.Message{
		ConversationID: conversationID,
		SenderID:       viewer.UID,
		Content:        content,
		Read:           false,
		CreatedAt:      time.Now(),
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		log.Printf("SendMessage: insert failed for conversation %s: %v", conversationID, err)
		return nil, err
	}

	conversation.LastMessage = content
	at := message.CreatedAt
	conversation.LastMessageAt = &at
	if conversation.UnreadCount == nil {
		conversation.UnreadCount = make(map[string]int)
	}
	if other := conversation.OtherParticipant(viewer.UID); other != "" {
		conversation.UnreadCount[other]++
	}
	if err := uc.conversationRepo.UpdatePreview(ctx, conversation); err != nil {
		log.Printf("SendMessage: preview update failed for conversation %s, preview stale until next refresh: %v", conversationID, err)
	}

	return message, nil
}

// VehicleSummary fetches the slim listing projection shown in the chat header.
func (uc *ChatUseCase) VehicleSummary(ctx context.Context, vehicleID string) (*entity.VehicleSummary, error) {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	return vehicle.Summary(), nil
}
