package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivn/internal/domain/entity"
	"drivn/pkg/errors"
)

func newChatFixture() (*ChatUseCase, *fakeConversationRepo, *fakeMessageRepo, *fakeVehicleRepo) {
	conversationRepo := newFakeConversationRepo()
	messageRepo := newFakeMessageRepo()
	vehicleRepo := newFakeVehicleRepo(&entity.Vehicle{
		ID:      "veh-1",
		OwnerID: "seller",
		Make:    "Mazda",
		Model:   "MX-5",
		ForSale: true,
	})
	uc := NewChatUseCase(conversationRepo, messageRepo, vehicleRepo)
	return uc, conversationRepo, messageRepo, vehicleRepo
}

func TestResolveConversationCreatesOnce(t *testing.T) {
	uc, _, _, _ := newChatFixture()
	buyer := &entity.Session{UID: "buyer"}

	first, err := uc.ResolveConversation(context.Background(), buyer, "veh-1", "seller")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	assert.Equal(t, []string{"buyer", "seller"}, first.Participants)

	second, err := uc.ResolveConversation(context.Background(), buyer, "veh-1", "seller")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same triple must resolve to the same conversation")
}

func TestResolveConversationDistinctTriples(t *testing.T) {
	uc, _, _, _ := newChatFixture()

	a, err := uc.ResolveConversation(context.Background(), &entity.Session{UID: "buyer-a"}, "veh-1", "seller")
	require.NoError(t, err)
	b, err := uc.ResolveConversation(context.Background(), &entity.Session{UID: "buyer-b"}, "veh-1", "seller")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID, "different buyers get different conversations")
}

func TestResolveConversationRejectsOwnListing(t *testing.T) {
	uc, _, _, _ := newChatFixture()

	_, err := uc.ResolveConversation(context.Background(), &entity.Session{UID: "seller"}, "veh-1", "seller")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestResolveConversationRequiresAuth(t *testing.T) {
	uc, _, _, _ := newChatFixture()

	_, err := uc.ResolveConversation(context.Background(), nil, "veh-1", "seller")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	_, err = uc.ResolveConversation(context.Background(), &entity.Session{}, "veh-1", "seller")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestCanStartChat(t *testing.T) {
	uc, _, _, _ := newChatFixture()
	vehicle := &entity.Vehicle{ID: "veh-1", OwnerID: "seller"}

	assert.True(t, uc.CanStartChat("buyer", vehicle, ""))
	assert.False(t, uc.CanStartChat("seller", vehicle, ""), "owners cannot open chat on their own listing")
	assert.True(t, uc.CanStartChat("seller", vehicle, "conv-1"), "existing conversation context overrides the owner check")
	assert.False(t, uc.CanStartChat("", vehicle, ""))
	assert.False(t, uc.CanStartChat("buyer", nil, ""))
}

func TestGetConversationForViewer(t *testing.T) {
	uc, _, _, _ := newChatFixture()
	buyer := &entity.Session{UID: "buyer"}

	conversation, err := uc.ResolveConversation(context.Background(), buyer, "veh-1", "seller")
	require.NoError(t, err)

	got, err := uc.GetConversationForViewer(context.Background(), buyer, conversation.ID, "veh-1")
	require.NoError(t, err)
	assert.Equal(t, conversation.ID, got.ID)

	// Seller side of the same conversation.
	_, err = uc.GetConversationForViewer(context.Background(), &entity.Session{UID: "seller"}, conversation.ID, "")
	assert.NoError(t, err)

	_, err = uc.GetConversationForViewer(context.Background(), &entity.Session{UID: "stranger"}, conversation.ID, "")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = uc.GetConversationForViewer(context.Background(), buyer, conversation.ID, "veh-other")
	assert.True(t, errors.Is(err, "NOT_FOUND"), "mismatched vehicle in a deep link is treated as missing")
}

func TestSendMessageUpdatesPreview(t *testing.T) {
	uc, conversationRepo, _, _ := newChatFixture()
	buyer := &entity.Session{UID: "buyer"}

	conversation, err := uc.ResolveConversation(context.Background(), buyer, "veh-1", "seller")
	require.NoError(t, err)

	message, err := uc.SendMessage(context.Background(), buyer, conversation.ID, "  still available?  ")
	require.NoError(t, err)
	assert.Equal(t, "still available?", message.Content, "content is trimmed before insert")
	assert.False(t, message.Read)

	stored, err := conversationRepo.GetByID(context.Background(), conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, "still available?", stored.LastMessage)
	require.NotNil(t, stored.LastMessageAt)
	assert.Equal(t, 1, stored.UnreadCount["seller"])
	assert.Equal(t, 0, stored.UnreadCount["buyer"])
}

func TestSendMessagePreviewFailureIsNotFatal(t *testing.T) {
	uc, conversationRepo, messageRepo, _ := newChatFixture()
	buyer := &entity.Session{UID: "buyer"}

	conversation, err := uc.ResolveConversation(context.Background(), buyer, "veh-1", "seller")
	require.NoError(t, err)

	conversationRepo.previewErr = errors.Internal("store down", nil)

	message, err := uc.SendMessage(context.Background(), buyer, conversation.ID, "hello")
	require.NoError(t, err, "a stale preview must not fail the send")
	require.NotNil(t, message)

	messages, err := messageRepo.ListByConversation(context.Background(), conversation.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestSendMessageValidation(t *testing.T) {
	uc, _, _, _ := newChatFixture()
	buyer := &entity.Session{UID: "buyer"}

	conversation, err := uc.ResolveConversation(context.Background(), buyer, "veh-1", "seller")
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), buyer, conversation.ID, "   ")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.SendMessage(context.Background(), nil, conversation.ID, "hi")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	_, err = uc.SendMessage(context.Background(), &entity.Session{UID: "stranger"}, conversation.ID, "hi")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestMarkConversationRead(t *testing.T) {
	uc, conversationRepo, messageRepo, _ := newChatFixture()
	buyer := &entity.Session{UID: "buyer"}
	seller := &entity.Session{UID: "seller"}

	conversation, err := uc.ResolveConversation(context.Background(), buyer, "veh-1", "seller")
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), buyer, conversation.ID, "one")
	require.NoError(t, err)
	_, err = uc.SendMessage(context.Background(), buyer, conversation.ID, "two")
	require.NoError(t, err)

	uc.MarkConversationRead(context.Background(), seller, conversation.ID)

	messages, err := messageRepo.ListByConversation(context.Background(), conversation.ID)
	require.NoError(t, err)
	for _, message := range messages {
		assert.True(t, message.Read)
	}

	stored, err := conversationRepo.GetByID(context.Background(), conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.UnreadCount["seller"])

	// Second call is a no-op, not an error.
	uc.MarkConversationRead(context.Background(), seller, conversation.ID)
}

func TestMarkConversationReadSkipsOwnMessages(t *testing.T) {
	uc, _, messageRepo, _ := newChatFixture()
	buyer := &entity.Session{UID: "buyer"}

	conversation, err := uc.ResolveConversation(context.Background(), buyer, "veh-1", "seller")
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), buyer, conversation.ID, "own message")
	require.NoError(t, err)

	uc.MarkConversationRead(context.Background(), buyer, conversation.ID)

	messages, err := messageRepo.ListByConversation(context.Background(), conversation.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.False(t, messages[0].Read, "the sender's own messages stay unread for them")
}

func TestVehicleSummary(t *testing.T) {
	uc, _, _, _ := newChatFixture()

	summary, err := uc.VehicleSummary(context.Background(), "veh-1")
	require.NoError(t, err)
	assert.Equal(t, "Mazda", summary.Make)
	assert.Equal(t, "seller", summary.OwnerID)

	_, err = uc.VehicleSummary(context.Background(), "missing")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
