package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"drivn/internal/domain/entity"
	"drivn/pkg/errors"
)

type fakeConversationRepo struct {
	mu            sync.Mutex
	conversations map[string]*entity.Conversation
	nextID        int
	createErr     error
	previewErr    error
	previewCalls  int
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[string]*entity.Conversation),
	}
}

func (r *fakeConversationRepo) Create(ctx context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	conversation.ID = fmt.Sprintf("conv-%d", r.nextID)
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = conversation.CreatedAt
	clone := *conversation
	r.conversations[conversation.ID] = &clone
	return nil
}

func (r *fakeConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conversation, ok := r.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	clone := *conversation
	return &clone, nil
}

func (r *fakeConversationRepo) FindByTriple(ctx context.Context, vehicleID, buyerID, sellerID string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, conversation := range r.conversations {
		if conversation.Matches(vehicleID, buyerID, sellerID) {
			clone := *conversation
			return &clone, nil
		}
	}
	return nil, errors.NotFound("Conversation", nil)
}

func (r *fakeConversationRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Conversation
	for _, conversation := range r.conversations {
		if conversation.HasParticipant(userID) {
			clone := *conversation
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeConversationRepo) UpdatePreview(ctx context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.previewCalls++
	if r.previewErr != nil {
		return r.previewErr
	}
	if stored, ok := r.conversations[conversation.ID]; ok {
		stored.LastMessage = conversation.LastMessage
		stored.LastMessageAt = conversation.LastMessageAt
		stored.UnreadCount = conversation.UnreadCount
	}
	return nil
}

type fakeMessageRepo struct {
	mu        sync.Mutex
	messages  []*entity.Message
	nextID    int
	createErr error
	listErr   error
	listCalls int
	readCalls int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	message.ID = fmt.Sprintf("msg-%d", r.nextID)
	clone := *message
	r.messages = append(r.messages, &clone)
	return nil
}

func (r *fakeMessageRepo) ListByConversation(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*entity.Message
	for _, message := range r.messages {
		if message.ConversationID == conversationID {
			clone := *message
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkRead(ctx context.Context, conversationID, viewerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readCalls++
	updated := 0
	for _, message := range r.messages {
		if message.ConversationID == conversationID && message.SenderID != viewerID && !message.Read {
			message.Read = true
			updated++
		}
	}
	return updated, nil
}

func (r *fakeMessageRepo) seed(messages ...*entity.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, messages...)
}

type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[string]*entity.Vehicle
}

func newFakeVehicleRepo(vehicles ...*entity.Vehicle) *fakeVehicleRepo {
	r := &fakeVehicleRepo{vehicles: make(map[string]*entity.Vehicle)}
	for _, vehicle := range vehicles {
		r.vehicles[vehicle.ID] = vehicle
	}
	return r
}

func (r *fakeVehicleRepo) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if vehicle.ID == "" {
		vehicle.ID = fmt.Sprintf("veh-%d", len(r.vehicles)+1)
	}
	r.vehicles[vehicle.ID] = vehicle
	return nil
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle, ok := r.vehicles[id]
	if !ok {
		return nil, errors.NotFound("Vehicle", nil)
	}
	return vehicle, nil
}

func (r *fakeVehicleRepo) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vehicles[vehicle.ID] = vehicle
	return nil
}

func (r *fakeVehicleRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Vehicle
	for _, vehicle := range r.vehicles {
		if vehicle.OwnerID == ownerID {
			out = append(out, vehicle)
		}
	}
	return out, nil
}

func (r *fakeVehicleRepo) ListForSale(ctx context.Context, limit, offset int) ([]*entity.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Vehicle
	for _, vehicle := range r.vehicles {
		if vehicle.ForSale {
			out = append(out, vehicle)
		}
	}
	return out, int64(len(out)), nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

// fakeFeed captures the realtime handler so tests can push messages directly.
type fakeFeed struct {
	mu               sync.Mutex
	handler          func(*entity.Message)
	subscribeErr     error
	unsubscribeCalls int
}

func (f *fakeFeed) Subscribe(ctx context.Context, conversationID string, handler func(*entity.Message)) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}
	f.handler = handler
	return func() {
		f.mu.Lock()
		f.unsubscribeCalls++
		f.mu.Unlock()
	}, nil
}

func (f *fakeFeed) push(message *entity.Message) {
	f.mu.Lock()
	handler := f.handler
	f.mu.Unlock()
	if handler != nil {
		handler(message)
	}
}

func (f *fakeFeed) unsubscribes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unsubscribeCalls
}

// fakeSender is a scriptable MessageSender for composer tests.
type fakeSender struct {
	mu       sync.Mutex
	err      error
	sent     []string
	lastConv string
}

func (s *fakeSender) SendMessage(ctx context.Context, viewer *entity.Session, conversationID, content string) (*entity.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, content)
	s.lastConv = conversationID
	return &entity.Message{
		ID:             fmt.Sprintf("msg-%d", len(s.sent)),
		ConversationID: conversationID,
		SenderID:       viewer.UID,
		Content:        content,
		CreatedAt:      time.Now(),
	}, nil
}
