package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"drivn/internal/domain/entity"
	"drivn/internal/domain/repository"
	"drivn/pkg/logger"
)

type SyncState int32

const (
	SyncIdle SyncState = iota
	SyncLoading
	SyncLive
	SyncClosed
)

const DefaultPollInterval = 4000 * time.Millisecond

// ChatSession keeps the visible message list of one open conversation
// eventually consistent with the store. Two overlapping mechanisms feed it:
// a realtime insert subscription (fast path) and a fixed-interval poll that
// re-fetches the whole list (correctness backstop). Messages are keyed by ID,
// so a row arriving through both paths coalesces into one entry.
//
// A session is single-use: Start once, Close once. Close is idempotent and
// late fetch results never touch a closed session.
type ChatSession struct {
	conversationID string
	viewer         *entity.Session
	messageRepo    repository.MessageRepository
	feed           MessageFeed
	pollInterval   time.Duration
	onUpdate       func([]*entity.Message)

	mu          sync.Mutex
	byID        map[string]*entity.Message
	order       []*entity.Message
	state       SyncState
	unsubscribe func()

	done      chan struct{}
	closeOnce sync.Once
}

func NewChatSession(
	conversationID string,
	viewer *entity.Session,
	messageRepo repository.MessageRepository,
	feed MessageFeed,
	pollInterval time.Duration,
	onUpdate func([]*entity.Message),
) *ChatSession {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &ChatSession{
		conversationID: conversationID,
		viewer:         viewer,
		messageRepo:    messageRepo,
		feed:           feed,
		pollInterval:   pollInterval,
		onUpdate:       onUpdate,
		byID:           make(map[string]*entity.Message),
		done:           make(chan struct{}),
	}
}

// Start performs the initial fetch, opens the realtime subscription and
// launches the poll loop, strictly in that order. Sync failures are tolerated:
// a failed fetch empties the list until the next poll tick, a failed subscribe
// leaves polling as the sole delivery mechanism.
func (s *ChatSession) Start(ctx context.Context) {
	s.setState(SyncLoading)

	s.refresh(ctx)

	if s.feed != nil {
		unsubscribe, err := s.feed.Subscribe(ctx, s.conversationID, s.handleRealtime)
		if err != nil {
			logger.Error("ChatSession: realtime subscribe failed for conversation %s, polling only: %v", s.conversationID, err)
		} else {
			s.mu.Lock()
			if s.state == SyncClosed {
				s.mu.Unlock()
				unsubscribe()
				return
			}
			s.unsubscribe = unsubscribe
			s.mu.Unlock()
		}
	}

	s.setState(SyncLive)
	go s.pollLoop(ctx)
}

// Messages returns the current ordered list, ascending by creation time.
func (s *ChatSession) Messages() []*entity.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Message, len(s.order))
	copy(out, s.order)
	return out
}

func (s *ChatSession) State() SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close tears the session down: the realtime subscription is cancelled and
// the poll loop stops. Safe to call any number of times.
func (s *ChatSession) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.state = SyncClosed
		unsubscribe := s.unsubscribe
		s.unsubscribe = nil
		s.mu.Unlock()

		close(s.done)
		if unsubscribe != nil {
			unsubscribe()
		}
	})
}

func (s *ChatSession) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *ChatSession) setState(state SyncState) {
	s.mu.Lock()
	if s.state != SyncClosed {
		s.state = state
	}
	s.mu.Unlock()
}

// refresh re-fetches the full message list and replaces the in-memory
// projection wholesale, then re-runs read marking. This self-heals any
// ordering drift from the realtime path.
func (s *ChatSession) refresh(ctx context.Context) {
	messages, err := s.messageRepo.ListByConversation(ctx, s.conversationID)
	if s.closed() {
		return
	}
	if err != nil {
		logger.Error("ChatSession: fetch failed for conversation %s: %v", s.conversationID, err)
		s.replaceAll(nil)
		return
	}

	s.replaceAll(messages)
	s.markRead(ctx)
}

func (s *ChatSession) markRead(ctx context.Context) {
	if s.viewer == nil || s.viewer.UID == "" {
		return
	}
	if _, err := s.messageRepo.MarkRead(ctx, s.conversationID, s.viewer.UID); err != nil {
		logger.Warn("ChatSession: read marking failed for conversation %s: %v", s.conversationID, err)
	}
}

func (s *ChatSession) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// handleRealtime appends a pushed message, dropping exact duplicates by ID.
func (s *ChatSession) handleRealtime(message *entity.Message) {
	if message == nil || s.closed() {
		return
	}

	s.mu.Lock()
	if s.state == SyncClosed {
		s.mu.Unlock()
		return
	}
	if _, exists := s.byID[message.ID]; exists {
		s.mu.Unlock()
		return
	}
	s.byID[message.ID] = message
	s.order = append(s.order, message)
	sortMessages(s.order)
	snapshot := make([]*entity.Message, len(s.order))
	copy(snapshot, s.order)
	s.mu.Unlock()

	s.notify(snapshot)
}

func (s *ChatSession) replaceAll(messages []*entity.Message) {
	s.mu.Lock()
	if s.state == SyncClosed {
		s.mu.Unlock()
		return
	}
	s.byID = make(map[string]*entity.Message, len(messages))
	s.order = s.order[:0]
	for _, message := range messages {
		if _, exists := s.byID[message.ID]; exists {
			continue
		}
		s.byID[message.ID] = message
		s.order = append(s.order, message)
	}
	sortMessages(s.order)
	snapshot := make([]*entity.Message, len(s.order))
	copy(snapshot, s.order)
	s.mu.Unlock()

	s.notify(snapshot)
}

func (s *ChatSession) notify(messages []*entity.Message) {
	if s.onUpdate != nil {
		s.onUpdate(messages)
	}
}

func sortMessages(messages []*entity.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
}
