package usecase

import (
	"context"
	"strings"
	"sync"

	"drivn/internal/domain/entity"
	"drivn/pkg/logger"
)

// Composer is the optimistic-send flow for one open conversation: the draft
// is cleared before the write is confirmed, and restored verbatim when the
// insert fails so the user never loses typed text.
type Composer struct {
	conversationID string
	viewer         *entity.Session
	sender         MessageSender

	mu    sync.Mutex
	draft string
}

func NewComposer(conversationID string, viewer *entity.Session, sender MessageSender) *Composer {
	return &Composer{
		conversationID: conversationID,
		viewer:         viewer,
		sender:         sender,
	}
}

func (c *Composer) SetDraft(text string) {
	c.mu.Lock()
	c.draft = text
	c.mu.Unlock()
}

func (c *Composer) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Send submits the current draft. Empty or whitespace-only drafts, a missing
// conversation or a missing viewer are a no-op. No retry is performed.
func (c *Composer) Send(ctx context.Context) (*entity.Message, error) {
	c.mu.Lock()
	original := c.draft
	trimmed := strings.TrimSpace(original)
	if trimmed == "" || c.conversationID == "" || c.viewer == nil || c.viewer.UID == "" {
		c.mu.Unlock()
		return nil, nil
	}
	c.draft = ""
	c.mu.Unlock()

	message, err := c.sender.SendMessage(ctx, c.viewer, c.conversationID, trimmed)
	if err != nil {
		logger.Error("Composer: send failed for conversation %s, draft restored: %v", c.conversationID, err)
		c.mu.Lock()
		c.draft = original
		c.mu.Unlock()
		return nil, err
	}

	return message, nil
}
