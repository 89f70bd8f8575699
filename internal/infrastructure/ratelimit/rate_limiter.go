package ratelimit

import (
	"sync"
	"time"
)

type tokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(maxTokens, refillRate int, refillTime time.Duration) *tokenBucket {
	return &tokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
		lastRefill: time.Now(),
	}
}

func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	if refills := int(elapsed / tb.refillTime); refills > 0 {
		tb.tokens += refills * tb.refillRate
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = now
	}

	if tb.tokens <= 0 {
		return false
	}
	tb.tokens--
	return true
}

type actionLimit struct {
	maxTokens  int
	refillRate int
	refillTime time.Duration
}

var actionLimits = map[string]actionLimit{
	"send_message":        {maxTokens: 20, refillRate: 10, refillTime: 10 * time.Second},
	"create_conversation": {maxTokens: 5, refillRate: 5, refillTime: time.Minute},
}

// Limiter throttles per-user actions with a token bucket per (user, action).
type Limiter struct {
	buckets map[string]*tokenBucket
	mu      sync.RWMutex
}

func NewLimiter() *Limiter {
	return &Limiter{
		buckets: make(map[string]*tokenBucket),
	}
}

func (l *Limiter) Allow(userID, action string) bool {
	limit, ok := actionLimits[action]
	if !ok {
		return true
	}

	key := userID + ":" + action

	l.mu.RLock()
	bucket, exists := l.buckets[key]
	l.mu.RUnlock()

	if !exists {
		l.mu.Lock()
		if bucket, exists = l.buckets[key]; !exists {
			bucket = newTokenBucket(limit.maxTokens, limit.refillRate, limit.refillTime)
			l.buckets[key] = bucket
		}
		l.mu.Unlock()
	}

	return bucket.allow()
}

// StartCleanupRoutine drops buckets that have been idle long enough to be
// full again, keeping the map from growing unbounded.
func (l *Limiter) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-30 * time.Minute)
			l.mu.Lock()
			for key, bucket := range l.buckets {
				bucket.mu.Lock()
				idle := bucket.lastRefill.Before(cutoff)
				bucket.mu.Unlock()
				if idle {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		}
	}()
}
