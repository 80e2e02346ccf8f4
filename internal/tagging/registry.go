package tagging

import (
	"context"
	"sync"
	"time"

	custom_error "assetconsole/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultSessionTTL = 30 * time.Minute

// Registry keeps the in-memory binding sessions. Sessions abandoned for longer
// than ttl are dropped together with their unsaved drafts.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	logger   *zap.Logger
}

func NewRegistry(ttl time.Duration, logger *zap.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   logger,
	}
}

func (r *Registry) Create(operator string) *Session {
	session := newSession(uuid.NewString(), operator)

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	return session
}

// Get returns the session only to the operator that opened it.
func (r *Registry) Get(id, operator string) (*Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok || session.Operator != operator {
		return nil, custom_error.ErrSessionNotFound
	}

	session.touch()
	return session, nil
}

func (r *Registry) Delete(id, operator string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok || session.Operator != operator {
		return custom_error.ErrSessionNotFound
	}

	delete(r.sessions, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// Run expires idle sessions until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.expire(now)
		}
	}
}

func (r *Registry) expire(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	expired := 0
	for id, session := range r.sessions {
		if session.idleSince(now) > r.ttl {
			delete(r.sessions, id)
			expired++
		}
	}

	if expired > 0 {
		r.logger.Info("expired idle binding sessions", zap.Int("count", expired))
	}

	return expired
}
