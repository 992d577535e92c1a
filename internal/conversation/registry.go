package conversation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rukmini-chat/backend/internal/reply"
	"rukmini-chat/backend/internal/repository"
)

const (
	// DefaultIdleTTL is how long an untouched session stays in memory.
	DefaultIdleTTL = 30 * time.Minute
	// DefaultMaxSessions caps the number of live sessions.
	DefaultMaxSessions = 10000
	// DefaultCleanupInterval is the period of RunCleanup's sweep.
	DefaultCleanupInterval = 1 * time.Minute
)

type session struct {
	manager      *Manager
	lastActivity time.Time
}

// Registry keeps one Manager per client. Each client sees its own
// namespace of the shared store, the way each browser has its own local
// storage. Sessions idle for longer than the TTL are evicted, and when the
// cap is reached the least recently used one makes room. Evicted sessions
// are closed; their stored profile and display config stay in the store.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	store    repository.Store
	replies  reply.Client
	cfg      Config

	idleTTL     time.Duration
	maxSessions int
	now         func() time.Time
}

// RegistryOption tunes a Registry.
type RegistryOption func(*Registry)

// WithIdleTTL sets the idle time after which a session is evicted.
// Zero or negative disables idle eviction.
func WithIdleTTL(d time.Duration) RegistryOption {
	return func(r *Registry) { r.idleTTL = d }
}

// WithMaxSessions caps the number of live sessions. Zero or negative
// means no cap.
func WithMaxSessions(n int) RegistryOption {
	return func(r *Registry) { r.maxSessions = n }
}

// WithClock replaces the registry's clock.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(store repository.Store, replies reply.Client, cfg Config, opts ...RegistryOption) *Registry {
	r := &Registry{
		sessions:    make(map[string]*session),
		store:       store,
		replies:     replies,
		cfg:         cfg,
		idleTTL:     DefaultIdleTTL,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the client's Manager, creating and initialising it on first
// use. The Manager is built outside the lock; if another request won the
// race, its Manager is returned and ours is closed.
func (r *Registry) Get(ctx context.Context, clientID string) *Manager {
	if m, ok := r.touch(clientID); ok {
		return m
	}

	created := New(ctx, repository.Namespaced(r.store, clientID), r.replies, r.cfg)

	r.mu.Lock()
	if s, ok := r.sessions[clientID]; ok {
		s.lastActivity = r.now()
		r.mu.Unlock()
		created.Close()
		return s.manager
	}
	var evicted []*Manager
	if r.maxSessions > 0 && len(r.sessions) >= r.maxSessions {
		evicted = r.expireLocked(r.now())
		for len(r.sessions) >= r.maxSessions {
			evicted = append(evicted, r.evictOldestLocked())
		}
	}
	r.sessions[clientID] = &session{manager: created, lastActivity: r.now()}
	r.mu.Unlock()

	for _, m := range evicted {
		m.Close()
	}
	return created
}

func (r *Registry) touch(clientID string) (*Manager, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[clientID]
	if !ok {
		return nil, false
	}
	s.lastActivity = r.now()
	return s.manager, true
}

// CleanupExpired evicts sessions idle for longer than the TTL and returns
// how many were removed. Sessions waiting for a reply are kept.
func (r *Registry) CleanupExpired() int {
	r.mu.Lock()
	evicted := r.expireLocked(r.now())
	r.mu.Unlock()

	for _, m := range evicted {
		m.Close()
	}
	return len(evicted)
}

// RunCleanup calls CleanupExpired every interval until ctx is done.
func (r *Registry) RunCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	logger := slog.Default().With(slog.String("component", "conversation.registry"))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.DebugContext(ctx, "Session cleanup stopping")
			return
		case <-ticker.C:
			if removed := r.CleanupExpired(); removed > 0 {
				logger.InfoContext(ctx, "Evicted idle sessions",
					slog.Int("removed", removed),
					slog.Int("live", r.Len()),
				)
			}
		}
	}
}

// expireLocked must be called with mu held.
func (r *Registry) expireLocked(now time.Time) []*Manager {
	if r.idleTTL <= 0 {
		return nil
	}
	var evicted []*Manager
	for id, s := range r.sessions {
		if now.Sub(s.lastActivity) > r.idleTTL && !s.manager.IsTyping() {
			evicted = append(evicted, s.manager)
			delete(r.sessions, id)
		}
	}
	return evicted
}

// evictOldestLocked removes the least recently used session, preferring
// one that is not waiting for a reply. It must be called with mu held and
// a non-empty map.
func (r *Registry) evictOldestLocked() *Manager {
	var oldestID, oldestIdleID string
	var oldest, oldestIdle time.Time
	for id, s := range r.sessions {
		if oldestID == "" || s.lastActivity.Before(oldest) {
			oldestID, oldest = id, s.lastActivity
		}
		if !s.manager.IsTyping() && (oldestIdleID == "" || s.lastActivity.Before(oldestIdle)) {
			oldestIdleID, oldestIdle = id, s.lastActivity
		}
	}
	if oldestIdleID != "" {
		oldestID = oldestIdleID
	}
	m := r.sessions[oldestID].manager
	delete(r.sessions, oldestID)
	return m
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close tears down every session, cancelling in-flight replies.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		s.manager.Close()
		delete(r.sessions, id)
	}
}
