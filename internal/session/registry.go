package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	customer string
	now      func() time.Time
	log      *logrus.Logger
}

func NewRegistry(ttl time.Duration, logger *logrus.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		log:      logger,
	}
}

// WithDefaultCustomer pre-fills the order form of new sessions.
func (r *Registry) WithDefaultCustomer(name string) *Registry {
	r.customer = name
	return r
}

// WithClock replaces the time source. Used by tests.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

func (r *Registry) Create() *Session {
	s := newSession(uuid.NewString(), r.customer, r.now())

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.log.Debugf("Session: created %s", s.ID)
	return s
}

// Get returns a live session and marks it as used.
func (r *Registry) Get(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}

	now := r.now()
	if r.ttl > 0 && now.Sub(s.idleSince()) > r.ttl {
		r.Drop(id)
		return nil, false
	}
	s.touch(now)
	return s, true
}

func (r *Registry) Drop(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	r.log.Debugf("Session: dropped %s", id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many went.
func (r *Registry) Sweep(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if now.Sub(s.idleSince()) > r.ttl {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(r.now()); n > 0 {
				r.log.Infof("Session: evicted %d idle sessions", n)
			}
		}
	}
}
