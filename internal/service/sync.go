package service

import (
	"context"
	"sync"
	"time"

	"gourmetgo/internal/model"

	"github.com/rs/zerolog"
)

// DefaultSyncDelay is the quiet period before a queued cart or favourites
// snapshot is written through.
const DefaultSyncDelay = 400 * time.Millisecond

// Syncer coalesces bursts of cart and favourites mutations into one write
// per user after a short quiet period. A newer snapshot replaces a pending
// one instead of queuing behind it. Losing a pending write only delays
// persistence; it never corrupts state.
type Syncer struct {
	svc    CateringService
	delay  time.Duration
	logger zerolog.Logger

	mu      sync.Mutex
	pending map[string]*pendingSync
	closed  bool
}

type pendingSync struct {
	timer *time.Timer
	flush func()
}

// NewSyncer creates a syncer writing through svc after the given delay. A
// non-positive delay falls back to DefaultSyncDelay.
func NewSyncer(svc CateringService, delay time.Duration, logger zerolog.Logger) *Syncer {
	if delay <= 0 {
		delay = DefaultSyncDelay
	}
	return &Syncer{
		svc:     svc,
		delay:   delay,
		logger:  logger.With().Str("component", "syncer").Logger(),
		pending: make(map[string]*pendingSync),
	}
}

// QueueCart schedules the user's cart snapshot for persistence, replacing
// any snapshot already waiting for that user.
func (s *Syncer) QueueCart(userID string, cart []model.CartItem) {
	s.queue("cart/"+userID, func() {
		if err := s.svc.UpdateCart(context.Background(), userID, cart); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("cart sync failed")
		}
	})
}

// QueueFavorites schedules the user's favourites for persistence, replacing
// any snapshot already waiting for that user.
func (s *Syncer) QueueFavorites(userID string, favorites []string) {
	s.queue("favorites/"+userID, func() {
		if err := s.svc.UpdateFavorites(context.Background(), userID, favorites); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("favorites sync failed")
		}
	})
}

func (s *Syncer) queue(key string, flush func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		// after Close, writes go straight through
		flush()
		return
	}
	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
	}
	p := &pendingSync{flush: flush}
	p.timer = time.AfterFunc(s.delay, func() { s.fire(key, p) })
	s.pending[key] = p
	s.mu.Unlock()
}

// fire runs a pending flush unless it was replaced or already flushed.
func (s *Syncer) fire(key string, p *pendingSync) {
	s.mu.Lock()
	if s.pending[key] != p {
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	s.mu.Unlock()
	p.flush()
}

// Flush writes every pending snapshot immediately.
func (s *Syncer) Flush() {
	s.mu.Lock()
	remaining := s.pending
	s.pending = make(map[string]*pendingSync)
	s.mu.Unlock()

	for _, p := range remaining {
		p.timer.Stop()
		p.flush()
	}
}

// Close flushes pending snapshots and puts the syncer into write-through
// mode.
func (s *Syncer) Close() error {
	s.mu.Lock()
	s.closed = true
	remaining := s.pending
	s.pending = make(map[string]*pendingSync)
	s.mu.Unlock()

	for _, p := range remaining {
		p.timer.Stop()
		p.flush()
	}
	return nil
}
