package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/svuportal/portal-backend/internal/config"
	"github.com/svuportal/portal-backend/internal/events"
	"github.com/svuportal/portal-backend/internal/model"
)

// SessionStore owns the single persisted session record: one Redis key
// holding the serialized Identity of whoever is signed in, or nothing.
// The store is the only writer of that key; the dashboard composition
// reads through it. Save and Clear notify observers on the event bus.
type SessionStore struct {
	rdb  *redis.Client
	slot string
	ttl  time.Duration
	pub  message.Publisher
	log  zerolog.Logger
}

// NewSessionStore creates a SessionStore over the configured slot key.
func NewSessionStore(cfg *config.Config, rdb *redis.Client, pub message.Publisher, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		rdb:  rdb,
		slot: cfg.SessionSlot,
		ttl:  cfg.SessionTTL,
		pub:  pub,
		log:  log.With().Str("component", "session_store").Logger(),
	}
}

// Load reads the persisted identity. An empty slot returns (nil, nil).
// A record that fails to parse is treated as absent: the slot is dropped
// and a warning logged, never an error to the caller.
func (s *SessionStore) Load(ctx context.Context) (*model.Identity, error) {
	raw, err := s.rdb.Get(ctx, s.slot).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session slot: %w", err)
	}

	var identity model.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		s.log.Warn().Err(err).Msg("Malformed session record, treating as absent")
		_ = s.rdb.Del(ctx, s.slot).Err()
		return nil, nil
	}
	return &identity, nil
}

// Save persists the identity, replacing any previous value. At most one
// identity is ever persisted.
func (s *SessionStore) Save(ctx context.Context, identity *model.Identity) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}

	if err := s.rdb.Set(ctx, s.slot, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("write session slot: %w", err)
	}

	s.notify(events.NewSavedEvent(*identity))
	return nil
}

// Clear removes the persisted identity. Clearing an already-empty slot
// is a no-op, so the call is idempotent.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.slot).Err(); err != nil {
		return fmt.Errorf("clear session slot: %w", err)
	}

	s.notify(events.NewClearedEvent())
	return nil
}

// notify publishes a session event. Delivery is best-effort: a bus
// failure must not fail the session operation itself.
func (s *SessionStore) notify(ev events.SessionEvent) {
	if s.pub == nil {
		return
	}
	if err := events.PublishSession(s.pub, ev); err != nil {
		s.log.Warn().Err(err).Str("type", string(ev.Type)).Msg("Session event publish failed")
	}
}
