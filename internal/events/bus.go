// Package events carries session lifecycle notifications over an
// in-process Watermill pub/sub. The session store publishes on every
// save and clear; subscribers (the WebSocket stream, the log observer)
// turn the events into user-visible feedback.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/svuportal/portal-backend/internal/model"
)

// TopicSession is the topic for session lifecycle events.
const TopicSession = "portal.session"

// SessionEventType tags what happened to the session slot.
type SessionEventType string

const (
	SessionSaved   SessionEventType = "session.saved"
	SessionCleared SessionEventType = "session.cleared"
)

// SessionEvent is the payload published on TopicSession.
type SessionEvent struct {
	Type       SessionEventType `json:"type"`
	Name       string           `json:"name,omitempty"`
	Role       model.Role       `json:"role,omitempty"`
	Message    string           `json:"message"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewSavedEvent builds the event for a successful login.
func NewSavedEvent(identity model.Identity) SessionEvent {
	return SessionEvent{
		Type:       SessionSaved,
		Name:       identity.Name,
		Role:       identity.Role,
		Message:    fmt.Sprintf("Welcome back, %s!", identity.Name),
		OccurredAt: time.Now().UTC(),
	}
}

// NewClearedEvent builds the event for a logout.
func NewClearedEvent() SessionEvent {
	return SessionEvent{
		Type:       SessionCleared,
		Message:    "You have been logged out",
		OccurredAt: time.Now().UTC(),
	}
}

// Bus is the in-process pub/sub the portal runs on. GoChannel keeps
// everything in memory, matching the single-process scope of the portal.
type Bus = gochannel.GoChannel

// NewBus creates the in-memory pub/sub with a zerolog-backed Watermill logger.
func NewBus(log zerolog.Logger) *Bus {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		newLoggerAdapter(log),
	)
}

// PublishSession marshals and publishes a session event on the bus.
func PublishSession(pub message.Publisher, ev SessionEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal session event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return pub.Publish(TopicSession, msg)
}

// ParseSession decodes a session event payload.
func ParseSession(payload []byte) (SessionEvent, error) {
	var ev SessionEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return SessionEvent{}, fmt.Errorf("unmarshal session event: %w", err)
	}
	return ev, nil
}

// ─── Watermill logger adapter ───────────────────────────────────────

type loggerAdapter struct {
	log zerolog.Logger
}

func newLoggerAdapter(log zerolog.Logger) watermill.LoggerAdapter {
	return &loggerAdapter{log: log.With().Str("component", "event_bus").Logger()}
}

func (a *loggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.event(a.log.Error().Err(err), fields).Msg(msg)
}

func (a *loggerAdapter) Info(msg string, fields watermill.LogFields) {
	a.event(a.log.Info(), fields).Msg(msg)
}

func (a *loggerAdapter) Debug(msg string, fields watermill.LogFields) {
	a.event(a.log.Debug(), fields).Msg(msg)
}

func (a *loggerAdapter) Trace(msg string, fields watermill.LogFields) {
	a.event(a.log.Trace(), fields).Msg(msg)
}

func (a *loggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	ctx := a.log.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &loggerAdapter{log: ctx.Logger()}
}

func (a *loggerAdapter) event(ev *zerolog.Event, fields watermill.LogFields) *zerolog.Event {
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	return ev
}
