package handler

import (
	"context"
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/svuportal/portal-backend/internal/events"
	"github.com/svuportal/portal-backend/internal/middleware"
	ws "github.com/svuportal/portal-backend/internal/websocket"
)

// WSHandler streams session lifecycle events to connected clients. The
// SPA keeps one socket open and turns saved/cleared events into toasts
// and navigation.
type WSHandler struct {
	bus      message.Subscriber
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(bus message.Subscriber, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		bus:      bus,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: ws.BuildUpgrader(allowedOrigins),
	}
}

// SessionEventStream godoc
// WS /ws/v1/session/events?token=...
// Upgrades to WebSocket and forwards every session event published on
// the bus. The client may send ping frames; anything else is rejected.
func (h *WSHandler) SessionEventStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	raw, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	conn := ws.NewConn(raw)
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	msgs, err := h.bus.Subscribe(ctx, events.TopicSession)
	if err != nil {
		h.log.Error().Err(err).Msg("Session topic subscribe failed")
		_ = conn.WriteError("subscription failed")
		return
	}

	wsLog := h.log.With().Str("user_id", claims.Subject).Logger()
	wsLog.Info().Msg("Client connected")

	// Reader side: answers pings and detects the peer going away. The
	// connection's write lock keeps these replies from interleaving with
	// session frames written by the loop below.
	go func() {
		defer cancel()
		for {
			var req ws.RequestEnvelope
			if err := conn.ReadJSON(&req); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}

			switch req.Action {
			case ws.ActionPing:
				_ = conn.WriteTyped(ws.PongFrame{Event: ws.EventPong})
			default:
				_ = conn.WriteError("unknown action: " + string(req.Action))
			}
		}
	}()

	for msg := range msgs {
		ev, perr := events.ParseSession(msg.Payload)
		msg.Ack()
		if perr != nil {
			wsLog.Warn().Err(perr).Msg("Dropping malformed session event")
			continue
		}

		if err := conn.WriteTyped(ws.SessionFrame{Event: ws.EventSession, Session: ev}); err != nil {
			wsLog.Debug().Err(err).Msg("Write failed, closing stream")
			return
		}
	}
}
