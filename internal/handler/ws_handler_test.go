package handler

import (
	"context"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/svuportal/portal-backend/internal/config"
	"github.com/svuportal/portal-backend/internal/events"
	"github.com/svuportal/portal-backend/internal/middleware"
	"github.com/svuportal/portal-backend/internal/model"
	"github.com/svuportal/portal-backend/internal/repository"
	"github.com/svuportal/portal-backend/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type frame struct {
	Event string `json:"event"`
}

func dialSessionStream(t *testing.T, bus *events.Bus) (*websocket.Conn, *model.Identity) {
	t.Helper()

	log := zerolog.Nop()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
	authService := service.NewAuthService(cfg, repository.NewCredentialRepository(), log)

	identity, err := authService.Authenticate(context.Background(), "student@svu.ac.in", "password", model.RoleStudent)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	token, err := authService.GenerateToken(identity)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	r := gin.New()
	r.GET("/ws/v1/session/events",
		middleware.RequireWSAuth(authService),
		NewWSHandler(bus, log, nil).SessionEventStream,
	)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/v1/session/events?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return conn, identity
}

func TestSessionEventStreamForwardsEvents(t *testing.T) {
	bus := events.NewBus(zerolog.Nop())
	t.Cleanup(func() { _ = bus.Close() })

	conn, identity := dialSessionStream(t, bus)

	// A pong proves the handler finished subscribing, so events published
	// from here on are not lost.
	if err := conn.WriteJSON(map[string]string{"action": "ping"}); err != nil {
		t.Fatalf("ping write error = %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var f frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("pong read error = %v", err)
	}
	if f.Event != "pong" {
		t.Fatalf("first frame = %q, want pong", f.Event)
	}

	if err := events.PublishSession(bus, events.NewSavedEvent(*identity)); err != nil {
		t.Fatalf("PublishSession() error = %v", err)
	}

	var sf struct {
		Event   string              `json:"event"`
		Session events.SessionEvent `json:"session"`
	}
	if err := conn.ReadJSON(&sf); err != nil {
		t.Fatalf("session frame read error = %v", err)
	}
	if sf.Event != "session" || sf.Session.Type != events.SessionSaved {
		t.Errorf("session frame = %+v", sf)
	}
	if sf.Session.Message != "Welcome back, John Student!" {
		t.Errorf("session message = %q", sf.Session.Message)
	}
}

// Pong replies come from the handler's reader goroutine while session
// frames come from its event loop; this drives both at once and checks
// every frame still arrives intact.
func TestSessionEventStreamConcurrentPingsAndEvents(t *testing.T) {
	const rounds = 50

	bus := events.NewBus(zerolog.Nop())
	t.Cleanup(func() { _ = bus.Close() })

	conn, identity := dialSessionStream(t, bus)

	// Handshake ping: once the pong is back the subscription is live.
	if err := conn.WriteJSON(map[string]string{"action": "ping"}); err != nil {
		t.Fatalf("ping write error = %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	var f frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("pong read error = %v", err)
	}

	go func() {
		for i := 0; i < rounds; i++ {
			if err := conn.WriteJSON(map[string]string{"action": "ping"}); err != nil {
				return
			}
		}
	}()

	for i := 0; i < rounds; i++ {
		if err := events.PublishSession(bus, events.NewSavedEvent(*identity)); err != nil {
			t.Fatalf("PublishSession() error = %v", err)
		}
	}

	pongs, sessions := 0, 0
	for pongs < rounds || sessions < rounds {
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("read error = %v after %d pongs and %d session frames", err, pongs, sessions)
		}
		switch f.Event {
		case "pong":
			pongs++
		case "session":
			sessions++
		default:
			t.Fatalf("unexpected frame %q", f.Event)
		}
	}
}

func TestSessionEventStreamRejectsUnknownAction(t *testing.T) {
	bus := events.NewBus(zerolog.Nop())
	t.Cleanup(func() { _ = bus.Close() })

	conn, _ := dialSessionStream(t, bus)

	if err := conn.WriteJSON(map[string]string{"action": "subscribe"}); err != nil {
		t.Fatalf("write error = %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var ef struct {
		Event string `json:"event"`
		Error string `json:"error"`
	}
	if err := conn.ReadJSON(&ef); err != nil {
		t.Fatalf("read error = %v", err)
	}
	if ef.Event != "error" || !strings.Contains(ef.Error, "subscribe") {
		t.Errorf("error frame = %+v", ef)
	}
}
