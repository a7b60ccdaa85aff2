package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/svuportal/portal-backend/internal/config"
	"github.com/svuportal/portal-backend/internal/database"
	"github.com/svuportal/portal-backend/internal/events"
	"github.com/svuportal/portal-backend/internal/handler"
	"github.com/svuportal/portal-backend/internal/logger"
	"github.com/svuportal/portal-backend/internal/repository"
	"github.com/svuportal/portal-backend/internal/router"
	"github.com/svuportal/portal-backend/internal/service"
	"github.com/svuportal/portal-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting SVU Portal Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Event Bus ─────────────────────────────────────────────────────
	bus := events.NewBus(log)
	defer bus.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	credentialRepo := repository.NewCredentialRepository()
	resultRepo := repository.NewResultRepository()
	rosterRepo := repository.NewRosterRepository()
	profileRepo := repository.NewProfileRepository()

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, credentialRepo, log)
	sessions := service.NewSessionStore(cfg, rdb, bus, log)
	resultService := service.NewResultService(resultRepo, log)
	rosterService := service.NewRosterService(rosterRepo, log)
	dashboardService := service.NewDashboardService(sessions, resultService, rosterService, profileRepo, log)

	// ─── Log Observer ──────────────────────────────────────────────────
	// Mirrors every session event into the log so operators see the
	// same feedback the SPA toasts.
	go observeSessionEvents(ctx, bus, logger.Component(log, "session_observer"))

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService, sessions),
		Results:   handler.NewResultsHandler(resultService, sessions),
		Roster:    handler.NewRosterHandler(rosterService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		WS:        handler.NewWSHandler(bus, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, sessions, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// observeSessionEvents subscribes to the session topic and logs every
// event until ctx is cancelled.
func observeSessionEvents(ctx context.Context, bus *events.Bus, log zerolog.Logger) {
	msgs, err := bus.Subscribe(ctx, events.TopicSession)
	if err != nil {
		log.Error().Err(err).Msg("Session observer subscribe failed")
		return
	}

	for msg := range msgs {
		ev, perr := events.ParseSession(msg.Payload)
		msg.Ack()
		if perr != nil {
			log.Warn().Err(perr).Msg("Malformed session event")
			continue
		}
		log.Info().
			Str("type", string(ev.Type)).
			Str("name", ev.Name).
			Msg(ev.Message)
	}
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
