package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/svuportal/portal-backend/internal/config"
	"github.com/svuportal/portal-backend/internal/handler"
	"github.com/svuportal/portal-backend/internal/middleware"
	"github.com/svuportal/portal-backend/internal/model"
	"github.com/svuportal/portal-backend/internal/response"
	"github.com/svuportal/portal-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Results   *handler.ResultsHandler
	Roster    *handler.RosterHandler
	Dashboard *handler.DashboardHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	sessions *service.SessionStore,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for the login route.
	authLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute, time.Minute)

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)

		auth.POST("/logout", middleware.RequireJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Dashboard (session-driven, token required) ─────────────────
	router.GET("/api/v1/dashboard",
		middleware.RequireJWT(authService),
		middleware.CheckActiveSession(sessions),
		handlers.Dashboard.GetDashboard,
	)

	// ─── 3. Student Group (JWT + active session + role) ────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireJWT(authService),
		middleware.CheckActiveSession(sessions),
		middleware.RequireRole(model.RoleStudent),
	)
	{
		studentAPI.GET("/results", handlers.Results.GetResults)
		studentAPI.GET("/results/summary", handlers.Results.GetSummary)
		studentAPI.GET("/performance", handlers.Results.GetPerformance)
		studentAPI.GET("/terms", handlers.Results.GetTerms)
	}

	// ─── 4. Teacher Group (JWT + active session + role) ────────────────
	teacherAPI := router.Group("/api/v1/teacher")
	teacherAPI.Use(
		middleware.RequireJWT(authService),
		middleware.CheckActiveSession(sessions),
		middleware.RequireRole(model.RoleTeacher),
	)
	{
		teacherAPI.GET("/students", handlers.Roster.ListStudents)
		teacherAPI.GET("/courses", handlers.Roster.ListCourses)
	}

	// ─── 5. WebSocket Group (WS auth via query token) ──────────────────
	wsGroup := router.Group("/ws/v1")
	wsGroup.Use(middleware.RequireWSAuth(authService))
	{
		wsGroup.GET("/session/events", handlers.WS.SessionEventStream)
	}

	return router
}
