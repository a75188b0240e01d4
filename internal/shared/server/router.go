package server

import (
	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/analytics"
	"jobtracker-backend/internal/applications"
	"jobtracker-backend/internal/jobs"
	"jobtracker-backend/internal/resumes"
	"jobtracker-backend/internal/services/health"
	"jobtracker-backend/internal/shared/auth"
	"jobtracker-backend/internal/shared/config"
	"jobtracker-backend/internal/shared/metrics"
	"jobtracker-backend/internal/shared/server/middleware"
	"jobtracker-backend/internal/shared/server/respond"
	"jobtracker-backend/internal/users"
)

// RouterDeps carries the feature handlers mounted under /api/v1.
// A nil handler skips its routes.
type RouterDeps struct {
	Config           config.Config
	Health           *health.Service
	JobHandler       *jobs.Handler
	TrackerHandler   *applications.Handler
	AnalyticsHandler *analytics.Handler
	ResumeHandler    *resumes.Handler
	UserHandler      *users.Handler
	RateLimiter      *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg.Env == "test" {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	auth.Configure(cfg.JWTSecret)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", healthHandler(deps.Health))
	api.GET("/metrics", metrics.Handler())

	protected := api.Group("")
	protected.Use(
		middleware.Auth(cfg.Env),
		middleware.RateLimit(rateLimitConfig(cfg, deps.RateLimiter)),
	)
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(protected)
	}
	if deps.JobHandler != nil {
		deps.JobHandler.RegisterRoutes(protected)
	}
	if deps.TrackerHandler != nil {
		deps.TrackerHandler.RegisterRoutes(protected)
	}
	if deps.AnalyticsHandler != nil {
		deps.AnalyticsHandler.RegisterRoutes(protected)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(protected)
	}

	return r
}

// rateLimitConfig gives reads the configured budget and writes half of it.
func rateLimitConfig(cfg config.Config, limiter *middleware.RateLimiter) middleware.RateLimitConfig {
	rules := map[string]middleware.RateLimitRule{}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst > 0 {
		writeBurst := cfg.RateLimitBurst / 2
		if writeBurst < 1 {
			writeBurst = 1
		}
		rules[middleware.RateLimitGroupRead] = middleware.RateLimitRule{Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst}
		rules[middleware.RateLimitGroupWrite] = middleware.RateLimitRule{Rate: cfg.RateLimitRPS / 2, Burst: writeBurst}
	}
	return middleware.RateLimitConfig{
		Rules:    rules,
		GroupFor: middleware.GroupByMethod,
		Limiter:  limiter,
	}
}

func healthHandler(svc *health.Service) gin.HandlerFunc {
	if svc == nil {
		svc = health.NewService(nil)
	}
	return func(c *gin.Context) {
		respond.OK(c, svc.Status(c.Request.Context()))
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
