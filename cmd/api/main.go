package main

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"guest-recovery-portal/internal/cleanup"
	"guest-recovery-portal/internal/config"
	"guest-recovery-portal/internal/handlers"
	"guest-recovery-portal/internal/logging"
	"guest-recovery-portal/internal/ratelimit"
	"guest-recovery-portal/internal/render"
	"guest-recovery-portal/internal/scheduler"
)

var (
	appConfig    *config.Config
	rateLimiter  *ratelimit.RateLimiter
	appScheduler *scheduler.Scheduler
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	configPath := getEnv("CONFIG_PATH", "config/portal_config.yaml")
	var err error
	appConfig, err = config.LoadConfig(configPath)
	if err != nil {
		appConfig = config.DefaultConfig()
		logging.Init(appConfig.Logging.Level, appConfig.Logging.Dir)
		log.Warn().Err(err).Str("path", configPath).Msg("Failed to load config, using defaults")
	} else {
		logging.Init(appConfig.Logging.Level, appConfig.Logging.Dir)
		log.Info().Str("path", configPath).Msg("Loaded configuration")
	}

	renderer := render.NewRenderer(appConfig.Renderer, appConfig.Report.PropertyName)

	rateLimiter = ratelimit.NewRateLimiter(
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.Enabled,
	)
	log.Info().
		Int("per_minute", appConfig.RateLimit.RequestsPerMinute).
		Int("per_hour", appConfig.RateLimit.RequestsPerHour).
		Bool("enabled", appConfig.RateLimit.Enabled).
		Msg("Rate limiter initialized")

	cleanupService := cleanup.NewService(appConfig.Renderer.WorkDir)
	appScheduler = scheduler.NewScheduler(cleanupService, appConfig)
	if appConfig.Cleanup.DailyRunEnabled {
		if err := appScheduler.Start(); err != nil {
			log.Warn().Err(err).Msg("Failed to start cleanup scheduler")
		}
		defer appScheduler.Stop()
	}

	h := handlers.NewHandler(appConfig, renderer)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/health", h.Health)
	r.GET("/api/health", h.Health)
	r.GET("/api/months", h.Months)

	// Upload and rendering are the expensive paths; both sit behind the
	// rate limiter.
	r.POST("/api/upload", rateLimitMiddleware(), h.Upload)
	r.POST("/api/generate-report", rateLimitMiddleware(), h.GenerateReport)

	r.GET("/api/ratelimit/stats", getRateLimitStats)
	r.POST("/api/cleanup/run", triggerCleanup)

	port := getEnv("PORT", strconv.Itoa(appConfig.Server.Port))
	log.Info().Str("port", port).Msg("Server starting")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// rateLimitMiddleware enforces the shared request budget.
func rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rateLimiter.AllowRequest() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": "Too many requests. Please try again later.",
				"stats":   rateLimiter.GetStats(),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func getRateLimitStats(c *gin.Context) {
	c.JSON(http.StatusOK, rateLimiter.GetStats())
}

// triggerCleanup runs the artifact sweep immediately.
func triggerCleanup(c *gin.Context) {
	go func() {
		if err := appScheduler.RunNow(); err != nil {
			log.Error().Err(err).Msg("Manual cleanup failed")
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Cleanup started in background",
		"status":  "running",
	})
}
