// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-video-backend/docs"
	"github.com/tbourn/go-video-backend/internal/auth"
	"github.com/tbourn/go-video-backend/internal/config"
	"github.com/tbourn/go-video-backend/internal/http/handlers"
	"github.com/tbourn/go-video-backend/internal/http/middleware"
	"github.com/tbourn/go-video-backend/internal/media"
	"github.com/tbourn/go-video-backend/internal/repo"
	"github.com/tbourn/go-video-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter (sized for multipart uploads)
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per user/IP, bypass on replay)
//  9. CORS and Security headers, then gzip for responses
func RegisterRoutes(r *gin.Engine, db *gorm.DB, store media.Store, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key", // project-specific sensitive header example
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit, sized for the largest allowed upload
	r.Use(limitBody(cfg.Media.MaxUploadMB << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Session manager backs both token verification (middleware) and the
	// login/refresh/logout handlers.
	tokens := auth.NewManager(db, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	// 7) Idempotency validation (before rate limiting). Auth runs per-route,
	// so the lookup resolves the caller itself to scope keys per user.
	verifyOptional := middleware.OptionalAuth(tokens)
	requireAuth := middleware.RequireAuth(tokens)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
		},
		func(ctx context.Context, userID, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, userID, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: true, // session cookies cross allowlisted origins
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Compress responses; media bytes live in object storage, so everything
	// served here is JSON.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health (includes a DB ping so orchestrators see storage loss)
	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger UI (off by default)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/media store
	accountSvc := &services.AccountService{DB: db, Media: store, BcryptCost: cfg.Auth.BcryptCost}
	videoSvc := &services.VideoService{
		DB:             db,
		Media:          store,
		ViewWindow:     cfg.ViewWindow,
		IdempotencyTTL: cfg.IdempotencyTTL,
	}
	commentSvc := &services.CommentService{DB: db}
	tweetSvc := &services.TweetService{DB: db}
	playlistSvc := &services.PlaylistService{DB: db}
	socialSvc := &services.EngagementService{DB: db}
	dashboardSvc := &services.DashboardService{DB: db}

	h := handlers.New(accountSvc, tokens, videoSvc, commentSvc, tweetSvc, playlistSvc, socialSvc, dashboardSvc)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Accounts and sessions
		users := api.Group("/users")
		{
			users.POST("/register", h.Register)
			users.POST("/login", h.Login)
			users.POST("/refresh-token", h.RefreshToken)
			users.POST("/logout", requireAuth, h.Logout)
			users.GET("/me", requireAuth, h.Me)
			users.PATCH("/me", requireAuth, h.UpdateMe)
			users.POST("/change-password", requireAuth, h.ChangePassword)
			users.PATCH("/me/avatar", requireAuth, h.UpdateAvatar)
			users.PATCH("/me/cover", requireAuth, h.UpdateCover)
			users.GET("/c/:handle", verifyOptional, h.Channel)
			users.GET("/:id/tweets", h.ListUserTweets)
			users.GET("/:id/playlists", h.ListUserPlaylists)
		}

		// Videos
		videos := api.Group("/videos")
		{
			videos.POST("", requireAuth, h.PublishVideo)
			videos.GET("", h.ListVideos)
			videos.GET("/:id", verifyOptional, h.GetVideo)
			videos.PATCH("/:id", requireAuth, h.UpdateVideo)
			videos.DELETE("/:id", requireAuth, h.DeleteVideo)
			videos.PATCH("/:id/toggle-publish", requireAuth, h.TogglePublish)
			videos.GET("/:id/comments", h.ListComments)
			videos.POST("/:id/comments", requireAuth, h.CreateComment)
		}

		// Comments
		api.PATCH("/comments/:id", requireAuth, h.UpdateComment)
		api.DELETE("/comments/:id", requireAuth, h.DeleteComment)

		// Tweets
		api.POST("/tweets", requireAuth, h.CreateTweet)
		api.PATCH("/tweets/:id", requireAuth, h.UpdateTweet)
		api.DELETE("/tweets/:id", requireAuth, h.DeleteTweet)

		// Likes
		likes := api.Group("/likes", requireAuth)
		{
			likes.POST("/toggle/v/:id", h.ToggleVideoLike)
			likes.POST("/toggle/c/:id", h.ToggleCommentLike)
			likes.POST("/toggle/t/:id", h.ToggleTweetLike)
			likes.GET("/videos", h.ListLikedVideos)
		}

		// Subscriptions
		subs := api.Group("/subscriptions")
		{
			subs.POST("/c/:channelId", requireAuth, h.ToggleSubscription)
			subs.GET("/c/:channelId/subscribers", h.ListSubscribers)
			subs.GET("/u/me", requireAuth, h.ListSubscribedChannels)
		}

		// Playlists
		playlists := api.Group("/playlists")
		{
			playlists.POST("", requireAuth, h.CreatePlaylist)
			playlists.GET("/:id", h.GetPlaylist)
			playlists.PATCH("/:id", requireAuth, h.UpdatePlaylist)
			playlists.DELETE("/:id", requireAuth, h.DeletePlaylist)
			playlists.POST("/:id/videos/:videoId", requireAuth, h.AddPlaylistVideo)
			playlists.DELETE("/:id/videos/:videoId", requireAuth, h.RemovePlaylistVideo)
		}

		// Channel dashboard
		dashboard := api.Group("/dashboard", requireAuth)
		{
			dashboard.GET("/stats", h.DashboardStats)
			dashboard.GET("/videos", h.DashboardVideos)
		}
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
