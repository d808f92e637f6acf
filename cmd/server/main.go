package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/soundforge/api/internal/auth"
	"github.com/soundforge/api/internal/client"
	"github.com/soundforge/api/internal/config"
	"github.com/soundforge/api/internal/handler"
	"github.com/soundforge/api/internal/middleware"
	"github.com/soundforge/api/internal/service"
	ws "github.com/soundforge/api/internal/websocket"
	"github.com/soundforge/api/internal/worker"
)

// @title          SoundForge API
// @version        1.0
// @description    Backend API for SoundForge — AI-powered music generation platform.
// @host           localhost:8000
// @BasePath       /
// @schemes        http https
// @securityDefinitions.apikey BearerAuth
// @in             header
// @name           Authorization
// @description    Enter your bearer token in the format **Bearer &lt;token&gt;**
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test Redis connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis not available: %v", err)
	}

	// Initialize Asynq client
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	// Initialize validator
	validate := validator.New()

	// Initialize WebSocket hub
	hub := ws.NewHub()
	go hub.Run()

	// Initialize Muse generation client
	museClient := client.NewMuseClient(&cfg.Muse)
	if !museClient.IsConfigured() {
		log.Println("Info: Muse API key not configured, worker will use mock generation")
	}

	// Initialize R2 client (optional - continues if not configured)
	var r2Client *client.R2Client
	if cfg.R2.AccessKeyID != "" && cfg.R2.SecretAccessKey != "" {
		var err error
		r2Client, err = client.NewR2Client(&cfg.R2)
		if err != nil {
			log.Printf("Warning: R2 client not initialized: %v", err)
		}
	} else {
		log.Println("Info: R2 storage not configured, using mock storage")
	}

	// Initialize OIDC verifier (optional - falls back to HMAC JWT)
	var oidcVerifier *auth.OIDCVerifier
	if cfg.OIDC.Issuer != "" {
		var err error
		oidcVerifier, err = auth.NewOIDCVerifier(&cfg.OIDC)
		if err != nil {
			log.Printf("Warning: OIDC verifier not initialized: %v", err)
		} else {
			defer oidcVerifier.Close()
		}
	}

	// StorageClient is an interface; a typed-nil *R2Client must not leak in
	var storage client.StorageClient
	if r2Client != nil {
		storage = r2Client
	}

	// Initialize services
	generationService := service.NewGenerationService(museClient)
	songService := service.NewSongService(redisClient, asynqClient, storage)
	playlistService := service.NewPlaylistService(redisClient)
	workspaceService := service.NewWorkspaceService(redisClient)
	uploadService := service.NewUploadService(storage)

	// Initialize handlers
	promptHandler := handler.NewPromptHandler(validate)
	songHandler := handler.NewSongHandler(songService, generationService, validate)
	playlistHandler := handler.NewPlaylistHandler(playlistService, validate)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService, validate)
	uploadHandler := handler.NewUploadHandler(uploadService, validate)

	// Initialize auth handler for ForwardAuth verification
	var tokenVerifier auth.TokenVerifier
	if oidcVerifier != nil {
		tokenVerifier = oidcVerifier
	}
	authHandler := handler.NewAuthHandler(tokenVerifier, cfg.JWT.Secret)

	// Initialize middleware (with fallback support)
	var apiAuthMiddleware fiber.Handler
	if cfg.Gateway.Enabled {
		// Behind the gateway: auth is handled by ForwardAuth, read X-User-* headers
		log.Println("Info: Gateway mode enabled — using header-based auth")
		apiAuthMiddleware = middleware.GatewayAuthMiddleware()
	} else {
		// Direct mode: auth is handled by the backend itself
		var authMiddleware *middleware.AuthMiddleware
		if oidcVerifier != nil && cfg.JWT.Secret != "" {
			authMiddleware = middleware.NewAuthMiddlewareWithFallback(oidcVerifier, cfg.JWT.Secret)
		} else if oidcVerifier != nil {
			authMiddleware = middleware.NewAuthMiddleware(oidcVerifier)
		} else {
			authMiddleware = middleware.NewHMACAuthMiddleware(cfg.JWT.Secret)
		}
		apiAuthMiddleware = authMiddleware.Authenticate()
	}
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    50 * 1024 * 1024, // 50MB
	})

	// Global middleware
	app.Use(recover.New())
	isDebug := strings.EqualFold(cfg.Server.LogLevel, "debug")
	logFormat := "[${time}] ${status} - ${latency} ${method} ${path}\n"
	if isDebug {
		logFormat = "[${time}] ${status} - ${latency} ${method} ${path} ${queryParams} ${body} ${reqHeaders}\n"
		log.Println("Debug logging enabled")
	}
	app.Use(logger.New(logger.Config{
		Format: logFormat,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Base URL - timestamp
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"timestamp": time.Now().Unix(),
		})
	})

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"muse": museClient.IsConfigured(),
				"r2":   r2Client != nil,
				"auth": oidcVerifier != nil || cfg.JWT.Secret != "",
			},
		})
	})

	// ForwardAuth verification endpoint (internal, called by the gateway)
	app.Get("/auth/verify", authHandler.Verify)

	// API routes
	api := app.Group("/api", apiAuthMiddleware)

	// Prompt routes
	prompt := api.Group("/prompt", rateLimiter.ValidateLimit(cfg.RateLimit.ValidatePerMin))
	prompt.Post("/validate", promptHandler.Validate)
	prompt.Post("/feedback", promptHandler.Feedback)

	// Song routes
	songs := api.Group("/songs")
	songs.Post("/", rateLimiter.GenerateLimit(cfg.RateLimit.GeneratePerHour), songHandler.Create)
	songs.Post("/generate", rateLimiter.GenerateLimit(cfg.RateLimit.GeneratePerHour), songHandler.Generate)
	songs.Get("/", rateLimiter.LibraryLimit(cfg.RateLimit.LibraryPerMin), songHandler.List)
	songs.Get("/:songId", songHandler.Get)
	songs.Delete("/:songId", songHandler.Delete)

	// Playlist routes
	playlists := api.Group("/playlists", rateLimiter.LibraryLimit(cfg.RateLimit.LibraryPerMin))
	playlists.Post("/", playlistHandler.Create)
	playlists.Get("/", playlistHandler.List)
	playlists.Get("/:playlistId", playlistHandler.Get)
	playlists.Delete("/:playlistId", playlistHandler.Delete)
	playlists.Post("/:playlistId/songs", playlistHandler.AddSong)
	playlists.Delete("/:playlistId/songs/:songId", playlistHandler.RemoveSong)

	// Workspace routes
	workspaces := api.Group("/workspaces", rateLimiter.LibraryLimit(cfg.RateLimit.LibraryPerMin))
	workspaces.Post("/", workspaceHandler.Create)
	workspaces.Get("/", workspaceHandler.List)
	workspaces.Get("/:workspaceId", workspaceHandler.Get)
	workspaces.Delete("/:workspaceId", workspaceHandler.Delete)

	// Upload routes
	upload := api.Group("/upload", rateLimiter.UploadLimit(cfg.RateLimit.UploadPerHour))
	upload.Post("/audio", uploadHandler.Audio)
	upload.Delete("/audio/:uploadId", uploadHandler.DeleteAudio)

	// WebSocket routes
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/songs/:songId", websocket.New(func(c *websocket.Conn) {
		songID := c.Params("songId")
		hub.HandleConnection(c, songID)
	}))

	// Start Asynq worker server
	go startWorkerServer(cfg, songService, generationService, museClient, storage, hub)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	addr := ":" + cfg.Server.Port
	log.Printf("Server starting on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func startWorkerServer(
	cfg *config.Config,
	songService *service.SongService,
	generationService *service.GenerationService,
	museClient client.MusicGenerator,
	storage client.StorageClient,
	hub *ws.Hub,
) {
	asynqLogLevel := asynq.InfoLevel
	if strings.EqualFold(cfg.Server.LogLevel, "debug") {
		asynqLogLevel = asynq.DebugLevel
	} else if strings.EqualFold(cfg.Server.LogLevel, "warn") {
		asynqLogLevel = asynq.WarnLevel
	} else if strings.EqualFold(cfg.Server.LogLevel, "error") {
		asynqLogLevel = asynq.ErrorLevel
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"generate": 10,
			},
			LogLevel: asynqLogLevel,
		},
	)

	generationWorker := worker.NewGenerationWorker(songService, generationService, museClient, storage, hub)

	mux := asynq.NewServeMux()
	mux.HandleFunc(service.TaskTypeGenerate, generationWorker.ProcessTask)

	if err := srv.Run(mux); err != nil {
		log.Printf("Asynq worker error: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "SERVICE_ERROR",
			"message": message,
		},
	})
}
