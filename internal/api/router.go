package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/smarttravel/api/internal/api/handler"
	custommw "github.com/smarttravel/api/internal/api/middleware"
	"github.com/smarttravel/api/internal/config"
	"github.com/smarttravel/api/internal/llm"
	"github.com/smarttravel/api/internal/llm/gemini"
	"github.com/smarttravel/api/internal/llm/openai"
	"github.com/smarttravel/api/internal/repository/mongo"
	"github.com/smarttravel/api/internal/repository/redis"
	"github.com/smarttravel/api/internal/security"
	"github.com/smarttravel/api/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *mongo.DB, redisClient *redis.Client) (http.Handler, error) {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommw.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// CORS; credentials must be allowed for the session cookie
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Server.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Security components
	jwtManager := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	cookieSigner, err := security.NewCookieSigner(cfg.Auth.CookieSecret)
	if err != nil {
		return nil, err
	}

	// Repositories
	userRepo := mongo.NewUserRepository(db)
	tripRepo := mongo.NewTripRepository(db)

	// Rate limiter for the public auth endpoints
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)

	// Completion providers
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider)
	log.Info().Msgf("Initializing completion providers. Default: %s", cfg.LLM.DefaultProvider)

	if cfg.LLM.OpenAI.APIKey != "" {
		llmRouter.RegisterProvider(openai.NewProvider(cfg.LLM.OpenAI))
	}
	if cfg.LLM.Gemini.APIKey != "" {
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini))
	}
	if len(llmRouter.ListProviders()) == 0 {
		log.Warn().Msg("No completion provider configured; chat requests will fail")
	}

	// Services
	authService := service.NewAuthService(userRepo, jwtManager)
	chatService := service.NewChatService(userRepo, llmRouter, cfg.LLM.RequestTimeout)
	tripService := service.NewTripService(tripRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cookieSigner, cfg.Auth)
	chatHandler := handler.NewChatHandler(chatService)
	tripHandler := handler.NewTripHandler(tripService)

	// Middleware
	sessionMiddleware := custommw.NewSessionMiddleware(jwtManager, cookieSigner, cfg.Auth.CookieName)
	rateLimitMiddleware := custommw.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		r.Route("/user", func(r chi.Router) {
			r.Get("/", authHandler.ListUsers)

			r.Group(func(r chi.Router) {
				r.Use(rateLimitMiddleware.Limit)
				r.Post("/signup", authHandler.Signup)
				r.Post("/login", authHandler.Login)
			})

			r.Group(func(r chi.Router) {
				r.Use(sessionMiddleware.Authenticate)
				r.Get("/auth-status", authHandler.AuthStatus)
				r.Get("/logout", authHandler.Logout)
			})
		})

		r.Route("/chat", func(r chi.Router) {
			r.Use(sessionMiddleware.Authenticate)
			r.Post("/new", chatHandler.New)
			r.Get("/all-chats", chatHandler.All)
			r.Delete("/delete", chatHandler.Delete)
		})

		r.Route("/trips", func(r chi.Router) {
			r.Use(sessionMiddleware.Authenticate)
			r.Get("/", tripHandler.List)
			r.Post("/", tripHandler.Create)

			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", tripHandler.Get)
				r.Put("/", tripHandler.Update)
				r.Delete("/", tripHandler.Delete)
			})
		})
	})

	return r, nil
}
