package api

import (
	"net/http"
	"time"

	"inmobiliaria_api/internal/api/handler"
	"inmobiliaria_api/internal/app/service"
	"inmobiliaria_api/internal/common/security"
	"inmobiliaria_api/internal/platform/config"
	"inmobiliaria_api/internal/platform/storage"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	propertyService *service.PropertyService,
	contactService *service.ContactService,
	images *storage.ImageStore,
	healthChecks []handler.HealthCheck,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// CORS restricted to the configured origin allow-list. Must be global
	// so OPTIONS preflights are answered on every route.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))

	// Verifies a bearer token when present and puts claims in the request
	// context. Enforcement happens per-route in middleware.Authenticator.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Login is the only rate-limited route: bounded attempts per source IP
	// per window to blunt credential guessing.
	loginLimiter := httprate.LimitByIP(cfg.LoginRateLimit, cfg.LoginRateLimitWindow)

	r.Route("/api", func(apiRouter chi.Router) {
		apiRouter.Method(http.MethodGet, "/health", handler.NewHealthHandler(healthChecks...))

		authHandler := handler.NewAuthHandler(authService)
		authHandler.RegisterRoutes(apiRouter, loginLimiter)

		propertyHandler := handler.NewPropertyHandler(propertyService)
		apiRouter.Route("/properties", propertyHandler.RegisterRoutes)

		uploadHandler := handler.NewUploadHandler(images)
		apiRouter.Route("/upload", uploadHandler.RegisterRoutes)

		contactHandler := handler.NewContactHandler(contactService)
		apiRouter.Route("/contact", contactHandler.RegisterRoutes)
	})

	// Uploaded images are served directly from disk.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(images.Dir())))
	r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
		fileServer.ServeHTTP(w, req)
	})

	return r
}
