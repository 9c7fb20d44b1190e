package handlers

import (
	"CurtainSamples/internal/config"
	"CurtainSamples/internal/middleware"
	"CurtainSamples/internal/service"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	catalogService *service.CatalogService,
	imageService *service.ImageService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: config.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	categoryHandler := NewCategoryHandler(catalogService, logger)
	curtainHandler := NewCurtainHandler(catalogService, imageService, logger)
	uploadHandler := NewUploadHandler(imageService, logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			if config.LoginRateLimit > 0 {
				r.Use(httprate.LimitByIP(config.LoginRateLimit, time.Minute))
			}
			r.Post("/auth/login", userHandler.Login)
		})
		r.Get("/categories", categoryHandler.List)
		r.Get("/categories/{id}/curtains", curtainHandler.ListByCategory)
		r.Get("/curtains", curtainHandler.List)
		r.Get("/curtains/{id}", curtainHandler.Get)
		r.Get("/uploads/{filename}", uploadHandler.Serve)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/auth/me", userHandler.Me)

			r.Post("/categories", categoryHandler.Create)
			r.Put("/categories/{id}", categoryHandler.Update)
			r.Delete("/categories/{id}", categoryHandler.Delete)

			r.Post("/curtains", curtainHandler.Create)
			r.Put("/curtains/{id}", curtainHandler.Update)
			r.Delete("/curtains/{id}", curtainHandler.Delete)

			r.Post("/uploads", uploadHandler.Upload)
		})
	})

	return &Handler{Router: r}
}
