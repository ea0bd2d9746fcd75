package http

import (
	"net/http"

	"github.com/go-auth-api/internal/application/auth"
	"github.com/go-auth-api/internal/application/user"
	"github.com/go-auth-api/internal/config"
	"github.com/go-auth-api/internal/infrastructure/cache"
	"github.com/go-auth-api/internal/infrastructure/smtp"
	"github.com/go-auth-api/internal/infrastructure/sqlite"
	"github.com/go-auth-api/internal/transport/http/handler"
	appmiddleware "github.com/go-auth-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo *sqlite.UserRepo
	Cache    cache.Store
	Mailer   smtp.Mailer
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(appmiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Default throttle for the whole surface plus a tighter limit on the
	// public auth endpoints.
	defaultRL := appmiddleware.NewRateLimiter(rate.Limit(100.0/60.0), 100)
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(15.0/60.0), 15)
	r.Use(defaultRL.Limit)

	authMw := appmiddleware.Auth(cfg.JWT.Secret)

	authSvc := auth.NewService(auth.ServiceDeps{
		Store:     deps.Cache,
		UserRepo:  deps.UserRepo,
		Mailer:    deps.Mailer,
		Secret:    cfg.JWT.Secret,
		ExpiresIn: cfg.JWT.ExpiresIn,
	})
	userSvc := user.NewService(deps.UserRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)

	r.Route("/api/v1", func(r chi.Router) {
		// ── Public routes (no session required) ─────────────────────────────
		r.Get("/health-check", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/request-code", authH.RequestCode)
		r.With(sensitiveRL.Limit).Post("/auth/confirm-code", authH.ConfirmCode)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/auth/refresh", authH.Refresh)

			r.Post("/users", userH.Create)
			r.Get("/users", userH.List)
			r.Get("/users/{id}", userH.Get)
			r.Patch("/users/{id}", userH.Update)
			r.Delete("/users/{id}", userH.Delete)
		})
	})

	return r
}
