package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/cinelog/internal/metrics"
	"github.com/hitoshi/cinelog/internal/middleware"
)

// RouterDeps はルーター構築に必要な依存をまとめる。
type RouterDeps struct {
	AuthService   AuthServiceInterface
	EntryService  EntryServiceInterface
	PosterFetcher PosterFetcherInterface
	HealthChecker HealthChecker
	TokenVerifier middleware.TokenVerifier
	Logger        *slog.Logger

	// Metricsはnil可。nilの場合はメトリクス収集を無効にする。
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer

	CORSAllowedOrigin string
	CookieSecure      bool

	// EntryAuthRequired がtrueの場合、/entries配下の全ルートに認証を要求する。
	EntryAuthRequired bool
}

// NewRouter はAPI全体のルーティングを構築する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	if deps.CORSAllowedOrigin != "" {
		r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	}
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}

	var authRecorder middleware.AuthFailureRecorder
	var entryRecorder EntryMetricsRecorder
	if deps.Metrics != nil {
		authRecorder = deps.Metrics
		entryRecorder = deps.Metrics
	}
	requireAuth := middleware.NewAuthMiddleware(deps.TokenVerifier, authRecorder)

	authHandler := NewAuthHandler(deps.AuthService, deps.CookieSecure)
	entryHandler := NewEntryHandler(deps.EntryService, deps.PosterFetcher, entryRecorder)
	healthHandler := NewHealthHandler(deps.HealthChecker)

	r.Get("/health", healthHandler.Health)
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.With(requireAuth).Get("/me", authHandler.Me)
	})

	r.Route("/entries", func(r chi.Router) {
		if deps.EntryAuthRequired {
			r.Use(requireAuth)
		}
		r.Get("/", entryHandler.List)
		r.Post("/", entryHandler.Create)
		r.Get("/search", entryHandler.Search)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", entryHandler.GetByID)
			r.Put("/", entryHandler.Update)
			r.Delete("/", entryHandler.Delete)
			r.Get("/poster", entryHandler.GetPoster)
		})
	})

	return r
}
