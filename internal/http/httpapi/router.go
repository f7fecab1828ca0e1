package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/http/handlers"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/infra"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/middleware"
)

type Options struct {
	AllowedOrigins  []string
	RateLimitPerMin int
	JWTSecret       string
}

func NewRouter(app *handlers.App, cfg *infra.Config) http.Handler {
	return newRouter(app, Options{
		AllowedOrigins:  []string{"*"},
		RateLimitPerMin: cfg.RateLimitPerMin,
		JWTSecret:       cfg.JWTSecret,
	})
}

func newRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(*app.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.RateLimit(opts.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(opts.JWTSecret))

		r.Route("/v1", func(r chi.Router) {
			r.Post("/interpret", app.Interpret)
			r.Post("/interpret/batch", app.InterpretBatch)
			r.Post("/generate", app.Generate)

			r.Route("/rounds", func(r chi.Router) {
				r.Post("/", app.RoundCreate)
				r.Get("/{round_id}", app.RoundStatus)
			})

			r.Route("/history", func(r chi.Router) {
				r.Get("/", app.HistoryList)
				r.Post("/", app.HistoryAppend)
				r.Get("/{id}", app.HistoryGet)
			})

			r.Get("/library", app.LibraryList)
			r.Get("/workflows", app.WorkflowList)
			r.Get("/scenes/default", app.DefaultScene)

			r.Post("/export", app.Export)
		})
	})

	return r
}
