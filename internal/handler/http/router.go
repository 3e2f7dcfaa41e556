package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
	Gatherer       prometheus.Gatherer
}

func NewRouter(
	opts RouterOptions,
	rosterHandler RosterHandler,
	sessionHandler SessionHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: false,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/managers", func(r chi.Router) {
			r.Get("/", rosterHandler.ListManagers)
			r.Get("/{manager}/agents", rosterHandler.ListAgents)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", sessionHandler.End)
				r.Get("/events", sessionHandler.Events)

				r.Route("/hours", func(r chi.Router) {
					r.Get("/", sessionHandler.Hours)
					r.Put("/{agent}", sessionHandler.SetHours)
					r.Post("/{agent}/increment", sessionHandler.Increment)
					r.Post("/{agent}/decrement", sessionHandler.Decrement)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Post("/", reportHandler.Generate)
					r.Get("/export", reportHandler.Export)
				})
			})
		})
	})
	return r
}
