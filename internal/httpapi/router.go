package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"quiz-service/internal/quiz"
)

type Options struct {
	Logger         *slog.Logger
	CORSOrigins    []string
	RequestTimeout time.Duration

	// StoreName and Ping back the /healthz report.
	StoreName string
	Ping      func(ctx context.Context) error
}

func NewRouter(service *quiz.Service, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	api := NewAPI(service, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(logger), recoverer(logger))
	r.Use(middleware.Timeout(opts.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", healthHandler(opts.StoreName, opts.Ping))
	mountDocs(r)

	r.Route("/api/quiz", func(r chi.Router) {
		r.Get("/", api.HandleListQuizzes)
		r.Post("/create", api.HandleCreateQuiz)
		r.Post("/import", api.HandleImportQuiz)
		r.Get("/id/{id}", api.HandleGetQuiz)
		r.Post("/submit/answer", api.HandleSubmitAnswer)
		r.Get("/result", api.HandleGetResult)
	})

	return r
}

func healthHandler(storeName string, ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Store: storeName})
				return
			}
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Store: storeName})
	}
}
