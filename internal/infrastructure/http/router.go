package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler   *handlers.AuthHandler
	UsersHandler  *handlers.UsersHandler
	TodosHandler  *handlers.TodosHandler
	HealthHandler *handlers.HealthHandler
	RequireJWT    func(http.Handler) http.Handler
	Log           zerolog.Logger
	Secure        func(http.Handler) http.Handler
	CORSOrigins   []string
	Metrics       bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	r.Use(middleware.CORS(cfg.CORSOrigins, nil, nil))
	r.Use(chimid.AllowContentType("application/json"))
	r.Use(chimid.SetHeader("Content-Type", "application/json"))

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
			r.With(cfg.RequireJWT).Get("/verify", cfg.AuthHandler.Verify)
		})

		r.Route("/users/me", func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Get("/", cfg.UsersHandler.Me)
			r.Patch("/", cfg.UsersHandler.UpdateMe)
			r.Delete("/", cfg.UsersHandler.DeleteMe)
			r.Post("/verify-email", cfg.UsersHandler.VerifyEmail)
		})

		r.Route("/todos", func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Get("/", cfg.TodosHandler.List)
			r.Post("/", cfg.TodosHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.TodosHandler.Get)
				r.Put("/", cfg.TodosHandler.Update)
				r.Delete("/", cfg.TodosHandler.Delete)
				r.Post("/complete", cfg.TodosHandler.Complete)
				r.Post("/uncomplete", cfg.TodosHandler.Uncomplete)
			})
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", chimid.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
