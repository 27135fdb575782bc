package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/vedran77/messagely/internal/transport/http/handlers"
	"github.com/vedran77/messagely/internal/transport/http/middleware"
)

type Deps struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Tokens   middleware.TokenParser
	Metrics  http.Handler
	Log      *slog.Logger
	CORS     []string
	LimitRPS float64
	Burst    int

	// TrustProxy lets forwarding headers replace RemoteAddr, which the
	// rate limiter keys on.
	TrustProxy bool
}

// New builds the HTTP API. ctx bounds the rate limiter's background work.
func New(ctx context.Context, d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if d.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger(d.Log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(d.CORS))

	// Public
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, d.LimitRPS, d.Burst))
		r.Post("/auth/register", d.Auth.Register)
		r.Post("/auth/login", d.Auth.Login)
	})

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(d.Tokens))
		r.Get("/users", d.Users.List)
		r.Get("/users/{username}", d.Users.Get)
		r.Get("/users/{username}/from", d.Users.MessagesFrom)
		r.Get("/users/{username}/to", d.Users.MessagesTo)
	})

	return r
}
