package api

import (
	"io"
	"log/slog"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/shakaihoken/premium-calculator/internal/config"
)

// Version is reported in every log line of the server
var Version = "v0.1.0"

// NewLogger builds the JSON logger shared by request logging and the calculation engine
func NewLogger(w io.Writer, cfg *config.ServerConfig) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(cfg.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "premium-calculator"),
		slog.String("version", Version),
		slog.String("env", cfg.Env),
	)
}

// ParseLevel maps debug/info/warn/error to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func NewRouter(cfg *config.ServerConfig, logger *slog.Logger, premiumHandler PremiumHandler) *chi.Mux {
	r := chi.NewRouter()

	origins := cfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: false,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  ParseLevel(cfg.LogLevel),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/premiums", func(r chi.Router) {
			r.Post("/roster", premiumHandler.CalculateRoster)
			r.Post("/monthly", premiumHandler.CalculateMonthly)
			r.Post("/bonus", premiumHandler.CalculateBonus)
		})
		r.Post("/eligibility", premiumHandler.Evaluate)
		r.Post("/revision", premiumHandler.CheckRevision)
		r.Post("/regular", premiumHandler.RegularDetermination)

		r.Route("/reference", func(r chi.Router) {
			r.Get("/grades", premiumHandler.ListGrades)
			r.Get("/rates/{prefecture}", premiumHandler.GetRates)
		})
	})
	return r
}
