package rest

import (
	"log/slog"
	"net/http"

	"github.com/juggajay/risksure-backend/internal/infrastructure/config"
	"github.com/juggajay/risksure-backend/internal/metrics"
)

// NewRouter assembles the route table and middleware chain. The health and
// metrics endpoints bypass auth and rate limiting.
func NewRouter(h *Handler, cfg config.SecurityConfig, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	authed := func(name string, fn http.HandlerFunc) http.Handler {
		return chain(
			metricsMiddleware(name, fn),
			rateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize),
			authMiddleware(cfg.JWTSecret, logger),
		)
	}

	mux.Handle("POST /api/v1/verifications", authed("submit_verification", h.SubmitVerification))
	mux.Handle("GET /api/v1/verifications/{id}", authed("get_verification", h.GetVerification))

	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.Handle("GET /metrics", metrics.Handler())

	return chain(mux,
		recoveryMiddleware(logger),
		requestIDMiddleware,
		loggingMiddleware(logger),
	)
}
