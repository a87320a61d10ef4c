package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// HealthHandler serves /health. Postgres is required; Redis only backs the
// event queue, so a Redis outage reports degraded rather than unhealthy.
type HealthHandler struct {
	pool  *pgxpool.Pool
	redis *redis.Client
}

// NewHealthHandler creates a health handler. redisClient may be nil when
// event queueing is disabled.
func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{pool: pool, redis: redisClient}
}

type componentHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type healthResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentHealth `json:"components"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Components: map[string]componentHealth{}}
	code := http.StatusOK

	if err := h.pool.Ping(ctx); err != nil {
		resp.Components["postgres"] = componentHealth{Status: "down", Error: err.Error()}
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	} else {
		resp.Components["postgres"] = componentHealth{Status: "ok"}
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			resp.Components["redis"] = componentHealth{Status: "down", Error: err.Error()}
			if resp.Status == "ok" {
				// events queue behind a dead Redis; the API itself still serves
				resp.Status = "degraded"
			}
		} else {
			resp.Components["redis"] = componentHealth{Status: "ok"}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
