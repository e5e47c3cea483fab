package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Pinger reports whether the backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthResponse struct {
	Status string `json:"status"`
}

type HealthController struct {
	store Pinger
}

// NewHealthController accepts a nil store for the in-memory driver.
func NewHealthController(store Pinger) *HealthController {
	return &HealthController{store: store}
}

func (c *HealthController) RegisterRoutes(r chi.Router) {
	r.Get("/health", c.health)
}

func (c *HealthController) health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if c.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := c.store.PingContext(ctx); err != nil {
			reject[HealthResponse](w, r, start, http.StatusServiceUnavailable, "database unreachable", err)
			return
		}
	}
	respond(w, r, start, http.StatusOK, "ok", HealthResponse{Status: "up"})
}
