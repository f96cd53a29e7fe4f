// Package api wires the HTTP surface: routing, middleware, request
// decoding, and translation of service errors into the response envelope.
package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/auth"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/notify"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/pkg/httputil"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/service/application"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/service/contact"
)

// Handlers carries the dependencies shared by all endpoints.
type Handlers struct {
	apps     *application.Service
	contacts *contact.Service
	verifier auth.Verifier
	tokens   *auth.TokenManager
	notifier *notify.Notifier
	log      *zap.Logger

	db        *sql.DB       // nil-able, health check only
	redis     *redis.Client // nil-able, health check only
	startTime time.Time
}

// NewHandlers creates the handler set. notifier may be nil (email disabled);
// db and redis are only probed by the health endpoint and may be nil.
func NewHandlers(apps *application.Service, contacts *contact.Service, verifier auth.Verifier, tokens *auth.TokenManager, notifier *notify.Notifier, db *sql.DB, rdb *redis.Client, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{
		apps:      apps,
		contacts:  contacts,
		verifier:  verifier,
		tokens:    tokens,
		notifier:  notifier,
		db:        db,
		redis:     rdb,
		log:       log,
		startTime: time.Now(),
	}
}

type componentCheck struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthCheck reports server liveness and the state of its dependencies.
//
//	GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]componentCheck{
		"database": h.checkDB(ctx),
		"redis":    h.checkRedis(ctx),
	}

	status := "healthy"
	if checks["database"].Status == "down" {
		status = "unhealthy"
	} else if checks["redis"].Status == "down" {
		status = "degraded"
	}

	httputil.OK(w, map[string]interface{}{
		"status": status,
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
		"checks": checks,
	})
}

func (h *Handlers) checkDB(ctx context.Context) componentCheck {
	if h.db == nil {
		return componentCheck{Status: "not_configured"}
	}
	start := time.Now()
	if err := h.db.PingContext(ctx); err != nil {
		return componentCheck{Status: "down", Message: err.Error()}
	}
	return componentCheck{Status: "up", Latency: time.Since(start).Round(time.Millisecond).String()}
}

func (h *Handlers) checkRedis(ctx context.Context) componentCheck {
	if h.redis == nil {
		return componentCheck{Status: "not_configured"}
	}
	start := time.Now()
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return componentCheck{Status: "down", Message: err.Error()}
	}
	return componentCheck{Status: "up", Latency: time.Since(start).Round(time.Millisecond).String()}
}
