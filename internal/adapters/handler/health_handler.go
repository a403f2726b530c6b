package handler

import (
	"context"
	"net/http"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/logger"
)

const checkTimeout = 5 * time.Second

// Pinger is a dependency probed by the readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function such as (*sql.DB).PingContext to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type HealthHandler struct {
	deps      map[string]Pinger
	startTime time.Time
	version   string
	logger    *zap.Logger
}

func NewHealthHandler(deps map[string]Pinger, log *zap.Logger) *HealthHandler {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "unknown"
	}
	return &HealthHandler{
		deps:      deps,
		startTime: time.Now(),
		version:   version,
		logger:    logger.OrNop(log),
	}
}

// HealthResponse follows Kubernetes/OpenShift health check conventions
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp,omitempty"`
	Uptime    string           `json:"uptime,omitempty"`
	Version   string           `json:"version,omitempty"`
	Checks    map[string]Check `json:"checks"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health only confirms the process is running.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]Check{"process": {Status: "UP"}},
	})
}

// Ready pings every dependency and answers 503 when any of them is down.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]Check, len(names))
	status := "UP"
	httpStatus := http.StatusOK

	for _, name := range names {
		check := h.check(r.Context(), name, h.deps[name])
		checks[name] = check
		if check.Status != "UP" {
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, h.logger, httpStatus, HealthResponse{Status: status, Checks: checks})
}

// Live is an alias for Health.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

func (h *HealthHandler) check(ctx context.Context, name string, dep Pinger) Check {
	if dep == nil {
		return Check{Status: "DOWN", Message: name + " is not initialized"}
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := dep.Ping(ctx); err != nil {
		h.logger.Warn("readiness check failed", zap.String("dependency", name), zap.Error(err))
		return Check{Status: "DOWN", Message: "Cannot connect to " + name}
	}
	return Check{Status: "UP"}
}
