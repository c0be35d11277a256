package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/pratik-mahalle/streamvault/internal/api/dto"
	"github.com/pratik-mahalle/streamvault/internal/pkg/errors"
	"github.com/pratik-mahalle/streamvault/internal/pkg/logger"
	"github.com/pratik-mahalle/streamvault/internal/pkg/utils"
)

const (
	statusConnected    = "connected"
	statusDisconnected = "disconnected"
)

// Pinger checks record store connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	store    Pinger
	database string
	logger   *logger.Logger
}

// NewHealthHandler creates a new health handler. database names the driver in responses.
func NewHealthHandler(store Pinger, database string, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		store:    store,
		database: database,
		logger:   log,
	}
}

// Health reports record store connectivity
// @Summary Store health
// @Description Ping the record store
// @Tags Health
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.HealthDTO} "Store reachable"
// @Failure 503 {object} utils.ErrorResponse "Store unreachable"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.ping(r.Context()); err != nil {
		h.logger.ErrorWithErr(err, "Database ping failed")
		utils.WriteError(w, errors.ServiceUnavailable("Database connection failed").WithDetails(dto.HealthDTO{
			Status:   statusDisconnected,
			Database: h.database,
		}))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.HealthDTO{
		Status:   statusConnected,
		Database: h.database,
	})
}

// Healthz handles liveness probe
// @Summary Liveness probe
// @Description Check if the application is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is alive"
// @Router /healthz [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readyz handles readiness probe
// @Summary Readiness probe
// @Description Check if the application is ready to serve requests
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is ready"
// @Failure 503 {object} utils.ErrorResponse "Service unavailable"
// @Router /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if err := h.ping(r.Context()); err != nil {
		h.logger.ErrorWithErr(err, "Database ping failed")
		utils.WriteErrorMessage(w, http.StatusServiceUnavailable, errors.ErrCodeServiceUnavailable, "Database connection failed")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"database": statusConnected,
	})
}

func (h *HealthHandler) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return h.store.Ping(ctx)
}
