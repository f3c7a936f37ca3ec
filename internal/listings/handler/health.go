package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"resourcehub/internal/listings/service"
	httputil "resourcehub/pkg/http"
	"resourcehub/pkg/logger"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database,omitempty"`
	Documents int64  `json:"documents,omitempty"`
	Assistant string `json:"assistant,omitempty"`
}

// Probe checks one external collaborator for the readiness report.
type Probe func(ctx context.Context) error

type HealthHandler struct {
	service        service.ListingService
	assistantProbe Probe
	log            *logger.Logger
}

func NewHealthHandler(service service.ListingService, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		log:     log,
	}
}

// WithAssistantProbe adds the assistant status to /ready. A degraded
// assistant is reported but does not fail readiness; the directory works
// without it.
func (h *HealthHandler) WithAssistantProbe(probe Probe) *HealthHandler {
	h.assistantProbe = probe
	return h
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	info, err := h.service.Info(ctx)
	if err != nil {
		h.log.Error("Store health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unavailable",
			Database: "error",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	response := HealthResponse{
		Status:    "ready",
		Database:  info.Database,
		Documents: info.Documents,
	}
	if h.assistantProbe != nil {
		if err := h.assistantProbe(ctx); err != nil {
			h.log.Warn("Assistant health check failed", "error", err)
			response.Assistant = "failed"
		} else {
			response.Assistant = "ok"
		}
	}

	if err := httputil.WriteJSON(w, http.StatusOK, response); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
