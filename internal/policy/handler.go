package policy

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "resourcehub/pkg/http"
	"resourcehub/pkg/logger"
)

type PolicyHandler struct {
	service PolicyService
	log     *logger.Logger
}

func NewPolicyHandler(service PolicyService, log *logger.Logger) *PolicyHandler {
	return &PolicyHandler{
		service: service,
		log:     log,
	}
}

func (h *PolicyHandler) Enforce(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req EnforceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Enforce", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	result, err := h.service.Enforce(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Enforce", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Enforce", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PolicyHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/enforcePolicy", h.Enforce)
}
