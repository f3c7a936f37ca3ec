package assistant

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "resourcehub/pkg/http"
	"resourcehub/pkg/logger"
)

type AssistantHandler struct {
	service AssistantService
	log     *logger.Logger
}

func NewAssistantHandler(service AssistantService, log *logger.Logger) *AssistantHandler {
	return &AssistantHandler{
		service: service,
		log:     log,
	}
}

type sessionResult struct {
	SessionID string `json:"session_id"`
}

type messageBody struct {
	Text      string `json:"text"`
	SessionID string `json:"sessionid"`
}

func (h *AssistantHandler) Session(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sessionID, err := h.service.Session(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Session", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, sessionResult{SessionID: sessionID}); err != nil {
		h.log.Error("failed to write success response", "handler", "Session", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AssistantHandler) Message(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body messageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Message", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	result, err := h.service.Message(r.Context(), body.SessionID, body.Text)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Message", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Message", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AssistantHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/session", h.Session)
	router.POST("/api/message", h.Message)
}
