package vision

import (
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "resourcehub/pkg/http"
	"resourcehub/pkg/logger"
)

// Multipart bodies are capped well below this by the request size
// middleware; the form memory limit only bounds in-memory buffering.
const maxFormMemory = 8 << 20

type VisionHandler struct {
	service VisionService
	log     *logger.Logger
}

func NewVisionHandler(service VisionService, log *logger.Logger) *VisionHandler {
	return &VisionHandler{
		service: service,
		log:     log,
	}
}

func (h *VisionHandler) HeadCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Expected a multipart form with an image file and a listing id",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "HeadCount", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	listingID := r.FormValue("id")

	file, _, err := r.FormFile("image")
	if err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Image file is required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "HeadCount", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Failed to read image file",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "HeadCount", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	result, err := h.service.ProcessImage(r.Context(), listingID, image)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "HeadCount", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "HeadCount", "operation", "WriteSuccess", "error", err)
	}
}

func (h *VisionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/getHeadCount", h.HeadCount)
}
