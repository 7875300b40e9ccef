package upload

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bookfeel/service/internal/response"
)

// Handler holds the HTTP handler for the upload-url endpoint.
type Handler struct {
	svc *Service
}

// NewHandler creates a new upload Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type uploadURLRequest struct {
	Filename    string `json:"filename"    example:"cover.png"`
	ContentType string `json:"contentType" example:"image/png"`
}

// RequestUploadURL godoc
//
//	@Summary		Request upload URL
//	@Description	Returns a presigned PUT URL (valid for 360 seconds) and the public URL the blob will have. The client uploads directly to object storage.
//	@Tags			uploads
//	@Accept			json
//	@Produce		json
//	@Param			request	body		uploadURLRequest	true	"File name and content type"
//	@Success		200		{object}	UploadURL
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/upload-url [post]
func (h *Handler) RequestUploadURL(w http.ResponseWriter, r *http.Request) {
	var req uploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if req.Filename == "" || req.ContentType == "" {
		response.BadRequest(w, "Filename and contentType are required")
		return
	}

	u, err := h.svc.RequestUploadURL(r.Context(), req.Filename, req.ContentType)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			response.InternalError(w, "Configuration error: storage bucket is not set.")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.JSON(w, http.StatusOK, u)
}
