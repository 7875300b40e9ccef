package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookfeel/service/internal/ident"
	"github.com/bookfeel/service/internal/response"
)

// Handler holds HTTP handlers for user endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new user Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createRequest struct {
	Name string `json:"name" example:"ada"`
}

type createResponse struct {
	ID   string `json:"id"   example:"4823056719"`
	Name string `json:"name" example:"ada"`
}

// Create godoc
//
//	@Summary		Create account
//	@Description	Registers an account and returns its numeric ID. The ID is shown exactly once and cannot be recovered — it is the only way back into the account.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createRequest	true	"Display name"
//	@Success		201		{object}	createResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	u, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			response.BadRequest(w, "Name is required.")
			return
		}
		if errors.Is(err, ident.ErrExhausted) {
			response.InternalError(w, "could not allocate user id")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.JSON(w, http.StatusCreated, createResponse{ID: u.ID, Name: u.Name})
}

// Get godoc
//
//	@Summary		Get account
//	@Description	Returns the full user record, including the owned-entry index with edit keys. The numeric ID in the path is the credential.
//	@Tags			users
//	@Produce		json
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	User
//	@Failure		404	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/users/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.NotFound(w, "User not found.")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.JSON(w, http.StatusOK, u)
}
