package entry

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookfeel/service/internal/response"
)

// Header names for the two client-held credentials.
const (
	// HeaderEditKey proves write ownership of a single entry.
	HeaderEditKey = "X-Edit-Key"
	// HeaderUserID identifies the calling account, when there is one.
	HeaderUserID = "X-User-ID"
)

// Handler holds HTTP handlers for entry endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new entry Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createRequest struct {
	BookTitle  string   `json:"bookTitle"`
	Tagline    string   `json:"tagline"`
	Reflection string   `json:"reflection"`
	BookCover  string   `json:"bookCover"`
	Images     []string `json:"images"`
	Privacy    Privacy  `json:"privacy"`
	EditKey    string   `json:"editKey"`
}

type createResponse struct {
	Success bool   `json:"success"`
	Slug    string `json:"slug"`
}

// Create godoc
//
//	@Summary		Create entry
//	@Description	Stores a new book reflection under a fresh slug. The edit key is minted by the client and is the only credential for later edits.
//	@Tags			entries
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string			false	"Link the entry to this account"
//	@Param			request		body		createRequest	true	"Entry fields plus edit key"
//	@Success		201			{object}	createResponse
//	@Failure		400			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/entry [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	e, err := h.svc.Create(r.Context(), CreateInput{
		BookTitle:  req.BookTitle,
		Tagline:    req.Tagline,
		Reflection: req.Reflection,
		BookCover:  req.BookCover,
		Images:     req.Images,
		Privacy:    req.Privacy,
		EditKey:    req.EditKey,
	}, r.Header.Get(HeaderUserID))
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			response.BadRequest(w, "Book Title and Edit Key are required.")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.JSON(w, http.StatusCreated, createResponse{Success: true, Slug: e.Slug})
}

// Get godoc
//
//	@Summary		Get entry
//	@Description	Returns the entry without its edit key. Private entries require an owning X-User-ID; any failure to prove ownership reads as 404.
//	@Tags			entries
//	@Produce		json
//	@Param			slug		path		string	true	"Entry slug"
//	@Param			X-User-ID	header		string	false	"Calling account"
//	@Success		200			{object}	Entry
//	@Failure		404			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/entry/{slug} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	e, err := h.svc.Get(r.Context(), slug, r.Header.Get(HeaderUserID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Entry not found")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.JSON(w, http.StatusOK, e)
}

// Update godoc
//
//	@Summary		Update entry
//	@Description	Applies a partial update after verifying the edit key. Omitting bookCover leaves the cover alone; sending bookCover null removes it.
//	@Tags			entries
//	@Accept			json
//	@Produce		json
//	@Param			slug		path		string	true	"Entry slug"
//	@Param			X-Edit-Key	header		string	true	"Edit key"
//	@Param			request		body		Patch	true	"Fields to change"
//	@Success		200			{object}	Entry
//	@Failure		400			{object}	map[string]string
//	@Failure		401			{object}	map[string]string
//	@Failure		403			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/entry/{slug} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	editKey := r.Header.Get(HeaderEditKey)
	if editKey == "" {
		response.Unauthorized(w, "Authentication required. Edit key missing.")
		return
	}

	var patch Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	e, err := h.svc.Update(r.Context(), chi.URLParam(r, "slug"), editKey, patch)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Entry not found.")
		case errors.Is(err, ErrForbidden):
			response.Forbidden(w, "Forbidden. Invalid edit key.")
		default:
			response.InternalError(w, err.Error())
		}
		return
	}

	response.JSON(w, http.StatusOK, e)
}

// Delete godoc
//
//	@Summary		Delete entry
//	@Description	Removes the entry, its cover and image blobs, and its reference in the owning account. Deleting an absent slug succeeds.
//	@Tags			entries
//	@Param			slug		path	string	true	"Entry slug"
//	@Param			X-Edit-Key	header	string	true	"Edit key"
//	@Param			X-User-ID	header	string	false	"Owning account to unlink"
//	@Success		204
//	@Failure		401	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Router			/entry/{slug} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	editKey := r.Header.Get(HeaderEditKey)
	if editKey == "" {
		response.Unauthorized(w, "Authentication required. Edit key missing.")
		return
	}

	err := h.svc.Delete(r.Context(), chi.URLParam(r, "slug"), editKey, r.Header.Get(HeaderUserID))
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			response.Forbidden(w, "Forbidden. Invalid edit key.")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.NoContent(w)
}

type listRequest struct {
	Slugs *[]string `json:"slugs"`
}

// ListSummaries godoc
//
//	@Summary		List entry summaries
//	@Description	Best-effort batch lookup: unknown slugs are dropped silently. No privacy filtering — callers are expected to request only slugs from their own owned list.
//	@Tags			entries
//	@Accept			json
//	@Produce		json
//	@Param			request	body		listRequest	true	"Slugs to look up"
//	@Success		200		{array}		Summary
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/entries/list [post]
func (h *Handler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Slugs == nil {
		response.BadRequest(w, `Request body must be an object with a "slugs" array.`)
		return
	}

	summaries, err := h.svc.ListSummaries(r.Context(), *req.Slugs)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.JSON(w, http.StatusOK, summaries)
}

// Feed godoc
//
//	@Summary		Public feed
//	@Description	Returns summaries of public entries, newest first.
//	@Tags			entries
//	@Produce		json
//	@Success		200	{array}		Summary
//	@Failure		500	{object}	map[string]string
//	@Router			/feed [get]
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.Feed(r.Context())
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}
	response.JSON(w, http.StatusOK, summaries)
}

type likeResponse struct {
	Likes int `json:"likes"`
}

// Like godoc
//
//	@Summary		Like entry
//	@Description	Increments the like counter of a readable entry and returns the new count.
//	@Tags			entries
//	@Produce		json
//	@Param			slug		path		string	true	"Entry slug"
//	@Param			X-User-ID	header		string	false	"Calling account"
//	@Success		200			{object}	likeResponse
//	@Failure		404			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/entry/{slug}/like [post]
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	likes, err := h.svc.Like(r.Context(), chi.URLParam(r, "slug"), r.Header.Get(HeaderUserID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Entry not found")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.JSON(w, http.StatusOK, likeResponse{Likes: likes})
}
