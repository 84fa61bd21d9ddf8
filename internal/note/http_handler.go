package note

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"notesapi/internal/httpx"
)

const maxPageSize = 100

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /api/v1/notes
// @Summary List the caller's notes
// @Description List notes with kind filter, creation-time ordering and pagination. Each note carries its word count and content-length classification under the owner's partner policy.
// @Tags notes
// @Produce json
// @Security Bearer
// @Param type query string false "Filter by kind (review or critique)"
// @Param order query string false "asc or desc (default desc)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page, max 100"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /api/v1/notes [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	q := Query{Order: r.URL.Query().Get("order")}

	if pageSize := r.URL.Query().Get("page_size"); pageSize != "" {
		n, err := strconv.Atoi(pageSize)
		if err != nil || n <= 0 || n > maxPageSize {
			httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_PAGE_SIZE",
				"page_size must be between 1 and "+strconv.Itoa(maxPageSize), nil)
			return
		}
		q.PageSize = n
	}
	if page := r.URL.Query().Get("page"); page != "" {
		q.Page, _ = strconv.Atoi(page)
	}

	if kind := r.URL.Query().Get("type"); kind != "" {
		parsed, err := ParseKind(kind)
		if err != nil {
			httpx.JSONError(w, r, http.StatusUnprocessableEntity, "INVALID_TYPE",
				"type must be review or critique", nil)
			return
		}
		q.Kind = parsed
	}

	notes, total, err := h.service.List(r.Context(), userID, q)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, notes, map[string]any{"total": total})
}

// Get handles GET /api/v1/notes/{id}
// @Summary Get one of the caller's notes
// @Tags notes
// @Produce json
// @Security Bearer
// @Param id path string true "Note ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/v1/notes/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid note id", nil)
		return
	}

	n, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Note not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, n, nil)
}

type createNoteReq struct {
	Title   string `json:"title" validate:"required,max=200"`
	Kind    string `json:"type" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Create handles POST /api/v1/notes
// @Summary Create a note
// @Description Create a review or critique. Review content must classify as short under the owning partner's policy.
// @Tags notes
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body createNoteReq true "Note"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /api/v1/notes [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req createNoteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Missing required parameters", validationErrors)
		return
	}

	created, err := h.service.Create(r.Context(), userID, &Note{
		Title:   req.Title,
		Kind:    Kind(req.Kind),
		Content: req.Content,
	})
	if err != nil {
		var tooLong *ContentTooLongError
		switch {
		case errors.Is(err, ErrInvalidKind):
			httpx.JSONError(w, r, http.StatusUnprocessableEntity, "INVALID_TYPE",
				"type must be review or critique", nil)
		case errors.As(err, &tooLong):
			httpx.JSONError(w, r, http.StatusUnprocessableEntity, "CONTENT_TOO_LONG", tooLong.Error(),
				[]httpx.ErrorDetail{{Field: "content", Message: "must be at most " + strconv.Itoa(tooLong.Limit) + " words"}})
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccessCreated(w, r, created)
}
