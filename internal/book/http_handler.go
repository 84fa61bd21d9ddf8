package book

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"notesapi/internal/httpx"
)

// Repository defines the contract for cached book storage.
type Repository interface {
	UpsertRetrieved(ctx context.Context, partnerCode string, b *Book) error
	ListByAuthor(ctx context.Context, partnerCode string, q Query) ([]Book, error)
	GetByPartnerBookID(ctx context.Context, partnerCode string, id int64) (Book, error)
}

// PartnerResolver resolves the authenticated user's owning partner code;
// cached books are scoped to it.
type PartnerResolver interface {
	CodeForUser(ctx context.Context, userID string) (string, error)
}

type HTTPHandler struct {
	repo     Repository
	partners PartnerResolver
}

func NewHTTPHandler(repo Repository, partners PartnerResolver) *HTTPHandler {
	return &HTTPHandler{repo: repo, partners: partners}
}

// ListCached handles GET /api/v1/books/cached
// @Summary List cached books
// @Description List books previously retrieved from the caller's partner, newest first
// @Tags books
// @Produce json
// @Security Bearer
// @Param author query string false "Author filter"
// @Param order query string false "asc or desc (default desc)"
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/v1/books/cached [get]
func (h *HTTPHandler) ListCached(w http.ResponseWriter, r *http.Request) {
	code, ok := h.resolveOwner(w, r)
	if !ok {
		return
	}

	// Newest first unless the caller asks for ascending order.
	q := Query{
		Author: r.URL.Query().Get("author"),
		Desc:   !strings.EqualFold(r.URL.Query().Get("order"), "asc"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		q.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		q.Offset, _ = strconv.Atoi(v)
	}

	books, err := h.repo.ListByAuthor(r.Context(), code, q)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, books, nil)
}

// GetCached handles GET /api/v1/books/cached/{id}
// @Summary Get a cached book
// @Tags books
// @Produce json
// @Security Bearer
// @Param id path int true "Partner book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/v1/books/cached/{id} [get]
func (h *HTTPHandler) GetCached(w http.ResponseWriter, r *http.Request) {
	code, ok := h.resolveOwner(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid book id", nil)
		return
	}

	b, err := h.repo.GetByPartnerBookID(r.Context(), code, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

func (h *HTTPHandler) resolveOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return "", false
	}
	code, err := h.partners.CodeForUser(r.Context(), userID)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Cannot resolve owning partner", nil)
		return "", false
	}
	return code, true
}
