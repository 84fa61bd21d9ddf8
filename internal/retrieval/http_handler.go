package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"notesapi/internal/httpx"
	"notesapi/internal/jobs"
	"notesapi/internal/partner"
)

// PartnerResolver resolves the authenticated user's owning partner. Routing
// binds retrievals to the caller's partner; the author query value is only a
// filter inside the partner request.
type PartnerResolver interface {
	GetByUserID(ctx context.Context, userID string) (partner.Partner, error)
}

type HTTPHandler struct {
	service  *Service
	partners PartnerResolver
}

func NewHTTPHandler(service *Service, partners PartnerResolver) *HTTPHandler {
	return &HTTPHandler{service: service, partners: partners}
}

// RetrieveBooks handles GET /api/v1/books
// @Summary Retrieve books from the caller's partner
// @Description Fetch books from the owning partner, normalized to the canonical shape. With async=true the work is queued and a job handle is returned.
// @Tags books
// @Produce json
// @Security Bearer
// @Param author query string true "Author filter"
// @Param async query bool false "Queue the retrieval and return a job handle"
// @Success 200 {object} httpx.SuccessResponse
// @Success 202 {object} asyncAccepted
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 503 {object} httpx.ErrorResponse
// @Router /api/v1/books [get]
func (h *HTTPHandler) RetrieveBooks(w http.ResponseWriter, r *http.Request) {
	h.retrieve(w, r, "books")
}

// RetrieveNotes handles GET /api/v1/external/notes
// @Summary Retrieve notes from the caller's partner
// @Description Fetch notes from the owning partner, normalized and classified under the partner's content policy. With async=true the work is queued and a job handle is returned.
// @Tags notes
// @Produce json
// @Security Bearer
// @Param author query string true "Author filter"
// @Param async query bool false "Queue the retrieval and return a job handle"
// @Success 200 {object} httpx.SuccessResponse
// @Success 202 {object} asyncAccepted
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 503 {object} httpx.ErrorResponse
// @Router /api/v1/external/notes [get]
func (h *HTTPHandler) RetrieveNotes(w http.ResponseWriter, r *http.Request) {
	h.retrieve(w, r, "notes")
}

// asyncAccepted mirrors the handle body returned on async submission.
type asyncAccepted struct {
	Response string `json:"response"`
	JobID    string `json:"job_id"`
	URL      string `json:"url"`
}

func (h *HTTPHandler) retrieve(w http.ResponseWriter, r *http.Request, resource string) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	owner, err := h.partners.GetByUserID(r.Context(), userID)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Cannot resolve owning partner", nil)
		return
	}

	params := partner.Params{
		Author: r.URL.Query().Get("author"),
		Kind:   r.URL.Query().Get("type"),
	}

	if r.URL.Query().Get("async") == "true" {
		h.submit(w, r, resource, owner.Code, params)
		return
	}

	var data any
	switch resource {
	case "books":
		data, err = h.service.RetrieveBooks(r.Context(), owner.Code, params)
	default:
		data, err = h.service.RetrieveNotes(r.Context(), owner.Code, params)
	}
	if err != nil {
		h.writeError(w, r, owner.Code, err)
		return
	}
	httpx.JSONSuccess(w, r, data, nil)
}

func (h *HTTPHandler) submit(w http.ResponseWriter, r *http.Request, resource, code string, params partner.Params) {
	var err error
	var handle jobs.Handle
	switch resource {
	case "books":
		handle, err = h.service.SubmitBooks(r.Context(), code, params)
	default:
		handle, err = h.service.SubmitNotes(r.Context(), code, params)
	}
	if err != nil {
		h.writeError(w, r, code, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(asyncAccepted{
		Response: "pending",
		JobID:    handle.JobID,
		URL:      handle.URL,
	})
}

// writeError maps the structured error taxonomy onto HTTP statuses. Callers
// branch on the error code, never on message text.
func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, code string, err error) {
	var unknownPartner *partner.UnknownPartnerError
	var missingField *partner.MissingFieldError
	var malformed *partner.MalformedResponseError
	var unavailable *PartnerUnavailableError

	switch {
	case errors.As(err, &missingField):
		httpx.JSONError(w, r, http.StatusBadRequest, "MISSING_FIELD", err.Error(),
			[]httpx.ErrorDetail{{Field: missingField.Field, Message: "required"}})
	case errors.As(err, &unknownPartner):
		httpx.JSONError(w, r, http.StatusInternalServerError, "UNKNOWN_PARTNER", err.Error(), nil)
	case errors.As(err, &malformed):
		// Logged for partner-health monitoring; not retried by this layer.
		log.Printf("retrieval: malformed response from %s: %v", code, err)
		httpx.JSONError(w, r, http.StatusBadGateway, "MALFORMED_RESPONSE", err.Error(), nil)
	case errors.As(err, &unavailable):
		httpx.JSONError(w, r, http.StatusServiceUnavailable, "PARTNER_UNAVAILABLE", err.Error(), nil)
	case errors.Is(err, jobs.ErrQueueFull):
		httpx.JSONError(w, r, http.StatusServiceUnavailable, "SERVER_BUSY", "Retrieval queue is full, try again later", nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
