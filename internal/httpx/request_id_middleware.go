package httpx

import (
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID carries the request correlation id. It is echoed on every
// response and threaded through access logs and response meta.
const HeaderRequestID = "X-Request-Id"

// RequestIDMiddleware assigns each request a correlation id, honoring one
// supplied by the caller so ids survive proxy hops.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(ContextWithRequestID(r.Context(), id)))
	})
}
