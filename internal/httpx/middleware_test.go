package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesapi/internal/httpx"
)

func TestRequestIDMiddleware(t *testing.T) {
	echo := httpx.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(httpx.RequestIDFrom(r)))
	}))

	t.Run("caller-supplied id is kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(httpx.HeaderRequestID, "req-123")
		rec := httptest.NewRecorder()
		echo.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", rec.Body.String())
		assert.Equal(t, "req-123", rec.Header().Get(httpx.HeaderRequestID))
	})

	t.Run("id is generated when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, rec.Body.String())
		assert.Equal(t, rec.Body.String(), rec.Header().Get(httpx.HeaderRequestID))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	limited := httpx.NewRateLimitMiddleware(1, 1, time.Minute).
		Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	request := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec
	}

	t.Run("burst exhaustion is a 429", func(t *testing.T) {
		require.Equal(t, http.StatusOK, request("10.0.0.1:1234").Code)
		rec := request("10.0.0.1:1234")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")
	})

	t.Run("clients are limited independently", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, request("10.0.0.2:1234").Code)
	})
}
