package book

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notesapi/internal/httpx"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) UpsertRetrieved(ctx context.Context, partnerCode string, b *Book) error {
	args := m.Called(ctx, partnerCode, b)
	return args.Error(0)
}

func (m *mockRepo) ListByAuthor(ctx context.Context, partnerCode string, q Query) ([]Book, error) {
	args := m.Called(ctx, partnerCode, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Book), args.Error(1)
}

func (m *mockRepo) GetByPartnerBookID(ctx context.Context, partnerCode string, id int64) (Book, error) {
	args := m.Called(ctx, partnerCode, id)
	return args.Get(0).(Book), args.Error(1)
}

type mockPartnerResolver struct {
	mock.Mock
}

func (m *mockPartnerResolver) CodeForUser(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(httpx.ContextWithUser(req.Context(), "user-1"))
}

func newHandler(repo *mockRepo) *HTTPHandler {
	partners := new(mockPartnerResolver)
	partners.On("CodeForUser", mock.Anything, "user-1").Return("north", nil)
	return NewHTTPHandler(repo, partners)
}

func TestListCached(t *testing.T) {
	t.Run("lists the caller's partner books newest first", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ListByAuthor", mock.Anything, "north", Query{Author: "Borges", Desc: true}).
			Return([]Book{{ID: 1, Title: "Ficciones", Author: "Borges"}}, nil)

		rec := httptest.NewRecorder()
		newHandler(repo).ListCached(rec, authedRequest(http.MethodGet, "/api/v1/books/cached?author=Borges"))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Ficciones")
		repo.AssertExpectations(t)
	})

	t.Run("ascending order is passed through", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ListByAuthor", mock.Anything, "north", Query{Desc: false}).
			Return([]Book{}, nil)

		rec := httptest.NewRecorder()
		newHandler(repo).ListCached(rec, authedRequest(http.MethodGet, "/api/v1/books/cached?order=asc"))

		require.Equal(t, http.StatusOK, rec.Code)
		repo.AssertExpectations(t)
	})

	t.Run("unauthenticated requests are rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newHandler(new(mockRepo)).ListCached(rec, httptest.NewRequest(http.MethodGet, "/api/v1/books/cached", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetCached(t *testing.T) {
	serve := func(repo *mockRepo, target string) *httptest.ResponseRecorder {
		mux := http.NewServeMux()
		mux.Handle("GET /api/v1/books/cached/{id}", http.HandlerFunc(newHandler(repo).GetCached))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodGet, target))
		return rec
	}

	t.Run("found", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByPartnerBookID", mock.Anything, "north", int64(7)).
			Return(Book{ID: 7, Title: "El Aleph"}, nil)

		rec := serve(repo, "/api/v1/books/cached/7")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "El Aleph")
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByPartnerBookID", mock.Anything, "north", int64(8)).
			Return(Book{}, ErrNotFound)

		rec := serve(repo, "/api/v1/books/cached/8")

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "NOT_FOUND")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := serve(new(mockRepo), "/api/v1/books/cached/abc")

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
