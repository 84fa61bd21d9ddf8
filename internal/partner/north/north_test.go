package north

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesapi/internal/note"
	"notesapi/internal/partner"
)

func TestRequestMapper(t *testing.T) {
	t.Run("author under the partner's own key", func(t *testing.T) {
		req, err := RequestMapper{}.BuildBookRequest(partner.Params{Author: "Borges"})
		require.NoError(t, err)
		assert.Equal(t, partner.Request{"autor": "Borges"}, req)

		req, err = RequestMapper{}.BuildNoteRequest(partner.Params{Author: "Borges"})
		require.NoError(t, err)
		assert.Equal(t, "Borges", req["autor"])
	})

	t.Run("missing author fails, never silently omitted", func(t *testing.T) {
		_, err := RequestMapper{}.BuildBookRequest(partner.Params{})
		var missing *partner.MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "author", missing.Field)
	})
}

func TestResponseMapperBooks(t *testing.T) {
	t.Run("maps every wire field", func(t *testing.T) {
		books, err := ResponseMapper{}.MapBooks(partner.Response{
			"libros": []any{
				map[string]any{
					"id":         float64(7),
					"titulo":     "Ficciones",
					"autor":      "Jorge Luis Borges",
					"genero":     "ficción",
					"imagen_url": "https://example.com/ficciones.jpg",
					"editorial":  "Sur",
					"año":        float64(1944),
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, int64(7), books[0].ID)
		assert.Equal(t, "Ficciones", books[0].Title)
		assert.Equal(t, "Jorge Luis Borges", books[0].Author)
		assert.Equal(t, "ficción", books[0].Genre)
		assert.Equal(t, "https://example.com/ficciones.jpg", books[0].ImageURL)
		assert.Equal(t, "Sur", books[0].Publisher)
		assert.Equal(t, 1944, books[0].Year)
	})

	t.Run("records missing optional fields map to zero values", func(t *testing.T) {
		books, err := ResponseMapper{}.MapBooks(partner.Response{
			"libros": []any{map[string]any{"titulo": "Sin datos"}},
		})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Sin datos", books[0].Title)
		assert.Empty(t, books[0].Author)
		assert.Zero(t, books[0].Year)
	})

	t.Run("missing collection key is malformed", func(t *testing.T) {
		_, err := ResponseMapper{}.MapBooks(partner.Response{"books": []any{}})
		var malformed *partner.MalformedResponseError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "libros", malformed.Key)
	})
}

func TestResponseMapperNotes(t *testing.T) {
	t.Run("maps nested author and book", func(t *testing.T) {
		notes, err := ResponseMapper{}.MapNotes(partner.Response{
			"notas": []any{
				map[string]any{
					"titulo":         "Una reseña",
					"tipo":           "review",
					"fecha_creacion": "2021-03-01T12:30:00Z",
					"autor": map[string]any{
						"datos_personales": map[string]any{
							"nombre":   "Ana",
							"apellido": "García",
						},
						"datos_de_contacto": map[string]any{
							"email": "ana@example.com",
						},
					},
					"libro": map[string]any{
						"titulo": "Ficciones",
						"autor":  "Borges",
						"genero": "ficción",
					},
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, notes, 1)

		n := notes[0]
		assert.Equal(t, "Una reseña", n.Title)
		assert.Equal(t, note.KindReview, n.Kind)
		assert.Equal(t, time.Date(2021, 3, 1, 12, 30, 0, 0, time.UTC), n.CreatedAt)
		assert.Equal(t, "ana@example.com", n.Author.Email)
		assert.Equal(t, "Ana", n.Author.FirstName)
		assert.Equal(t, "García", n.Author.LastName)
		require.NotNil(t, n.Book)
		assert.Equal(t, "Ficciones", n.Book.Title)
	})

	t.Run("all optional nested paths absent yields empty fields and no error", func(t *testing.T) {
		notes, err := ResponseMapper{}.MapNotes(partner.Response{
			"notas": []any{map[string]any{"titulo": "Suelta"}},
		})
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Empty(t, notes[0].Author.Email)
		assert.Empty(t, notes[0].Author.FirstName)
		assert.Nil(t, notes[0].Book)
		assert.True(t, notes[0].CreatedAt.IsZero())
	})

	t.Run("missing collection key is malformed", func(t *testing.T) {
		_, err := ResponseMapper{}.MapNotes(partner.Response{})
		var malformed *partner.MalformedResponseError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "notas", malformed.Key)
	})
}
