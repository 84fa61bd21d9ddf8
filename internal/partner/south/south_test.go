package south

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesapi/internal/note"
	"notesapi/internal/partner"
)

func TestRequestMapper(t *testing.T) {
	t.Run("author under the capitalized key", func(t *testing.T) {
		req, err := RequestMapper{}.BuildBookRequest(partner.Params{Author: "Borges"})
		require.NoError(t, err)
		assert.Equal(t, partner.Request{"Autor": "Borges"}, req)

		req, err = RequestMapper{}.BuildNoteRequest(partner.Params{Author: "Borges"})
		require.NoError(t, err)
		assert.Equal(t, "Borges", req["Autor"])
	})

	t.Run("missing author fails", func(t *testing.T) {
		_, err := RequestMapper{}.BuildNoteRequest(partner.Params{})
		var missing *partner.MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "author", missing.Field)
	})
}

func TestResponseMapperBooks(t *testing.T) {
	t.Run("maps the capitalized wire fields", func(t *testing.T) {
		books, err := ResponseMapper{}.MapBooks(partner.Response{
			"Libros": []any{
				map[string]any{
					"Id":        float64(3),
					"Titulo":    "Rayuela",
					"Autor":     "Julio Cortázar",
					"Genero":    "ficción",
					"UrlImagen": "https://example.com/rayuela.jpg",
					"Editorial": "Sudamericana",
					"Anio":      float64(1963),
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, int64(3), books[0].ID)
		assert.Equal(t, "Rayuela", books[0].Title)
		assert.Equal(t, "Julio Cortázar", books[0].Author)
		assert.Equal(t, "Sudamericana", books[0].Publisher)
		assert.Equal(t, 1963, books[0].Year)
	})

	t.Run("missing collection key is malformed", func(t *testing.T) {
		_, err := ResponseMapper{}.MapBooks(partner.Response{"libros": []any{}})
		var malformed *partner.MalformedResponseError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "Libros", malformed.Key)
	})
}

func TestResponseMapperNotes(t *testing.T) {
	t.Run("maps nested author and book", func(t *testing.T) {
		notes, err := ResponseMapper{}.MapNotes(partner.Response{
			"Notas": []any{
				map[string]any{
					"Titulo":        "Crítica",
					"Tipo":          "critique",
					"FechaCreacion": "2022-07-15",
					"Autor": map[string]any{
						"Persona":  map[string]any{"Nombre": "Luis", "Apellido": "Pérez"},
						"Contacto": map[string]any{"Email": "luis@example.com"},
					},
					"Libro": map[string]any{"Titulo": "Rayuela", "Autor": "Cortázar", "Genero": "ficción"},
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, note.KindCritique, notes[0].Kind)
		assert.Equal(t, "luis@example.com", notes[0].Author.Email)
		assert.Equal(t, "Luis", notes[0].Author.FirstName)
		require.NotNil(t, notes[0].Book)
		assert.Equal(t, "Rayuela", notes[0].Book.Title)
	})

	t.Run("sparse records degrade without error", func(t *testing.T) {
		notes, err := ResponseMapper{}.MapNotes(partner.Response{
			"Notas": []any{map[string]any{"Titulo": "Sin detalle"}},
		})
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Empty(t, notes[0].Author.Email)
		assert.Nil(t, notes[0].Book)
	})

	t.Run("missing collection key is malformed", func(t *testing.T) {
		_, err := ResponseMapper{}.MapNotes(partner.Response{})
		var malformed *partner.MalformedResponseError
		assert.ErrorAs(t, err, &malformed)
	})
}
