// Package south binds the "south" partner's wire schema: capitalized field
// names, books under "Libros", notes under "Notas" with author detail
// nested beneath "Persona" and "Contacto".
package south

import (
	"notesapi/internal/book"
	"notesapi/internal/note"
	"notesapi/internal/partner"
)

const Code = "south"

// Mappers returns the bound mapper pair for registration.
func Mappers() partner.Mappers {
	return partner.Mappers{Request: RequestMapper{}, Response: ResponseMapper{}}
}

type RequestMapper struct{}

func (RequestMapper) BuildBookRequest(params partner.Params) (partner.Request, error) {
	return authorRequest(params)
}

func (RequestMapper) BuildNoteRequest(params partner.Params) (partner.Request, error) {
	return authorRequest(params)
}

func authorRequest(params partner.Params) (partner.Request, error) {
	if params.Author == "" {
		return nil, &partner.MissingFieldError{Field: "author"}
	}
	return partner.Request{"Autor": params.Author}, nil
}

type ResponseMapper struct{}

func (ResponseMapper) MapBooks(resp partner.Response) ([]book.Book, error) {
	records, err := partner.Collection(resp, "Libros")
	if err != nil {
		return nil, err
	}
	books := make([]book.Book, 0, len(records))
	for _, rec := range records {
		books = append(books, book.Book{
			ID:        rec.Int64("Id"),
			Title:     rec.String("Titulo"),
			Author:    rec.String("Autor"),
			Genre:     rec.String("Genero"),
			ImageURL:  rec.String("UrlImagen"),
			Publisher: rec.String("Editorial"),
			Year:      rec.Int("Anio"),
		})
	}
	return books, nil
}

func (ResponseMapper) MapNotes(resp partner.Response) ([]note.Note, error) {
	records, err := partner.Collection(resp, "Notas")
	if err != nil {
		return nil, err
	}
	notes := make([]note.Note, 0, len(records))
	for _, rec := range records {
		notes = append(notes, note.Note{
			Title:     rec.String("Titulo"),
			Kind:      note.Kind(rec.String("Tipo")),
			CreatedAt: rec.Time("FechaCreacion"),
			Author:    mapAuthor(rec),
			Book:      mapBook(rec),
		})
	}
	return notes, nil
}

func mapAuthor(rec partner.Response) note.UserSummary {
	return note.UserSummary{
		Email:     rec.String("Autor", "Contacto", "Email"),
		FirstName: rec.String("Autor", "Persona", "Nombre"),
		LastName:  rec.String("Autor", "Persona", "Apellido"),
	}
}

func mapBook(rec partner.Response) *note.BookSummary {
	if rec.Dig("Libro") == nil {
		return nil
	}
	return &note.BookSummary{
		Title:  rec.String("Libro", "Titulo"),
		Author: rec.String("Libro", "Autor"),
		Genre:  rec.String("Libro", "Genero"),
	}
}
