// Package north binds the "north" partner's wire schema: lowercase Spanish
// field names, books under "libros", notes under "notas" with author detail
// nested beneath "datos_personales" and "datos_de_contacto".
package north

import (
	"notesapi/internal/book"
	"notesapi/internal/note"
	"notesapi/internal/partner"
)

const Code = "north"

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
	return partner.Request{"autor": params.Author}, nil
}

type ResponseMapper struct{}

func (ResponseMapper) MapBooks(resp partner.Response) ([]book.Book, error) {
	records, err := partner.Collection(resp, "libros")
	if err != nil {
		return nil, err
	}
	books := make([]book.Book, 0, len(records))
	for _, rec := range records {
		books = append(books, book.Book{
			ID:        rec.Int64("id"),
			Title:     rec.String("titulo"),
			Author:    rec.String("autor"),
			Genre:     rec.String("genero"),
			ImageURL:  rec.String("imagen_url"),
			Publisher: rec.String("editorial"),
			Year:      rec.Int("año"),
		})
	}
	return books, nil
}

func (ResponseMapper) MapNotes(resp partner.Response) ([]note.Note, error) {
	records, err := partner.Collection(resp, "notas")
	if err != nil {
		return nil, err
	}
	notes := make([]note.Note, 0, len(records))
	for _, rec := range records {
		notes = append(notes, note.Note{
			Title:     rec.String("titulo"),
			Kind:      note.Kind(rec.String("tipo")),
			CreatedAt: rec.Time("fecha_creacion"),
			Author:    mapAuthor(rec),
			Book:      mapBook(rec),
		})
	}
	return notes, nil
}

func mapAuthor(rec partner.Response) note.UserSummary {
	return note.UserSummary{
		Email:     rec.String("autor", "datos_de_contacto", "email"),
		FirstName: rec.String("autor", "datos_personales", "nombre"),
		LastName:  rec.String("autor", "datos_personales", "apellido"),
	}
}

func mapBook(rec partner.Response) *note.BookSummary {
	if rec.Dig("libro") == nil {
		return nil
	}
	return &note.BookSummary{
		Title:  rec.String("libro", "titulo"),
		Author: rec.String("libro", "autor"),
		Genre:  rec.String("libro", "genero"),
	}
}
