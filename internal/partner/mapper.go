package partner

import (
	"notesapi/internal/book"
	"notesapi/internal/note"
)

// Params are the canonical query parameters callers hand to a request
// mapper. Author is required by every partner; Kind is an optional filter.
type Params struct {
	Author string
	Kind   string
}

// Request is a partner wire request payload. It exists only transiently
// inside a single mapper invocation and is owned by the mapper that
// produced it.
type Request map[string]any

// Response is a partner wire response payload, already parsed from wire
// bytes by the transport collaborator.
type Response map[string]any

// RequestMapper translates canonical query parameters into a
// partner-specific wire request. Implementations are pure functions: no
// business logic, no validation beyond required-field presence, no I/O.
type RequestMapper interface {
	BuildBookRequest(params Params) (Request, error)
	BuildNoteRequest(params Params) (Request, error)
}

// ResponseMapper translates a partner wire response into the canonical
// model. Missing optional nested paths yield zero values; a missing
// top-level collection key fails with *MalformedResponseError.
type ResponseMapper interface {
	MapBooks(resp Response) ([]book.Book, error)
	MapNotes(resp Response) ([]note.Note, error)
}

// Mappers is the bound pair registered for one partner.
type Mappers struct {
	Request  RequestMapper
	Response ResponseMapper
}
