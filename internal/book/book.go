package book

import "errors"

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book is the canonical, partner-agnostic book shape. Partner wire fields
// never leak past the response mapper that produced it.
type Book struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Genre     string `json:"genre,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Year      int    `json:"year,omitempty"`
}

// Query defines filters and pagination for listing cached books.
type Query struct {
	Author string
	Desc   bool
	Limit  int
	Offset int
}
