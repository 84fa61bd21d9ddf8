package note

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a note is not found.
var ErrNotFound = errors.New("note not found")

// ErrInvalidKind is returned when a note kind is not review or critique.
var ErrInvalidKind = errors.New("invalid note kind")

// Kind enumerates the supported note kinds.
type Kind string

const (
	KindReview   Kind = "review"
	KindCritique Kind = "critique"
)

// ParseKind validates a raw kind value.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindReview, KindCritique:
		return Kind(s), nil
	}
	return "", ErrInvalidKind
}

// UserSummary is the author summary embedded in a canonical note.
type UserSummary struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// BookSummary is the optional book summary embedded in a canonical note.
type BookSummary struct {
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Genre  string `json:"genre,omitempty"`
}

// Note is the canonical, partner-agnostic note shape. WordCount and
// ContentLength are derived from Content and the owning partner's policy.
type Note struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title"`
	Kind          Kind          `json:"type"`
	Content       string        `json:"content,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	Author        UserSummary   `json:"user"`
	Book          *BookSummary  `json:"book,omitempty"`
	WordCount     int           `json:"word_count"`
	ContentLength ContentLength `json:"content_length,omitempty"`
}

// ContentTooLongError is returned when a review-kind note's content does not
// classify as short under the owning partner's policy. Limit carries the
// partner's short threshold so callers can build an actionable message.
type ContentTooLongError struct {
	Limit int
}

func (e *ContentTooLongError) Error() string {
	return fmt.Sprintf("review content exceeds the %d word limit", e.Limit)
}

// Query defines filters and pagination for listing a user's notes.
type Query struct {
	Kind     Kind
	Order    string // asc or desc, desc by default
	Page     int
	PageSize int
}
