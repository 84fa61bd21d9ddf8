// Package partner holds the partner adapter contracts: the registry of
// mapper pairs, the canonical-to-wire request mappers and wire-to-canonical
// response mappers, and the partner records carrying per-partner content
// policy. Everything outside this package and its per-partner subpackages is
// unaware of which partner it is talking to.
package partner

import (
	"context"

	"notesapi/internal/note"
)

// Partner is an external data provider with its own wire schema and
// configurable content-length thresholds. Records are configured at
// onboarding and immutable during a request.
type Partner struct {
	ID                  string `json:"id"`
	Code                string `json:"code"`
	Name                string `json:"name"`
	ShortContentLength  int    `json:"short_content_length"`
	MediumContentLength int    `json:"medium_content_length"`
}

// Policy returns the partner's classification thresholds, falling back to
// the defaults for unset values.
func (p Partner) Policy() note.Policy {
	policy := note.Policy{
		ShortLimit:  p.ShortContentLength,
		MediumLimit: p.MediumContentLength,
	}
	if policy.ShortLimit <= 0 {
		policy.ShortLimit = note.DefaultShortLimit
	}
	if policy.MediumLimit <= 0 {
		policy.MediumLimit = note.DefaultMediumLimit
	}
	return policy
}

// Repository defines the contract for partner record storage.
type Repository interface {
	GetByCode(ctx context.Context, code string) (Partner, error)
	GetByUserID(ctx context.Context, userID string) (Partner, error)
	List(ctx context.Context) ([]Partner, error)
	Create(ctx context.Context, p *Partner) error
}
