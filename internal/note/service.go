package note

import (
	"context"
)

// Repository defines the contract for note storage. Notes are always scoped
// to their owning user.
type Repository interface {
	Create(ctx context.Context, userID string, n *Note) error
	GetByID(ctx context.Context, userID, id string) (Note, error)
	List(ctx context.Context, userID string, q Query) ([]Note, int, error)
}

// PolicyResolver resolves the content-length policy of a user's owning
// partner. Implemented by the partner repository.
type PolicyResolver interface {
	PolicyForUser(ctx context.Context, userID string) (Policy, error)
}

// Service provides note business logic: creation-time validation against the
// owning partner's policy and derived-attribute decoration on reads.
type Service struct {
	repo     Repository
	policies PolicyResolver
}

func NewService(repo Repository, policies PolicyResolver) *Service {
	return &Service{repo: repo, policies: policies}
}

// Create validates the note against the owner's partner policy and stores it.
// Review-kind notes whose content does not classify as short fail with
// *ContentTooLongError; the invariant is enforced here only, never
// retroactively.
func (s *Service) Create(ctx context.Context, userID string, n *Note) (Note, error) {
	if _, err := ParseKind(string(n.Kind)); err != nil {
		return Note{}, err
	}

	policy := s.resolvePolicy(ctx, userID)
	if err := CheckLength(n.Kind, n.Content, policy); err != nil {
		return Note{}, err
	}

	if err := s.repo.Create(ctx, userID, n); err != nil {
		return Note{}, err
	}
	Decorate(n, policy)
	return *n, nil
}

// Get returns one of the user's notes with derived attributes filled in.
func (s *Service) Get(ctx context.Context, userID, id string) (Note, error) {
	n, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return Note{}, err
	}
	Decorate(&n, s.resolvePolicy(ctx, userID))
	return n, nil
}

// List returns the user's notes matching the query, with derived attributes
// filled in, plus the total count for pagination.
func (s *Service) List(ctx context.Context, userID string, q Query) ([]Note, int, error) {
	notes, total, err := s.repo.List(ctx, userID, q)
	if err != nil {
		return nil, 0, err
	}
	policy := s.resolvePolicy(ctx, userID)
	for i := range notes {
		Decorate(&notes[i], policy)
	}
	return notes, total, nil
}

// resolvePolicy falls back to the default thresholds when the owner's partner
// record cannot be resolved; classification must stay defined for degraded
// partner records.
func (s *Service) resolvePolicy(ctx context.Context, userID string) Policy {
	policy, err := s.policies.PolicyForUser(ctx, userID)
	if err != nil {
		return DefaultPolicy()
	}
	return policy
}
