package retrieval

import (
	"context"
	"log"

	"notesapi/internal/book"
	"notesapi/internal/jobs"
	"notesapi/internal/note"
	"notesapi/internal/partner"
)

// BookCache stores normalized partner books for later local listing.
// Caching is best effort and never fails a retrieval.
type BookCache interface {
	UpsertRetrieved(ctx context.Context, partnerCode string, b *book.Book) error
}

// PartnerSource resolves partner records, used only to look up the content
// policy applied to normalized notes.
type PartnerSource interface {
	GetByCode(ctx context.Context, code string) (partner.Partner, error)
}

// Service is the retrieval facade. It is stateless and safe for concurrent
// use; the registry it reads is immutable after startup.
type Service struct {
	registry  *partner.Registry
	transport Transport
	submitter JobSubmitter
	partners  PartnerSource
	cache     BookCache
}

func NewService(registry *partner.Registry, transport Transport, submitter JobSubmitter, partners PartnerSource, cache BookCache) *Service {
	return &Service{
		registry:  registry,
		transport: transport,
		submitter: submitter,
		partners:  partners,
		cache:     cache,
	}
}

// RetrieveBooks runs the synchronous sequence for books: resolve partner,
// build request, invoke transport, normalize.
func (s *Service) RetrieveBooks(ctx context.Context, partnerCode string, params partner.Params) ([]book.Book, error) {
	mappers, err := s.registry.Resolve(partnerCode)
	if err != nil {
		return nil, err
	}

	req, err := mappers.Request.BuildBookRequest(params)
	if err != nil {
		return nil, err
	}

	resp, err := s.transport.Invoke(ctx, partnerCode, "books", req)
	if err != nil {
		return nil, &PartnerUnavailableError{Partner: partnerCode, Err: err}
	}

	books, err := mappers.Response.MapBooks(resp)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		for i := range books {
			// No stable cache key without a partner book id; distinct
			// id-less records would overwrite each other under id 0.
			if books[i].ID == 0 {
				continue
			}
			if err := s.cache.UpsertRetrieved(ctx, partnerCode, &books[i]); err != nil {
				log.Printf("retrieval: cache book %d from %s: %v", books[i].ID, partnerCode, err)
			}
		}
	}
	return books, nil
}

// RetrieveNotes runs the synchronous sequence for notes and classifies each
// normalized note's content length under the partner's policy.
func (s *Service) RetrieveNotes(ctx context.Context, partnerCode string, params partner.Params) ([]note.Note, error) {
	mappers, err := s.registry.Resolve(partnerCode)
	if err != nil {
		return nil, err
	}

	req, err := mappers.Request.BuildNoteRequest(params)
	if err != nil {
		return nil, err
	}

	resp, err := s.transport.Invoke(ctx, partnerCode, "notes", req)
	if err != nil {
		return nil, &PartnerUnavailableError{Partner: partnerCode, Err: err}
	}

	notes, err := mappers.Response.MapNotes(resp)
	if err != nil {
		return nil, err
	}

	policy := s.policyFor(ctx, partnerCode)
	for i := range notes {
		note.Decorate(&notes[i], policy)
	}
	return notes, nil
}

// SubmitBooks hands the (partner, params) pair to the job collaborator and
// returns its handle without waiting on the retrieval itself.
func (s *Service) SubmitBooks(ctx context.Context, partnerCode string, params partner.Params) (jobs.Handle, error) {
	return s.submit(ctx, WorkerRetrieveBooks, partnerCode, params)
}

// SubmitNotes is SubmitBooks for the notes retrieval worker.
func (s *Service) SubmitNotes(ctx context.Context, partnerCode string, params partner.Params) (jobs.Handle, error) {
	return s.submit(ctx, WorkerRetrieveNotes, partnerCode, params)
}

func (s *Service) submit(ctx context.Context, worker, partnerCode string, params partner.Params) (jobs.Handle, error) {
	// Resolve the partner up front so an unknown code fails at submission,
	// not later on a worker.
	if _, err := s.registry.Resolve(partnerCode); err != nil {
		return jobs.Handle{}, err
	}
	return s.submitter.Submit(ctx, worker, map[string]any{
		"partner": partnerCode,
		"author":  params.Author,
		"type":    params.Kind,
	})
}

func (s *Service) policyFor(ctx context.Context, partnerCode string) note.Policy {
	if s.partners == nil {
		return note.DefaultPolicy()
	}
	p, err := s.partners.GetByCode(ctx, partnerCode)
	if err != nil {
		return note.DefaultPolicy()
	}
	return p.Policy()
}
