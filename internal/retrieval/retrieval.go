// Package retrieval orchestrates a partner retrieval: resolve the partner's
// mappers, build the wire request, invoke the transport collaborator and
// normalize the response. It performs no mapping logic of its own and
// propagates the first failure.
package retrieval

import (
	"context"
	"fmt"

	"notesapi/internal/jobs"
	"notesapi/internal/partner"
)

// Worker kinds submitted to the job collaborator for asynchronous execution.
const (
	WorkerRetrieveBooks = "retrieve_books"
	WorkerRetrieveNotes = "retrieve_notes"
)

// Transport is the external collaborator that carries a partner wire request
// over the wire. Retry and backoff policy belong to the implementation, not
// to this layer.
type Transport interface {
	Invoke(ctx context.Context, partnerCode, resource string, req partner.Request) (partner.Response, error)
}

// JobSubmitter is the external async collaborator: it accepts a (worker,
// params) pair and returns a handle usable to poll for the result later.
type JobSubmitter interface {
	Submit(ctx context.Context, worker string, params map[string]any) (jobs.Handle, error)
}

// PartnerUnavailableError is surfaced when the transport collaborator
// reports a failure. This layer performs no retries of its own.
type PartnerUnavailableError struct {
	Partner string
	Err     error
}

func (e *PartnerUnavailableError) Error() string {
	return fmt.Sprintf("partner %q unavailable: %v", e.Partner, e.Err)
}

func (e *PartnerUnavailableError) Unwrap() error { return e.Err }
