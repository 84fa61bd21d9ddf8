package retrieval

import (
	"context"

	"notesapi/internal/jobs"
	"notesapi/internal/partner"
)

// Workers exposes the facade's retrieval sequences as job worker functions.
// The job collaborator executes these out of the request path; the stored
// result is the same normalized payload the synchronous path returns.
func Workers(svc *Service) map[string]jobs.WorkerFunc {
	return map[string]jobs.WorkerFunc{
		WorkerRetrieveBooks: func(ctx context.Context, raw map[string]any) (any, error) {
			code, params := decodeParams(raw)
			books, err := svc.RetrieveBooks(ctx, code, params)
			if err != nil {
				return nil, err
			}
			return map[string]any{"books": books}, nil
		},
		WorkerRetrieveNotes: func(ctx context.Context, raw map[string]any) (any, error) {
			code, params := decodeParams(raw)
			notes, err := svc.RetrieveNotes(ctx, code, params)
			if err != nil {
				return nil, err
			}
			return map[string]any{"notes": notes}, nil
		},
	}
}

func decodeParams(raw map[string]any) (string, partner.Params) {
	str := func(key string) string {
		s, _ := raw[key].(string)
		return s
	}
	return str("partner"), partner.Params{Author: str("author"), Kind: str("type")}
}
