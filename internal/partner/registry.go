package partner

import (
	"fmt"
	"sort"
	"strings"
)

// Registry is the read-only table of mapper pairs, indexed by partner code.
// It is built once at startup and never mutated afterwards, so concurrent
// reads need no synchronization. It is the only component aware that more
// than one partner exists.
type Registry struct {
	byCode map[string]Mappers
}

// NewRegistry builds a registry from a fixed registration table. Codes are
// normalized to lower case; duplicates and incomplete pairs are wiring
// mistakes and fail construction.
func NewRegistry(table map[string]Mappers) (*Registry, error) {
	byCode := make(map[string]Mappers, len(table))
	for code, mappers := range table {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" {
			return nil, fmt.Errorf("partner code cannot be empty")
		}
		if mappers.Request == nil || mappers.Response == nil {
			return nil, fmt.Errorf("partner %q: incomplete mapper pair", code)
		}
		if _, ok := byCode[code]; ok {
			return nil, fmt.Errorf("duplicate partner %q", code)
		}
		byCode[code] = mappers
	}
	return &Registry{byCode: byCode}, nil
}

// Resolve returns the mapper pair bound to a partner code.
func (r *Registry) Resolve(code string) (Mappers, error) {
	mappers, ok := r.byCode[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return Mappers{}, &UnknownPartnerError{Code: code}
	}
	return mappers, nil
}

// Codes lists the registered partner codes in stable order.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.byCode))
	for code := range r.byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
