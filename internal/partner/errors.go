package partner

import "fmt"

// UnknownPartnerError is returned by the registry for an unregistered
// partner code.
type UnknownPartnerError struct {
	Code string
}

func (e *UnknownPartnerError) Error() string {
	return fmt.Sprintf("unknown partner %q", e.Code)
}

// MissingFieldError is returned by a request mapper when a required
// canonical field is absent. Mappers never silently omit required fields:
// an empty author in a partner request would be ambiguous between "all
// authors" and "unspecified".
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// MalformedResponseError is returned by a response mapper when the expected
// top-level collection key is absent from a partner payload. Missing
// optional nested fields degrade to zero values instead; only a shape the
// mapper cannot interpret at all is fatal.
type MalformedResponseError struct {
	Key string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("partner response missing collection %q", e.Key)
}
