package note

// ContentLength classifies a note's word count relative to the owning
// partner's thresholds.
type ContentLength string

const (
	LengthShort  ContentLength = "short"
	LengthMedium ContentLength = "medium"
	LengthLong   ContentLength = "long"
)

// Default thresholds used when a partner has no configured policy.
const (
	DefaultShortLimit  = 50
	DefaultMediumLimit = 100
)

// Policy holds a partner's two ordered word-count thresholds,
// ShortLimit < MediumLimit.
type Policy struct {
	ShortLimit  int
	MediumLimit int
}

// DefaultPolicy returns the fallback thresholds for partners with no
// configured policy.
func DefaultPolicy() Policy {
	return Policy{ShortLimit: DefaultShortLimit, MediumLimit: DefaultMediumLimit}
}

// normalized fills in defaults for unset thresholds so classification is
// defined even for degraded partner records.
func (p Policy) normalized() Policy {
	if p.ShortLimit <= 0 {
		p.ShortLimit = DefaultShortLimit
	}
	if p.MediumLimit <= 0 {
		p.MediumLimit = DefaultMediumLimit
	}
	return p
}

// Classify buckets a word count into short, medium or long. Both boundaries
// are inclusive to the lower bucket: a count exactly at ShortLimit is short,
// exactly at MediumLimit is medium.
func Classify(wordCount int, p Policy) ContentLength {
	p = p.normalized()
	switch {
	case wordCount <= p.ShortLimit:
		return LengthShort
	case wordCount <= p.MediumLimit:
		return LengthMedium
	default:
		return LengthLong
	}
}

// CheckLength enforces the creation-time invariant: review content must
// classify as short under the owning partner's policy. Critiques have no
// ceiling.
func CheckLength(kind Kind, content string, p Policy) error {
	if kind != KindReview {
		return nil
	}
	p = p.normalized()
	if Classify(WordCount(content), p) != LengthShort {
		return &ContentTooLongError{Limit: p.ShortLimit}
	}
	return nil
}

// Decorate fills the derived attributes on a note using the given policy.
func Decorate(n *Note, p Policy) {
	n.WordCount = WordCount(n.Content)
	n.ContentLength = Classify(n.WordCount, p)
}
