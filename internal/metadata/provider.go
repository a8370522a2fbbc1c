package metadata

import (
	"context"
	"strings"

	"cinetree/internal/films"
)

// Metadata holds the provider-defined fields joined into the films index.
// Values are free text as the provider returned them, trimmed only; genre
// and cast keep the provider's comma-separated ordering.
type Metadata struct {
	Director string
	Genre    string
	Cast     string
}

// Trim returns a copy with surrounding whitespace removed from every field.
func (m Metadata) Trim() Metadata {
	return Metadata{
		Director: strings.TrimSpace(m.Director),
		Genre:    strings.TrimSpace(m.Genre),
		Cast:     strings.TrimSpace(m.Cast),
	}
}

// Outcome is the result classification of a single provider call.
type Outcome int

const (
	// OutcomeNoMatch means the provider found no candidate.
	OutcomeNoMatch Outcome = iota
	// OutcomeAmbiguous means the provider found more than one candidate.
	// Ambiguity is never resolved automatically; it falls through.
	OutcomeAmbiguous
	// OutcomeExact means the provider found exactly one match.
	OutcomeExact
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExact:
		return "exact"
	case OutcomeAmbiguous:
		return "ambiguous"
	case OutcomeNoMatch:
		return "no match"
	}
	return "unknown"
}

// Provider is a single metadata-lookup capability. Lookup errors are
// reserved for connectivity failures; "nothing found" is an Outcome, not
// an error.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, id films.Identity) (Metadata, Outcome, error)
}
