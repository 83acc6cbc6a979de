package ports

import "github.com/aretw0/marquee/pkg/domain"

// NarrativeLookup resolves item keys to narrative metadata. A missing key
// returns an error wrapping domain.ErrMissingNarrative.
type NarrativeLookup interface {
	Lookup(key string) (domain.Narrative, error)
}
