package lexicon

import (
	"context"
	"strings"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
	"github.com/heartmarshall/lexarch-backend/internal/freqindex"
)

// Mode selects the direction of an ambiguity query.
type Mode string

const (
	// ModeSpelling maps a pronunciation unit to the ways it is spelled.
	ModeSpelling Mode = "spelling"
	// ModeReading maps a spelling unit to the ways it is pronounced.
	ModeReading Mode = "reading"
)

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	return m == ModeSpelling || m == ModeReading
}

// Ambiguity lists the counterparts of unit with their share of its
// frequency mass, most frequent first. An unknown unit yields an empty list.
func (s *Service) Ambiguity(_ context.Context, unit string, mode Mode) ([]freqindex.Share, error) {
	if !mode.IsValid() {
		return nil, domain.NewValidationError("mode", "must be spelling or reading")
	}

	u := strings.Join(strings.Fields(strings.ToUpper(unit)), " ")
	if u == "" {
		return nil, domain.NewValidationError("unit", "required")
	}

	var out []freqindex.Share
	if mode == ModeSpelling {
		out = s.snap.Index().Spellings(u)
	} else {
		out = s.snap.Index().Pronunciations(u)
	}
	return out, nil
}
