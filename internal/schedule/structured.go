package schedule

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// structuredRe matches the fixed "YYYYMMDD HH[MM]-HH[MM] title" grammar,
// with an optional leading mention token. The time groups accept any short
// digit run so that near-misses like "9-10" are reported as format errors
// instead of being handed to a probabilistic strategy.
var structuredRe = regexp.MustCompile(`^(?:<@\w+>\s*)?(\d{8}) (\d{1,4})-(\d{1,4}) (.+)$`)

// Structured recognizes the fixed numeric grammar. It is the fast,
// zero-ambiguity path and runs before any inference-based strategy.
type Structured struct {
	norm *Normalizer
}

func NewStructured(norm *Normalizer) *Structured {
	return &Structured{norm: norm}
}

func (s *Structured) Name() string { return "structured" }

// Parse returns ErrNoMatch when the text is not in the structured grammar,
// so the coordinator can fall through. Text that matches the grammar but
// carries bad tokens (invalid date, out-of-range time, end not after start)
// is a FormatError: the user plainly meant the structured form, so guessing
// with a looser strategy would be worse than reporting the mistake.
func (s *Structured) Parse(_ context.Context, text string, _ time.Time) (*ParsedSchedule, error) {
	m := structuredRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil, ErrNoMatch
	}

	date, err := s.norm.ParseDate(m[1])
	if err != nil {
		return nil, err
	}
	startH, startM, err := s.norm.ParseTimeOfDay(m[2])
	if err != nil {
		return nil, err
	}
	endH, endM, err := s.norm.ParseTimeOfDay(m[3])
	if err != nil {
		return nil, err
	}

	start := s.norm.At(date, startH, startM)
	end := s.norm.At(date, endH, endM)
	if !end.After(start) {
		return nil, &FormatError{Token: m[2] + "-" + m[3], Reason: "end time is not after start time"}
	}

	return &ParsedSchedule{
		Start: start,
		End:   end,
		Title: strings.TrimSpace(m[4]),
	}, nil
}
