package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ParseError reports that no strategy produced a schedule. Strategy names
// the one that failed terminally, or is empty when every strategy declined.
type ParseError struct {
	Strategy string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Strategy != "" {
		return fmt.Sprintf("parse failed (%s): %v", e.Strategy, e.Err)
	}
	return fmt.Sprintf("no strategy could parse the input: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Coordinator tries strategies in a fixed priority order and returns the
// first success. Deterministic parses are trusted over probabilistic ones,
// so the order matters; only one strategy's result is ever used.
type Coordinator struct {
	strategies []Strategy
}

func NewCoordinator(strategies ...Strategy) *Coordinator {
	return &Coordinator{strategies: strategies}
}

// Parse folds over the ordered strategies: a nil error short-circuits,
// ErrNoMatch continues to the next strategy, and any other error is
// terminal for the whole chain.
func (c *Coordinator) Parse(ctx context.Context, text string, now time.Time) (*ParsedSchedule, error) {
	lastErr := error(ErrNoMatch)
	for _, s := range c.strategies {
		sched, err := s.Parse(ctx, text, now)
		if err == nil {
			return sched, nil
		}
		if errors.Is(err, ErrNoMatch) {
			lastErr = err
			continue
		}
		return nil, &ParseError{Strategy: s.Name(), Err: err}
	}
	return nil, &ParseError{Err: lastErr}
}
