package schedule

import (
	"context"
	"fmt"
	"time"
)

// Extraction is the strict JSON contract a language model must return:
// a local date, HH:MM start and end clock times, and a title. The prompt
// instructs the model to fill defaults itself (date = reference date,
// end = start + 1 hour), so every field is required here.
type Extraction struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
	Title string `json:"title"`
}

// Extractor asks a language model to pull schedule fields out of free text.
type Extractor interface {
	ExtractSchedule(ctx context.Context, text string, now time.Time) (*Extraction, error)
}

// ExtractionError reports a model response that is missing or malformed.
// Malformed model output propagates as a parse failure rather than a
// silently wrong booking.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm extraction: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("llm extraction: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// LLM is the most flexible and highest-latency strategy, used as the last
// resort in the chain.
type LLM struct {
	ex  Extractor
	loc *time.Location
}

func NewLLM(ex Extractor, loc *time.Location) *LLM {
	if loc == nil {
		loc = time.Local
	}
	return &LLM{ex: ex, loc: loc}
}

func (l *LLM) Name() string { return "llm" }

func (l *LLM) Parse(ctx context.Context, text string, now time.Time) (*ParsedSchedule, error) {
	ext, err := l.ex.ExtractSchedule(ctx, StripMention(text), now)
	if err != nil {
		return nil, &ExtractionError{Reason: "model call failed", Err: err}
	}

	if ext.Date == "" || ext.Start == "" || ext.End == "" || ext.Title == "" {
		return nil, &ExtractionError{Reason: "response is missing required fields"}
	}

	date, err := time.ParseInLocation("2006-01-02", ext.Date, l.loc)
	if err != nil {
		return nil, &ExtractionError{Reason: fmt.Sprintf("bad date %q", ext.Date), Err: err}
	}
	start, err := l.atClock(date, ext.Start)
	if err != nil {
		return nil, &ExtractionError{Reason: fmt.Sprintf("bad start time %q", ext.Start), Err: err}
	}
	end, err := l.atClock(date, ext.End)
	if err != nil {
		return nil, &ExtractionError{Reason: fmt.Sprintf("bad end time %q", ext.End), Err: err}
	}

	return &ParsedSchedule{Start: start, End: end, Title: ext.Title}, nil
}

func (l *LLM) atClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, l.loc), nil
}
