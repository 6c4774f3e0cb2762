package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// PlaceholderTitle is used when no title can be extracted from the text.
const PlaceholderTitle = "予定"

// Recognizer finds a single date-time expression in free text relative to a
// reference instant. ok is false when the text contains no recognizable
// expression.
type Recognizer interface {
	Recognize(text string, ref time.Time) (t time.Time, ok bool, err error)
}

// WhenRecognizer backs Recognizer with the olebedev/when rule engine.
type WhenRecognizer struct {
	parser *when.Parser
	loc    *time.Location
}

func NewWhenRecognizer(loc *time.Location) *WhenRecognizer {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return &WhenRecognizer{parser: p, loc: loc}
}

func (r *WhenRecognizer) Recognize(text string, ref time.Time) (time.Time, bool, error) {
	result, err := r.parser.Parse(text, ref.In(r.loc))
	if err != nil {
		return time.Time{}, false, err
	}
	if result == nil {
		return time.Time{}, false, nil
	}
	return result.Time.In(r.loc), true, nil
}

// Natural is the best-effort free-text strategy: one recognized timestamp,
// a fixed one-hour duration, and a heuristically split title. Low precision,
// used only after the structured grammar declines the input.
type Natural struct {
	rec Recognizer
}

func NewNatural(rec Recognizer) *Natural {
	return &Natural{rec: rec}
}

func (n *Natural) Name() string { return "natural" }

func (n *Natural) Parse(_ context.Context, text string, now time.Time) (*ParsedSchedule, error) {
	text = StripMention(text)

	start, ok, err := n.rec.Recognize(text, now)
	if err != nil {
		// Recognizer trouble is indistinguishable from "found nothing"
		// at this precision level; let the next strategy try.
		return nil, fmt.Errorf("%w: recognizer: %v", ErrNoMatch, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: no date-time expression found", ErrNoMatch)
	}

	// Prefer future dates: a bare clock time that already passed today
	// means the same time tomorrow.
	if start.Before(now) {
		start = start.AddDate(0, 0, 1)
	}

	return &ParsedSchedule{
		Start: start,
		End:   start.Add(time.Hour),
		Title: splitTitle(text),
	}, nil
}

// splitTitle takes the text after the last "から" / " from " separator as the
// title, falling back to a generic placeholder.
func splitTitle(text string) string {
	for _, sep := range []string{"から", " from "} {
		if idx := strings.LastIndex(text, sep); idx >= 0 {
			if title := strings.TrimSpace(text[idx+len(sep):]); title != "" {
				return title
			}
		}
	}
	return PlaceholderTitle
}
