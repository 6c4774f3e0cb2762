package schedule

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ParsedSchedule is the canonical output of a parse strategy: an absolute
// start/end pair in the bot's location plus a title for the calendar entry.
type ParsedSchedule struct {
	Start time.Time
	End   time.Time
	Title string
}

// ErrNoMatch reports that a strategy does not apply to the input text.
// The coordinator falls through to the next strategy on this error; any
// other strategy error is terminal.
var ErrNoMatch = errors.New("input does not match")

// FormatError reports a malformed date or time token.
type FormatError struct {
	Token  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid token %q: %s", e.Token, e.Reason)
}

// Strategy converts free message text into a ParsedSchedule. The reference
// instant is the time the message was received, used for relative phrases.
type Strategy interface {
	Name() string
	Parse(ctx context.Context, text string, now time.Time) (*ParsedSchedule, error)
}

var mentionRe = regexp.MustCompile(`^\s*<@\w+>\s*`)

// StripMention removes a leading Slack mention token ("<@U123ABC> ...").
func StripMention(text string) string {
	return mentionRe.ReplaceAllString(text, "")
}

// Normalizer converts raw numeric date/time tokens into absolute timestamps
// in a fixed location.
type Normalizer struct {
	loc *time.Location
}

func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{loc: loc}
}

func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// ParseDate parses an 8-digit YYYYMMDD token into the date at midnight.
func (n *Normalizer) ParseDate(token string) (time.Time, error) {
	if len(token) != 8 || !allDigits(token) {
		return time.Time{}, &FormatError{Token: token, Reason: "date must be 8 digits (YYYYMMDD)"}
	}
	d, err := time.ParseInLocation("20060102", token, n.loc)
	if err != nil {
		return time.Time{}, &FormatError{Token: token, Reason: "not a valid calendar date"}
	}
	return d, nil
}

// ParseTimeOfDay parses a 2-digit HH or 4-digit HHMM token.
func (n *Normalizer) ParseTimeOfDay(token string) (hour, minute int, err error) {
	if !allDigits(token) {
		return 0, 0, &FormatError{Token: token, Reason: "time must be numeric"}
	}
	switch len(token) {
	case 2:
		hour, _ = strconv.Atoi(token)
	case 4:
		hour, _ = strconv.Atoi(token[:2])
		minute, _ = strconv.Atoi(token[2:])
	default:
		return 0, 0, &FormatError{Token: token, Reason: "time must be HH or HHMM"}
	}
	if hour > 23 {
		return 0, 0, &FormatError{Token: token, Reason: "hour out of range"}
	}
	if minute > 59 {
		return 0, 0, &FormatError{Token: token, Reason: "minute out of range"}
	}
	return hour, minute, nil
}

// At combines a date with a time of day into an absolute zoned timestamp.
func (n *Normalizer) At(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, n.loc)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
