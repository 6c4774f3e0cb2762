package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/mkoda/yoteibot/internal/gcal"
	"github.com/mkoda/yoteibot/internal/schedule"
)

// conflictPad widens the conflict-check window by one minute on each side so
// events starting or ending exactly on the boundary are still found, even
// when the backend treats the window edges as exclusive.
const conflictPad = time.Minute

// Calendar is the slice of the calendar backend the booking service needs.
type Calendar interface {
	ListOverlapping(ctx context.Context, calendarID string, timeMin, timeMax time.Time, query string) ([]gcal.EventDetails, error)
	CreateEvent(ctx context.Context, calendarID string, input gcal.EventInput) (string, error)
}

// Status tags a booking outcome.
type Status int

const (
	StatusCreated Status = iota
	StatusConflict
)

// Outcome is the result of a successful Book call: either a created entry
// or a detected conflict, with the schedule that produced it.
type Outcome struct {
	Status Status
	Start  time.Time
	End    time.Time
	Title  string
}

// Service performs conflict-checked, single-attempt event creation.
type Service struct {
	cal        Calendar
	calendarID string
	timeZone   string
}

func NewService(cal Calendar, calendarID, timeZone string) *Service {
	return &Service{cal: cal, calendarID: calendarID, timeZone: timeZone}
}

// Book checks the padded window for an existing entry matching the title and
// inserts the event only when none is found. An entry with the same title in
// an overlapping window counts as a conflict; this is deliberately a search
// heuristic, not true interval overlap against all events. Backend errors
// surface to the caller after a single attempt, no retry.
func (s *Service) Book(ctx context.Context, sched schedule.ParsedSchedule) (*Outcome, error) {
	timeMin := sched.Start.Add(-conflictPad)
	timeMax := sched.End.Add(conflictPad)

	existing, err := s.cal.ListOverlapping(ctx, s.calendarID, timeMin, timeMax, sched.Title)
	if err != nil {
		return nil, fmt.Errorf("checking for existing events: %w", err)
	}

	if len(existing) > 0 {
		return &Outcome{
			Status: StatusConflict,
			Start:  sched.Start,
			End:    sched.End,
			Title:  sched.Title,
		}, nil
	}

	_, err = s.cal.CreateEvent(ctx, s.calendarID, gcal.EventInput{
		Summary:   sched.Title,
		StartTime: sched.Start,
		EndTime:   sched.End,
		TimeZone:  s.timeZone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}

	return &Outcome{
		Status: StatusCreated,
		Start:  sched.Start,
		End:    sched.End,
		Title:  sched.Title,
	}, nil
}
