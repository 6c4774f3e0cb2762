package gcal

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
)

// EventInput represents the input for creating a calendar event
type EventInput struct {
	Summary   string
	StartTime time.Time
	EndTime   time.Time
	TimeZone  string
}

// EventDetails represents a single Google Calendar event.
type EventDetails struct {
	ID        string
	Summary   string
	StartTime time.Time
	EndTime   time.Time
}

func parseEventTimes(item *calendar.Event) (time.Time, time.Time, error) {
	if item == nil || item.Start == nil || item.End == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("event is missing start or end")
	}
	if item.Start.DateTime == "" || item.End.DateTime == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("event datetime is missing")
	}

	startTime, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to parse start datetime: %w", err)
	}
	endTime, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to parse end datetime: %w", err)
	}

	return startTime, endTime, nil
}

// CreateEvent creates a new event in Google Calendar and returns the event ID
func (c *Client) CreateEvent(ctx context.Context, calendarID string, input EventInput) (string, error) {
	if c.service == nil {
		return "", fmt.Errorf("calendar service not initialized")
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	event := &calendar.Event{
		Summary: input.Summary,
		Start: &calendar.EventDateTime{
			DateTime: input.StartTime.Format(time.RFC3339),
			TimeZone: input.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: input.EndTime.Format(time.RFC3339),
			TimeZone: input.TimeZone,
		},
	}

	created, err := c.service.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}

	return created.Id, nil
}

// ListOverlapping returns non-cancelled events in a time window whose text
// matches the search query. All-day events carry no DateTime and are skipped.
func (c *Client) ListOverlapping(ctx context.Context, calendarID string, timeMin, timeMax time.Time, query string) ([]EventDetails, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}
	if timeMax.Before(timeMin) {
		return nil, fmt.Errorf("invalid range: time_max is before time_min")
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	var result []EventDetails
	pageToken := ""

	for {
		call := c.service.Events.List(calendarID).
			TimeMin(timeMin.Format(time.RFC3339)).
			TimeMax(timeMax.Format(time.RFC3339)).
			Q(query).
			SingleEvents(true).
			ShowDeleted(false).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		events, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list events in range: %w", err)
		}

		for _, item := range events.Items {
			if item == nil || item.Status == "cancelled" {
				continue
			}

			startTime, endTime, parseErr := parseEventTimes(item)
			if parseErr != nil {
				continue
			}

			result = append(result, EventDetails{
				ID:        item.Id,
				Summary:   item.Summary,
				StartTime: startTime,
				EndTime:   endTime,
			})
		}

		if events.NextPageToken == "" {
			break
		}
		pageToken = events.NextPageToken
	}

	return result, nil
}
