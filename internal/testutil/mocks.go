package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mkoda/yoteibot/internal/gcal"
)

// MockCalendar simulates the Google Calendar backend for testing.
type MockCalendar struct {
	mu     sync.Mutex
	events []gcal.EventDetails

	ListErr   error
	CreateErr error

	ListCalls   int
	CreateCalls int
}

func NewMockCalendar() *MockCalendar {
	return &MockCalendar{}
}

// ListOverlapping mirrors the backend's search semantics: events whose time
// range overlaps the window and whose summary contains the query text.
func (m *MockCalendar) ListOverlapping(_ context.Context, _ string, timeMin, timeMax time.Time, query string) ([]gcal.EventDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	var result []gcal.EventDetails
	for _, ev := range m.events {
		if ev.StartTime.Before(timeMax) && ev.EndTime.After(timeMin) && strings.Contains(ev.Summary, query) {
			result = append(result, ev)
		}
	}
	return result, nil
}

func (m *MockCalendar) CreateEvent(_ context.Context, _ string, input gcal.EventInput) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateErr != nil {
		return "", m.CreateErr
	}

	id := fmt.Sprintf("evt-%d", len(m.events)+1)
	m.events = append(m.events, gcal.EventDetails{
		ID:        id,
		Summary:   input.Summary,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	})
	return id, nil
}

// Events returns a copy of the stored events.
func (m *MockCalendar) Events() []gcal.EventDetails {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]gcal.EventDetails{}, m.events...)
}

// MockMessenger records reaction and reply side effects.
type MockMessenger struct {
	mu sync.Mutex

	Added   []string // "channel/ts:name"
	Removed []string
	Replies []string // "channel/ts:text"

	ReplyErr error
}

func NewMockMessenger() *MockMessenger {
	return &MockMessenger{}
}

func (m *MockMessenger) AddReaction(_ context.Context, channel, timestamp, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Added = append(m.Added, fmt.Sprintf("%s/%s:%s", channel, timestamp, name))
	return nil
}

func (m *MockMessenger) RemoveReaction(_ context.Context, channel, timestamp, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Removed = append(m.Removed, fmt.Sprintf("%s/%s:%s", channel, timestamp, name))
	return nil
}

func (m *MockMessenger) ReplyInThread(_ context.Context, channel, threadTS, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReplyErr != nil {
		return m.ReplyErr
	}
	m.Replies = append(m.Replies, fmt.Sprintf("%s/%s:%s", channel, threadTS, text))
	return nil
}
