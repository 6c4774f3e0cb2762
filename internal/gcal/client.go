package gcal

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Client wraps the Google Calendar API client
type Client struct {
	service *calendar.Service
}

// NewClient creates a calendar client authenticated with a service-account
// JSON key.
func NewClient(ctx context.Context, serviceAccountJSON []byte) (*Client, error) {
	config, err := google.JWTConfigFromJSON(serviceAccountJSON, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to load service account config: %w", err)
	}

	service, err := calendar.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &Client{service: service}, nil
}
