package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredParse(t *testing.T) {
	loc := jst(t)
	norm := NewNormalizer(loc)
	s := NewStructured(norm)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, loc)

	tests := []struct {
		name      string
		text      string
		wantStart time.Time
		wantEnd   time.Time
		wantTitle string
		noMatch   bool
		wantErr   bool
	}{
		{
			name:      "two-digit hours",
			text:      "20250620 14-15 打合せ",
			wantStart: time.Date(2025, 6, 20, 14, 0, 0, 0, loc),
			wantEnd:   time.Date(2025, 6, 20, 15, 0, 0, 0, loc),
			wantTitle: "打合せ",
		},
		{
			name:      "four-digit times",
			text:      "20250620 1415-1430 打合せ",
			wantStart: time.Date(2025, 6, 20, 14, 15, 0, 0, loc),
			wantEnd:   time.Date(2025, 6, 20, 14, 30, 0, 0, loc),
			wantTitle: "打合せ",
		},
		{
			name:      "leading mention token",
			text:      "<@U123ABC> 20250620 09-10 定例会",
			wantStart: time.Date(2025, 6, 20, 9, 0, 0, 0, loc),
			wantEnd:   time.Date(2025, 6, 20, 10, 0, 0, 0, loc),
			wantTitle: "定例会",
		},
		{
			name:      "mixed widths",
			text:      "20250620 09-1030 レビュー",
			wantStart: time.Date(2025, 6, 20, 9, 0, 0, 0, loc),
			wantEnd:   time.Date(2025, 6, 20, 10, 30, 0, 0, loc),
			wantTitle: "レビュー",
		},
		{
			name:      "multi-word title",
			text:      "20250620 14-15 team sync with sales",
			wantStart: time.Date(2025, 6, 20, 14, 0, 0, 0, loc),
			wantEnd:   time.Date(2025, 6, 20, 15, 0, 0, 0, loc),
			wantTitle: "team sync with sales",
		},
		{name: "free text does not match", text: "明日15時から会議", noMatch: true},
		{name: "missing title does not match", text: "20250620 14-15", noMatch: true},
		{name: "empty text does not match", text: "", noMatch: true},
		{name: "single-digit hour rejected", text: "20250620 9-10 会議", wantErr: true},
		{name: "single-digit end before start rejected", text: "20250620 9-8 会議", wantErr: true},
		{name: "three-digit time rejected", text: "20250620 930-1030 会議", wantErr: true},
		{name: "end before start rejected", text: "20250620 15-14 会議", wantErr: true},
		{name: "zero duration rejected", text: "20250620 14-14 会議", wantErr: true},
		{name: "invalid date rejected", text: "20250632 14-15 会議", wantErr: true},
		{name: "hour 24 rejected", text: "20250620 24-25 会議", wantErr: true},
		{name: "invalid minute rejected", text: "20250620 1470-1480 会議", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Parse(context.Background(), tt.text, now)

			if tt.noMatch {
				assert.ErrorIs(t, err, ErrNoMatch)
				return
			}
			if tt.wantErr {
				var formatErr *FormatError
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrNoMatch)
				assert.ErrorAs(t, err, &formatErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.wantStart.Equal(got.Start), "start: want %v, got %v", tt.wantStart, got.Start)
			assert.True(t, tt.wantEnd.Equal(got.End), "end: want %v, got %v", tt.wantEnd, got.End)
			assert.Equal(t, tt.wantTitle, got.Title)
		})
	}
}

// The structured parser must agree with the normalizer's direct combination
// of date and time-of-day for any valid input.
func TestStructuredMatchesNormalizer(t *testing.T) {
	loc := jst(t)
	norm := NewNormalizer(loc)
	s := NewStructured(norm)

	date, err := norm.ParseDate("20251103")
	require.NoError(t, err)
	startH, startM, err := norm.ParseTimeOfDay("0930")
	require.NoError(t, err)
	endH, endM, err := norm.ParseTimeOfDay("11")
	require.NoError(t, err)

	got, err := s.Parse(context.Background(), "20251103 0930-11 面談", time.Now())
	require.NoError(t, err)

	assert.True(t, norm.At(date, startH, startM).Equal(got.Start))
	assert.True(t, norm.At(date, endH, endM).Equal(got.End))
}
