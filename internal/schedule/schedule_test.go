package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jst(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	return loc
}

func TestParseDate(t *testing.T) {
	norm := NewNormalizer(jst(t))

	tests := []struct {
		name    string
		token   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "valid date",
			token: "20250620",
			want:  time.Date(2025, 6, 20, 0, 0, 0, 0, norm.Location()),
		},
		{
			name:  "leap day",
			token: "20240229",
			want:  time.Date(2024, 2, 29, 0, 0, 0, 0, norm.Location()),
		},
		{name: "too short", token: "2025062", wantErr: true},
		{name: "too long", token: "202506200", wantErr: true},
		{name: "non-numeric", token: "2025o620", wantErr: true},
		{name: "month out of range", token: "20251320", wantErr: true},
		{name: "day out of range", token: "20250632", wantErr: true},
		{name: "not a leap day", token: "20250229", wantErr: true},
		{name: "empty", token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := norm.ParseDate(tt.token)
			if tt.wantErr {
				var formatErr *FormatError
				require.Error(t, err)
				assert.ErrorAs(t, err, &formatErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	norm := NewNormalizer(jst(t))

	tests := []struct {
		name       string
		token      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{name: "two-digit hour", token: "14", wantHour: 14},
		{name: "four-digit time", token: "1430", wantHour: 14, wantMinute: 30},
		{name: "midnight short", token: "00", wantHour: 0, wantMinute: 0},
		{name: "midnight long", token: "0000", wantHour: 0, wantMinute: 0},
		{name: "end of day", token: "2359", wantHour: 23, wantMinute: 59},
		{name: "hour 24 rejected", token: "24", wantErr: true},
		{name: "2400 rejected", token: "2400", wantErr: true},
		{name: "minute 60 rejected", token: "1460", wantErr: true},
		{name: "three digits rejected", token: "930", wantErr: true},
		{name: "one digit rejected", token: "9", wantErr: true},
		{name: "five digits rejected", token: "09300", wantErr: true},
		{name: "non-numeric rejected", token: "1a", wantErr: true},
		{name: "empty rejected", token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := norm.ParseTimeOfDay(tt.token)
			if tt.wantErr {
				var formatErr *FormatError
				require.Error(t, err)
				assert.ErrorAs(t, err, &formatErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHour, hour)
			assert.Equal(t, tt.wantMinute, minute)
		})
	}
}

func TestAt(t *testing.T) {
	norm := NewNormalizer(jst(t))

	date, err := norm.ParseDate("20250620")
	require.NoError(t, err)

	got := norm.At(date, 14, 30)
	assert.Equal(t, time.Date(2025, 6, 20, 14, 30, 0, 0, norm.Location()), got)
	assert.Equal(t, norm.Location(), got.Location())
}

func TestStripMention(t *testing.T) {
	assert.Equal(t, "20250620 14-15 打合せ", StripMention("<@U123ABC> 20250620 14-15 打合せ"))
	assert.Equal(t, "hello", StripMention("hello"))
	assert.Equal(t, "明日15時から会議", StripMention("  <@UB0TB0T>  明日15時から会議"))
}
