package slackbot

import (
	"errors"
	"testing"
	"time"

	"github.com/mkoda/yoteibot/internal/booking"
	"github.com/stretchr/testify/assert"
)

func TestFormatMessages(t *testing.T) {
	start := time.Date(2025, 6, 20, 14, 0, 0, 0, time.UTC)
	outcome := &booking.Outcome{
		Start: start,
		End:   start.Add(time.Hour),
		Title: "打合せ",
	}

	assert.Equal(t,
		"✅ Googleカレンダーに登録しました: 打合せ (14:00 - 15:00)",
		formatCreated(outcome))
	assert.Equal(t,
		"⚠ 既に予定が登録されています: 打合せ (14:00 - 15:00)",
		formatConflict(outcome))
	assert.Equal(t,
		"❌ 登録失敗: quota exceeded",
		formatBackendFailure(errors.New("quota exceeded")))
	assert.Contains(t, formatParseFailure(), "20250620 14-15 打合せ")
}
