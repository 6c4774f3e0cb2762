package slackbot

import (
	"fmt"

	"github.com/mkoda/yoteibot/internal/booking"
)

const clockLayout = "15:04"

func formatCreated(o *booking.Outcome) string {
	return fmt.Sprintf("✅ Googleカレンダーに登録しました: %s (%s - %s)",
		o.Title, o.Start.Format(clockLayout), o.End.Format(clockLayout))
}

func formatConflict(o *booking.Outcome) string {
	return fmt.Sprintf("⚠ 既に予定が登録されています: %s (%s - %s)",
		o.Title, o.Start.Format(clockLayout), o.End.Format(clockLayout))
}

func formatBackendFailure(err error) string {
	return fmt.Sprintf("❌ 登録失敗: %v", err)
}

func formatParseFailure() string {
	return "⚠ 予定を読み取れませんでした。例: 20250620 14-15 打合せ"
}
