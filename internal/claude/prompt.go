package claude

import (
	"fmt"
	"time"
)

// SystemPrompt instructs the model to emit only the strict extraction JSON.
const SystemPrompt = `You extract a single calendar entry from a chat message.

The message may be in Japanese or English. It describes one event with a
date, a start time, possibly an end time, and a title.

Respond with ONLY a JSON object in exactly this format, no other text:

{
  "date": "YYYY-MM-DD",
  "start": "HH:MM",
  "end": "HH:MM",
  "title": "short event title"
}

Rules:
1. All four fields are always present and non-empty.
2. If the message gives no date, use the reference date provided.
3. For relative dates ("tomorrow", "明日", "来週月曜"), resolve them against
   the reference date.
4. If the message gives no end time, set end to exactly one hour after start.
5. Times are 24-hour local clock times (e.g. "09:00", "15:30").
6. The title is the event description with dates, times, and mention tokens
   removed. If nothing remains, use "予定".
7. If the message contains no schedulable event at all, still pick the most
   plausible reading; never respond with anything but the JSON object.`

// buildUserPrompt embeds the reference instant so the model can resolve
// relative phrases.
func buildUserPrompt(text string, now time.Time) string {
	return fmt.Sprintf("Reference date/time: %s\n\nMessage:\n%s",
		now.Format("2006-01-02 15:04 (Monday)"), text)
}
