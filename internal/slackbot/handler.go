package slackbot

import (
	"context"
	"fmt"
	"time"

	"github.com/mkoda/yoteibot/internal/booking"
	"github.com/mkoda/yoteibot/internal/schedule"
)

const (
	reactionProcessing = "thinking_face"
	reactionSuccess    = "white_check_mark"
	reactionFailure    = "x"
)

// Messenger is the slice of the Slack API the handler needs.
type Messenger interface {
	AddReaction(ctx context.Context, channel, timestamp, name string) error
	RemoveReaction(ctx context.Context, channel, timestamp, name string) error
	ReplyInThread(ctx context.Context, channel, threadTS, text string) error
}

// Parser turns message text into a schedule.
type Parser interface {
	Parse(ctx context.Context, text string, now time.Time) (*schedule.ParsedSchedule, error)
}

// Booker performs the conflict-checked calendar insert.
type Booker interface {
	Book(ctx context.Context, sched schedule.ParsedSchedule) (*booking.Outcome, error)
}

// DeliveryLog records which event deliveries were already handled.
type DeliveryLog interface {
	MarkProcessed(channel, ts string) (bool, error)
}

// Mention is one inbound app-mention event.
type Mention struct {
	Channel   string
	Timestamp string
	Text      string
	Received  time.Time
}

// Handler processes one mention at a time: parse, book, reply in thread,
// and keep the reaction state consistent on every exit path.
type Handler struct {
	parser   Parser
	booker   Booker
	msgr     Messenger
	delivery DeliveryLog
	timeout  time.Duration
}

func NewHandler(parser Parser, booker Booker, msgr Messenger, delivery DeliveryLog, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Handler{
		parser:   parser,
		booker:   booker,
		msgr:     msgr,
		delivery: delivery,
		timeout:  timeout,
	}
}

// HandleMention runs the full pipeline for one mention. The threaded reply
// and the removal of the processing reaction both happen exactly once,
// whichever branch is taken.
func (h *Handler) HandleMention(m Mention) {
	if h.delivery != nil {
		first, err := h.delivery.MarkProcessed(m.Channel, m.Timestamp)
		if err != nil {
			// Better to risk a duplicate than to drop the message.
			fmt.Printf("Warning: delivery log failed for %s/%s: %v\n", m.Channel, m.Timestamp, err)
		} else if !first {
			fmt.Printf("Skipping re-delivered event %s/%s\n", m.Channel, m.Timestamp)
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if err := h.msgr.AddReaction(ctx, m.Channel, m.Timestamp, reactionProcessing); err != nil {
		fmt.Printf("Warning: failed to add processing reaction: %v\n", err)
	}
	defer func() {
		// The work context may already be expired; clearing the
		// processing indicator gets its own deadline.
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cleanupCancel()
		if err := h.msgr.RemoveReaction(cleanupCtx, m.Channel, m.Timestamp, reactionProcessing); err != nil {
			fmt.Printf("Warning: failed to remove processing reaction: %v\n", err)
		}
	}()

	reply, result := h.process(ctx, m)

	if err := h.msgr.ReplyInThread(ctx, m.Channel, m.Timestamp, reply); err != nil {
		fmt.Printf("Error posting reply to %s/%s: %v\n", m.Channel, m.Timestamp, err)
	}
	if err := h.msgr.AddReaction(ctx, m.Channel, m.Timestamp, result); err != nil {
		fmt.Printf("Warning: failed to add result reaction: %v\n", err)
	}
}

// process maps the parse/book pipeline onto a reply string and a result
// reaction. Every failure kind converts to a user-visible reply; nothing
// escapes.
func (h *Handler) process(ctx context.Context, m Mention) (reply, reaction string) {
	sched, err := h.parser.Parse(ctx, m.Text, m.Received)
	if err != nil {
		fmt.Printf("Parse failed for %s/%s: %v\n", m.Channel, m.Timestamp, err)
		return formatParseFailure(), reactionFailure
	}

	outcome, err := h.booker.Book(ctx, *sched)
	if err != nil {
		fmt.Printf("Booking failed for %s/%s: %v\n", m.Channel, m.Timestamp, err)
		return formatBackendFailure(err), reactionFailure
	}

	switch outcome.Status {
	case booking.StatusConflict:
		return formatConflict(outcome), reactionFailure
	default:
		return formatCreated(outcome), reactionSuccess
	}
}
