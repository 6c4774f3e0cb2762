package slackbot

import (
	"context"
	"fmt"
	"time"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

// slackMessenger backs Messenger with the real Slack Web API.
type slackMessenger struct {
	api *slack.Client
}

func (s *slackMessenger) AddReaction(ctx context.Context, channel, timestamp, name string) error {
	return s.api.AddReactionContext(ctx, name, slack.NewRefToMessage(channel, timestamp))
}

func (s *slackMessenger) RemoveReaction(ctx context.Context, channel, timestamp, name string) error {
	return s.api.RemoveReactionContext(ctx, name, slack.NewRefToMessage(channel, timestamp))
}

func (s *slackMessenger) ReplyInThread(ctx context.Context, channel, threadTS, text string) error {
	_, _, err := s.api.PostMessageContext(ctx, channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(threadTS),
	)
	return err
}

// Bot connects to Slack over Socket Mode and feeds app-mention events to
// the handler.
type Bot struct {
	sock    *socketmode.Client
	handler *Handler
}

type BotConfig struct {
	BotToken string
	AppToken string
	Parser   Parser
	Booker   Booker
	Delivery DeliveryLog
	Timeout  time.Duration
}

func New(cfg BotConfig) *Bot {
	api := slack.New(cfg.BotToken, slack.OptionAppLevelToken(cfg.AppToken))
	sock := socketmode.New(api)

	handler := NewHandler(cfg.Parser, cfg.Booker, &slackMessenger{api: api}, cfg.Delivery, cfg.Timeout)

	return &Bot{sock: sock, handler: handler}
}

// Run processes Socket Mode events until ctx is cancelled. Events are
// acknowledged immediately; Slack expects the ack within seconds, while a
// booking can take much longer.
func (b *Bot) Run(ctx context.Context) error {
	go b.eventLoop()
	return b.sock.RunContext(ctx)
}

func (b *Bot) eventLoop() {
	for evt := range b.sock.Events {
		switch evt.Type {
		case socketmode.EventTypeConnected:
			fmt.Println("Slack: connected over Socket Mode")
		case socketmode.EventTypeConnectionError:
			fmt.Printf("Slack: connection error: %v\n", evt.Data)
		case socketmode.EventTypeEventsAPI:
			apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
			if !ok {
				continue
			}
			if evt.Request != nil {
				b.sock.Ack(*evt.Request)
			}
			b.dispatch(apiEvent)
		}
	}
}

func (b *Bot) dispatch(apiEvent slackevents.EventsAPIEvent) {
	if apiEvent.Type != slackevents.CallbackEvent {
		return
	}
	mention, ok := apiEvent.InnerEvent.Data.(*slackevents.AppMentionEvent)
	if !ok {
		return
	}

	fmt.Printf("[Mention %s/%s] %s\n", mention.Channel, mention.TimeStamp, mention.Text)

	b.handler.HandleMention(Mention{
		Channel:   mention.Channel,
		Timestamp: mention.TimeStamp,
		Text:      mention.Text,
		Received:  time.Now(),
	})
}
