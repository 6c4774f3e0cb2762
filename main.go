package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkoda/yoteibot/internal/booking"
	"github.com/mkoda/yoteibot/internal/claude"
	"github.com/mkoda/yoteibot/internal/config"
	"github.com/mkoda/yoteibot/internal/gcal"
	"github.com/mkoda/yoteibot/internal/schedule"
	"github.com/mkoda/yoteibot/internal/slackbot"
	"github.com/mkoda/yoteibot/internal/store"
)

func main() {
	cfg := config.LoadFromEnv()

	if cfg.SlackBotToken == "" || cfg.SlackAppToken == "" {
		fatal("configuration", fmt.Errorf("SLACK_BOT_TOKEN and SLACK_APP_TOKEN are required"))
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		fatal("loading timezone", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	booker, err := initBooking(ctx, cfg)
	if err != nil {
		fatal("initializing calendar", err)
	}

	parser := initParser(cfg, loc)

	dedup, err := store.Open(cfg.DedupDBPath)
	if err != nil {
		fatal("opening dedup store", err)
	}
	defer dedup.Close()

	bot := slackbot.New(slackbot.BotConfig{
		BotToken: cfg.SlackBotToken,
		AppToken: cfg.SlackAppToken,
		Parser:   parser,
		Booker:   booker,
		Delivery: dedup,
		Timeout:  time.Duration(cfg.RequestTimeoutSec) * time.Second,
	})

	go waitForShutdown(cancel)

	fmt.Println("yoteibot: starting Socket Mode listener")
	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fatal("running bot", err)
	}
}

func initBooking(ctx context.Context, cfg *config.Config) (*booking.Service, error) {
	creds, err := gcal.LoadServiceAccount(cfg.ServiceAccountB64, cfg.ServiceAccountFile)
	if err != nil {
		return nil, err
	}

	client, err := gcal.NewClient(ctx, creds)
	if err != nil {
		return nil, err
	}

	return booking.NewService(client, cfg.GoogleCalendarID, cfg.Timezone), nil
}

func initParser(cfg *config.Config, loc *time.Location) *schedule.Coordinator {
	norm := schedule.NewNormalizer(loc)

	strategies := []schedule.Strategy{
		schedule.NewStructured(norm),
		schedule.NewNatural(schedule.NewWhenRecognizer(loc)),
	}

	if cfg.AnthropicAPIKey != "" {
		extractor := claude.NewClient(cfg.AnthropicAPIKey, cfg.ClaudeModel, cfg.ClaudeTemperature)
		strategies = append(strategies, schedule.NewLLM(extractor, loc))
		fmt.Println("LLM extraction strategy configured")
	} else {
		fmt.Println("Warning: ANTHROPIC_API_KEY not set, LLM extraction disabled")
	}

	return schedule.NewCoordinator(strategies...)
}

func fatal(context string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}

func waitForShutdown(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("Shutting down...")
	cancel()
}
