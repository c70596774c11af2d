package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"

	"slack-mood-reporter/Config"
	"slack-mood-reporter/DailyReport"
	"slack-mood-reporter/GetMessages"
	"slack-mood-reporter/Logging"
	"slack-mood-reporter/Metrics"
	"slack-mood-reporter/Scheduler"
	"slack-mood-reporter/ScoreSentiment"
)

func newScorer(ctx context.Context, cfg Config.ScoringConfig) (ScoreSentiment.Scorer, error) {
	if cfg.Backend == Config.ScorerGemini {
		return ScoreSentiment.NewGeminiScorer(ctx, cfg.GeminiKey, cfg.GeminiModel)
	}
	return ScoreSentiment.NewVaderScorer(), nil
}

func serveMetrics(addr string, m *Metrics.Metrics, logger *Logging.Logger) {
	go func() {
		logger.Infow("Serving metrics", "addr", addr)
		listenError := http.ListenAndServe(addr, m.Handler())
		if listenError != nil && !errors.Is(listenError, http.ErrServerClosed) {
			logger.Errorw("Metrics server stopped", "error", listenError)
		}
	}()
}

func main() {
	cfg, configError := Config.Load()
	if configError != nil {
		log.Fatal("Failed to load config: ", configError)
	}

	loggerInitialisationError := Logging.Init(cfg.App.LogLevel, cfg.App.Env)
	if loggerInitialisationError != nil {
		log.Fatal("Failed to initialise logger: ", loggerInitialisationError)
	}
	defer Logging.Sync()
	logger := Logging.Get()

	if !cfg.EnvFileLoaded {
		logger.Info("No .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// one Slack client serves every run for the lifetime of the process
	slackApi := slack.New(cfg.Slack.Token)

	// without CHANNEL_ID we fall back to whatever channel Slack lists first
	channelId := cfg.Slack.ChannelID
	if channelId == "" {
		discovered, discoverError := GetMessages.DiscoverChannel(ctx, slackApi)
		if discoverError != nil {
			logger.Fatalw("Failed to pick a channel", "error", discoverError)
		}
		channelId = discovered
		logger.Warnw("CHANNEL_ID not set, using the first listed channel", "channel", channelId)
	}

	scorer, scorerError := newScorer(ctx, cfg.Scoring)
	if scorerError != nil {
		logger.Fatalw("Failed to create scorer", "backend", cfg.Scoring.Backend, "error", scorerError)
	}

	metrics := Metrics.New(prometheus.NewRegistry())
	if cfg.App.MetricsAddr != "" {
		serveMetrics(cfg.App.MetricsAddr, metrics, logger)
	}

	// everything a run needs is handed to the reporter explicitly
	clock := clockwork.NewRealClock()
	reporter := &DailyReport.Reporter{
		Slack:     slackApi,
		ChannelId: channelId,
		Scorer:    scorer,
		Marker:    cfg.Report.Marker,
		Lookback:  cfg.Report.Lookback,
		Clock:     clock,
		Metrics:   metrics,
		Log:       logger,
	}

	scheduler := Scheduler.New(clock, cfg.Report.PollInterval, logger)
	_, scheduleError := scheduler.Daily("daily-report", cfg.Report.At, func(ctx context.Context) { reporter.Run(ctx) })
	if scheduleError != nil {
		logger.Fatalw("Failed to schedule report", "error", scheduleError)
	}

	// handy when deploying, otherwise the first report waits for REPORT_AT
	if cfg.Report.RunOnStart {
		reporter.Run(ctx)
	}

	logger.Infow("Mood reporter started", "channel", channelId, "report_at", cfg.Report.At, "scorer", cfg.Scoring.Backend)
	// blocks until SIGINT or SIGTERM
	schedulerError := scheduler.Run(ctx)
	if schedulerError != nil && !errors.Is(schedulerError, context.Canceled) {
		logger.Errorw("Scheduler stopped", "error", schedulerError)
	}
	logger.Info("Shutting down")
}
