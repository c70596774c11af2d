package DailyReport

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"slack-mood-reporter/AnalyzeMessages"
	"slack-mood-reporter/BuildReport"
	"slack-mood-reporter/GetMessages"
	"slack-mood-reporter/Logging"
	"slack-mood-reporter/Metrics"
	"slack-mood-reporter/PublishToSlack"
	"slack-mood-reporter/ScoreSentiment"
)

// SlackClient covers both reading the channel and posting to it.
type SlackClient interface {
	GetMessages.SlackClient
	PublishToSlack.SlackPoster
}

// Reporter owns everything a run needs. One instance lives for the whole
// process; nothing is carried over from one run to the next.
type Reporter struct {
	Slack     SlackClient
	ChannelId string
	Scorer    ScoreSentiment.Scorer
	Marker    string
	Lookback  time.Duration
	Clock     clockwork.Clock
	Metrics   *Metrics.Metrics
	Log       *Logging.Logger
}

// Run executes fetch, filter, score, aggregate, render and publish once and
// returns the report text it tried to send. Slack failures are logged and
// counted; a failed fetch still produces the empty-day report.
func (r *Reporter) Run(ctx context.Context) string {
	log := r.Log.With("run_id", uuid.NewString(), "channel", r.ChannelId)
	r.Metrics.Runs.Inc()

	// fetch everything posted within the lookback window
	oldest := r.Clock.Now().Add(-r.Lookback)
	messages, fetchError := GetMessages.FetchMessages(ctx, r.Slack, r.ChannelId, oldest)
	if fetchError != nil {
		log.Errorw("Error fetching messages", "error", fetchError)
		r.Metrics.Failures.WithLabelValues(Metrics.StageFetch).Inc()
		// a failed fetch is reported as a day without messages
		messages = nil
	}
	r.Metrics.MessagesFetched.Add(float64(len(messages)))
	log.Infow("Fetched messages", "count", len(messages), "since", oldest)

	// counters are recorded before the nil check, days with nothing to
	// report are the ones where the skips matter most
	result, stats := AnalyzeMessages.Analyze(ctx, r.Scorer, r.Marker, messages, log)
	r.Metrics.MessagesScored.Add(float64(stats.Analyzed))
	r.Metrics.MessagesSkipped.WithLabelValues(Metrics.SkipMarker).Add(float64(stats.SkippedMarker))
	r.Metrics.MessagesSkipped.WithLabelValues(Metrics.SkipScoreError).Add(float64(stats.SkippedScoring))
	r.Metrics.MessagesSkipped.WithLabelValues(Metrics.SkipNoAuthor).Add(float64(stats.SkippedNoAuthor))

	if result != nil {
		log.Infow("Analyzed messages",
			"analyzed", stats.Analyzed,
			"skipped_marker", stats.SkippedMarker,
			"skipped_scoring", stats.SkippedScoring,
			"skipped_no_author", stats.SkippedNoAuthor,
			"overall_score", result.OverallScore,
			"overall", result.OverallSentiment,
		)
	} else {
		log.Infow("No messages left to analyze",
			"skipped_marker", stats.SkippedMarker,
			"skipped_scoring", stats.SkippedScoring,
			"skipped_no_author", stats.SkippedNoAuthor,
		)
	}

	// a nil result renders the fixed "no messages" text
	report := BuildReport.Render(r.Marker, result)

	if sendError := PublishToSlack.SendReport(ctx, r.Slack, r.ChannelId, report); sendError != nil {
		log.Errorw("Error sending report", "error", sendError)
		r.Metrics.Failures.WithLabelValues(Metrics.StagePublish).Inc()
		return report
	}

	log.Info("Report sent")
	return report
}
