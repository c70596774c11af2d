package AnalyzeMessages

import (
	"context"
	"strings"

	"slack-mood-reporter/Logging"
	"slack-mood-reporter/Models"
	"slack-mood-reporter/ScoreSentiment"
)

type Message = Models.Message
type ScoredMessage = Models.ScoredMessage
type AnalysisResult = Models.AnalysisResult
type AnalysisStats = Models.AnalysisStats

// ScoreMessages drops messages containing marker and scores the rest.
// A message without an author or one the scorer rejects is logged and left out.
func ScoreMessages(ctx context.Context, scorer ScoreSentiment.Scorer, marker string, messages []Message, log *Logging.Logger) ([]ScoredMessage, AnalysisStats) {
	var scored []ScoredMessage
	var stats AnalysisStats

	for _, message := range messages {
		// our own earlier reports carry the marker, never analyze them
		if strings.Contains(message.Text, marker) {
			stats.SkippedMarker++
			continue
		}

		// integration and webhook posts only carry a bot id, there is nobody to mention
		if message.User == "" {
			log.Warnw("Skipping message without an author", "ts", message.Timestamp)
			stats.SkippedNoAuthor++
			continue
		}

		score, scoreError := scorer.Score(ctx, message.Text)
		if scoreError != nil {
			log.Warnw("Skipping message that could not be scored", "user", message.User, "ts", message.Timestamp, "error", scoreError)
			stats.SkippedScoring++
			continue
		}

		scored = append(scored, ScoredMessage{
			Message:   message,
			Score:     score,
			Sentiment: ScoreSentiment.Classify(score),
		})
	}

	stats.Analyzed = len(scored)
	return scored, stats
}

// Aggregate picks the extremes and the mean sentiment. Ties go to the
// earliest message in input order. Returns nil when scored is empty.
func Aggregate(scored []ScoredMessage) *AnalysisResult {
	if len(scored) == 0 {
		return nil
	}

	// strict comparisons keep the first occurrence on ties
	mostPositive, mostNegative := 0, 0
	sum := 0.0
	for i, message := range scored {
		if message.Score > scored[mostPositive].Score {
			mostPositive = i
		}
		if message.Score < scored[mostNegative].Score {
			mostNegative = i
		}
		sum += message.Score
	}

	// the average goes through the same thresholds as a single message
	overall := sum / float64(len(scored))
	return &AnalysisResult{
		MostPositive:     scored[mostPositive],
		MostNegative:     scored[mostNegative],
		OverallScore:     overall,
		OverallSentiment: ScoreSentiment.Classify(overall),
	}
}

// Analyze runs filtering, scoring and aggregation. A nil result means there
// was nothing left to report on; the stats are valid either way.
func Analyze(ctx context.Context, scorer ScoreSentiment.Scorer, marker string, messages []Message, log *Logging.Logger) (*AnalysisResult, AnalysisStats) {
	scored, stats := ScoreMessages(ctx, scorer, marker, messages, log)
	return Aggregate(scored), stats
}
