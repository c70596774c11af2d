package AnalyzeMessages

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slack-mood-reporter/Logging"
	"slack-mood-reporter/Models"
)

const marker = "BOOB IS HERE"

// tableScorer returns the score registered for the text, or an error when
// the text is listed in failing.
type tableScorer struct {
	scores  map[string]float64
	failing map[string]bool
	calls   []string
}

func (s *tableScorer) Score(_ context.Context, text string) (float64, error) {
	s.calls = append(s.calls, text)
	if s.failing[text] {
		return 0, errors.New("boom")
	}
	return s.scores[text], nil
}

func msg(text, user string) Message {
	return Message{Text: text, User: user}
}

func TestAnalyze_SingleMessage(t *testing.T) {
	scorer := &tableScorer{scores: map[string]float64{"nice": 0.3}}

	result, stats := Analyze(context.Background(), scorer, marker, []Message{msg("nice", "U1")}, Logging.Nop())
	require.NotNil(t, result)

	assert.Equal(t, "nice", result.MostPositive.Text)
	assert.Equal(t, result.MostPositive, result.MostNegative)
	assert.Equal(t, Models.Positive, result.OverallSentiment)
	assert.Equal(t, 1, stats.Analyzed)
}

func TestAnalyze_MeanIsNeutral(t *testing.T) {
	scorer := &tableScorer{scores: map[string]float64{"up": 0.8, "down": -0.8, "flat": 0.0}}
	messages := []Message{msg("up", "U1"), msg("down", "U2"), msg("flat", "U3")}

	result, _ := Analyze(context.Background(), scorer, marker, messages, Logging.Nop())
	require.NotNil(t, result)

	assert.Equal(t, "up", result.MostPositive.Text)
	assert.Equal(t, Models.Positive, result.MostPositive.Sentiment)
	assert.Equal(t, "down", result.MostNegative.Text)
	assert.Equal(t, Models.Negative, result.MostNegative.Sentiment)
	assert.InDelta(t, 0.0, result.OverallScore, 1e-12)
	assert.Equal(t, Models.Neutral, result.OverallSentiment)
}

func TestAnalyze_MarkerExcludedRegardlessOfScore(t *testing.T) {
	report := "😘 *" + marker + " WITH A DAILY REPORT* 🤓 amazing wonderful"
	scorer := &tableScorer{scores: map[string]float64{report: 0.99, "meh": -0.2}}

	result, stats := Analyze(context.Background(), scorer, marker, []Message{msg(report, "UBOT"), msg("meh", "U1")}, Logging.Nop())
	require.NotNil(t, result)

	assert.Equal(t, "meh", result.MostPositive.Text)
	assert.Equal(t, 1, stats.SkippedMarker)
	assert.Equal(t, 1, stats.Analyzed)
	assert.NotContains(t, scorer.calls, report, "marked message is never scored")
}

func TestAnalyze_ScoringFailureExcludedFromMean(t *testing.T) {
	scorer := &tableScorer{
		scores:  map[string]float64{"a": 0.6, "b": 0.0, "broken": -1},
		failing: map[string]bool{"broken": true},
	}
	messages := []Message{msg("a", "U1"), msg("broken", "U2"), msg("b", "U3")}

	result, stats := Analyze(context.Background(), scorer, marker, messages, Logging.Nop())
	require.NotNil(t, result)

	assert.Equal(t, 2, stats.Analyzed)
	assert.Equal(t, 1, stats.SkippedScoring)
	assert.InDelta(t, 0.3, result.OverallScore, 1e-12, "mean over the two scored messages")
	assert.Equal(t, "b", result.MostNegative.Text)
}

func TestAnalyze_NothingLeft(t *testing.T) {
	scorer := &tableScorer{failing: map[string]bool{"x": true}}

	result, stats := Analyze(context.Background(), scorer, marker, nil, Logging.Nop())
	assert.Nil(t, result)
	assert.Equal(t, AnalysisStats{}, stats)

	// the counts survive even though there is nothing to report on
	result, stats = Analyze(context.Background(), scorer, marker, []Message{msg(marker, "UBOT")}, Logging.Nop())
	assert.Nil(t, result)
	assert.Equal(t, AnalysisStats{SkippedMarker: 1}, stats)

	result, stats = Analyze(context.Background(), scorer, marker, []Message{msg("x", "U1")}, Logging.Nop())
	assert.Nil(t, result)
	assert.Equal(t, AnalysisStats{SkippedScoring: 1}, stats)
}

func TestAnalyze_MessageWithoutAuthorSkipped(t *testing.T) {
	scorer := &tableScorer{scores: map[string]float64{"deploy finished": 0.9, "lunch?": 0.1}}
	messages := []Message{
		{Text: "deploy finished", Timestamp: "1.0"},
		msg("lunch?", "U1"),
	}

	result, stats := Analyze(context.Background(), scorer, marker, messages, Logging.Nop())
	require.NotNil(t, result)

	assert.Equal(t, "lunch?", result.MostPositive.Text)
	assert.Equal(t, "lunch?", result.MostNegative.Text)
	assert.Equal(t, AnalysisStats{Analyzed: 1, SkippedNoAuthor: 1}, stats)
	assert.NotContains(t, scorer.calls, "deploy finished")
}

func TestAggregate_TiesGoToFirstOccurrence(t *testing.T) {
	scored := []ScoredMessage{
		{Message: msg("first-high", "U1"), Score: 0.5},
		{Message: msg("first-low", "U2"), Score: -0.5},
		{Message: msg("second-high", "U3"), Score: 0.5},
		{Message: msg("second-low", "U4"), Score: -0.5},
	}

	result := Aggregate(scored)
	require.NotNil(t, result)
	assert.Equal(t, "first-high", result.MostPositive.Text)
	assert.Equal(t, "first-low", result.MostNegative.Text)
}

func TestScoreMessages_PreservesOrder(t *testing.T) {
	scorer := &tableScorer{scores: map[string]float64{"a": 0.1, "b": -0.1, "c": 0}}

	scored, stats := ScoreMessages(context.Background(), scorer, marker,
		[]Message{msg("a", "U1"), msg("b", "U2"), msg("c", "U3")}, Logging.Nop())

	require.Len(t, scored, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{scored[0].Text, scored[1].Text, scored[2].Text})
	assert.Equal(t, Models.Positive, scored[0].Sentiment)
	assert.Equal(t, Models.Negative, scored[1].Sentiment)
	assert.Equal(t, Models.Neutral, scored[2].Sentiment)
	assert.Equal(t, AnalysisStats{Analyzed: 3}, stats)
}
