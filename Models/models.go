package Models

type Sentiment string

const (
	Positive Sentiment = "positive"
	Neutral  Sentiment = "neutral"
	Negative Sentiment = "negative"
)

// Message is a channel message as fetched for one run.
// Nothing here outlives the run that fetched it.
type Message struct {
	Text      string
	User      string
	Timestamp string
}

type ScoredMessage struct {
	Message
	Score     float64
	Sentiment Sentiment
}

type AnalysisResult struct {
	MostPositive     ScoredMessage
	MostNegative     ScoredMessage
	OverallScore     float64
	OverallSentiment Sentiment
}

// AnalysisStats counts what happened to each fetched message. It is filled
// in even when nothing is left to report on.
type AnalysisStats struct {
	Analyzed        int
	SkippedMarker   int
	SkippedScoring  int
	SkippedNoAuthor int
}
