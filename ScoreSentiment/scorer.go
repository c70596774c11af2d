package ScoreSentiment

import (
	"context"
	"errors"
	"math"

	"slack-mood-reporter/Models"
)

const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

var (
	ErrUnscorable      = errors.New("text cannot be scored")
	ErrScoreOutOfRange = errors.New("compound score outside [-1, 1]")
)

// Scorer maps free text to a compound polarity score in [-1, 1].
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// Classify is used both for single messages and for the run average.
// Both thresholds are inclusive.
func Classify(score float64) Models.Sentiment {
	if score >= positiveThreshold {
		return Models.Positive
	}
	if score <= negativeThreshold {
		return Models.Negative
	}
	return Models.Neutral
}

func checkRange(score float64) error {
	if score < -1 || score > 1 || math.IsNaN(score) {
		return ErrScoreOutOfRange
	}
	return nil
}
