package ScoreSentiment

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jonreiter/govader"
)

// VaderScorer scores text with the VADER lexicon analyzer. It needs no
// network and is safe to keep for the whole process lifetime.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderScorer) Score(_ context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" || !utf8.ValidString(text) {
		return 0, ErrUnscorable
	}

	// VADER also returns neg/neu/pos proportions, only compound is used
	compound := v.analyzer.PolarityScores(text).Compound
	rangeError := checkRange(compound)
	if rangeError != nil {
		return 0, rangeError
	}
	return compound, nil
}
