package BuildReport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"slack-mood-reporter/Models"
)

func TestRender_NoMessages(t *testing.T) {
	assert.Equal(t, "No messages to analyze today! 🤷‍♀️", Render("BOOB IS HERE", nil))
}

func TestRender_Report(t *testing.T) {
	result := &AnalysisResult{
		MostPositive: Models.ScoredMessage{
			Message: Models.Message{Text: "we shipped it!", User: "U111"},
			Score:   0.8,
		},
		MostNegative: Models.ScoredMessage{
			Message: Models.Message{Text: "prod is down again", User: "U222"},
			Score:   -0.8,
		},
		OverallSentiment: Models.Neutral,
	}

	report := Render("BOOB IS HERE", result)

	want := "😘 *BOOB IS HERE WITH A DAILY REPORT* 🤓\n\n" +
		"*Overall Mood*: *NEUTRAL*\n\n" +
		"🧚🏻 *Most Positive Message*:\n" +
		"_we shipped it!_ by <@U111>\n\n" +
		"👹 *Most Negative Message*:\n" +
		"_prod is down again_ by <@U222>\n"
	assert.Equal(t, want, report)
}

func TestRender_SameMessageBothExtremes(t *testing.T) {
	only := Models.ScoredMessage{Message: Models.Message{Text: "fine", User: "U9"}, Score: 0.3}
	result := &AnalysisResult{MostPositive: only, MostNegative: only, OverallSentiment: Models.Positive}

	report := Render("MARK", result)

	assert.True(t, strings.HasPrefix(report, Header("MARK")))
	assert.Contains(t, report, "*POSITIVE*")
	assert.Equal(t, 2, strings.Count(report, "_fine_ by <@U9>"))
}

func TestHeader_ContainsMarker(t *testing.T) {
	assert.Contains(t, Header("BOOB IS HERE"), "BOOB IS HERE")
}
