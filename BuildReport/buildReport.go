package BuildReport

import (
	"fmt"
	"strings"

	"slack-mood-reporter/Models"
)

type AnalysisResult = Models.AnalysisResult

const NoMessagesReport = "No messages to analyze today! 🤷‍♀️"

// Header is the first line of every report. It carries marker so the next
// run's analysis skips the bot's own post.
func Header(marker string) string {
	return fmt.Sprintf("😘 *%s WITH A DAILY REPORT* 🤓", marker)
}

func mention(userId string) string {
	return fmt.Sprintf("<@%s>", userId)
}

// Render formats result for Slack. A nil result renders NoMessagesReport.
func Render(marker string, result *AnalysisResult) string {
	if result == nil {
		return NoMessagesReport
	}

	var b strings.Builder

	b.WriteString(Header(marker))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("*Overall Mood*: *%s*\n\n", strings.ToUpper(string(result.OverallSentiment))))

	b.WriteString("🧚🏻 *Most Positive Message*:\n")
	b.WriteString(fmt.Sprintf("_%s_ by %s\n\n", result.MostPositive.Text, mention(result.MostPositive.User)))

	b.WriteString("👹 *Most Negative Message*:\n")
	b.WriteString(fmt.Sprintf("_%s_ by %s\n", result.MostNegative.Text, mention(result.MostNegative.User)))

	return b.String()
}
