package PublishToSlack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// SlackPoster is the subset of *slack.Client used to post a report.
type SlackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SendReport posts report to channelId. Slack resolves names and links
// (parse=full) and previews are turned off.
func SendReport(ctx context.Context, slackClient SlackPoster, channelId string, report string) error {
	_, _, sendReportError := slackClient.PostMessageContext(
		ctx,
		channelId,
		slack.MsgOptionText(report, false),
		slack.MsgOptionParse(true),
		slack.MsgOptionDisableLinkUnfurl(),
		slack.MsgOptionDisableMediaUnfurl(),
	)
	if sendReportError != nil {
		return fmt.Errorf("post report to %s: %w", channelId, sendReportError)
	}
	return nil
}
