package GetMessages

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"slack-mood-reporter/Models"

	"github.com/slack-go/slack"
)

type Message = Models.Message

const historyPageLimit = 200

var ErrNoChannels = errors.New("slack returned no channels")

// SlackClient is the subset of *slack.Client used to read a channel.
type SlackClient interface {
	GetConversationsContext(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error)
	GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
}

// DiscoverChannel returns the id of the first channel the token can list.
// The choice is not validated in any way; set CHANNEL_ID to pin one.
func DiscoverChannel(ctx context.Context, slackClient SlackClient) (string, error) {
	channels, _, getConversationsError := slackClient.GetConversationsContext(ctx, &slack.GetConversationsParameters{})
	if getConversationsError != nil {
		return "", fmt.Errorf("list conversations: %w", getConversationsError)
	}
	if len(channels) == 0 {
		return "", ErrNoChannels
	}
	return channels[0].ID, nil
}

// FetchMessages returns every message with text posted to channelId since oldest.
// A failure on any page discards the pages already read.
func FetchMessages(ctx context.Context, slackClient SlackClient, channelId string, oldest time.Time) ([]Message, error) {
	params := &slack.GetConversationHistoryParameters{
		ChannelID: channelId,
		Oldest:    strconv.FormatInt(oldest.Unix(), 10),
		Limit:     historyPageLimit,
	}

	// history is paged, keep reading while Slack says there is more
	var messages []Message
	for {
		history, getHistoryError := slackClient.GetConversationHistoryContext(ctx, params)
		if getHistoryError != nil {
			return nil, fmt.Errorf("conversation history for %s: %w", channelId, getHistoryError)
		}

		for _, historyMessage := range history.Messages {
			// joins, file shares and similar events carry no text
			if historyMessage.Msg.Text == "" {
				continue
			}
			messages = append(messages, Message{
				Text:      historyMessage.Msg.Text,
				User:      historyMessage.Msg.User,
				Timestamp: historyMessage.Msg.Timestamp,
			})
		}

		if !history.HasMore || history.ResponseMetaData.NextCursor == "" {
			break
		}
		params.Cursor = history.ResponseMetaData.NextCursor
	}

	return messages, nil
}
