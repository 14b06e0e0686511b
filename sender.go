package norrisbot

import (
	"github.com/nlopes/slack"
)

// MessageSender is implemented by any value that can post a message to a
// channel as the bot identity. The main purpose is a slight decoupling of the
// slack client so the reply flow can be tested without a connection
type MessageSender interface {
	// SendNewMessage posts a new message to the specified channelId
	SendNewMessage(message string, channelId string) (err error)
}

// slackMsgSender is the default and main implementing type for the
// MessageSender interface
type slackMsgSender struct {
	api    *slack.Client
	selfID string
}

// SendNewMessage posts the message rendered as the bot user (with its name
// and avatar) rather than as a generic integration message
func (s *slackMsgSender) SendNewMessage(message string, channelId string) (err error) {
	_, _, _, err = s.api.SendMessage(channelId, slack.MsgOptionText(message, false), slack.MsgOptionUser(s.selfID), slack.MsgOptionAsUser(true))

	return err
}
