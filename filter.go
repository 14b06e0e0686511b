package norrisbot

import (
	"github.com/nlopes/slack"
	"strings"
)

// triggerPhrase is the fixed phrase that makes the bot respond, in addition
// to its own name
const triggerPhrase = "chuck norris"

// messageFilter decides whether an inbound slack message qualifies for a
// joke reply. All predicates are side-effect-free so evaluation short-circuits
type messageFilter struct {
	self        BotIdentity
	loweredName string
}

func newMessageFilter(self BotIdentity) (f *messageFilter) {
	return &messageFilter{self: self, loweredName: strings.ToLower(self.Name)}
}

// matches returns true only when the message is a chat message in a public
// channel, authored by someone else, that mentions the trigger phrase or the
// bot's name
func (f *messageFilter) matches(m *slack.Msg) bool {
	return isChatMessage(m) && isChannelConversation(m) && f.isNotSelf(m) && f.mentionsTrigger(m)
}

// isChatMessage returns true for regular chat messages carrying text
func isChatMessage(m *slack.Msg) bool {
	return m.Type == "message" && m.Text != ""
}

// isChannelConversation returns true when the conversation is a public
// channel (ids starting with 'C') as opposed to a direct message ('D') or
// private group ('G')
func isChannelConversation(m *slack.Msg) bool {
	return m.Channel != "" && m.Channel[0] == 'C'
}

// isNotSelf guards against the bot triggering on its own messages which
// would loop forever given that every reply contains its name
func (f *messageFilter) isNotSelf(m *slack.Msg) bool {
	return m.User != f.self.ID && m.BotID != f.self.ID
}

// mentionsTrigger returns true when the text contains the trigger phrase or
// the bot's name, case-insensitively
func (f *messageFilter) mentionsTrigger(m *slack.Msg) bool {
	lowered := strings.ToLower(m.Text)

	return strings.Contains(lowered, triggerPhrase) || strings.Contains(lowered, f.loweredName)
}
