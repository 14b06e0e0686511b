package norrisbot

import (
	"github.com/alexandre-normand/norrisbot/store"
	"github.com/nlopes/slack"
)

// replyWithJoke runs the full reply flow for a qualifying message: pick the
// least used joke, resolve the destination channel, post as the bot and bump
// the joke's usage counter. Every failure in here is logged and swallowed:
// the requester simply gets no reply rather than the bot going down
func (b *Norrisbot) replyWithJoke(m *slack.Msg) {
	var j store.Joke
	var err error

	d := measure(func() {
		j, err = b.jokes.PickLeastUsedJoke()
	})
	b.instrumenter.jokePickLatency(d)

	if err == store.ErrNoJokesAvailable {
		b.log.Printf("No jokes in the database, not replying in channel [%s]\n", m.Channel)
		return
	}

	if err != nil {
		b.log.Printf("Error picking a joke for channel [%s]: %v\n", m.Channel, err)
		return
	}

	// The event came from that channel so failing to resolve it means the
	// transport and us disagree. Log it and move on
	c, err := b.channels.GetChannel(m.Channel)
	if err != nil {
		b.log.Printf("Can't resolve channel [%s], not replying: %v\n", m.Channel, err)
		return
	}

	if err = b.sender.SendNewMessage(j.Text, c.ID); err != nil {
		b.instrumenter.postError()
		b.log.Printf("Error posting joke [%d] to channel [%s]: %v\n", j.ID, c.ID, err)
		return
	}

	b.instrumenter.jokeServed()

	// Posting and counting are independent: a failure here only means the
	// joke might get served again before its counter catches up
	if err = b.jokes.MarkServed(j.ID); err != nil {
		b.log.Printf("Error marking joke [%d] served: %v\n", j.ID, err)
	}
}
