package norrisbot

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nlopes/slack"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// firstRunCheck looks at the lastrun setting to decide whether this is the
// bot's very first run. On a first run it announces itself once in the first
// visible channel; on every run it refreshes lastrun so operators can see
// when the bot last came up
func (b *Norrisbot) firstRunCheck(channels []slack.Channel) (err error) {
	lastRun, ok, err := b.settings.GetSetting(lastRunKey)
	if err != nil {
		return errors.Wrapf(err, "error reading setting [%s]", lastRunKey)
	}

	if ok {
		if ts := cast.ToInt64(lastRun); ts > 0 {
			b.log.Debugf("Last run was [%s], skipping the welcome message\n", time.Unix(ts, 0))
		}

		return b.updateLastRun()
	}

	if len(channels) > 0 {
		welcome := fmt.Sprintf("Hi everyone, %s (v%s) here. Mention %s in a channel and I'll tell you a joke", b.name, VERSION, triggerPhrase)

		if err = b.sender.SendNewMessage(welcome, channels[0].ID); err != nil {
			b.log.Printf("Error sending the welcome message to channel [%s]: %v\n", channels[0].ID, err)
		}
	} else {
		b.log.Printf("No visible channel to welcome, skipping the welcome message\n")
	}

	return b.updateLastRun()
}

// updateLastRun upserts the lastrun setting with the current time as unix seconds
func (b *Norrisbot) updateLastRun() (err error) {
	return b.settings.PutSetting(lastRunKey, strconv.FormatInt(time.Now().Unix(), 10))
}
