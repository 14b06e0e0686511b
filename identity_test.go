package norrisbot_test

import (
	"github.com/alexandre-normand/norrisbot"
	"github.com/alexandre-normand/norrisbot/config"
	"github.com/nlopes/slack"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"log"
	"strings"
	"testing"
)

func newTestLogger() norrisbot.SLogger {
	var b strings.Builder
	return norrisbot.NewSLogger(log.New(&b, "", 0), true)
}

func rosterUser(id string, name string) (u slack.User) {
	u.ID = id
	u.Name = name
	return u
}

func TestResolveSelf(t *testing.T) {
	roster := []slack.User{rosterUser("U001", "alice"), rosterUser("U002", "norrisbot"), rosterUser("U003", "bob")}

	identity, err := norrisbot.ResolveSelf(roster, "norrisbot")
	assert.Nil(t, err)
	assert.Equal(t, norrisbot.BotIdentity{ID: "U002", Name: "norrisbot"}, identity)
}

func TestResolveSelfIsCaseSensitive(t *testing.T) {
	roster := []slack.User{rosterUser("U002", "Norrisbot")}

	_, err := norrisbot.ResolveSelf(roster, "norrisbot")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "not found")
	}
}

func TestResolveSelfWithEmptyRoster(t *testing.T) {
	_, err := norrisbot.ResolveSelf([]slack.User{}, "norrisbot")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "not found")
	}
}

func TestResolveSelfWithAmbiguousName(t *testing.T) {
	roster := []slack.User{rosterUser("U002", "norrisbot"), rosterUser("U004", "norrisbot")}

	_, err := norrisbot.ResolveSelf(roster, "norrisbot")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "can't safely tell")
	}
}

// countingChannelLoader returns a fixed channel and counts loads to observe caching
type countingChannelLoader struct {
	channel slack.Channel
	err     error
	loads   int
}

func (c *countingChannelLoader) GetChannelInfo(channelID string) (channel *slack.Channel, err error) {
	c.loads++

	if c.err != nil {
		return nil, c.err
	}

	return &c.channel, nil
}

func testChannel(id string, name string) (c slack.Channel) {
	c.ID = id
	c.Name = name
	return c
}

func TestChannelResolverCachesLookups(t *testing.T) {
	v := config.NewViperWithDefaults()
	loader := &countingChannelLoader{channel: testChannel("C123", "general")}

	cr, err := norrisbot.NewCachingChannelResolver(v, loader, newTestLogger())
	assert.Nil(t, err)

	c, err := cr.GetChannel("C123")
	assert.Nil(t, err)
	assert.Equal(t, "general", c.Name)

	c, err = cr.GetChannel("C123")
	assert.Nil(t, err)
	assert.Equal(t, "general", c.Name)

	assert.Equal(t, 1, loader.loads)
}

func TestChannelResolverWithCachingDisabled(t *testing.T) {
	v := config.NewViperWithDefaults()
	v.Set(config.ChannelInfoCacheSizeKey, 0)

	loader := &countingChannelLoader{channel: testChannel("C123", "general")}

	cr, err := norrisbot.NewCachingChannelResolver(v, loader, newTestLogger())
	assert.Nil(t, err)

	_, err = cr.GetChannel("C123")
	assert.Nil(t, err)
	_, err = cr.GetChannel("C123")
	assert.Nil(t, err)

	assert.Equal(t, 2, loader.loads)
}

func TestChannelResolverPropagatesLoadError(t *testing.T) {
	v := config.NewViperWithDefaults()
	loader := &countingChannelLoader{err: errors.New("channel_not_found")}

	cr, err := norrisbot.NewCachingChannelResolver(v, loader, newTestLogger())
	assert.Nil(t, err)

	_, err = cr.GetChannel("C404")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "channel_not_found")
	}
}
