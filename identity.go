package norrisbot

import (
	"fmt"
	"github.com/alexandre-normand/norrisbot/config"
	lru "github.com/hashicorp/golang-lru"
	"github.com/nlopes/slack"
	"github.com/spf13/viper"
)

// BotIdentity holds the bot's resolved member identity for the session. It's
// resolved once on connection and read-only afterward
type BotIdentity struct {
	ID   string
	Name string
}

// ResolveSelf scans the member roster for the exact (case-sensitive) name of
// the bot. Zero matches and multiple matches are both errors: with an
// ambiguous identity the bot can't reliably filter out its own messages so
// it's safer to treat duplicates as a configuration problem than to guess
func ResolveSelf(users []slack.User, name string) (identity BotIdentity, err error) {
	matches := make([]slack.User, 0, 1)

	for _, u := range users {
		if u.Name == name {
			matches = append(matches, u)
		}
	}

	switch len(matches) {
	case 0:
		return BotIdentity{}, fmt.Errorf("bot user [%s] not found in the member roster", name)
	case 1:
		return BotIdentity{ID: matches[0].ID, Name: matches[0].Name}, nil
	default:
		return BotIdentity{}, fmt.Errorf("found [%d] members named [%s], can't safely tell which one is us", len(matches), name)
	}
}

// ChannelResolver finds a channel's info given its id
type ChannelResolver interface {
	GetChannel(channelID string) (c *slack.Channel, err error)
}

// ChannelInfoFinder defines the loading side of channel resolution, as
// implemented by the slack client
type ChannelInfoFinder interface {
	GetChannelInfo(channelID string) (c *slack.Channel, err error)
}

// cachingChannelResolver holds a cache and a loading ChannelInfoFinder to
// serve channel lookups from cache when possible
type cachingChannelResolver struct {
	loader           ChannelInfoFinder
	logger           SLogger
	channelInfoCache *lru.ARCCache
}

// NewCachingChannelResolver creates a new channel resolver with caching if
// enabled via config.ChannelInfoCacheSizeKey (a size of 0 disables it)
func NewCachingChannelResolver(v *viper.Viper, loader ChannelInfoFinder, logger SLogger) (cr ChannelResolver, err error) {
	ccr := new(cachingChannelResolver)

	cs := v.GetInt(config.ChannelInfoCacheSizeKey)

	if cs > 0 {
		ccr.channelInfoCache, err = lru.NewARC(cs)
		if err != nil {
			return nil, err
		}
	}

	ccr.loader = loader
	ccr.logger = logger

	return ccr, nil
}

// GetChannel gets the channel info from cache or loads and caches it
func (c *cachingChannelResolver) GetChannel(channelID string) (channel *slack.Channel, err error) {
	if c.channelInfoCache == nil {
		c.logger.Debugf("Cache disabled, loading channel info for [%s] from slack instead\n", channelID)
		return c.loader.GetChannelInfo(channelID)
	}

	if cached, exists := c.channelInfoCache.Get(channelID); exists {
		channelInfo, ok := cached.(slack.Channel)
		if !ok {
			return nil, fmt.Errorf("error converting cached value for channel id [%s]", channelID)
		}

		return &channelInfo, nil
	}

	c.logger.Debugf("Channel info for [%s] not found in cache, retrieving from slack and saving\n", channelID)
	channel, err = c.loader.GetChannelInfo(channelID)
	if err != nil {
		return nil, err
	}

	c.channelInfoCache.Add(channelID, *channel)

	return channel, nil
}
