// Package config handles norrisbot configuration loading along with the
// definition of all configuration keys and defaults
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"time"
)

// Configuration keys
const (
	TokenKey                = "token"                    // Slack credential token, string. Mandatory
	DebugKey                = "debug"                    // Debug logging mode, boolean
	BotNameKey              = "name"                     // The bot's display name on the workspace, string
	StoragePathKey          = "storagePath"              // Path to the sqlite joke database file, string
	SettingsStoragePathKey  = "settingsStoragePath"      // Optional directory for a leveldb settings database. When empty, settings live in the joke database's info table
	ChannelInfoCacheSizeKey = "channelInfoCacheSize"     // The number of entries to keep in the channel info cache, int value. 0 disables caching
	HeartbeatIntervalKey    = "heartbeatIntervalMinutes" // Interval between lastrun refreshes, in minutes. 0 disables the heartbeat
	TimeLocationKey         = "timeLocation"             // Time zone location used by the heartbeat scheduler, string
)

// Default values
const (
	defaultBotName              = "norrisbot"
	defaultStoragePath          = "~/.norrisbot/norrisbot.db"
	defaultChannelInfoCacheSize = 20
	defaultHeartbeatInterval    = 10
	defaultTimeLocation         = "Local"
	envPrefix                   = "NORRISBOT"
)

// NewViperWithDefaults creates a new viper instance with all default values set
// and environment binding done (i.e. the token is read from NORRISBOT_TOKEN)
func NewViperWithDefaults() (v *viper.Viper) {
	v = viper.New()
	v.SetDefault(DebugKey, false)
	v.SetDefault(BotNameKey, defaultBotName)
	v.SetDefault(StoragePathKey, defaultStoragePath)
	v.SetDefault(SettingsStoragePathKey, "")
	v.SetDefault(ChannelInfoCacheSizeKey, defaultChannelInfoCacheSize)
	v.SetDefault(HeartbeatIntervalKey, defaultHeartbeatInterval)
	v.SetDefault(TimeLocationKey, defaultTimeLocation)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	return v
}

// GetTimeLocation reads the TimeLocationKey configuration and loads the
// corresponding time.Location
func GetTimeLocation(v *viper.Viper) (timeLoc *time.Location, err error) {
	timeLocationValue := v.GetString(TimeLocationKey)

	timeLoc, err = time.LoadLocation(timeLocationValue)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading time zone location [%s]", timeLocationValue)
	}

	return timeLoc, nil
}
