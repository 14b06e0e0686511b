// Package norrisbot provides the building blocks of a slack bot that listens
// for mentions of chuck norris in public channels and replies with a joke
// from a persistent database, favoring the least served jokes.
package norrisbot

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexandre-normand/norrisbot/config"
	"github.com/alexandre-normand/norrisbot/store"
	"github.com/alexandre-normand/norrisbot/store/sqlitedb"
	"github.com/nlopes/slack"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/api/global"
	"go.opentelemetry.io/otel/api/metric"
)

// state tracks the connection lifecycle. Transitions only move forward:
// reconnection is handled by the slack RTM layer, not modeled here
type state int

const (
	stateDisconnected state = iota
	stateConnecting
	stateConnected
	stateReady
)

// lastRunKey is the single settings key the bot maintains
const lastRunKey = "lastrun"

// Norrisbot holds the state of a running bot instance
type Norrisbot struct {
	name         string
	config       *viper.Viper
	log          SLogger
	meter        metric.Meter
	instrumenter *instrumenter

	self     BotIdentity
	filter   *messageFilter
	jokes    store.JokeStorer
	settings store.SettingStorer
	channels ChannelResolver
	sender   MessageSender

	state state
}

// Option defines an option for the Norrisbot
type Option func(*Norrisbot)

// OptionLog sets a custom logger for the bot (mostly so tests can inspect output)
func OptionLog(logger *log.Logger) Option {
	return func(b *Norrisbot) {
		b.log = NewSLogger(logger, b.config.GetBool(config.DebugKey))
	}
}

// OptionMeter overrides the default global otel meter used for instrumentation
func OptionMeter(meter metric.Meter) Option {
	return func(b *Norrisbot) {
		b.meter = meter
	}
}

// New creates a new Norrisbot with a name and its configuration
func New(name string, v *viper.Viper, options ...Option) (b *Norrisbot, err error) {
	b = new(Norrisbot)
	b.name = name
	b.config = v
	b.state = stateDisconnected
	b.meter = global.MeterProvider().Meter(name)

	for _, option := range options {
		option(b)
	}

	if b.log == nil {
		b.log = NewSLogger(log.New(os.Stdout, name+": ", log.Lshortfile|log.LstdFlags), v.GetBool(config.DebugKey))
	}

	b.instrumenter = newInstrumenter(name, b.meter)

	return b, nil
}

// Run connects to slack and processes events until the process is interrupted
// or a fatal setup condition is hit (invalid credentials, unresolvable
// identity, missing joke database)
func (b *Norrisbot) Run() (err error) {
	api := slack.New(
		b.config.GetString(config.TokenKey),
		slack.OptionDebug(b.config.GetBool(config.DebugKey)),
		slack.OptionLog(log.New(os.Stdout, "slack: ", log.Lshortfile|log.LstdFlags)),
	)

	rtm := api.NewRTM()
	b.state = stateConnecting

	go rtm.ManageConnection()
	go b.watchForTerminationSignalToAbort(rtm)

	for msg := range rtm.IncomingEvents {
		switch e := msg.Data.(type) {
		case *slack.ConnectedEvent:
			if b.state == stateReady {
				b.log.Debugf("Reconnected to slack (connection count [%d])\n", e.ConnectionCount)
				continue
			}

			if err = b.onConnected(api); err != nil {
				return err
			}

		case *slack.MessageEvent:
			b.processMessageEvent(e)

		case *slack.RTMError:
			b.log.Printf("RTM error: %s\n", e.Error())

		case *slack.InvalidAuthEvent:
			return errors.New("invalid slack credentials")

		default:
			// Ignoring other event types
		}
	}

	return nil
}

// onConnected runs the session setup: resolve our identity from the roster,
// open the stores and do the first-run check. Any failure here is fatal since
// the bot can't safely operate without an identity or a store
func (b *Norrisbot) onConnected(api *slack.Client) (err error) {
	b.state = stateConnected

	users, err := api.GetUsers()
	if err != nil {
		return errors.Wrap(err, "error listing the member roster")
	}

	b.self, err = ResolveSelf(users, b.config.GetString(config.BotNameKey))
	if err != nil {
		return err
	}

	b.log.Debugf("Resolved self id [%s] for name [%s]\n", b.self.ID, b.self.Name)

	b.filter = newMessageFilter(b.self)
	b.sender = &slackMsgSender{api: api, selfID: b.self.ID}

	b.channels, err = NewCachingChannelResolver(b.config, api, b.log)
	if err != nil {
		return err
	}

	if err = b.openStores(); err != nil {
		return err
	}

	channels, err := api.GetChannels(true)
	if err != nil {
		return errors.Wrap(err, "error listing channels for the first-run check")
	}

	if err = b.firstRunCheck(channels); err != nil {
		return err
	}

	go b.startHeartbeat()

	b.state = stateReady
	b.log.Printf("%s (v%s) ready\n", b.name, VERSION)

	return nil
}

// openStores opens the joke database and, when configured, a separate leveldb
// settings database. By default settings live in the joke database's info table
func (b *Norrisbot) openStores() (err error) {
	sdb, err := sqlitedb.New(b.config.GetString(config.StoragePathKey))
	if err != nil {
		return err
	}

	b.jokes = sdb
	b.settings = sdb

	if settingsPath := b.config.GetString(config.SettingsStoragePathKey); settingsPath != "" {
		ldb, err := store.NewLevelDB(b.name, settingsPath)
		if err != nil {
			return err
		}

		b.settings = ldb
	}

	return nil
}

// processMessageEvent filters a message event and hands qualifying ones to the
// reply flow. Events arriving before setup completed are dropped
func (b *Norrisbot) processMessageEvent(msgEvent *slack.MessageEvent) {
	if b.state != stateReady {
		b.log.Debugf("Dropping message event received in state [%d]\n", b.state)
		return
	}

	// reply_to is set by slack when acknowledging a message we sent; subtypes
	// cover message edits/deletions which aren't chat messages to react to
	if msgEvent.ReplyTo > 0 || msgEvent.SubType != "" {
		return
	}

	b.instrumenter.msgsSeen()

	m := &msgEvent.Msg
	if !b.filter.matches(m) {
		b.log.Debugf("Message in channel [%s] doesn't qualify for a reply\n", m.Channel)
		return
	}

	b.instrumenter.msgsMatched()
	b.replyWithJoke(m)
}

// watchForTerminationSignalToAbort waits for a SIGTERM or SIGINT and closes the rtm's IncomingEvents channel to finish
// the main Run() loop and terminate cleanly. Note that this is meant to run in a go routine given that this is blocking
func (b *Norrisbot) watchForTerminationSignalToAbort(rtm *slack.RTM) {
	tSignals := make(chan os.Signal, 1)
	// Register to be notified of termination signals so we can abort
	signal.Notify(tSignals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-tSignals

	b.log.Debugf("Received termination signal [%s], closing RTM's incoming events channel to terminate processing\n", sig)
	close(rtm.IncomingEvents)
}

// Close releases the store handles. It's safe to call before the connection
// setup has run
func (b *Norrisbot) Close() (err error) {
	if b.settings != nil && b.settings != b.jokes {
		if cerr := b.settings.Close(); cerr != nil {
			err = cerr
		}
	}

	if b.jokes != nil {
		if cerr := b.jokes.Close(); cerr != nil {
			err = cerr
		}
	}

	return err
}
