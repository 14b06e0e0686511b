// Package store defines the persistence interfaces consumed by norrisbot
// along with a leveldb-backed settings implementation. The default backend
// holding both jokes and settings lives in the sqlitedb subpackage.
package store

import (
	"github.com/pkg/errors"
)

// Joke is a single joke row along with its usage counter
type Joke struct {
	ID         int64
	Text       string
	UsageCount int64
}

var (
	// ErrNoJokesAvailable is returned by PickLeastUsedJoke when the jokes table is empty
	ErrNoJokesAvailable = errors.New("no jokes available")

	// ErrJokeNotFound is returned when a joke id doesn't exist (anymore)
	ErrJokeNotFound = errors.New("joke not found")
)

// SettingStorer is implemented by any value that can persist bot settings
// as single-row key/value pairs
type SettingStorer interface {
	// GetSetting returns the value for a key. A missing key is not an error:
	// callers get the zero value with ok set to false
	GetSetting(key string) (value string, ok bool, err error)

	// PutSetting inserts the value for a key or updates it in place. Calling
	// it twice with the same key/value leaves a single row behind
	PutSetting(key string, value string) (err error)

	// Close closes the storer
	Close() (err error)
}

// JokeStorer is the full storage contract for the bot: the joke table plus
// the settings. The bot never writes jokes other than through MarkServed
type JokeStorer interface {
	SettingStorer

	// PickLeastUsedJoke returns one joke selected uniformly at random among
	// the jokes tied for the smallest usage count
	PickLeastUsedJoke() (j Joke, err error)

	// MarkServed increments the usage counter of the joke by exactly 1 and
	// returns ErrJokeNotFound if the id doesn't exist
	MarkServed(id int64) (err error)
}
