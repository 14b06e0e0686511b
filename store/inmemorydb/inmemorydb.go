package inmemorydb

import (
	"math/rand"
	"time"

	"github.com/alexandre-normand/norrisbot/store"
)

// InMemoryDB implements store.JokeStorer with everything held in memory.
// Nothing survives a restart so it's mostly useful for tests and for trying
// out the bot without seeding a database first
type InMemoryDB struct {
	jokes    []store.Joke
	settings map[string]string
	random   *rand.Rand
}

// New returns a new InMemoryDB loaded with the given jokes (ids assigned
// in order starting at 1, usage counters at zero)
func New(jokes ...string) (imdb *InMemoryDB) {
	return NewWithRandom(rand.New(rand.NewSource(time.Now().UnixNano())), jokes...)
}

// NewWithRandom is New with a caller-controlled random source for
// deterministic tie-breaking
func NewWithRandom(random *rand.Rand, jokes ...string) (imdb *InMemoryDB) {
	imdb = new(InMemoryDB)
	imdb.settings = make(map[string]string)
	imdb.random = random

	for i, text := range jokes {
		imdb.jokes = append(imdb.jokes, store.Joke{ID: int64(i + 1), Text: text})
	}

	return imdb
}

// PickLeastUsedJoke returns one of the jokes tied for the smallest usage
// count, picked uniformly at random
func (imdb *InMemoryDB) PickLeastUsedJoke() (j store.Joke, err error) {
	if len(imdb.jokes) == 0 {
		return store.Joke{}, store.ErrNoJokesAvailable
	}

	minUsage := imdb.jokes[0].UsageCount
	for _, candidate := range imdb.jokes {
		if candidate.UsageCount < minUsage {
			minUsage = candidate.UsageCount
		}
	}

	tied := make([]store.Joke, 0)
	for _, candidate := range imdb.jokes {
		if candidate.UsageCount == minUsage {
			tied = append(tied, candidate)
		}
	}

	return tied[imdb.random.Intn(len(tied))], nil
}

// MarkServed increments the joke's usage counter by exactly 1
func (imdb *InMemoryDB) MarkServed(id int64) (err error) {
	for i := range imdb.jokes {
		if imdb.jokes[i].ID == id {
			imdb.jokes[i].UsageCount++
			return nil
		}
	}

	return store.ErrJokeNotFound
}

// Jokes returns a snapshot of all jokes with their current usage counters
func (imdb *InMemoryDB) Jokes() (jokes []store.Joke) {
	jokes = make([]store.Joke, len(imdb.jokes))
	copy(jokes, imdb.jokes)

	return jokes
}

// GetSetting returns the value for a key, with ok false when missing
func (imdb *InMemoryDB) GetSetting(key string) (value string, ok bool, err error) {
	value, ok = imdb.settings[key]
	return value, ok, nil
}

// PutSetting inserts or updates the value for a key
func (imdb *InMemoryDB) PutSetting(key string, value string) (err error) {
	imdb.settings[key] = value
	return nil
}

// Close is a no-op, there's nothing to release
func (imdb *InMemoryDB) Close() (err error) {
	return nil
}
