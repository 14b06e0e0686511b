package sqlitedb

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/alexandre-normand/norrisbot/store"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	// sqlite driver registration
	_ "github.com/mattn/go-sqlite3"
)

const (
	pickLeastUsedQuery = "SELECT id, joke, used FROM jokes ORDER BY used ASC, RANDOM() LIMIT 1"
	getJokeQuery       = "SELECT id, joke, used FROM jokes WHERE id = ?"
	markServedStmt     = "UPDATE jokes SET used = used + 1 WHERE id = ?"
	countJokesQuery    = "SELECT COUNT(*) FROM jokes"
	addJokeStmt        = "INSERT INTO jokes (joke, used) SELECT ?, 0 WHERE NOT EXISTS (SELECT 1 FROM jokes WHERE joke = ?)"
	getSettingQuery    = "SELECT val FROM info WHERE name = ?"
	putSettingStmt     = "INSERT INTO info (name, val) VALUES (?, ?) ON CONFLICT (name) DO UPDATE SET val = excluded.val"
)

const schema = `
CREATE TABLE IF NOT EXISTS jokes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	joke TEXT NOT NULL,
	used INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS info (
	name TEXT PRIMARY KEY,
	val TEXT NOT NULL
);
`

// SQLiteDB holds the joke database. It implements store.JokeStorer with the
// jokes table and store.SettingStorer with the info table
type SQLiteDB struct {
	Path     string
	database *sql.DB
}

// New opens the joke database at path (a '~' prefix is expanded to the home
// directory). A missing file is an error rather than a trigger for creation:
// the driver would otherwise silently hand back an empty database and the
// bot would run forever without a single joke to tell. Use Create (or the
// norrisbot-seed command) to make a new database
func New(path string) (sdb *SQLiteDB, err error) {
	fullPath, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	if _, err = os.Stat(fullPath); err != nil {
		return nil, errors.Wrapf(err, "joke database missing or unreadable at [%s]", fullPath)
	}

	return open(fullPath)
}

// Create creates the joke database at path along with its schema (and any
// missing parent directory) and returns it opened. An existing database is
// opened as is
func Create(path string) (sdb *SQLiteDB, err error) {
	fullPath, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create directory for joke database [%s]", fullPath)
	}

	sdb, err = open(fullPath)
	if err != nil {
		return nil, err
	}

	if _, err = sdb.database.Exec(schema); err != nil {
		sdb.Close()
		return nil, errors.Wrapf(err, "failed to create schema in joke database [%s]", fullPath)
	}

	return sdb, nil
}

func open(fullPath string) (sdb *SQLiteDB, err error) {
	db, err := sql.Open("sqlite3", fullPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open joke database [%s]", fullPath)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "failed to open joke database [%s]", fullPath)
	}

	return &SQLiteDB{Path: fullPath, database: db}, nil
}

// PickLeastUsedJoke returns a joke picked uniformly at random among the jokes
// tied for the smallest usage count. Ordering by the used counter first and
// randomizing second means the single top row is always one of the least
// served jokes
func (sdb *SQLiteDB) PickLeastUsedJoke() (j store.Joke, err error) {
	err = sdb.database.QueryRow(pickLeastUsedQuery).Scan(&j.ID, &j.Text, &j.UsageCount)
	if err == sql.ErrNoRows {
		return store.Joke{}, store.ErrNoJokesAvailable
	}

	if err != nil {
		return store.Joke{}, errors.Wrap(err, "error picking a joke")
	}

	return j, nil
}

// MarkServed increments the joke's usage counter by exactly 1
func (sdb *SQLiteDB) MarkServed(id int64) (err error) {
	res, err := sdb.database.Exec(markServedStmt, id)
	if err != nil {
		return errors.Wrapf(err, "error marking joke [%d] served", id)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "error marking joke [%d] served", id)
	}

	if count == 0 {
		return store.ErrJokeNotFound
	}

	return nil
}

// Joke returns the joke with the given id or store.ErrJokeNotFound
func (sdb *SQLiteDB) Joke(id int64) (j store.Joke, err error) {
	err = sdb.database.QueryRow(getJokeQuery, id).Scan(&j.ID, &j.Text, &j.UsageCount)
	if err == sql.ErrNoRows {
		return store.Joke{}, store.ErrJokeNotFound
	}

	if err != nil {
		return store.Joke{}, errors.Wrapf(err, "error reading joke [%d]", id)
	}

	return j, nil
}

// AddJoke inserts a new joke with a zero usage counter and returns its id.
// A joke with the exact same text as an existing one is skipped, in which
// case the returned id is 0
func (sdb *SQLiteDB) AddJoke(text string) (id int64, err error) {
	res, err := sdb.database.Exec(addJokeStmt, text, text)
	if err != nil {
		return 0, errors.Wrap(err, "error adding joke")
	}

	count, err := res.RowsAffected()
	if err != nil || count == 0 {
		return 0, err
	}

	return res.LastInsertId()
}

// CountJokes returns the number of jokes in the database
func (sdb *SQLiteDB) CountJokes() (count int64, err error) {
	err = sdb.database.QueryRow(countJokesQuery).Scan(&count)
	return count, err
}

// GetSetting retrieves the value associated to the key from the info table.
// A missing key comes back with ok false and a nil error
func (sdb *SQLiteDB) GetSetting(key string) (value string, ok bool, err error) {
	err = sdb.database.QueryRow(getSettingQuery, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}

	if err != nil {
		return "", false, errors.Wrapf(err, "error reading setting [%s]", key)
	}

	return value, true, nil
}

// PutSetting adds or updates the value associated to the key in the info table
func (sdb *SQLiteDB) PutSetting(key string, value string) (err error) {
	if _, err = sdb.database.Exec(putSettingStmt, key, value); err != nil {
		return errors.Wrapf(err, "error writing setting [%s]", key)
	}

	return nil
}

// Close closes the underlying database
func (sdb *SQLiteDB) Close() (err error) {
	return sdb.database.Close()
}
