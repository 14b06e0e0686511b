/*
Package sqlitedb provides the default norrisbot storage backend on a local
sqlite database file with two tables:
 - jokes: id, joke, used (the usage counter)
 - info: name, val (single-row-per-key settings, i.e. "lastrun")

The bot requires the file to exist at startup (New fails otherwise); the
norrisbot-seed command creates and fills it.
*/
package sqlitedb
