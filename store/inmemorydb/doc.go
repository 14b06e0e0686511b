/*
Package inmemorydb provides a volatile implementation of store.JokeStorer
holding jokes and settings in memory, with an injectable random source so
tests can pin down the least-used tie-breaking.
*/
package inmemorydb
