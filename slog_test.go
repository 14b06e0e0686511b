package norrisbot_test

import (
	"github.com/alexandre-normand/norrisbot"
	"github.com/stretchr/testify/assert"
	"log"
	"strings"
	"testing"
)

func TestDebugfWithDebugEnabled(t *testing.T) {
	var b strings.Builder
	logger := norrisbot.NewSLogger(log.New(&b, "", 0), true)

	logger.Debugf("Debug line with [%s]\n", "value")

	assert.Contains(t, b.String(), "Debug line with [value]")
}

func TestDebugfWithDebugDisabled(t *testing.T) {
	var b strings.Builder
	logger := norrisbot.NewSLogger(log.New(&b, "", 0), false)

	logger.Debugf("Debug line with [%s]\n", "value")

	assert.Equal(t, "", b.String())
}

func TestPrintfAlwaysLogs(t *testing.T) {
	var b strings.Builder
	logger := norrisbot.NewSLogger(log.New(&b, "", 0), false)

	logger.Printf("Joke [%d] served\n", 1)

	assert.Contains(t, b.String(), "Joke [1] served")
}
