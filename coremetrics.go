package norrisbot

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/api/key"
	"go.opentelemetry.io/otel/api/metric"
)

// instrumenter holds data for core instrumentation
type instrumenter struct {
	appName     string
	coreMetrics coreMetrics
}

// coreMetrics holds the core norrisbot metrics
type coreMetrics struct {
	msgsSeen              metric.BoundInt64Counter
	msgsMatched           metric.BoundInt64Counter
	jokesServed           metric.BoundInt64Counter
	postErrors            metric.BoundInt64Counter
	jokePickLatencyMillis metric.BoundInt64Measure
}

// newInstrumenter creates a new core instrumenter
func newInstrumenter(appName string, meter metric.Meter) (ins *instrumenter) {
	ins = new(instrumenter)
	ins.appName = appName

	defaultLabels := meter.Labels(key.New("name").String(appName))

	msgsSeen := meter.NewInt64Counter("msgSeen", metric.WithKeys(key.New("name")))
	msgsMatched := meter.NewInt64Counter("msgMatched", metric.WithKeys(key.New("name")))
	jokesServed := meter.NewInt64Counter("jokesServed", metric.WithKeys(key.New("name")))
	postErrors := meter.NewInt64Counter("postErrors", metric.WithKeys(key.New("name")))
	pickLatency := meter.NewInt64Measure("jokePickLatencyMillis", metric.WithKeys(key.New("name")))

	ins.coreMetrics = coreMetrics{msgsSeen: msgsSeen.Bind(defaultLabels),
		msgsMatched:           msgsMatched.Bind(defaultLabels),
		jokesServed:           jokesServed.Bind(defaultLabels),
		postErrors:            postErrors.Bind(defaultLabels),
		jokePickLatencyMillis: pickLatency.Bind(defaultLabels)}

	return ins
}

func (ins *instrumenter) msgsSeen() {
	ins.coreMetrics.msgsSeen.Add(context.Background(), 1)
}

func (ins *instrumenter) msgsMatched() {
	ins.coreMetrics.msgsMatched.Add(context.Background(), 1)
}

func (ins *instrumenter) jokeServed() {
	ins.coreMetrics.jokesServed.Add(context.Background(), 1)
}

func (ins *instrumenter) postError() {
	ins.coreMetrics.postErrors.Add(context.Background(), 1)
}

func (ins *instrumenter) jokePickLatency(d time.Duration) {
	ins.coreMetrics.jokePickLatencyMillis.Record(context.Background(), int64(d/time.Millisecond))
}

type timed func()

// measure returns the execution duration of a timed function
func measure(operation timed) (d time.Duration) {
	before := time.Now()

	operation()

	return time.Now().Sub(before)
}
