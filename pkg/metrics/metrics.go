package metrics

import (
	"context"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

func applicationFrom(ctx context.Context) *newrelic.Application {
	app, _ := ctx.Value(NewRelicContextKey).(*newrelic.Application)
	return app
}

// RecordCount records a count metric
func RecordCount(ctx context.Context, metricName string, count uint64) {
	if app := applicationFrom(ctx); app != nil {
		app.RecordCustomMetric(metricName, float64(count))
	}
}

// RecordDuration records a duration metric in milliseconds
func RecordDuration(ctx context.Context, metricName string, duration time.Duration) {
	if app := applicationFrom(ctx); app != nil {
		app.RecordCustomMetric(metricName, float64(duration/time.Millisecond))
	}
}

// RecordEvent records a custom event. Values must be strings, numbers or
// booleans.
func RecordEvent(ctx context.Context, eventName string, kvPairs map[string]interface{}) {
	if app := applicationFrom(ctx); app != nil {
		app.RecordCustomEvent(eventName, kvPairs)
	}
}
