package metrics

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

type newRelicContextKey struct{}

// NewRelicContextKey is the context key for the New Relic application used by
// RecordCount and RecordEvent.
var NewRelicContextKey = newRelicContextKey{}

// NewContext attaches a New Relic application to ctx. Calls made with a
// context lacking one are no-ops.
func NewContext(ctx context.Context, app *newrelic.Application) context.Context {
	return context.WithValue(ctx, NewRelicContextKey, app)
}

// StartTransaction starts a New Relic transaction and returns a context that
// carries both the application and the transaction, so TraceMethodCall
// segments nest under it.
func StartTransaction(ctx context.Context, app *newrelic.Application, name string) (context.Context, *newrelic.Transaction) {
	if app == nil {
		return ctx, nil
	}

	txn := app.StartTransaction(name)
	ctx = NewContext(ctx, app)
	return newrelic.NewContext(ctx, txn), txn
}
