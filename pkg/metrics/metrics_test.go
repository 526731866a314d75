package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopWithoutApplication(t *testing.T) {
	ctx := context.Background()

	assert.NotPanics(t, func() {
		RecordCount(ctx, "count", 1)
		RecordDuration(ctx, "duration", time.Second)
		RecordEvent(ctx, "event", map[string]interface{}{"k": "v"})
	})

	tracer := TraceMethodCall(ctx, "struct", "method")
	assert.Nil(t, tracer)
	assert.NotPanics(t, func() {
		tracer.AddAttribute("k", "v")
		tracer.AddAttributes(map[string]interface{}{"k": "v"})
		tracer.AddAccount("account", make([]byte, 32))
		tracer.OnError(errors.New("failure"))
		tracer.End()
	})

	ctx, txn := StartTransaction(ctx, nil, "txn")
	assert.Nil(t, txn)
	assert.Nil(t, ctx.Value(NewRelicContextKey))
}
