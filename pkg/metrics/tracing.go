package metrics

import (
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// TraceMethodCall starts a segment named "<structOrPackageName> <methodName>"
// under the transaction in ctx. Without a transaction it returns nil, and
// every MethodTracer method is safe to call on nil.
func TraceMethodCall(ctx context.Context, structOrPackageName, methodName string) *MethodTracer {
	txn := newrelic.FromContext(ctx)
	if txn == nil {
		return nil
	}

	return &MethodTracer{
		txn: txn,
		seg: txn.StartSegment(fmt.Sprintf("%s %s", structOrPackageName, methodName)),
	}
}

type MethodTracer struct {
	txn *newrelic.Transaction
	seg *newrelic.Segment
}

func (t *MethodTracer) AddAttribute(key string, value interface{}) {
	if t == nil {
		return
	}
	t.seg.AddAttribute(key, value)
}

func (t *MethodTracer) AddAttributes(attributes map[string]interface{}) {
	if t == nil {
		return
	}
	for key, value := range attributes {
		t.seg.AddAttribute(key, value)
	}
}

// AddAccount records an account address in its base58 form.
func (t *MethodTracer) AddAccount(key string, account ed25519.PublicKey) {
	if t == nil || len(account) == 0 {
		return
	}
	t.seg.AddAttribute(key, base58.Encode(account))
}

// OnError notices err on the transaction. Nil errors are ignored.
func (t *MethodTracer) OnError(err error) {
	if t == nil || err == nil {
		return
	}
	t.txn.NoticeError(err)
}

func (t *MethodTracer) End() {
	if t == nil {
		return
	}
	t.seg.End()
}
