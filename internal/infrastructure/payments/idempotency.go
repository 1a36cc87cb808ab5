package payments

import (
	"context"
	"net/http"
	"time"

	"github.com/mercadopago/sdk-go/pkg/requester"
)

const (
	idempotencyHeader = "X-Idempotency-Key"
	requestTimeout    = 10 * time.Second
)

type idempotencyKeyCtx struct{}

func withIdempotencyKey(ctx context.Context, key string) context.Context {
	if key == "" {
		return ctx
	}
	return context.WithValue(ctx, idempotencyKeyCtx{}, key)
}

// idempotentRequester replaces the random X-Idempotency-Key the SDK sets on
// every POST with the key carried by the request context.
type idempotentRequester struct {
	client *http.Client
}

var _ requester.Requester = (*idempotentRequester)(nil)

func newIdempotentRequester(client *http.Client) *idempotentRequester {
	return &idempotentRequester{client: client}
}

func (r *idempotentRequester) Do(req *http.Request) (*http.Response, error) {
	if key, ok := req.Context().Value(idempotencyKeyCtx{}).(string); ok {
		req = req.Clone(req.Context())
		req.Header.Set(idempotencyHeader, key)
	}
	return r.client.Do(req)
}
