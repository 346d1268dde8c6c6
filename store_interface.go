package recordkit

import "context"

// ItemStore is the document store the resolver talks to. Implementations must
// evaluate and apply a put's Condition atomically. Failures are reported in
// the returned StoreResult, never retried.
type ItemStore interface {
	Get(ctx context.Context, op *StoreOperation) StoreResult
	Put(ctx context.Context, op *StoreOperation) StoreResult
}
