package api

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sicko7947/recordkit"
	"github.com/sicko7947/recordkit/store"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestResolver(t *testing.T, backend recordkit.ItemStore) *recordkit.Resolver {
	t.Helper()
	if backend == nil {
		backend = store.NewMemoryStore()
	}
	return recordkit.NewResolver(backend,
		recordkit.WithClock(recordkit.ClockFunc(func() time.Time { return testNow })),
		recordkit.WithLogger(zerolog.Nop()),
	)
}

// failingStore answers every call with the same failure
type failingStore struct {
	failure recordkit.StoreFailure
}

func (s failingStore) Get(ctx context.Context, op *recordkit.StoreOperation) recordkit.StoreResult {
	return recordkit.Failed(&s.failure, nil)
}

func (s failingStore) Put(ctx context.Context, op *recordkit.StoreOperation) recordkit.StoreResult {
	return recordkit.Failed(&s.failure, nil)
}
