package recordkit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Resolver runs one request/response cycle per call: build the payload, hand
// it to the store, map the response. It keeps no state between calls.
type Resolver struct {
	builder    *RequestBuilder
	store      ItemStore
	serializer Serializer
	logger     zerolog.Logger
	config     Config
}

// NewResolver creates a resolver over store with optional configuration.
// If no logger is provided, a default stdout logger with Info level is used.
func NewResolver(store ItemStore, opts ...Option) *Resolver {
	o := applyOptions(opts)
	return &Resolver{
		builder:    newRequestBuilder(o),
		store:      store,
		serializer: o.serializer,
		logger:     o.logger,
		config:     o.config,
	}
}

// Config returns the effective configuration
func (r *Resolver) Config() Config {
	return r.config
}

// Resolve executes any operation descriptor and returns the store's item
// unchanged. Fetch yields nil when nothing matches; Insert yields nil on
// success.
func (r *Resolver) Resolve(ctx context.Context, op OperationDescriptor) (Item, error) {
	logger := RequestLogger(r.logger, uuid.New().String(), op.Kind)

	storeOp, err := r.builder.Build(op)
	if err != nil {
		LogRequestRejected(logger, err)
		return nil, err
	}

	return r.execute(ctx, logger, storeOp)
}

// Fetch returns the record named in, or nil if none exists
func (r *Resolver) Fetch(ctx context.Context, in FetchInput) (*Record, error) {
	logger := RequestLogger(r.logger, uuid.New().String(), OperationFetch)
	start := time.Now()

	storeOp, err := r.builder.BuildFetch(in)
	if err != nil {
		LogRequestRejected(logger, err)
		return nil, err
	}

	item, err := r.execute(ctx, logger, storeOp)
	if err != nil {
		return nil, err
	}
	if item == nil {
		LogRecordNotFound(logger, in.Name)
		return nil, nil
	}

	var record Record
	if err := r.serializer.UnmarshalMap(item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	LogRecordFetched(logger, in.Name, time.Since(start))
	return &record, nil
}

// Insert writes a new record and returns it as stored. A record with the same
// (name, createdAt) yields a ConditionalCheckFailed *ResolverError.
func (r *Resolver) Insert(ctx context.Context, in InsertInput) (*Record, error) {
	logger := RequestLogger(r.logger, uuid.New().String(), OperationInsert)
	start := time.Now()

	storeOp, err := r.builder.BuildInsert(in)
	if err != nil {
		LogRequestRejected(logger, err)
		return nil, err
	}

	var record Record
	if err := r.serializer.UnmarshalMap(storeOp.AttributeValues, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	if _, err := r.execute(ctx, logger, storeOp); err != nil {
		if IsConditionalCheckFailed(err) {
			LogDuplicateRejected(logger, record.Name, record.CreatedAt)
		}
		return nil, err
	}

	LogRecordInserted(logger, record.Name, record.CreatedAt, time.Since(start))
	return &record, nil
}

func (r *Resolver) execute(ctx context.Context, logger zerolog.Logger, op *StoreOperation) (Item, error) {
	var res StoreResult
	switch op.Operation {
	case StoreOperationGetItem:
		res = r.store.Get(ctx, op)
	case StoreOperationPutItem:
		res = r.store.Put(ctx, op)
	default:
		return nil, fmt.Errorf("unsupported store operation %q", op.Operation)
	}

	item, err := MapResponse(res)
	if err != nil && !IsConditionalCheckFailed(err) {
		LogStoreFailure(logger, op.Operation, err)
	}
	return item, err
}
