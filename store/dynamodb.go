package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/sicko7947/recordkit"
)

// DynamoDBStore implements recordkit.ItemStore using AWS DynamoDB.
// Conditional writes are evaluated atomically by DynamoDB itself.
type DynamoDBStore struct {
	client    DynamoDBClient
	tableName string
}

// NewDynamoDBStore creates a new DynamoDB-backed item store
func NewDynamoDBStore(client DynamoDBClient, tableName string) recordkit.ItemStore {
	return &DynamoDBStore{
		client:    client,
		tableName: tableName,
	}
}

// Get reads a single item. A missing item is a success with a nil item.
func (s *DynamoDBStore) Get(ctx context.Context, op *recordkit.StoreOperation) recordkit.StoreResult {
	result, err := s.client.GetItem(ctx, op.GetItemInput(s.tableName))
	if err != nil {
		return failureFromError(fmt.Errorf("failed to get item: %w", err))
	}

	if len(result.Item) == 0 {
		return recordkit.Success(nil)
	}

	return recordkit.Success(result.Item)
}

// Put writes an item, applying op.Condition if present
func (s *DynamoDBStore) Put(ctx context.Context, op *recordkit.StoreOperation) recordkit.StoreResult {
	result, err := s.client.PutItem(ctx, op.PutItemInput(s.tableName))
	if err != nil {
		return failureFromError(fmt.Errorf("failed to put item: %w", err))
	}

	if len(result.Attributes) == 0 {
		return recordkit.Success(nil)
	}

	return recordkit.Success(result.Attributes)
}

// failureFromError keeps the service's error code and message intact. A
// failed conditional write carries the existing item as the partial result.
func failureFromError(err error) recordkit.StoreResult {
	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return recordkit.Failed(&recordkit.StoreFailure{
			Type:    recordkit.ErrTypeConditionalCheckFailed,
			Message: condErr.ErrorMessage(),
			Cause:   err,
		}, condErr.Item)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return recordkit.Failed(&recordkit.StoreFailure{
			Type:    apiErr.ErrorCode(),
			Message: apiErr.ErrorMessage(),
			Cause:   err,
		}, nil)
	}

	return recordkit.Failed(&recordkit.StoreFailure{
		Type:    recordkit.ErrTypeStore,
		Message: err.Error(),
		Cause:   err,
	}, nil)
}
