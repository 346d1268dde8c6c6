package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sicko7947/recordkit"
)

// Error types reported by MemoryStore, matching DynamoDB's codes
const (
	ErrTypeValidationException = "ValidationException"

	conditionalFailureMessage = "The conditional request failed"
)

// MemoryStore implements recordkit.ItemStore using in-memory storage (for testing).
// Conditions are evaluated and applied under a single lock, so concurrent
// conditional puts on one key admit exactly one writer.
type MemoryStore struct {
	items map[string]recordkit.Item // encoded full key -> item
	mu    sync.RWMutex
}

// NewMemoryStore creates a new in-memory item store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]recordkit.Item),
	}
}

// Get returns the item under op.Key. A key holding only the partition
// attribute matches the item with the greatest sort key in that partition.
func (s *MemoryStore) Get(ctx context.Context, op *recordkit.StoreOperation) recordkit.StoreResult {
	partition, ok := keyString(op.Key[AttrPartitionKey])
	if !ok {
		return validationFailure("the provided key element does not match the schema")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, hasSort := op.Key[AttrSortKey]; hasSort {
		key, err := encodeKey(op.Key)
		if err != nil {
			return validationFailure(err.Error())
		}
		return recordkit.Success(copyItem(s.items[key]))
	}

	var (
		latest     recordkit.Item
		latestSort string
	)
	for _, item := range s.items {
		p, _ := keyString(item[AttrPartitionKey])
		if p != partition {
			continue
		}
		sk, _ := keyString(item[AttrSortKey])
		if latest == nil || sk > latestSort {
			latest, latestSort = item, sk
		}
	}

	return recordkit.Success(copyItem(latest))
}

// Put stores op's item if its condition holds against the current item.
// On condition failure the current item is returned as the partial result.
func (s *MemoryStore) Put(ctx context.Context, op *recordkit.StoreOperation) recordkit.StoreResult {
	item := op.Item()
	key, err := encodeKey(item)
	if err != nil {
		return validationFailure(err.Error())
	}

	clauses, err := ParseCondition(op.Condition)
	if err != nil {
		return validationFailure(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.items[key]
	if op.Condition != nil && !Evaluate(clauses, existing) {
		return recordkit.Failed(&recordkit.StoreFailure{
			Type:    recordkit.ErrTypeConditionalCheckFailed,
			Message: conditionalFailureMessage,
		}, copyItem(existing))
	}

	s.items[key] = copyItem(item)
	return recordkit.Success(nil)
}

// Len returns the number of stored items
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func validationFailure(message string) recordkit.StoreResult {
	return recordkit.Failed(&recordkit.StoreFailure{
		Type:    ErrTypeValidationException,
		Message: message,
	}, nil)
}

// encodeKey joins the full key schema of item into a map key
func encodeKey(item recordkit.Item) (string, error) {
	parts := make([]string, 0, len(keyAttributes))
	for _, attr := range keyAttributes {
		v, ok := keyString(item[attr])
		if !ok {
			return "", fmt.Errorf("missing or invalid key attribute %s", attr)
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, "\x00"), nil
}

func keyString(av types.AttributeValue) (string, bool) {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value, true
	case *types.AttributeValueMemberN:
		return v.Value, true
	case *types.AttributeValueMemberB:
		return string(v.Value), true
	default:
		return "", false
	}
}

func copyItem(item recordkit.Item) recordkit.Item {
	if item == nil {
		return nil
	}
	out := make(recordkit.Item, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
