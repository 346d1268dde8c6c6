package recordkit

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Record attribute names
const (
	AttrName      = "name"
	AttrCreatedAt = "createdAt"
	AttrValue     = "value"
)

// RequestBuilder converts operation descriptors into store payloads.
// It holds no per-request state and is safe for concurrent use.
type RequestBuilder struct {
	clock      Clock
	serializer Serializer
	layout     string
}

// NewRequestBuilder creates a builder. Only WithClock, WithSerializer and the
// TimestampLayout of WithConfig affect it.
func NewRequestBuilder(opts ...Option) *RequestBuilder {
	return newRequestBuilder(applyOptions(opts))
}

func newRequestBuilder(o *options) *RequestBuilder {
	return &RequestBuilder{
		clock:      o.clock,
		serializer: o.serializer,
		layout:     o.config.TimestampLayout,
	}
}

// Build dispatches on the descriptor kind
func (b *RequestBuilder) Build(op OperationDescriptor) (*StoreOperation, error) {
	switch op.Kind {
	case OperationFetch:
		if op.Fetch == nil {
			return nil, NewValidationError("fetch operation has no input")
		}
		return b.BuildFetch(*op.Fetch)
	case OperationInsert:
		if op.Insert == nil {
			return nil, NewValidationError("insert operation has no input")
		}
		return b.BuildInsert(*op.Insert)
	default:
		return nil, NewValidationError("unknown operation kind %q", op.Kind)
	}
}

// BuildFetch builds a read payload keyed by name
func (b *RequestBuilder) BuildFetch(in FetchInput) (*StoreOperation, error) {
	if in.Name == "" {
		return nil, NewValidationError("name is required")
	}

	key, err := b.serializer.MarshalMap(map[string]interface{}{
		AttrName: in.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize fetch key: %w", err)
	}

	return &StoreOperation{
		Operation: StoreOperationGetItem,
		Key:       key,
	}, nil
}

// BuildInsert builds a conditional write that only succeeds if no item with
// the same (name, createdAt) exists. createdAt is assigned from the clock, so
// two inserts of one name within the same tick collide and one is rejected.
func (b *RequestBuilder) BuildInsert(in InsertInput) (*StoreOperation, error) {
	if in.Name == "" {
		return nil, NewValidationError("name is required")
	}

	value := 0.0
	if in.Value != nil {
		value = *in.Value
	}
	createdAt := FormatTimestamp(b.clock.Now(), b.layout)

	key, err := b.serializer.MarshalMap(map[string]interface{}{
		AttrName:      in.Name,
		AttrCreatedAt: createdAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize insert key: %w", err)
	}

	attrs, err := b.serializer.MarshalMap(map[string]interface{}{
		AttrName:      in.Name,
		AttrCreatedAt: createdAt,
		AttrValue:     value,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize insert attributes: %w", err)
	}

	cond, err := CompileCondition(NotExistsCondition(AttrName, AttrCreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to compile insert condition: %w", err)
	}

	return &StoreOperation{
		Operation:       StoreOperationPutItem,
		Key:             key,
		AttributeValues: attrs,
		Condition:       cond,
	}, nil
}

// Item merges key and attribute values into the item written by a put
func (op *StoreOperation) Item() Item {
	item := make(Item, len(op.Key)+len(op.AttributeValues))
	for k, v := range op.AttributeValues {
		item[k] = v
	}
	for k, v := range op.Key {
		item[k] = v
	}
	return item
}

// GetItemInput renders the payload as a DynamoDB GetItem request
func (op *StoreOperation) GetItemInput(tableName string) *dynamodb.GetItemInput {
	return &dynamodb.GetItemInput{
		TableName: aws.String(tableName),
		Key:       op.Key,
	}
}

// PutItemInput renders the payload as a DynamoDB PutItem request. The old
// item is requested on condition failure so it can be surfaced as a partial
// result.
func (op *StoreOperation) PutItemInput(tableName string) *dynamodb.PutItemInput {
	input := &dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      op.Item(),
	}

	if op.Condition != nil {
		input.ConditionExpression = aws.String(op.Condition.Expression)
		input.ExpressionAttributeNames = op.Condition.ExpressionNames
		input.ExpressionAttributeValues = op.Condition.ExpressionValues
		input.ReturnValuesOnConditionCheckFailure = types.ReturnValuesOnConditionCheckFailureAllOld
	}

	return input
}
