package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/sicko7947/recordkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDynamoDBClient implements DynamoDBClient interface for testing
type mockDynamoDBClient struct {
	putItemFunc func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	getItemFunc func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

func (m *mockDynamoDBClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if m.putItemFunc != nil {
		return m.putItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDynamoDBClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if m.getItemFunc != nil {
		return m.getItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.GetItemOutput{}, nil
}

func TestNewDynamoDBStore(t *testing.T) {
	store := NewDynamoDBStore(&mockDynamoDBClient{}, "test-table")
	require.NotNil(t, store)

	// Verify it implements the interface
	var _ recordkit.ItemStore = store
}

func TestDynamoDBStore_Put(t *testing.T) {
	var capturedInput *dynamodb.PutItemInput

	client := &mockDynamoDBClient{
		putItemFunc: func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			capturedInput = params
			return &dynamodb.PutItemOutput{}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	op, err := fixedBuilder(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)).
		BuildInsert(recordkit.InsertInput{Name: "foo", Value: recordkit.ToPtr(5.0)})
	require.NoError(t, err)

	res := store.Put(context.Background(), op)
	require.True(t, res.OK())
	assert.Nil(t, res.Item)

	require.NotNil(t, capturedInput, "PutItem was not called")
	assert.Equal(t, "test-table", *capturedInput.TableName)

	assert.Equal(t, attrS("foo"), capturedInput.Item[recordkit.AttrName])
	assert.Equal(t, attrS("2024-05-01T12:00:00.000Z"), capturedInput.Item[recordkit.AttrCreatedAt])
	assert.Equal(t, attrN("5"), capturedInput.Item[recordkit.AttrValue])

	require.NotNil(t, capturedInput.ConditionExpression)
	assert.Equal(t, "attribute_not_exists(#createdAt) AND attribute_not_exists(#name)", *capturedInput.ConditionExpression)
	assert.Equal(t, map[string]string{"#createdAt": "createdAt", "#name": "name"}, capturedInput.ExpressionAttributeNames)
	assert.Nil(t, capturedInput.ExpressionAttributeValues, "Empty value map must not be sent")
	assert.Equal(t, types.ReturnValuesOnConditionCheckFailureAllOld, capturedInput.ReturnValuesOnConditionCheckFailure)
}

func TestDynamoDBStore_Put_ConditionalCheckFailed(t *testing.T) {
	existing := recordkit.Item{
		recordkit.AttrName:      attrS("foo"),
		recordkit.AttrCreatedAt: attrS("2024-05-01T12:00:00.000Z"),
		recordkit.AttrValue:     attrN("1"),
	}

	client := &mockDynamoDBClient{
		putItemFunc: func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{
				Message: aws.String("The conditional request failed"),
				Item:    existing,
			}
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	op, err := fixedBuilder(time.Now()).BuildInsert(recordkit.InsertInput{Name: "foo"})
	require.NoError(t, err)

	res := store.Put(context.Background(), op)
	require.False(t, res.OK())
	assert.Equal(t, recordkit.ErrTypeConditionalCheckFailed, res.Failure.Type)
	assert.Equal(t, "The conditional request failed", res.Failure.Message)
	assert.Equal(t, existing, res.Item, "Partial item must be preserved")

	var condErr *types.ConditionalCheckFailedException
	assert.True(t, errors.As(res.Failure.Cause, &condErr))
}

func TestDynamoDBStore_Put_APIError(t *testing.T) {
	client := &mockDynamoDBClient{
		putItemFunc: func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			return nil, &smithy.GenericAPIError{
				Code:    "ProvisionedThroughputExceededException",
				Message: "Rate of requests exceeds the allowed throughput",
			}
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	op, err := fixedBuilder(time.Now()).BuildInsert(recordkit.InsertInput{Name: "foo"})
	require.NoError(t, err)

	res := store.Put(context.Background(), op)
	require.False(t, res.OK())
	assert.Equal(t, "ProvisionedThroughputExceededException", res.Failure.Type)
	assert.Equal(t, "Rate of requests exceeds the allowed throughput", res.Failure.Message)
	assert.Nil(t, res.Item)
}

func TestDynamoDBStore_Get(t *testing.T) {
	var capturedInput *dynamodb.GetItemInput
	stored := recordkit.Item{
		recordkit.AttrName:      attrS("foo"),
		recordkit.AttrCreatedAt: attrS("2024-05-01T12:00:00.000Z"),
		recordkit.AttrValue:     attrN("5"),
	}

	client := &mockDynamoDBClient{
		getItemFunc: func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
			capturedInput = params
			return &dynamodb.GetItemOutput{Item: stored}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	op, err := fixedBuilder(time.Now()).BuildFetch(recordkit.FetchInput{Name: "foo"})
	require.NoError(t, err)

	res := store.Get(context.Background(), op)
	require.True(t, res.OK())
	assert.Equal(t, stored, res.Item)

	require.NotNil(t, capturedInput)
	assert.Equal(t, "test-table", *capturedInput.TableName)
	assert.Equal(t, recordkit.Item{recordkit.AttrName: attrS("foo")}, capturedInput.Key)
}

func TestDynamoDBStore_Get_NotFound(t *testing.T) {
	store := NewDynamoDBStore(&mockDynamoDBClient{}, "test-table")
	op, err := fixedBuilder(time.Now()).BuildFetch(recordkit.FetchInput{Name: "missing"})
	require.NoError(t, err)

	res := store.Get(context.Background(), op)
	assert.True(t, res.OK())
	assert.Nil(t, res.Item)
}

func TestDynamoDBStore_Get_TransportError(t *testing.T) {
	client := &mockDynamoDBClient{
		getItemFunc: func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
			return nil, errors.New("connection reset by peer")
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	op, err := fixedBuilder(time.Now()).BuildFetch(recordkit.FetchInput{Name: "foo"})
	require.NoError(t, err)

	res := store.Get(context.Background(), op)
	require.False(t, res.OK())
	assert.Equal(t, recordkit.ErrTypeStore, res.Failure.Type)
	assert.Contains(t, res.Failure.Message, "connection reset by peer")
}
