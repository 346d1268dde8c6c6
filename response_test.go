package recordkit

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapResponse_Success(t *testing.T) {
	item := Item{AttrName: &types.AttributeValueMemberS{Value: "foo"}}

	got, err := MapResponse(Success(item))
	require.NoError(t, err)
	assert.Equal(t, item, got)
}

func TestMapResponse_Absent(t *testing.T) {
	got, err := MapResponse(Success(nil))
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMapResponse_FailurePreservesTypeMessageAndPartial(t *testing.T) {
	partial := Item{AttrName: &types.AttributeValueMemberS{Value: "foo"}}
	cause := errors.New("wire error")

	got, err := MapResponse(Failed(&StoreFailure{
		Type:    ErrTypeConditionalCheckFailed,
		Message: "The conditional request failed",
		Cause:   cause,
	}, partial))
	assert.Nil(t, got)
	require.Error(t, err)

	re, ok := AsResolverError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTypeConditionalCheckFailed, re.Type)
	assert.Equal(t, "The conditional request failed", re.Message)
	assert.Equal(t, partial, re.Partial)
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsConditionalCheckFailed(err))
}

func TestMapResponse_UntypedFailure(t *testing.T) {
	_, err := MapResponse(Failed(&StoreFailure{Message: "unavailable"}, nil))

	re, ok := AsResolverError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTypeStore, re.Type)
	assert.Equal(t, "unavailable", re.Message)
	assert.Nil(t, re.Partial)
}
