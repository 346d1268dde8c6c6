package recordkit

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileCondition_Nil(t *testing.T) {
	cond, err := CompileCondition(nil)
	assert.NoError(t, err)
	assert.Nil(t, cond)

	cond, err = CompileCondition(ConditionSpec{})
	assert.NoError(t, err)
	assert.Nil(t, cond)
}

func TestCompileCondition_NotExists(t *testing.T) {
	cond, err := CompileCondition(NotExistsCondition(AttrName, AttrCreatedAt))
	require.NoError(t, err)

	assert.Equal(t, "attribute_not_exists(#createdAt) AND attribute_not_exists(#name)", cond.Expression)
	assert.Equal(t, map[string]string{
		"#createdAt": "createdAt",
		"#name":      "name",
	}, cond.ExpressionNames)
	assert.Nil(t, cond.ExpressionValues)
}

func TestCompileCondition_Exists(t *testing.T) {
	cond, err := CompileCondition(ConditionSpec{"id": AttributeExists(true)})
	require.NoError(t, err)

	assert.Equal(t, "attribute_exists(#id)", cond.Expression)
	assert.Nil(t, cond.ExpressionValues)
}

func TestCompileCondition_OmitsEmptyValues(t *testing.T) {
	spec := NotExistsCondition(AttrName, AttrCreatedAt)

	first, err := CompileCondition(spec)
	require.NoError(t, err)
	second, err := CompileCondition(spec)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, a, b, "Compilation should be deterministic")
	assert.NotContains(t, string(a), "expressionValues")
	assert.JSONEq(t, `{
		"expression": "attribute_not_exists(#createdAt) AND attribute_not_exists(#name)",
		"expressionNames": {"#createdAt": "createdAt", "#name": "name"}
	}`, string(a))
}

func TestCompileCondition_Equals(t *testing.T) {
	cond, err := CompileCondition(ConditionSpec{
		"status":  AttributeEquals{Value: "ACTIVE"},
		"deleted": AttributeExists(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "attribute_not_exists(#deleted) AND #status = :status", cond.Expression)
	require.Len(t, cond.ExpressionValues, 1)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "ACTIVE"}, cond.ExpressionValues[":status"])

	out, err := json.Marshal(cond)
	require.NoError(t, err)
	assert.Contains(t, string(out), "expressionValues")
}

func TestCompileCondition_SanitizesPlaceholders(t *testing.T) {
	cond, err := CompileCondition(ConditionSpec{
		"a-b": AttributeExists(false),
		"a_b": AttributeExists(false),
		"a.b": AttributeExists(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "attribute_not_exists(#a_b) AND attribute_exists(#a_b_1) AND attribute_not_exists(#a_b_2)", cond.Expression)
	assert.Equal(t, map[string]string{
		"#a_b":   "a-b",
		"#a_b_1": "a.b",
		"#a_b_2": "a_b",
	}, cond.ExpressionNames)
}

func TestCompileCondition_Errors(t *testing.T) {
	_, err := CompileCondition(ConditionSpec{"": AttributeExists(false)})
	assert.Error(t, err)

	_, err = CompileCondition(ConditionSpec{"name": nil})
	assert.Error(t, err)
}

func TestNotExistsCondition(t *testing.T) {
	spec := NotExistsCondition("a", "b")
	assert.Equal(t, ConditionSpec{
		"a": AttributeExists(false),
		"b": AttributeExists(false),
	}, spec)
}
