package recordkit

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// OperationKind identifies the logical operation a caller requested
type OperationKind string

const (
	OperationFetch  OperationKind = "FETCH"
	OperationInsert OperationKind = "INSERT"
)

// String returns the string representation
func (k OperationKind) String() string {
	return string(k)
}

// StoreOperationType is the store-level operation a payload targets
type StoreOperationType string

const (
	StoreOperationGetItem StoreOperationType = "GetItem"
	StoreOperationPutItem StoreOperationType = "PutItem"
)

// Item is a single store item in attribute-value encoding
type Item = map[string]types.AttributeValue

// Record is a timestamped record. (Name, CreatedAt) is its unique key.
type Record struct {
	Name      string  `json:"name" dynamodbav:"name"`
	CreatedAt string  `json:"createdAt" dynamodbav:"createdAt"`
	Value     float64 `json:"value" dynamodbav:"value"`
}

// FetchInput is the inbound shape of a Fetch call
type FetchInput struct {
	Name string `json:"name"`
}

// InsertInput is the inbound shape of an Insert call.
// A nil Value is stored as 0.
type InsertInput struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
}

// OperationDescriptor is a tagged request: Fetch is set for OperationFetch,
// Insert for OperationInsert.
type OperationDescriptor struct {
	Kind   OperationKind
	Fetch  *FetchInput
	Insert *InsertInput
}

// FetchOperation describes a fetch-by-name request
func FetchOperation(name string) OperationDescriptor {
	return OperationDescriptor{Kind: OperationFetch, Fetch: &FetchInput{Name: name}}
}

// InsertOperation describes a conditional insert request
func InsertOperation(name string, value *float64) OperationDescriptor {
	return OperationDescriptor{Kind: OperationInsert, Insert: &InsertInput{Name: name, Value: value}}
}

// StoreOperation is the store-level payload produced by RequestBuilder
type StoreOperation struct {
	Operation       StoreOperationType `json:"operation"`
	Key             Item               `json:"key"`
	AttributeValues Item               `json:"attributeValues,omitempty"`
	Condition       *CompiledCondition `json:"condition,omitempty"`
}

// StoreFailure is a structured failure reported by the store
type StoreFailure struct {
	Type    string
	Message string
	Cause   error
}

// StoreResult is the outcome of a single store call. A non-nil Failure marks
// the call as failed; Item next to a Failure is the partial result.
type StoreResult struct {
	Item    Item
	Failure *StoreFailure
}

// Success wraps a successful store response. A nil item means no match.
func Success(item Item) StoreResult {
	return StoreResult{Item: item}
}

// Failed wraps a failed store response together with any partial item
func Failed(failure *StoreFailure, partial Item) StoreResult {
	return StoreResult{Item: partial, Failure: failure}
}

// OK reports whether the store call succeeded
func (r StoreResult) OK() bool {
	return r.Failure == nil
}
