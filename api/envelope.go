// Package api exposes a recordkit.Resolver over HTTP (Fiber) and as an
// AppSync direct Lambda resolver. Both transports answer with the same
// Envelope shape.
package api

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/sicko7947/recordkit"
)

// ErrTypeInternal marks failures that did not come from validation or the store
const ErrTypeInternal = "InternalError"

// Envelope is the uniform response body. Data carries the result on success
// and the partial result, if any, on failure.
type Envelope struct {
	Data  interface{} `json:"data"`
	Error *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody carries the machine-readable type and human-readable message
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func dataEnvelope(data interface{}) Envelope {
	return Envelope{Data: data}
}

func errorEnvelope(err error) Envelope {
	re, ok := recordkit.AsResolverError(err)
	if !ok {
		return Envelope{Error: &ErrorBody{Type: ErrTypeInternal, Message: err.Error()}}
	}

	env := Envelope{Error: &ErrorBody{Type: re.Type, Message: re.Message}}
	if re.Partial != nil {
		var partial map[string]interface{}
		if decodeErr := attributevalue.UnmarshalMap(re.Partial, &partial); decodeErr == nil {
			env.Data = partial
		}
	}
	return env
}
