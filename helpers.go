package recordkit

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// ToPtr returns a pointer to the given value.
// This is useful for creating pointers to literals, e.g. InsertInput.Value.
func ToPtr[T any](v T) *T {
	return &v
}

// Clock supplies the current instant used for createdAt
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock
type ClockFunc func() time.Time

// Now implements Clock
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns the wall clock
func SystemClock() Clock {
	return ClockFunc(time.Now)
}

// Serializer converts native values to and from the store's attribute-value
// encoding. It must be total and type-preserving over string, number,
// boolean and nil values.
type Serializer interface {
	MarshalMap(in map[string]interface{}) (Item, error)
	UnmarshalMap(item Item, out interface{}) error
}

// AttributeValueSerializer is the default Serializer backed by the AWS SDK
// attributevalue package
type AttributeValueSerializer struct{}

// MarshalMap implements Serializer
func (AttributeValueSerializer) MarshalMap(in map[string]interface{}) (Item, error) {
	return attributevalue.MarshalMap(in)
}

// UnmarshalMap implements Serializer
func (AttributeValueSerializer) UnmarshalMap(item Item, out interface{}) error {
	return attributevalue.UnmarshalMap(item, out)
}

// FormatTimestamp renders t in UTC using layout
func FormatTimestamp(t time.Time, layout string) string {
	return t.UTC().Format(layout)
}
