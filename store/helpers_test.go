package store

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sicko7947/recordkit"
)

func attrS(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

func attrN(v string) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: v}
}

// fixedBuilder returns a request builder whose clock is pinned to now
func fixedBuilder(now time.Time) *recordkit.RequestBuilder {
	return recordkit.NewRequestBuilder(
		recordkit.WithClock(recordkit.ClockFunc(func() time.Time { return now })),
	)
}
