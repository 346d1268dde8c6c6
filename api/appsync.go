package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sicko7947/recordkit"
)

// AppSync field names served by the Lambda resolver
const (
	FieldGetItem = "getItem"
	FieldPutItem = "putItem"
)

// AppSyncEvent is the payload of an AppSync direct Lambda resolver invocation
type AppSyncEvent struct {
	Arguments json.RawMessage `json:"arguments"`
	Info      AppSyncInfo     `json:"info"`
}

// AppSyncInfo identifies the GraphQL field being resolved
type AppSyncInfo struct {
	FieldName      string `json:"fieldName"`
	ParentTypeName string `json:"parentTypeName"`
}

type putItemArguments struct {
	Input recordkit.InsertInput `json:"input"`
}

// AppSyncHandler resolves getItem and putItem. Failures are returned in the
// Envelope rather than as a Lambda error so the response mapping can append
// the error type and message while keeping the partial data.
type AppSyncHandler struct {
	resolver *recordkit.Resolver
}

// NewAppSyncHandler creates a handler around resolver
func NewAppSyncHandler(resolver *recordkit.Resolver) *AppSyncHandler {
	return &AppSyncHandler{resolver: resolver}
}

// Handle is the Lambda entry point
func (h *AppSyncHandler) Handle(ctx context.Context, event AppSyncEvent) (Envelope, error) {
	switch event.Info.FieldName {
	case FieldGetItem:
		var args recordkit.FetchInput
		if err := decodeArguments(event.Arguments, &args); err != nil {
			return errorEnvelope(err), nil
		}
		record, err := h.resolver.Fetch(ctx, args)
		if err != nil {
			return errorEnvelope(err), nil
		}
		return dataEnvelope(record), nil

	case FieldPutItem:
		var args putItemArguments
		if err := decodeArguments(event.Arguments, &args); err != nil {
			return errorEnvelope(err), nil
		}
		record, err := h.resolver.Insert(ctx, args.Input)
		if err != nil {
			return errorEnvelope(err), nil
		}
		return dataEnvelope(record), nil

	default:
		return Envelope{}, fmt.Errorf("unsupported field %q", event.Info.FieldName)
	}
}

func decodeArguments(raw json.RawMessage, out interface{}) error {
	if len(raw) == 0 {
		return recordkit.NewValidationError("arguments are required")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return recordkit.NewValidationError("invalid arguments: %v", err)
	}
	return nil
}
