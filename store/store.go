// Package store provides ItemStore implementations for recordkit.
// The ItemStore interface is defined in the parent recordkit package
// (../store_interface.go) to avoid import cycles.
//
// This package contains concrete implementations:
//   - DynamoDBStore: AWS DynamoDB backend
//   - MemoryStore: In-memory backend for testing, with conditional writes
//
// The table layout is defined in schema.go.
package store
