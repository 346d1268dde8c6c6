package recordkit

import (
	"time"

	"github.com/rs/zerolog"
)

// Log event names
const (
	EventRequestRejected   = "request_rejected"
	EventRecordFetched     = "record_fetched"
	EventRecordNotFound    = "record_not_found"
	EventRecordInserted    = "record_inserted"
	EventDuplicateRejected = "duplicate_rejected"
	EventStoreFailure      = "store_failure"
)

// LogRequestRejected logs a request that failed validation
func LogRequestRejected(logger zerolog.Logger, err error) {
	logger.Warn().
		Str("event", EventRequestRejected).
		Err(err).
		Msg("Request rejected")
}

// LogRecordFetched logs a successful fetch
func LogRecordFetched(logger zerolog.Logger, name string, duration time.Duration) {
	logger.Debug().
		Str("event", EventRecordFetched).
		Str("name", name).
		Dur("duration", duration).
		Msg("Record fetched")
}

// LogRecordNotFound logs a fetch with no matching record
func LogRecordNotFound(logger zerolog.Logger, name string) {
	logger.Debug().
		Str("event", EventRecordNotFound).
		Str("name", name).
		Msg("Record not found")
}

// LogRecordInserted logs a successful conditional insert
func LogRecordInserted(logger zerolog.Logger, name, createdAt string, duration time.Duration) {
	logger.Info().
		Str("event", EventRecordInserted).
		Str("name", name).
		Str("created_at", createdAt).
		Dur("duration", duration).
		Msg("Record inserted")
}

// LogDuplicateRejected logs an insert whose key already existed
func LogDuplicateRejected(logger zerolog.Logger, name, createdAt string) {
	logger.Warn().
		Str("event", EventDuplicateRejected).
		Str("name", name).
		Str("created_at", createdAt).
		Msg("Duplicate record rejected")
}

// LogStoreFailure logs a failure reported by the store
func LogStoreFailure(logger zerolog.Logger, operation StoreOperationType, err error) {
	logger.Error().
		Str("event", EventStoreFailure).
		Str("operation", string(operation)).
		Err(err).
		Msg("Store failure")
}

// RequestLogger creates a logger enriched with request context
func RequestLogger(baseLogger zerolog.Logger, requestID string, kind OperationKind) zerolog.Logger {
	return baseLogger.With().
		Str("request_id", requestID).
		Str("operation", kind.String()).
		Logger()
}
