package recordkit

// MapResponse converts a store result into the caller-visible result.
// Successful items pass through unchanged; a nil item means no match.
// Failures keep the store's type and message verbatim and carry the partial
// item, if any.
func MapResponse(res StoreResult) (Item, error) {
	if res.OK() {
		return res.Item, nil
	}

	failure := res.Failure
	errType := failure.Type
	if errType == "" {
		errType = ErrTypeStore
	}

	return nil, &ResolverError{
		Type:    errType,
		Message: failure.Message,
		Partial: res.Item,
		cause:   failure.Cause,
	}
}
