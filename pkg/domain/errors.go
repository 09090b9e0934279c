package domain

import (
	"errors"
	"fmt"
)

// EntityModerationResult names stored moderation records in not-found errors.
const EntityModerationResult = "moderation_result"

var ErrEntityNotFound *notFoundError

// notFoundError is keyed by the caller's identifier; listing IDs are free-form strings, not UUIDs.
type notFoundError struct {
	EntityType string
	Key        string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s for '%s' not found", e.EntityType, e.Key)
}

func NewNotFoundError(entityType string, key string) error {
	return &notFoundError{EntityType: entityType, Key: key}
}

func IsNotFoundError(err error) bool {
	var nf *notFoundError
	return errors.As(err, &nf)
}
