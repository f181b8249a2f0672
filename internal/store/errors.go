package store

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write violates a uniqueness constraint,
// such as a duplicate email or a second application to the same job.
var ErrConflict = errors.New("conflict")

const uniqueViolationCode = "23505"

// translateError maps driver-level errors onto the store sentinels. A
// losing writer in a concurrent duplicate insert surfaces here as a
// unique violation rather than an opaque driver error.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return ErrConflict
	}
	return err
}
