package repositories

import (
	"errors"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a uniqueness constraint is violated
	// (username, one comment per order).
	ErrDuplicate = errors.New("duplicate record")

	// ErrStaleStatus is returned by a guarded status update when the row
	// no longer carries the expected current status. The caller lost a
	// concurrent transition race.
	ErrStaleStatus = errors.New("order status changed concurrently")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

func IsStaleStatusError(err error) bool {
	return errors.Is(err, ErrStaleStatus)
}
