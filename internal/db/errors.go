package db

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when an operation names a task id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports a task field the store refused to write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// StorageError wraps a failure of the underlying database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorage reports whether err came from the database itself.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: errors.WithStack(err)}
}

func notFound(id int64) error {
	return errors.Wrapf(ErrNotFound, "task %d", id)
}
