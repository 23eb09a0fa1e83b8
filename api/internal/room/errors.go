package room

import (
	"errors"
	"fmt"
)

// ErrNoReference is returned by stores when the user never captured a tidy room.
var ErrNoReference = errors.New("no reference room captured")

// ErrInternal marks an unexpected failure (a recovered panic) inside reconcile.
var ErrInternal = errors.New("internal error")

// StoreError is a failed read or write of the reference or progress store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
