package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record id does not exist in its collection.
var ErrNotFound = errors.New("record not found")

// StoreError wraps a durable-storage failure (driver error, quota,
// serialization). The record state at the time of the failure is unchanged.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// storeErr wraps err as a *StoreError unless it is nil or already a
// not-found sentinel.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
