package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyClaimed      = errors.New("reward already claimed")
	ErrNotEligible         = errors.New("reward is not eligible for claim")
	ErrInsufficientBalance = errors.New("insufficient points balance")
	ErrItemUnavailable     = errors.New("shop item is unavailable")
	ErrWouldGoNegative     = errors.New("balance would go negative")
	ErrConflict            = errors.New("conflicting write")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidInput        = errors.New("invalid input")
	ErrPaymentDeclined     = errors.New("payment declined")
)

// StoreError wraps a failure talking to the backing store. It is the only
// error kind callers may retry.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// IsRetryable reports whether err is an infrastructure fault rather than a domain rejection
func IsRetryable(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}
