package inventory

import (
	"errors"
	"fmt"
)

// ErrNothingToUpdate is returned by Update when no field was supplied.
var ErrNothingToUpdate = errors.New("no fields to update")

// ValidationError reports a rejected input field. The store performs no
// writes when validation fails.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an unknown product id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product with id %d not found", e.ID)
}

// DuplicateNameError reports a violation of the product name unique
// constraint. Nothing is written when it occurs.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("product %q already exists", e.Name)
}

// NegativeStockError reports a movement that would take a product's
// quantity below zero. The product is left untouched.
type NegativeStockError struct {
	Name    string
	Current int
	Delta   int
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("stock for %q cannot go negative (current %d, delta %d)", e.Name, e.Current, e.Delta)
}

// StorageError wraps an underlying persistence failure not otherwise
// classified. The transaction it occurred in is rolled back.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
