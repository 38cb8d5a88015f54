package content

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no unit exists at an address.
	ErrNotFound = errors.New("content not found")

	// ErrInvalidCategory is returned for category names that are not known.
	ErrInvalidCategory = errors.New("invalid category")
)

type categoryError struct {
	name string
}

func (e *categoryError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidCategory, e.name)
}

func (e *categoryError) Unwrap() error {
	return ErrInvalidCategory
}

// MetadataError reports metadata that blocks projection or sorting.
type MetadataError struct {
	Address Address
	Field   string
	Value   string
	Err     error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("metadata %s: field %s has bad value %q: %v", e.Address, e.Field, e.Value, e.Err)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

// StorageError reports a catalog failure unrelated to absence,
// such as an unreadable folder or a file that cannot be decoded.
type StorageError struct {
	Op      string // list, load or render
	Address Address
	Err     error
}

func (e *StorageError) Error() string {
	if e.Address.ID == "" {
		return fmt.Sprintf("storage %s %s: %v", e.Op, e.Address.Category, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Address, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
