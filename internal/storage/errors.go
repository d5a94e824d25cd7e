package storage

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotFound is returned when a lookup, update or delete matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidArgument is returned for arguments the store rejects before
	// or during the query: bad paging, nil entities, dangling references.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")
)

// Offset converts a 1-based page and a page size into a row offset.
func Offset(page, pageSize int) (int, error) {
	if page < 1 {
		return 0, fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidArgument, page)
	}
	if pageSize < 1 {
		return 0, fmt.Errorf("%w: page size must be >= 1, got %d", ErrInvalidArgument, pageSize)
	}
	if page-1 > math.MaxInt/pageSize {
		return 0, fmt.Errorf("%w: page %d of size %d is out of range", ErrInvalidArgument, page, pageSize)
	}
	return (page - 1) * pageSize, nil
}

// Page returns the slice of items for a 1-based page.
func Page[T any](items []T, page, pageSize int) ([]T, error) {
	offset, err := Offset(page, pageSize)
	if err != nil {
		return nil, err
	}
	if offset >= len(items) {
		return []T{}, nil
	}
	end := offset + pageSize
	if end > len(items) || end < offset {
		end = len(items)
	}
	return items[offset:end], nil
}
