package form

import (
	"errors"
	"fmt"
)

// ErrRowOutOfRange indicates a row position outside the list.
var ErrRowOutOfRange = errors.New("row index out of range")

// AppendRow returns a new list with blank added at the end.
func AppendRow[T any](rows []T, blank T) []T {
	out := make([]T, 0, len(rows)+1)
	out = append(out, rows...)
	return append(out, blank)
}

// RemoveRow returns a new list without the row at index. Rows after index shift
// down by one.
func RemoveRow[T any](rows []T, index int) ([]T, error) {
	if index < 0 || index >= len(rows) {
		return nil, fmt.Errorf("remove row %d of %d: %w", index, len(rows), ErrRowOutOfRange)
	}
	out := make([]T, 0, len(rows)-1)
	out = append(out, rows[:index]...)
	return append(out, rows[index+1:]...), nil
}

// UpdateRow returns a new list where the row at index is replaced by fn(row).
func UpdateRow[T any](rows []T, index int, fn func(T) T) ([]T, error) {
	if index < 0 || index >= len(rows) {
		return nil, fmt.Errorf("update row %d of %d: %w", index, len(rows), ErrRowOutOfRange)
	}
	out := make([]T, len(rows))
	copy(out, rows)
	out[index] = fn(out[index])
	return out, nil
}
