package rank

import (
	"errors"
)

// ErrInvalidPage reports a negative size or offset. Negative arguments are a
// caller bug and are rejected rather than clamped.
var ErrInvalidPage = errors.New("page size and offset must not be negative")

// Page returns the window seq[offset : offset+size], clamped to the bounds of
// seq. An offset at or past the end yields an empty slice.
func Page[T any](seq []T, size, offset int) ([]T, error) {
	if size < 0 || offset < 0 {
		return nil, ErrInvalidPage
	}
	if offset >= len(seq) {
		return []T{}, nil
	}
	end := offset + size
	if end > len(seq) {
		end = len(seq)
	}
	return seq[offset:end], nil
}
