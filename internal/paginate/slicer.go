package paginate

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/tagbuilder/internal/foundation/errors"
)

// TotalPages returns ceil(total/perPage). An empty collection has 0 pages.
func TotalPages(total, perPage int) (int, error) {
	if perPage <= 0 {
		return 0, ferrors.ConfigError("page size must be a positive integer").
			WithContext("per_page", perPage).
			WithCause(ErrInvalidPerPage).
			Build()
	}
	if total <= 0 {
		return 0, nil
	}
	return (total + perPage - 1) / perPage, nil
}

// Slice returns the items shown on page (1-based): perPage items starting at
// (page-1)*perPage, fewer on the last page.
func Slice[T any](items []T, page, perPage int) ([]T, error) {
	total, err := TotalPages(len(items), perPage)
	if err != nil {
		return nil, err
	}
	if page < 1 || page > total {
		return nil, outOfRange(page, total)
	}
	start, end := bounds(len(items), page, perPage)
	return items[start:end:end], nil
}

// bounds clamps the [start, end) window of page to n items.
func bounds(n, page, perPage int) (int, int) {
	start := min((page-1)*perPage, n)
	end := min(start+perPage, n)
	return start, end
}

func outOfRange(page, total int) error {
	msg := fmt.Sprintf("page number can't be greater than total pages: %d > %d", page, total)
	if page < 1 {
		msg = fmt.Sprintf("page number must be at least 1: %d (total pages %d)", page, total)
	}
	return ferrors.RangeError(msg).
		WithContext("page", page).
		WithContext("total_pages", total).
		WithCause(ErrPageOutOfRange).
		Build()
}
