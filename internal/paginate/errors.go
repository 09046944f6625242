package paginate

import "errors"

var (
	// ErrInvalidPerPage indicates a page size below 1.
	ErrInvalidPerPage = errors.New("page size must be positive")

	// ErrPageOutOfRange indicates a page number outside [1, totalPages].
	ErrPageOutOfRange = errors.New("page number out of range")

	// ErrMissingPlaceholder indicates a pagination path template without :num:.
	ErrMissingPlaceholder = errors.New("pagination path has no page number placeholder")
)
