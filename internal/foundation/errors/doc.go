// Package errors provides the classified error primitives used across tagbuilder.
//
// Every failure the tag page build can produce falls into a small set of
// categories:
//   - CategoryConfig: pagination template without a page-number placeholder,
//     non-positive page size, unreadable configuration.
//   - CategoryRange: a page number outside [1, totalPages]. This indicates a
//     caller bug and is never clamped.
//   - CategoryDegraded: a feature switched itself off (no template page for
//     pagination). Always SeverityWarning; callers log it instead of failing.
//   - CategoryContent: posts or existing pages could not be read.
//
// Example usage:
//
//	err := errors.RangeError("page number can't be greater than total pages").
//		WithContext("page", 4).
//		WithContext("total_pages", 3).
//		WithCause(paginate.ErrPageOutOfRange).
//		Build()
package errors
