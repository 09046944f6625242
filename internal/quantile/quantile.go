// Package quantile maps a weight inside an observed range onto one of N
// discrete size classes.
package quantile

// DefaultBuckets is the number of tag cloud size classes (set-1..set-5).
const DefaultBuckets = 5

// Bucket returns the 1-based index of the sub-range of [lo, hi] containing
// value, after splitting the range into n equal-width sub-ranges.
//
// Values at or below lo land in bucket 1, values at or above hi in bucket n.
// A degenerate range (hi <= lo) has a single class, so every value maps to 1.
// n < 1 is treated as 1. The result is non-decreasing in value.
func Bucket(value, lo, hi, n int) int {
	if n < 1 {
		n = 1
	}
	if hi <= lo || value <= lo {
		return 1
	}
	if value >= hi {
		return n
	}

	// (value-lo)/(hi-lo) is in (0,1); integer floor of that times n.
	b := (value-lo)*n/(hi-lo) + 1
	if b > n {
		return n
	}
	return b
}
