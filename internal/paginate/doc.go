// Package paginate splits an ordered collection into fixed-size pages and
// builds the per-page descriptors templates bind to.
//
// Page 1 of a series is never addressed through the numbered path template;
// it is the existing "template page" (an index.html somewhere between the
// site source and the pagination directory) and keeps that page's URL.
//
// Lifecycle of one page: the slice is computed, previous/next paths are
// resolved, then the descriptor is attached to an output page. Each
// descriptor is self-contained given the total page count.
package paginate
