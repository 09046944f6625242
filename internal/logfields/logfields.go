package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyTag        = "tag"
	KeyPageType   = "page_type"
	KeyPage       = "page"
	KeyTotalPages = "total_pages"
	KeyPerPage    = "per_page"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyStage      = "stage"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Tag(t string) slog.Attr          { return slog.String(KeyTag, t) }
func PageType(t string) slog.Attr     { return slog.String(KeyPageType, t) }
func Page(n int) slog.Attr            { return slog.Int(KeyPage, n) }
func TotalPages(n int) slog.Attr      { return slog.Int(KeyTotalPages, n) }
func PerPage(n int) slog.Attr         { return slog.Int(KeyPerPage, n) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
