package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if classified, ok := AsClassified(err); ok {
		return a.exitCodeFromClassified(classified)
	}

	return 1
}

// exitCodeFromClassified maps ClassifiedError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromClassified(err *ClassifiedError) int {
	switch err.Category() {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryDegraded:
		return 0 // Warnings never fail a build
	case CategoryContent, CategoryFileSystem:
		return 11 // Input error
	case CategoryRange, CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	classified, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return classified.Error()
	}
	switch classified.Category() {
	case CategoryConfig, CategoryValidation, CategoryContent, CategoryFileSystem:
		return fmt.Sprintf("Error: %s", classified.Message())
	default:
		return "Internal error occurred (use -v for details)"
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.out, "%s\n", a.FormatError(err))
	os.Exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}
	if classified, ok := AsClassified(err); ok {
		return classified.Severity() == SeverityFatal
	}
	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	classified, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}

	attrs := []slog.Attr{
		slog.String("category", string(classified.Category())),
	}
	for k, v := range classified.Context() {
		attrs = append(attrs, slog.Any(k, v))
	}
	a.logger.LogAttrs(context.Background(), a.slogLevelFromSeverity(classified.Severity()), classified.Message(), attrs...)
}

// slogLevelFromSeverity converts ClassifiedError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
