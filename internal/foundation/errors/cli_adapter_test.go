package errors

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("bad flag").Build(), expected: 2},
		{name: "config", err: ConfigError("tags_paginate must be positive").Build(), expected: 7},
		{name: "range", err: RangeError("page 4 > 3").Build(), expected: 10},
		{name: "degraded", err: DegradedFeature("no template page").Build(), expected: 0},
		{name: "content", err: ContentError("unreadable post").Build(), expected: 11},
		{name: "unclassified", err: errors.New("boom"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, nil)
	verbose := NewCLIErrorAdapter(true, nil)

	cfg := ConfigError("pagination path must include :num:").Build()
	assert.Equal(t, "Error: pagination path must include :num:", quiet.FormatError(cfg))
	assert.Equal(t, cfg.Error(), verbose.FormatError(cfg))

	rng := RangeError("page out of range").Build()
	assert.Equal(t, "Internal error occurred (use -v for details)", quiet.FormatError(rng))

	assert.Equal(t, "Error: boom", quiet.FormatError(errors.New("boom")))
	assert.Empty(t, quiet.FormatError(nil))
}
