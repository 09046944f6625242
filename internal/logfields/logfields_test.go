package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attr    slog.Attr
		want    slog.Value
	}{
		{"Tag", KeyTag, Tag("go"), slog.StringValue("go")},
		{"PageType", KeyPageType, PageType("feed"), slog.StringValue("feed")},
		{"Page", KeyPage, Page(2), slog.IntValue(2)},
		{"TotalPages", KeyTotalPages, TotalPages(3), slog.IntValue(3)},
		{"PerPage", KeyPerPage, PerPage(5), slog.IntValue(5)},
		{"Path", KeyPath, Path("/tags/page2/"), slog.StringValue("/tags/page2/")},
		{"File", KeyFile, File("a.md"), slog.StringValue("a.md")},
		{"Stage", KeyStage, Stage("paginate"), slog.StringValue("paginate")},
		{"Count", KeyCount, Count(7), slog.IntValue(7)},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Fatalf("%s key mismatch: got %s want %s", c.name, c.attr.Key, c.attrKey)
		}
		if !c.attr.Value.Equal(c.want) {
			t.Fatalf("%s value mismatch: got %v want %v", c.name, c.attr.Value, c.want)
		}
	}
}

func TestErrorHelper(t *testing.T) {
	if got := Error(nil); got.Value.String() != "" {
		t.Fatalf("nil error should log empty string, got %q", got.Value.String())
	}
	if got := Error(errors.New("boom")); got.Key != KeyError || got.Value.String() != "boom" {
		t.Fatalf("unexpected attr %v", got)
	}
}
