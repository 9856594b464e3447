package render

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean string unchanged", "Morning Dew", "Morning Dew"},
		{"control chars removed", "bad\x00name\x1b[31m", "badname[31m"},
		{"tab preserved", "a\tb", "a\tb"},
		{"nbsp becomes space", "a\u00a0b", "a b"},
		{"invalid utf8 dropped", "ok\xffbad", "okbad"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("a very long track name", 10); len(got) > 10 {
		t.Errorf("Truncate produced %q, wider than 10", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate(%q) = %q, want unchanged", "short", got)
	}
}

func TestTruncateAndPad(t *testing.T) {
	got := TruncateAndPad("ab", 5)
	if got != "ab   " {
		t.Errorf("TruncateAndPad = %q, want %q", got, "ab   ")
	}
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 20)
	if !strings.HasPrefix(got, "left") || !strings.HasSuffix(got, "right") {
		t.Errorf("Row = %q", got)
	}
	if len(got) != 20 {
		t.Errorf("Row width = %d, want 20", len(got))
	}
}

func TestRow_TooNarrow(t *testing.T) {
	// Content wider than the row still gets a single space gap.
	got := Row("verylongleft", "verylongright", 5)
	if !strings.Contains(got, " ") {
		t.Errorf("Row = %q, want at least one space gap", got)
	}
}

func TestSeparator(t *testing.T) {
	got := Separator(4)
	if got != "────" {
		t.Errorf("Separator = %q", got)
	}
}
