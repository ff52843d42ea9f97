package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestOrNew(t *testing.T) {
	if got := OrNew("trace-42"); got != "trace-42" {
		t.Errorf("OrNew(trace-42) = %q", got)
	}

	for _, bad := range []string{"", "has space", "line\nbreak", strings.Repeat("x", 129)} {
		got := OrNew(bad)
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("OrNew(%q) = %q, want a fresh uuid", bad, got)
		}
	}
}
