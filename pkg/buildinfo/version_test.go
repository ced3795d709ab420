package buildinfo

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	tests := []struct {
		version, commit string
		want            string
	}{
		{"dev", "none", "dev (none)"},
		{"v0.3.0", "0123456789abcdef", "v0.3.0 (0123456)"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := Short(); got != tt.want {
			t.Errorf("Short() = %q, want %q", got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	if got := String(); !strings.HasPrefix(got, "linkdeps "+Version+"\n") {
		t.Errorf("String() = %q", got)
	}
}
