package semver

import "testing"

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		want   string
		wantOK bool
	}{
		{"identical caret", "^1.2.3", "^1.2.3", "^1.2.3", true},
		{"identical file", "file:libs/a", "file:libs/a", "file:libs/a", true},
		{"identical bare", "0.1.3", "0.1.3", "0.1.3", true},
		{"identical wildcard", "*", "*", "*", true},

		{"wildcard left", "*", "^2.0.0", "^2.0.0", true},
		{"wildcard right", "^2.0.0", "*", "^2.0.0", true},
		{"wildcard and file", "*", "file:a", "file:a", true},

		{"caret narrower second", "^0.5.0", "^0.5.1", "^0.5.1", true},
		{"caret narrower first", "^0.5.1", "^0.5.0", "^0.5.1", true},
		{"caret major compatible", "^1.0.1", "^1.2.1", "^1.2.1", true},
		{"caret conflict", "^1.0.0", "^2.0.0", "", false},
		{"caret zero minor conflict", "^0.1.0", "^0.2.0", "", false},

		{"caret and bare", "^0.1.0", "0.1.3", "0.1.3", true},
		{"bare and caret", "0.1.3", "^0.1.0", "0.1.3", true},
		{"bare outside caret", "^1.0.0", "2.0.0", "", false},

		{"different bare", "1.0.0", "1.0.1", "", false},
		{"file and caret", "file:a", "^1.0.0", "", false},
		{"tilde and caret", "~1.0.0", "^1.0.0", "", false},
		{"malformed caret", "^not.a.version", "^1.0.0", "", false},
		{"malformed bare", "^1.0.0", "latest", "", false},
		{"empty", "", "^1.0.0", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Merge(tt.a, tt.b)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Merge(%q, %q) = (%q, %v), want (%q, %v)", tt.a, tt.b, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMergeWildcardAbsorption(t *testing.T) {
	for _, s := range []string{"^1.0.0", "1.2.3", "file:../x", "~2.0.0", "latest"} {
		if got, ok := Merge(Wildcard, s); !ok || got != s {
			t.Errorf("Merge(*, %q) = (%q, %v), want (%q, true)", s, got, ok, s)
		}
		if got, ok := Merge(s, Wildcard); !ok || got != s {
			t.Errorf("Merge(%q, *) = (%q, %v), want (%q, true)", s, got, ok, s)
		}
	}
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		version, rng string
		want         bool
	}{
		{"0.5.1", "^0.5.0", true},
		{"0.6.0", "^0.5.0", false},
		{"1.9.9", "^1.0.0", true},
		{"2.0.0", "^1.0.0", false},
		{"1.2", "^1.0.0", false},
		{"1.0.0", "not a range", false},
		{"garbage", "^1.0.0", false},
	}

	for _, tt := range tests {
		if got := Satisfies(tt.version, tt.rng); got != tt.want {
			t.Errorf("Satisfies(%q, %q) = %v, want %v", tt.version, tt.rng, got, tt.want)
		}
	}
}

func TestCaretAndIsFile(t *testing.T) {
	if got := Caret("2.0.0"); got != "^2.0.0" {
		t.Errorf("Caret(2.0.0) = %q", got)
	}
	if !IsFile("file:libs/q") {
		t.Error("IsFile(file:libs/q) = false")
	}
	if IsFile("^1.0.0") {
		t.Error("IsFile(^1.0.0) = true")
	}
}
