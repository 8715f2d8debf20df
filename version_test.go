package fileio

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b Version
		want int
	}{
		{V(1, 0, 0), V(1, 0, 0), 0},
		{V(1, 0, 0), V(2, 0, 0), -1},
		{V(2, 0, 0), V(1, 9, 9), 1},
		{V(1, 2, 0), V(1, 10, 0), -1},
		{V(1, 2, 3), V(1, 2, 4), -1},
		{V(1, 2, 5), V(1, 2, 4), 1},
		{V(0, 0, -1), V(0, 0, 0), -1},
	}
	for _, tc := range cases {
		if got := Compare(tc.a, tc.b); got != tc.want {
			t.Fatalf("Compare(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
		if got := tc.a.Compare(tc.b); got != tc.want {
			t.Fatalf("%s.Compare(%s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestIsFuture(t *testing.T) {
	if !IsFuture(V(3, 0, 0), V(2, 0, 0)) {
		t.Fatalf("3.0.0 should be in the future of 2.0.0")
	}
	if IsFuture(V(2, 0, 0), V(2, 0, 0)) {
		t.Fatalf("equal versions are not in the future")
	}
	if IsFuture(V(1, 9, 9), V(2, 0, 0)) {
		t.Fatalf("1.9.9 is older than 2.0.0")
	}
}

func TestIsFutureOrdering(t *testing.T) {
	versions := []Version{
		V(0, 9, 9), V(1, 0, 0), V(1, 0, 1), V(1, 2, 0),
		V(1, 10, 0), V(2, 0, 0), V(0, 0, -1),
	}
	for _, a := range versions {
		if IsFuture(a, a) {
			t.Fatalf("IsFuture(%s, %s) must be false", a, a)
		}
		for _, b := range versions {
			if IsFuture(a, b) && IsFuture(b, a) {
				t.Fatalf("IsFuture must be antisymmetric for %s and %s", a, b)
			}
			if a != b && !IsFuture(a, b) && !IsFuture(b, a) {
				t.Fatalf("distinct versions %s and %s must be ordered", a, b)
			}
			for _, c := range versions {
				if IsFuture(a, b) && IsFuture(b, c) && !IsFuture(a, c) {
					t.Fatalf("IsFuture must be transitive: %s > %s > %s", a, b, c)
				}
			}
		}
	}
}

func TestParseVersion(t *testing.T) {
	for _, input := range []string{"1.2.3", "v1.2.3", " 1.2.3 "} {
		got, err := ParseVersion(input)
		if err != nil {
			t.Fatalf("ParseVersion(%q): %v", input, err)
		}
		if got != V(1, 2, 3) {
			t.Fatalf("ParseVersion(%q) = %s", input, got)
		}
	}
	for _, input := range []string{"", "1.2", "1.2.3.4", "a.b.c"} {
		if _, err := ParseVersion(input); !errors.Is(err, ErrInvalidVersion) {
			t.Fatalf("ParseVersion(%q): expected ErrInvalidVersion, got %v", input, err)
		}
	}
}

func TestVersionFromAny(t *testing.T) {
	valid := map[string]any{
		"yaml ints":     []any{1, 2, 3},
		"toml int64s":   []any{int64(1), int64(2), int64(3)},
		"json numbers":  []any{json.Number("1"), json.Number("2"), json.Number("3")},
		"int slice":     []int{1, 2, 3},
		"int64 slice":   []int64{1, 2, 3},
		"array":         [3]int{1, 2, 3},
		"version value": V(1, 2, 3),
	}
	for name, value := range valid {
		t.Run(name, func(t *testing.T) {
			got, err := VersionFromAny(value)
			if err != nil {
				t.Fatalf("VersionFromAny: %v", err)
			}
			if got != V(1, 2, 3) {
				t.Fatalf("expected 1.2.3, got %s", got)
			}
		})
	}

	invalid := map[string]any{
		"string":         "1.2.3",
		"two items":      []any{1, 2},
		"four items":     []any{1, 2, 3, 4},
		"fraction":       []any{1.5, 2, 3},
		"integral float": []any{1.0, 0, 0},
		"float slice":    []any{float64(1), float64(2), float64(3)},
		"text element":   []any{"1", 2, 3},
		"nil":            nil,
	}
	for name, value := range invalid {
		t.Run(name, func(t *testing.T) {
			if _, err := VersionFromAny(value); !errors.Is(err, ErrInvalidVersion) {
				t.Fatalf("expected ErrInvalidVersion, got %v", err)
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	if got := V(2, 0, 1).String(); got != "2.0.1" {
		t.Fatalf("expected 2.0.1, got %s", got)
	}
	if got := V(2, 0, 1).Triple(); got != [3]int{2, 0, 1} {
		t.Fatalf("unexpected triple %v", got)
	}
}
