package fileio

import (
	"reflect"
	"strings"
	"testing"
)

func TestFunctionRegistryRegister(t *testing.T) {
	r := NewFunctionRegistry()
	double := func(args ...any) (any, error) { return args[0].(int) * 2, nil }
	if err := r.Register("double", double); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register("double", double); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := r.Register("", double); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := r.Register("nil", nil); err == nil {
		t.Fatalf("expected nil function to fail")
	}

	got, err := r.Call("double", 4)
	if err != nil || got != 8 {
		t.Fatalf("expected 8, got %v (%v)", got, err)
	}
	if _, err := r.Call("missing"); err == nil {
		t.Fatalf("expected unknown function error")
	}

	clone := r.Clone()
	_ = clone.Register("extra", double)
	if strings.Join(r.Names(), ",") != "double" {
		t.Fatalf("clone must not leak into the original, got %v", r.Names())
	}
}

func TestDefaultFunctionRegistry(t *testing.T) {
	r := DefaultFunctionRegistry()
	if got := strings.Join(r.Names(), ","); got != "dropKey,merge,renameKey,setKey,withDefaults" {
		t.Fatalf("unexpected helpers %s", got)
	}

	original := map[string]any{"a": 1, "b": 2}

	cases := []struct {
		name string
		fn   string
		args []any
		want map[string]any
	}{
		{"set", "setKey", []any{original, "c", 3}, map[string]any{"a": 1, "b": 2, "c": 3}},
		{"set on nil", "setKey", []any{nil, "c", 3}, map[string]any{"c": 3}},
		{"drop", "dropKey", []any{original, "a", "missing"}, map[string]any{"b": 2}},
		{"rename", "renameKey", []any{original, "a", "z"}, map[string]any{"z": 1, "b": 2}},
		{"rename missing", "renameKey", []any{original, "q", "z"}, map[string]any{"a": 1, "b": 2}},
		{"merge", "merge", []any{original, map[string]any{"b": 5, "d": 4}}, map[string]any{"a": 1, "b": 5, "d": 4}},
		{"defaults", "withDefaults", []any{original, map[string]any{"b": 5, "d": 4}}, map[string]any{"a": 1, "b": 2, "d": 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Call(tc.fn, tc.args...)
			if err != nil {
				t.Fatalf("%s: %v", tc.fn, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	if !reflect.DeepEqual(original, map[string]any{"a": 1, "b": 2}) {
		t.Fatalf("helpers must not mutate their input, got %v", original)
	}

	for _, bad := range []struct {
		fn   string
		args []any
	}{
		{"setKey", []any{"not a map", "k", 1}},
		{"setKey", []any{original, 1, 1}},
		{"dropKey", []any{original}},
		{"renameKey", []any{original, "a"}},
		{"merge", []any{original, 3}},
	} {
		if _, err := r.Call(bad.fn, bad.args...); err == nil {
			t.Fatalf("expected %s%v to fail", bad.fn, bad.args)
		}
	}
}
