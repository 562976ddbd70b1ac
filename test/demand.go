package test

import "testing"

// DemandEquality is the same as ExpectEquality except that the test ends
// immediately on failure
func DemandEquality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) {
	t.Helper()
	if v != expectedValue {
		t.Fatalf("%sdemanded %v (%T) but got %v", id(tags...), expectedValue, expectedValue, v)
	}
}

// DemandSuccess ends the test if v does not indicate success. See
// ExpectSuccess for what success means for each type
func DemandSuccess(t *testing.T, v any, tags ...any) {
	t.Helper()
	if !expect(t, v, tags...) {
		t.Fatalf("%sdemanded success from %T", id(tags...), v)
	}
}

// DemandFailure ends the test if v does not indicate failure
func DemandFailure(t *testing.T, v any, tags ...any) {
	t.Helper()
	if expect(t, v, tags...) {
		t.Fatalf("%sdemanded failure from %T", id(tags...), v)
	}
}
