// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a failure with t.Errorf() and return a bool
// indicating whether the expectation was met. The Demand*() functions use
// t.Fatalf() and so end the test immediately.
//
// The Expect*() and Demand*() functions accept an optional list of tags. The
// tags are prepended to any failure message and are useful for identifying
// which iteration of a loop has failed.
package test
