package test

import (
	"strings"
	"sync"
)

// CompareWriter implements io.Writer and keeps everything written to it. It is
// safe to write to it from more than one goroutine
type CompareWriter struct {
	crit sync.Mutex
	b    strings.Builder
}

func (w *CompareWriter) Write(p []byte) (int, error) {
	w.crit.Lock()
	defer w.crit.Unlock()
	return w.b.Write(p)
}

// Clear forgets everything written so far
func (w *CompareWriter) Clear() {
	w.crit.Lock()
	defer w.crit.Unlock()
	w.b.Reset()
}

// Compare is true if the written output is exactly s
func (w *CompareWriter) Compare(s string) bool {
	return w.String() == s
}

// Contains is true if s appears anywhere in the written output
func (w *CompareWriter) Contains(s string) bool {
	return strings.Contains(w.String(), s)
}

func (w *CompareWriter) String() string {
	w.crit.Lock()
	defer w.crit.Unlock()
	return w.b.String()
}
