package cda

import (
	"fmt"
	"strings"
)

// FirePolicy decides what happens when a single call to Tick() covers more
// than one refresh period
type FirePolicy int

// List of valid FirePolicy values
const (
	// every threshold crossing counts as a vsync event. an interrupt is
	// thrown for each crossing but VRAM is copied to the exposed buffer only
	// once, because VRAM can not change during a single Tick()
	FirePerCrossing FirePolicy = iota

	// at most one vsync event per call to Tick(). the cycle counter is
	// reduced by one threshold only and so can remain above the threshold
	// after the call
	FireOncePerCall
)

func (p FirePolicy) String() string {
	switch p {
	case FirePerCrossing:
		return "CROSSING"
	case FireOncePerCall:
		return "ONCE"
	}
	return fmt.Sprintf("unknown policy (%d)", int(p))
}

// ParsePolicy converts the string representation of a FirePolicy
func ParsePolicy(s string) (FirePolicy, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CROSSING", "":
		return FirePerCrossing, nil
	case "ONCE":
		return FireOncePerCall, nil
	}
	return FirePerCrossing, fmt.Errorf("cda: unrecognised fire policy: %s", s)
}
