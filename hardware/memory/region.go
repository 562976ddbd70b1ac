package memory

import (
	"errors"
	"fmt"
)

// OutOfRange is returned when an address falls outside an area's window. It
// is a contract violation between the bus and the area and it is the bus that
// decides whether the error is fatal
var OutOfRange = errors.New("address out of range")

// Region is a contiguous, byte addressable window in the address space. The
// window covers the addresses Begin to Begin+Size-1 inclusive
type Region struct {
	Begin uint32
	Size  uint32
}

// End returns the first address after the window. The value is 64bit so that
// a window that finishes at the top of the address space can be represented
func (r Region) End() uint64 {
	return uint64(r.Begin) + uint64(r.Size)
}

// Contains returns true if address is inside the window
func (r Region) Contains(address uint32) bool {
	return address >= r.Begin && uint64(address) < r.End()
}

// Index returns the offset of address from the start of the window
func (r Region) Index(address uint32) (uint32, error) {
	if !r.Contains(address) {
		return 0, fmt.Errorf("%w: %08x not in %s", OutOfRange, address, r)
	}
	return address - r.Begin, nil
}

// Overlaps returns true if the two windows share at least one address
func (r Region) Overlaps(o Region) bool {
	return uint64(r.Begin) < o.End() && uint64(o.Begin) < r.End()
}

func (r Region) String() string {
	return fmt.Sprintf("%08x -> %08x", r.Begin, r.End()-1)
}
