// Package device defines the contract between the RC3200 and the devices
// attached to it. A device reports a static identity, is ticked by the CPU in
// lock-step with instruction execution and publishes one or more memory
// areas for the bus.
package device

import (
	"fmt"

	"github.com/rc3200/cda/hardware/memory"
)

// Device classes reported in the identity of a device
const (
	ClassGraphics uint8 = 0x0e
)

// Identity is used by the enumeration protocol of the bus. The values are
// fixed for the lifetime of the device
type Identity struct {
	Class   uint8
	Builder uint16
	ID      uint16
	Version uint16
}

func (id Identity) String() string {
	return fmt.Sprintf("class=%02x builder=%04x id=%04x version=%04x",
		id.Class, id.Builder, id.ID, id.Version)
}

// CPU is the part of the RC3200 CPU that a device is allowed to see
type CPU interface {
	// the current clock frequency in Hz
	Clock() uint32

	// ThrowInterrupt requests an interrupt with the message value. returns
	// false if the CPU did not accept the interrupt
	ThrowInterrupt(msg uint32) bool
}

// Device is implemented by all hardware attached to the RC3200
type Device interface {
	Label() string
	Identity() Identity

	// Tick advances the device by n clock cycles
	Tick(cpu CPU, n uint)

	// MemoryAreas returns the areas to be attached to the memory bus
	MemoryAreas() []memory.Area

	Reset()
}

// Areas collects the memory areas of all devices
func Areas(devs ...Device) []memory.Area {
	var areas []memory.Area
	for _, d := range devs {
		areas = append(areas, d.MemoryAreas()...)
	}
	return areas
}
