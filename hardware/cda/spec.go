package cda

import (
	"errors"
	"fmt"
)

// RefreshRate is the vertical refresh frequency in Hz
const RefreshRate = 25

// VRAMSize is the number of bytes in the video memory area
const VRAMSize = 0x4400

// SetupOffset is the offset of the SETUP register from the base address
const SetupOffset = 0xcc00

// NumSlots is the number of CDA instances that can be attached to an RC3200
// at the same time
const NumSlots = 4

// the base address and interrupt message for each slot
var slotBaseAddress = [NumSlots]uint32{
	0xff0a0000,
	0xff0b0000,
	0xff0c0000,
	0xff0d0000,
}

var slotInterruptMessage = [NumSlots]uint32{
	0x0000005a,
	0x0000105a,
	0x0000205a,
	0x0000305a,
}

// InvalidSlot is returned when a slot number is not in the range 0 to 3
var InvalidSlot = errors.New("invalid slot")

func checkSlot(slot int) error {
	if slot < 0 || slot >= NumSlots {
		return fmt.Errorf("cda: %w: %d", InvalidSlot, slot)
	}
	return nil
}

// BaseAddress returns the address of the first byte of VRAM for the slot
func BaseAddress(slot int) (uint32, error) {
	if err := checkSlot(slot); err != nil {
		return 0, err
	}
	return slotBaseAddress[slot], nil
}

// SetupAddress returns the address of the SETUP register for the slot
func SetupAddress(slot int) (uint32, error) {
	b, err := BaseAddress(slot)
	if err != nil {
		return 0, err
	}
	return b + SetupOffset, nil
}

// InterruptMessage returns the message sent with the vsync interrupt for the
// slot
func InterruptMessage(slot int) (uint32, error) {
	if err := checkSlot(slot); err != nil {
		return 0, err
	}
	return slotInterruptMessage[slot], nil
}
