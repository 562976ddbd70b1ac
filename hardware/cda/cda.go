// Package cda emulates the Color Display Adapter for the RC3200 virtual
// machine. The CDA publishes a block of video memory and a single SETUP
// register on the memory bus. At the vertical refresh rate the contents of
// video memory are copied to an exposed buffer, which is the only view of
// video memory that a renderer should use.
//
// The CDA does not render anything. Interpreting the exposed buffer according
// to the video mode is the responsibility of the host.
package cda

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rc3200/cda/hardware/device"
	"github.com/rc3200/cda/hardware/memory"
	"github.com/rc3200/cda/hardware/memory/ram"
	"github.com/rc3200/cda/logger"
)

// identity of the CDA as reported to the enumeration protocol
const (
	DevClass   = device.ClassGraphics
	DevBuilder = 0x0000
	DevID      = 0x0001
	DevVersion = 0x0000
)

// Config is used when creating a new CDA instance
type Config struct {
	// slot number in the range 0 to 3
	Slot int

	// initial values of the configuration flags
	BlinkAttribute bool
	UserFont       bool
	VSyncInterrupt bool

	Policy FirePolicy

	// source of random values for RandomiseVRAM(). can be nil
	Rand ram.Context
}

// CDA is the Color Display Adapter
type CDA struct {
	slot   int
	intMsg uint32

	vram  *ram.RAM
	setup setupRegister

	// number of cycles since the last vsync
	counter uint

	// number of vsync events since creation or reset
	frame uint64

	blinkAttribute bool
	userFont       bool
	vsyncInterrupt bool
	policy         FirePolicy

	// the exposed buffer is read by the renderer, which may be running in
	// a different goroutine to the emulation
	crit    sync.RWMutex
	exposed []uint8
}

// Create a new CDA for the slot in the configuration
func Create(cfg Config) (*CDA, error) {
	base, err := BaseAddress(cfg.Slot)
	if err != nil {
		return nil, err
	}
	msg, err := InterruptMessage(cfg.Slot)
	if err != nil {
		return nil, err
	}

	switch cfg.Policy {
	case FirePerCrossing, FireOncePerCall:
	default:
		return nil, fmt.Errorf("cda: %v", cfg.Policy)
	}

	cda := &CDA{
		slot:           cfg.Slot,
		intMsg:         msg,
		vram:           ram.Create(cfg.Rand, "CDA VRAM", base, VRAMSize),
		setup:          newSetupRegister(base + SetupOffset),
		blinkAttribute: cfg.BlinkAttribute,
		userFont:       cfg.UserFont,
		vsyncInterrupt: cfg.VSyncInterrupt,
		policy:         cfg.Policy,
		exposed:        make([]uint8, VRAMSize),
	}

	logger.Logf(logger.Allow, "cda", "slot %d at %08x", cda.slot, base)

	return cda, nil
}

// Label implements the device.Device interface
func (cda *CDA) Label() string {
	return fmt.Sprintf("CDA%d", cda.slot)
}

// Identity implements the device.Device interface
func (cda *CDA) Identity() device.Identity {
	return device.Identity{
		Class:   DevClass,
		Builder: DevBuilder,
		ID:      DevID,
		Version: DevVersion,
	}
}

// MemoryAreas implements the device.Device interface. The VRAM area is always
// first
func (cda *CDA) MemoryAreas() []memory.Area {
	return []memory.Area{cda.vram, &cda.setup}
}

// Slot returns the slot number of the CDA
func (cda *CDA) Slot() int {
	return cda.slot
}

// Threshold returns the number of cycles between vsync events for the clock
// frequency. The threshold is never less than one
func Threshold(clock uint32) uint {
	return max(uint(clock)/RefreshRate, 1)
}

// Tick implements the device.Device interface
func (cda *CDA) Tick(cpu device.CPU, n uint) {
	cda.counter += n

	threshold := Threshold(cpu.Clock())
	if cda.counter < threshold {
		return
	}

	var crossings uint
	switch cda.policy {
	case FireOncePerCall:
		crossings = 1
	default:
		crossings = cda.counter / threshold
	}
	cda.counter -= crossings * threshold

	cda.crit.Lock()
	cda.vram.Snapshot(cda.exposed)
	cda.crit.Unlock()

	cda.frame += uint64(crossings)

	if cda.vsyncInterrupt {
		for range crossings {
			if !cpu.ThrowInterrupt(cda.intMsg) {
				logger.Logf(logger.Allow, "cda", "interrupt %08x not accepted", cda.intMsg)
			}
		}
	}
}

// Reset implements the device.Device interface. Configuration flags are not
// changed
func (cda *CDA) Reset() {
	cda.counter = 0
	cda.frame = 0
	cda.vram.Reset(false)
	cda.setup.reset()

	cda.crit.Lock()
	clear(cda.exposed)
	cda.crit.Unlock()
}

// RandomiseVRAM fills VRAM with random values. The exposed buffer is not
// changed until the next vsync. VRAM is cleared if there is no source of
// random values in the configuration
func (cda *CDA) RandomiseVRAM() {
	cda.vram.Reset(true)
}

// FillVRAM sets every byte of VRAM to v
func (cda *CDA) FillVRAM(v uint8) {
	cda.vram.Fill(v)
}

// ExposedBuffer returns a copy of the exposed buffer
func (cda *CDA) ExposedBuffer() []uint8 {
	cda.crit.RLock()
	defer cda.crit.RUnlock()
	return append([]uint8(nil), cda.exposed...)
}

// ReadExposed copies the exposed buffer into dst and returns the number of
// bytes copied
func (cda *CDA) ReadExposed(dst []uint8) int {
	cda.crit.RLock()
	defer cda.crit.RUnlock()
	return copy(dst, cda.exposed)
}

// Frame returns the number of vsync events since creation or the last reset
func (cda *CDA) Frame() uint64 {
	return cda.frame
}

// Counter returns the number of cycles since the last vsync event
func (cda *CDA) Counter() uint {
	return cda.counter
}

// VideoMode returns the video mode decoded from the SETUP register
func (cda *CDA) VideoMode() uint8 {
	return cda.setup.videoMode
}

// IsTextMode returns true if the CDA is in text mode
func (cda *CDA) IsTextMode() bool {
	return cda.setup.textMode
}

// IsGraphicsMode returns true if the CDA is in graphics mode
func (cda *CDA) IsGraphicsMode() bool {
	return !cda.setup.textMode
}

// Setup returns the last value written to the SETUP register
func (cda *CDA) Setup() uint8 {
	return cda.setup.value
}

// IsBlinkAttribute returns the state of the blink attribute flag
func (cda *CDA) IsBlinkAttribute() bool {
	return cda.blinkAttribute
}

// SetBlinkAttribute sets the blink attribute flag
func (cda *CDA) SetBlinkAttribute(set bool) {
	if cda.blinkAttribute != set {
		logger.Logf(logger.Allow, "cda", "blink attribute: %v", set)
	}
	cda.blinkAttribute = set
}

// IsUserFont returns the state of the user font flag
func (cda *CDA) IsUserFont() bool {
	return cda.userFont
}

// SetUserFont sets the user font flag
func (cda *CDA) SetUserFont(set bool) {
	if cda.userFont != set {
		logger.Logf(logger.Allow, "cda", "user font: %v", set)
	}
	cda.userFont = set
}

// IsVSyncInterrupt returns true if an interrupt is thrown on every vsync
func (cda *CDA) IsVSyncInterrupt() bool {
	return cda.vsyncInterrupt
}

// SetVSyncInterrupt sets whether an interrupt is thrown on every vsync
func (cda *CDA) SetVSyncInterrupt(set bool) {
	if cda.vsyncInterrupt != set {
		logger.Logf(logger.Allow, "cda", "vsync interrupt: %v", set)
	}
	cda.vsyncInterrupt = set
}

// Policy returns the current fire policy
func (cda *CDA) Policy() FirePolicy {
	return cda.policy
}

// SetPolicy changes the fire policy. The cycle counter is not changed
func (cda *CDA) SetPolicy(p FirePolicy) error {
	switch p {
	case FirePerCrossing, FireOncePerCall:
	default:
		return fmt.Errorf("cda: %v", p)
	}
	if cda.policy != p {
		logger.Logf(logger.Allow, "cda", "fire policy: %v", p)
	}
	cda.policy = p
	return nil
}

// State is a snapshot of the CDA that does not share memory with it
type State struct {
	Label    string
	Identity device.Identity
	Slot     int
	VRAM     memory.Region
	Setup    memory.Region

	SetupValue uint8
	VideoMode  uint8
	TextMode   bool

	BlinkAttribute bool
	UserFont       bool
	VSyncInterrupt bool
	Policy         string

	Interrupt uint32
	Counter   uint
	Frame     uint64
}

// State returns a snapshot of the CDA
func (cda *CDA) State() State {
	return State{
		Label:          cda.Label(),
		Identity:       cda.Identity(),
		Slot:           cda.slot,
		VRAM:           cda.vram.Window(),
		Setup:          cda.setup.Window(),
		SetupValue:     cda.setup.value,
		VideoMode:      cda.setup.videoMode,
		TextMode:       cda.setup.textMode,
		BlinkAttribute: cda.blinkAttribute,
		UserFont:       cda.userFont,
		VSyncInterrupt: cda.vsyncInterrupt,
		Policy:         cda.policy.String(),
		Interrupt:      cda.intMsg,
		Counter:        cda.counter,
		Frame:          cda.frame,
	}
}

func flag(s *strings.Builder, label string, set bool) {
	if set {
		s.WriteString(fmt.Sprintf("%s ", strings.ToUpper(label)))
	} else {
		s.WriteString(fmt.Sprintf("%s ", strings.ToLower(label)))
	}
}

// Status returns a single line summary of the CDA. Flags in upper case are
// set
func (cda *CDA) Status() string {
	var s strings.Builder
	s.WriteString(fmt.Sprintf("%s %s ", cda.Label(), cda.setup.String()))
	flag(&s, "vsync", cda.vsyncInterrupt)
	flag(&s, "blink", cda.blinkAttribute)
	flag(&s, "font", cda.userFont)
	s.WriteString(fmt.Sprintf("policy=%v frame=%d counter=%d", cda.policy, cda.frame, cda.counter))
	return s.String()
}

func (cda *CDA) String() string {
	return cda.Status()
}
