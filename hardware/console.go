// Package hardware is the host around the display adapter. The RC3200 CPU is
// not emulated. The Console stands in for it by supplying the clock frequency,
// collecting interrupts and ticking the attached devices.
package hardware

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rc3200/cda/gui"
	"github.com/rc3200/cda/hardware/cda"
	"github.com/rc3200/cda/hardware/clocks"
	"github.com/rc3200/cda/hardware/device"
	"github.com/rc3200/cda/hardware/memory"
	"github.com/rc3200/cda/logger"
)

// MaxPendingInterrupts is the number of interrupts that can wait in the queue
// before further interrupts are refused
const MaxPendingInterrupts = 64

// InterruptQueueFull is passed to Context.Break() when an interrupt is refused
var InterruptQueueFull = errors.New("interrupt queue full")

// Context allows the console to communicate with the debugger
type Context interface {
	Break(error)
}

// Config is used when creating a new Console
type Config struct {
	// clock frequency in Hz. the default clock is used if the value is zero
	Clock uint32

	CDA cda.Config
}

// Console implements the device.CPU interface for the attached devices
type Console struct {
	ctx Context
	g   *gui.GUI

	clock uint32

	Mem     *memory.Memory
	CDA     *cda.CDA
	devices []device.Device

	// total number of cycles since the last reset
	Cycles uint64

	pending []uint32
	limiter *limiter

	rand *rand.Rand
}

// Create a new console with a CDA attached to the memory bus. The GUI can be
// nil
func Create(ctx Context, g *gui.GUI, cfg Config) (*Console, error) {
	con := &Console{
		ctx:     ctx,
		g:       g,
		clock:   cfg.Clock,
		Mem:     memory.NewMemory(),
		pending: make([]uint32, 0, MaxPendingInterrupts),
		rand:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	if con.clock == 0 {
		con.clock = clocks.Default
	}

	if cfg.CDA.Rand == nil {
		cfg.CDA.Rand = con
	}

	var err error
	con.CDA, err = cda.Create(cfg.CDA)
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}

	err = con.attach(con.CDA)
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}

	return con, nil
}

func (con *Console) attach(devs ...device.Device) error {
	err := con.Mem.Attach(device.Areas(devs...)...)
	if err != nil {
		return err
	}
	for _, d := range devs {
		logger.Logf(logger.Allow, "console", "attached %s: %v", d.Label(), d.Identity())
	}
	con.devices = append(con.devices, devs...)
	return nil
}

// Clock implements the device.CPU interface
func (con *Console) Clock() uint32 {
	return con.clock
}

// SetClock changes the clock frequency
func (con *Console) SetClock(hz uint32) error {
	if hz == 0 {
		return fmt.Errorf("console: clock frequency cannot be zero")
	}
	con.clock = hz
	logger.Logf(logger.Allow, "console", "clock: %s", clocks.String(hz))
	return nil
}

// Rand8Bit returns a random byte for randomising memory on reset
func (con *Console) Rand8Bit() uint8 {
	return uint8(con.rand.IntN(256))
}

// ThrowInterrupt implements the device.CPU interface
func (con *Console) ThrowInterrupt(msg uint32) bool {
	if len(con.pending) >= MaxPendingInterrupts {
		logger.Logf(logger.Allow, "console", "%v: %08x refused", InterruptQueueFull, msg)
		if con.ctx != nil {
			con.ctx.Break(fmt.Errorf("%w: %08x", InterruptQueueFull, msg))
		}
		return false
	}
	con.pending = append(con.pending, msg)
	return true
}

// Interrupts drains the interrupt queue. Interrupts are returned in the order
// they were thrown
func (con *Console) Interrupts() []uint32 {
	ints := append([]uint32(nil), con.pending...)
	con.pending = con.pending[:0]
	return ints
}

// Pending returns the number of interrupts in the queue
func (con *Console) Pending() int {
	return len(con.pending)
}

// Step advances all devices by n cycles
func (con *Console) Step(n uint) {
	for _, d := range con.devices {
		d.Tick(con, n)
	}
	con.Cycles += uint64(n)
}

// Frame advances all devices by the number of cycles in one refresh period
func (con *Console) Frame() {
	con.Step(cda.Threshold(con.clock))
}

// Run the console in real time, one refresh period at a time, until a value is
// received on the stop channel or the hook function returns an error. The
// exposed buffer is sent to the GUI after every refresh period
func (con *Console) Run(stop chan bool, hook func() error) error {
	if con.limiter == nil {
		con.limiter = newLimiter(cda.RefreshRate)
	}

	// first refresh period is run without waiting
	con.limiter.Nudge()

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		con.limiter.Wait()

		con.Frame()
		con.PushRender()

		err := hook()
		if err != nil {
			return err
		}
	}
}

// PushRender sends a copy of the exposed buffer to the GUI. The image is
// dropped if the GUI is not ready for it
func (con *Console) PushRender() {
	if con.g == nil {
		return
	}

	img := gui.Image{
		Data:      con.CDA.ExposedBuffer(),
		VideoMode: con.CDA.VideoMode(),
		TextMode:  con.CDA.IsTextMode(),
		Frame:     con.CDA.Frame(),
	}

	select {
	case con.g.SetImage <- img:
	default:
	}
}

// Reset all devices and empty the interrupt queue. If random is true then
// VRAM is filled with random values after the reset
func (con *Console) Reset(random bool) {
	for _, d := range con.devices {
		d.Reset()
	}
	if random {
		con.CDA.RandomiseVRAM()
	}
	con.pending = con.pending[:0]
	con.Cycles = 0
}

// Devices returns the attached devices
func (con *Console) Devices() []device.Device {
	return con.devices
}

// Shutdown stops the real time limiter and detaches all devices from the
// memory bus
func (con *Console) Shutdown() {
	if con.limiter != nil {
		con.limiter.Stop()
		con.limiter = nil
	}
	con.Mem.Detach()
}
