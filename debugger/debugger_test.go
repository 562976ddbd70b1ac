package debugger

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/rc3200/cda/gui"
	"github.com/rc3200/cda/hardware"
	"github.com/rc3200/cda/hardware/cda"
	"github.com/rc3200/cda/test"
)

func newTestDebugger(t *testing.T, args ...string) (*debugger, *test.CompareWriter) {
	t.Helper()

	opts, err := ParseArgs(args)
	test.DemandSuccess(t, err)
	opts.PrefsFile = filepath.Join(t.TempDir(), "preferences")

	var w test.CompareWriter
	m, err := create(opts, gui.NewGUI(), make(chan bool, 1), &w)
	test.DemandSuccess(t, err)

	return m, &w
}

func expectOutput(t *testing.T, w *test.CompareWriter, s string) {
	t.Helper()
	if !w.Contains(s) {
		t.Errorf("output does not contain %q:\n%s", s, w.String())
	}
	w.Clear()
}

func TestParseArgs(t *testing.T) {
	opts, err := ParseArgs([]string{"-slot", "2", "-clock", "360000", "-policy", "once", "-gui=false", "vram.bin"})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, opts.Slot, 2)
	test.ExpectEquality(t, opts.Clock, uint32(360000))
	test.ExpectEquality(t, opts.Policy, cda.FireOncePerCall)
	test.ExpectFailure(t, opts.GUI)
	test.ExpectEquality(t, opts.Loader, "vram.bin")

	opts, err = ParseArgs(nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, opts.Clock, uint32(100000))
	test.ExpectEquality(t, opts.Policy, cda.FirePerCrossing)
	test.ExpectSuccess(t, opts.GUI)

	_, err = ParseArgs([]string{"-slot", "4"})
	test.ExpectFailure(t, err)
	_, err = ParseArgs([]string{"-clock", "fast"})
	test.ExpectFailure(t, err)
	_, err = ParseArgs([]string{"a", "b"})
	test.ExpectFailure(t, err)
}

func TestParseAddress(t *testing.T) {
	m, _ := newTestDebugger(t, "-slot", "1")

	ma, err := m.parseAddress("$ff0b0010")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ma.address, uint32(0xff0b0010))
	test.ExpectEquality(t, ma.area.Label(), "CDA VRAM")

	ma, err = m.parseAddress("0xff0bcc00")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ma.area.Label(), "CDA SETUP")

	_, err = m.parseAddress("$ff0a0000")
	test.ExpectFailure(t, err)
	_, err = m.parseAddress("$1ffffffff")
	test.ExpectFailure(t, err)
	_, err = m.parseAddress("nowhere")
	test.ExpectFailure(t, err)

	v, err := parseValue("$ff")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xff))
	_, err = parseValue("256")
	test.ExpectFailure(t, err)
}

func TestPokePeek(t *testing.T) {
	m, w := newTestDebugger(t)

	test.ExpectFailure(t, m.commands([]string{"POKE", "$ff0a0001", "$42"}))
	expectOutput(t, w, "$ff0a0001 = $42 (CDA VRAM)")

	m.commands([]string{"peek", "0xff0a0001"})
	expectOutput(t, w, "$ff0a0001 = $42 (CDA VRAM)")

	m.commands([]string{"DUMP", "$ff0a0000", "$ff0a0011"})
	expectOutput(t, w, "ff0a0000 00 42 00")
	m.commands([]string{"DUMP", "$ff0a0000", "$ff0acc00"})
	expectOutput(t, w, "different memory areas")

	m.commands([]string{"PEEK", "$00000000"})
	expectOutput(t, w, "address is not mapped")
}

func TestSetupAndMode(t *testing.T) {
	m, w := newTestDebugger(t)

	m.commands([]string{"SETUP", "$06"})
	expectOutput(t, w, "SETUP $ff0acc00 = $06")
	m.commands([]string{"MODE"})
	expectOutput(t, w, "video mode 2 (graphics)")

	m.commands([]string{"SETUP", "3"})
	m.commands([]string{"MODE"})
	expectOutput(t, w, "video mode 3 (text)")
}

func TestFrameAndInterrupts(t *testing.T) {
	m, w := newTestDebugger(t, "-slot", "3")

	m.commands([]string{"VSYNC", "ON"})
	expectOutput(t, w, "vsync interrupt: true")
	test.ExpectSuccess(t, m.console.CDA.IsVSyncInterrupt())

	m.commands([]string{"FRAME", "2"})
	expectOutput(t, w, "2 interrupts pending")
	test.ExpectEquality(t, m.console.CDA.Frame(), uint64(2))

	m.commands([]string{"INTS"})
	expectOutput(t, w, "interrupt 0000305a")
	m.commands([]string{"INTS"})
	expectOutput(t, w, "no interrupts pending")

	m.commands([]string{"TICK", "3999"})
	test.ExpectEquality(t, m.console.CDA.Frame(), uint64(2))
	m.commands([]string{"TICK"})
	test.ExpectEquality(t, m.console.CDA.Frame(), uint64(3))

	m.commands([]string{"TICK", "0"})
	expectOutput(t, w, "not a valid count")
}

func TestFillAndWatch(t *testing.T) {
	m, w := newTestDebugger(t)

	m.commands([]string{"WATCH", "$ff0a43ff"})
	expectOutput(t, w, "added watch for $ff0a43ff")
	m.commands([]string{"WATCH", "$ff0a0000"})
	expectOutput(t, w, "added watch for $ff0a0000")
	m.commands([]string{"LIST"})
	expectOutput(t, w, "$ff0a0000 (CDA VRAM)\n$ff0a43ff (CDA VRAM)")

	m.commands([]string{"FILL", "$aa"})
	expectOutput(t, w, "filled with $aa")

	// every change is reported after the next step
	m.commands([]string{"FRAME"})
	test.ExpectSuccess(t, w.Contains("ff0a0000 = 00 -> aa"))
	expectOutput(t, w, "ff0a43ff = 00 -> aa")
	test.ExpectEquality(t, m.console.CDA.ExposedBuffer()[cda.VRAMSize-1], uint8(0xaa))

	m.commands([]string{"WATCH", "DROP", "ALL"})
	m.commands([]string{"LIST"})
	expectOutput(t, w, "none")
}

func TestPolicyAndClock(t *testing.T) {
	m, w := newTestDebugger(t)

	m.commands([]string{"POLICY", "once"})
	expectOutput(t, w, "policy: ONCE")
	test.ExpectEquality(t, m.console.CDA.Policy(), cda.FireOncePerCall)

	m.commands([]string{"POLICY", "sometimes"})
	expectOutput(t, w, "unrecognised fire policy")
	test.ExpectEquality(t, m.console.CDA.Policy(), cda.FireOncePerCall)

	m.commands([]string{"CLOCK", "1MHz"})
	expectOutput(t, w, "clock: 1MHz (40000 cycles per refresh)")
}

func TestLoad(t *testing.T) {
	m, w := newTestDebugger(t)

	fn := filepath.Join(t.TempDir(), "vram.bin")
	test.DemandSuccess(t, os.WriteFile(fn, []byte{0x01, 0x02, 0x03}, 0o600))

	m.commands([]string{"LOAD", fn})
	expectOutput(t, w, "3 bytes loaded from vram.bin")

	v, err := m.console.Mem.Read(0xff0a0002)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x03))

	m.commands([]string{"LOAD", filepath.Join(t.TempDir(), "missing")})
	expectOutput(t, w, "missing")
	test.ExpectEquality(t, m.loader, "")
}

func TestPrefsCommand(t *testing.T) {
	m, w := newTestDebugger(t, "-prefs", "cda.blink::true")
	test.ExpectSuccess(t, m.console.CDA.IsBlinkAttribute())

	m.commands([]string{"FONT", "ON"})
	m.commands([]string{"PREFS", "SAVE"})
	expectOutput(t, w, "preferences saved")

	m.commands([]string{"PREFS"})
	expectOutput(t, w, "cda.userfont :: true")

	m.commands([]string{"PREFS", "SET", "cda.vsync", "on"})
	expectOutput(t, w, "cda.vsync set")
	test.ExpectSuccess(t, m.console.CDA.IsVSyncInterrupt())

	m.commands([]string{"PREFS", "SET", "cda.vsync", "yes"})
	expectOutput(t, w, "not a boolean value")
	test.ExpectSuccess(t, m.console.CDA.IsVSyncInterrupt())

	m.commands([]string{"PREFS", "SET", "cda.policy", "once"})
	test.ExpectEquality(t, m.console.CDA.Policy(), cda.FireOncePerCall)

	m.commands([]string{"PREFS", "SET", "cda.nonsense", "1"})
	expectOutput(t, w, "unknown key")

	m.commands([]string{"PREFS", "RESET"})
	expectOutput(t, w, "preferences reset")
	test.ExpectFailure(t, m.console.CDA.IsVSyncInterrupt())
	test.ExpectFailure(t, m.console.CDA.IsUserFont())
	test.ExpectEquality(t, m.console.CDA.Policy(), cda.FirePerCrossing)
}

func TestMiscCommands(t *testing.T) {
	m, w := newTestDebugger(t)

	m.commands([]string{"MAP"})
	expectOutput(t, w, "CDA SETUP")

	m.commands([]string{"STATE"})
	expectOutput(t, w, "VideoMode")

	fn := filepath.Join(t.TempDir(), "cda.dot")
	m.commands([]string{"MEMVIZ", fn})
	expectOutput(t, w, "CDA state written to")
	_, err := os.Stat(fn)
	test.ExpectSuccess(t, err)

	m.commands([]string{"HELP"})
	expectOutput(t, w, "POKE <addr> <v>")

	m.commands([]string{"VSYNC", "OFF"})
	m.commands([]string{"LOG", "CLEAR"})
	m.commands([]string{"VSYNC", "ON"})
	w.Clear()
	m.commands([]string{"LOG", "TAIL", "1"})
	expectOutput(t, w, "cda: vsync interrupt: true")
	m.commands([]string{"LOG", "TAIL", "none"})
	expectOutput(t, w, "not a valid count: none")

	m.commands([]string{"NONSENSE"})
	expectOutput(t, w, "unrecognised command: NONSENSE")

	test.ExpectSuccess(t, m.commands([]string{"QUIT"}))
}

func TestRunStopsOnInput(t *testing.T) {
	m, w := newTestDebugger(t)
	defer m.console.Shutdown()

	m.g.UserInput <- gui.Input{Action: gui.Pause}
	test.ExpectFailure(t, m.run())
	expectOutput(t, w, "frames in")
	test.ExpectEquality(t, m.console.CDA.Frame(), uint64(1))

	m.g.UserInput <- gui.Input{Action: gui.Quit}
	test.ExpectSuccess(t, m.run())
}

func TestRunServicesInterrupts(t *testing.T) {
	m, w := newTestDebugger(t)
	defer m.console.Shutdown()

	m.commands([]string{"VSYNC", "ON"})
	m.commands([]string{"FRAME", strconv.Itoa(hardware.MaxPendingInterrupts)})
	test.DemandEquality(t, m.console.Pending(), hardware.MaxPendingInterrupts)
	w.Clear()

	// a full queue does not stop the run
	m.g.UserInput <- gui.Input{Action: gui.Pause}
	test.ExpectFailure(t, m.run())
	test.ExpectEquality(t, m.console.Pending(), 0)
	test.ExpectEquality(t, len(m.ctx.breaks), 0)
	test.ExpectFailure(t, w.Contains("interrupt queue full"))
	expectOutput(t, w, fmt.Sprintf("%d interrupts serviced", hardware.MaxPendingInterrupts+1))
}

func TestResetRandom(t *testing.T) {
	m, w := newTestDebugger(t)

	m.commands([]string{"RESET", "RANDOM"})
	expectOutput(t, w, "console reset")

	var nonzero int
	for i := range uint32(cda.VRAMSize) {
		v, err := m.console.Mem.Read(0xff0a0000 + i)
		test.DemandSuccess(t, err)
		if v != 0 {
			nonzero++
		}
	}
	test.ExpectInequality(t, nonzero, 0)

	m.commands([]string{"RESET", "SOMETIMES"})
	expectOutput(t, w, "unrecognised argument for RESET command")
}
