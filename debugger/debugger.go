package debugger

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rc3200/cda/gui"
	"github.com/rc3200/cda/hardware"
	"github.com/rc3200/cda/hardware/cda"
	"github.com/rc3200/cda/hardware/clocks"
	"github.com/rc3200/cda/logger"
	"github.com/rc3200/cda/prefs"
	"github.com/rc3200/cda/resources"
	"github.com/rc3200/cda/statsview"
	"github.com/rc3200/cda/version"
)

type input struct {
	s   string
	err error
}

type debugger struct {
	ctx context

	guiQuit chan bool
	sig     chan os.Signal
	input   chan input

	g *gui.GUI

	// all debugger output is written here
	out io.Writer

	console *hardware.Console
	prefs   *cda.Preferences
	watches map[uint32]watch

	// file to load into VRAM on reset
	loader string

	// nil if the input is not a terminal
	term *terminal

	// printing styles
	styles styles
}

// Options are the values specified on the command line
type Options struct {
	Slot      int
	Clock     uint32
	Policy    cda.FirePolicy
	Prefs     string
	PrefsFile string
	Statsview bool
	Profile   bool
	GUI       bool
	Version   bool

	// file to load into VRAM on reset
	Loader string
}

const programName = "cda"

// ParseArgs parses the command line arguments for the debugger
func ParseArgs(args []string) (Options, error) {
	var opts Options
	var clock string
	var policy string

	flgs := flag.NewFlagSet(programName, flag.ContinueOnError)
	flgs.IntVar(&opts.Slot, "slot", 0, "slot number of the CDA (0 to 3)")
	flgs.StringVar(&clock, "clock", "100KHz", "clock frequency of the RC3200")
	flgs.StringVar(&policy, "policy", "CROSSING", "vsync policy when a tick covers more than one refresh period: CROSSING or ONCE")
	flgs.StringVar(&opts.Prefs, "prefs", "", "preferences for this session. for example, \"cda.vsync::true; cda.blink::false\"")
	flgs.BoolVar(&opts.Statsview, "statsview", false, fmt.Sprintf("run the statistics server (%s)", statsview.URL()))
	flgs.BoolVar(&opts.Profile, "profile", false, "create CPU profile for emulator")
	flgs.BoolVar(&opts.GUI, "gui", true, "open a window showing the exposed buffer")
	flgs.BoolVar(&opts.Version, "version", false, "print version information and exit")
	err := flgs.Parse(args)
	if err != nil {
		return opts, err
	}
	args = flgs.Args()

	if len(args) == 1 {
		opts.Loader = args[0]
	} else if len(args) > 1 {
		return opts, fmt.Errorf("too many arguments to debugger")
	}

	opts.Clock, err = clocks.Parse(clock)
	if err != nil {
		return opts, err
	}

	opts.Policy, err = cda.ParsePolicy(policy)
	if err != nil {
		return opts, err
	}

	if _, err := cda.BaseAddress(opts.Slot); err != nil {
		return opts, err
	}

	return opts, nil
}

func create(opts Options, g *gui.GUI, guiQuit chan bool, out io.Writer) (*debugger, error) {
	m := &debugger{
		guiQuit: guiQuit,
		g:       g,
		out:     out,
		sig:     make(chan os.Signal, 1),
		input:   make(chan input, 1),
		loader:  opts.Loader,
		styles:  newStyles(),
		watches: make(map[uint32]watch),
	}

	var err error

	m.console, err = hardware.Create(&m.ctx, g, hardware.Config{
		Clock: opts.Clock,
		CDA: cda.Config{
			Slot:   opts.Slot,
			Policy: opts.Policy,
		},
	})
	if err != nil {
		return nil, err
	}

	if opts.PrefsFile == "" {
		opts.PrefsFile, err = resources.JoinPath("preferences")
		if err != nil {
			return nil, err
		}
	}

	if opts.Prefs != "" {
		prefs.PushCommandLineStack(opts.Prefs)
		defer func() {
			if s := prefs.PopCommandLineStack(); s != "" {
				logger.Logf(logger.Allow, "prefs", "unused preferences: %s", s)
			}
		}()
	}

	m.prefs, err = cda.NewPreferences(m.console.CDA, opts.PrefsFile)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *debugger) println(style func(...string) string, s string) {
	fmt.Fprintln(m.out, style(s))
}

func (m *debugger) printErr(s string) {
	m.println(m.styles.err.Render, s)
}

// reset the console and reload the loader file. VRAM is randomised before
// loading if random is true
func (m *debugger) reset(random bool) {
	m.ctx.Reset()
	m.console.Reset(random)

	if m.loader != "" {
		err := m.load(m.loader)
		if err != nil {
			m.printErr(fmt.Sprintf("%s: %s", filepath.Base(m.loader), err.Error()))

			// forget about loader because we now know it doesn't work
			m.loader = ""
		}
	}

	m.println(m.styles.debugger.Render, "console reset")
	m.println(m.styles.cda.Render, m.console.CDA.Status())
}

// load the file into VRAM starting at the first byte. files larger than VRAM
// are truncated
func (m *debugger) load(filename string) error {
	d, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	if len(d) > cda.VRAMSize {
		m.printErr(fmt.Sprintf("%s is larger than VRAM: truncated to %d bytes", filepath.Base(filename), cda.VRAMSize))
		d = d[:cda.VRAMSize]
	}

	origin := m.console.CDA.MemoryAreas()[0].Window().Begin
	for i, v := range d {
		err := m.console.Mem.Write(origin+uint32(i), v)
		if err != nil {
			return err
		}
	}

	m.println(m.styles.debugger.Render, fmt.Sprintf("%d bytes loaded from %s", len(d), filepath.Base(filename)))

	return nil
}

func (m *debugger) contextBreaks() error {
	if len(m.ctx.breaks) == 0 {
		return nil
	}

	err := m.ctx.breaks[0]
	for _, e := range m.ctx.breaks[1:] {
		err = fmt.Errorf("%w\n%w", err, e)
	}

	// breaks have been processed and so are now cleared
	m.ctx.breaks = m.ctx.breaks[:0]

	return err
}

// print the result of a step in the emulation
func (m *debugger) afterStep() {
	m.console.PushRender()

	if err := m.contextBreaks(); err != nil {
		m.printErr(err.Error())
	}

	changed, err := m.checkWatches()
	if len(changed) > 0 {
		m.println(m.styles.watch.Render, watchSummary(changed))
	}
	if err != nil {
		m.printErr(err.Error())
	}

	if n := m.console.Pending(); n > 0 {
		m.println(m.styles.interrupt.Render, fmt.Sprintf("%d interrupts pending", n))
	}

	m.println(m.styles.cda.Render, m.console.CDA.Status())
}

// advance the emulation by n cycles
func (m *debugger) tick(n uint) {
	m.console.Step(n)
	m.afterStep()
}

// advance the emulation by n refresh periods
func (m *debugger) frames(n int) {
	for range n {
		m.console.Frame()
	}
	m.afterStep()
}

// returns true if quit signal has been received
func (m *debugger) run() bool {
	m.println(m.styles.debugger.Render, "emulation running")

	var startFrame = m.console.CDA.Frame()
	var startTime = time.Now()

	var (
		watchErr   = errors.New("watch")
		contextErr = errors.New("context")
		endRunErr  = errors.New("end run")
		quitErr    = errors.New("quit")
	)

	// there is no CPU to service interrupts while running so the debugger
	// acknowledges them. otherwise the queue fills after MaxPendingInterrupts
	// refresh periods and the run is broken
	serviced := len(m.console.Interrupts())

	// hook is called after every refresh period
	hook := func() error {
		serviced += len(m.console.Interrupts())

		select {
		case <-m.sig:
			return endRunErr
		case <-m.guiQuit:
			return quitErr
		case inp := <-m.input:
			if inp.err != nil {
				return quitErr
			}
			return endRunErr
		case inp := <-m.g.UserInput:
			switch inp.Action {
			case gui.Quit:
				return quitErr
			case gui.Pause, gui.Step:
				return endRunErr
			}
		default:
		}

		err := m.contextBreaks()
		if err != nil {
			return fmt.Errorf("%w%w", contextErr, err)
		}

		changed, err := m.checkWatches()
		if err != nil {
			return fmt.Errorf("%w%w", contextErr, err)
		}
		if len(changed) > 0 {
			return fmt.Errorf("%w: %s", watchErr, watchSummary(changed))
		}

		return nil
	}

	// a single keypress will stop the emulation
	m.term.cbreakMode()
	m.g.SetState(gui.StateRunning)
	err := m.console.Run(nil, hook)
	m.g.SetState(gui.StatePaused)
	m.term.canonicalMode()

	if serviced > 0 {
		m.println(m.styles.interrupt.Render, fmt.Sprintf("%d interrupts serviced", serviced))
	}

	if errors.Is(err, quitErr) {
		return true
	}

	if errors.Is(err, endRunErr) {
		m.println(m.styles.debugger.Render,
			fmt.Sprintf("%d frames in %.02f seconds", m.console.CDA.Frame()-startFrame, time.Since(startTime).Seconds()),
		)
	} else if errors.Is(err, watchErr) {
		m.println(m.styles.watch.Render, err.Error())
	} else if errors.Is(err, contextErr) {
		s := strings.TrimPrefix(err.Error(), contextErr.Error())
		m.printErr(s)
	} else if err != nil {
		m.printErr(err.Error())
	}

	m.println(m.styles.cda.Render, m.console.CDA.Status())

	return false
}

func (m *debugger) prompt() string {
	return fmt.Sprintf("%d:%d> ", m.console.CDA.Frame(), m.console.CDA.Counter())
}

func (m *debugger) loop() {
	for {
		fmt.Fprint(m.out, m.prompt())

		var cmd []string

		select {
		case input := <-m.input:
			if input.err != nil {
				if !errors.Is(input.err, io.EOF) {
					m.printErr(input.err.Error())
				}
				return
			}
			cmd = strings.Fields(input.s)
			if len(cmd) == 0 {
				cmd = []string{"FRAME"}
			}
		case inp := <-m.g.UserInput:
			switch inp.Action {
			case gui.Quit:
				fmt.Fprint(m.out, "\n")
				return
			case gui.Pause:
				cmd = []string{"RUN"}
			case gui.Step:
				cmd = []string{"FRAME"}
			default:
				continue // for loop
			}
			fmt.Fprintln(m.out, strings.Join(cmd, " "))
		case <-m.sig:
			fmt.Fprint(m.out, "\r")
			return
		case <-m.guiQuit:
			fmt.Fprint(m.out, "\n")
			return
		}

		if m.commands(cmd) {
			return
		}
	}
}

// Launch the debugger. The function returns when the QUIT command is entered
// or when a value is received on the guiQuit channel
func Launch(guiQuit chan bool, g *gui.GUI, opts Options) error {
	m, err := create(opts, g, guiQuit, os.Stdout)
	if err != nil {
		return err
	}
	defer m.console.Shutdown()

	m.println(m.styles.debugger.Render, fmt.Sprintf("%s %v", version.ApplicationName, version.Version()))

	signal.Notify(m.sig, syscall.SIGINT)

	m.term, err = newTerminal(os.Stdin)
	if err != nil {
		logger.Log(logger.Allow, "debugger", err)
	}

	go func() {
		r := bufio.NewReader(os.Stdin)
		b := make([]byte, 256)
		for {
			n, err := r.Read(b)
			if err != nil {
				m.input <- input{err: err}
				return
			}
			select {
			case m.input <- input{
				s: strings.TrimSpace(string(b[:n])),
			}:
			default:
			}
		}
	}()

	if opts.Statsview {
		statsview.Launch(m.out)
	}

	m.reset(false)

	if opts.Profile {
		f, err := os.Create("cpu.profile")
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer func() {
			err := f.Close()
			if err != nil {
				logger.Log(logger.Allow, "performance", err)
			}
		}()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	m.loop()

	return nil
}
