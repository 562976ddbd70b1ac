package debugger

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/davecgh/go-spew/spew"
	"github.com/rc3200/cda/hardware/cda"
	"github.com/rc3200/cda/hardware/clocks"
	"github.com/rc3200/cda/hardware/memory"
	"github.com/rc3200/cda/logger"
	"github.com/rc3200/cda/prefs"
)

var commandHelp = map[string]string{
	"TICK":   "TICK [n]\t\tadvance n cycles",
	"FRAME":  "FRAME [n]\t\tadvance n refresh periods",
	"RUN":    "RUN\t\t\trun in real time until a key is pressed",
	"RESET":  "RESET [RANDOM]\t\treset the console",
	"LOAD":   "LOAD <file>\t\tcopy file into VRAM",
	"CDA":    "CDA\t\t\tCDA status",
	"MODE":   "MODE\t\t\tcurrent video mode",
	"SETUP":  "SETUP [v]\t\twrite to the SETUP register",
	"VSYNC":  "VSYNC [ON|OFF]\t\tvsync interrupt",
	"BLINK":  "BLINK [ON|OFF]\t\tblink attribute",
	"FONT":   "FONT [ON|OFF]\t\tuser font",
	"POLICY": "POLICY [ONCE|CROSSING]\tvsync policy",
	"CLOCK":  "CLOCK [rate]\t\tclock frequency",
	"INTS":   "INTS\t\t\tdrain the interrupt queue",
	"PEEK":   "PEEK <addr>\t\tread memory",
	"POKE":   "POKE <addr> <v>\t\twrite memory",
	"DUMP":   "DUMP <from> <to>\tread a range of memory",
	"FILL":   "FILL <v>\t\tfill VRAM",
	"WATCH":  "WATCH [DROP] <addr>\tstop RUN when address changes",
	"LIST":   "LIST\t\t\tlist watches",
	"MAP":    "MAP\t\t\tmemory map",
	"LOG":    "LOG [ECHO|NOECHO|RECENT|CLEAR|TAIL n]\tshow log",
	"PREFS":  "PREFS [SAVE|LOAD|RESET|SET key value]\tpreferences",
	"STATE":  "STATE\t\t\tdump CDA state",
	"MEMVIZ": "MEMVIZ <file>\t\twrite CDA state as a dot graph",
	"HELP":   "HELP\t\t\tthis list",
	"QUIT":   "QUIT\t\t\tquit the debugger",
}

// parse an optional count argument. the default count is one
func parseCount(cmd []string) (int, error) {
	if len(cmd) < 2 {
		return 1, nil
	}
	n, err := strconv.Atoi(cmd[1])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("not a valid count: %s", cmd[1])
	}
	return n, nil
}

func (m *debugger) setSwitch(cmd []string, label string, p *prefs.Bool) {
	if len(cmd) > 1 {
		set, err := parseSwitch(cmd[1])
		if err != nil {
			m.printErr(fmt.Sprintf("%s: %s", strings.ToLower(label), err.Error()))
			return
		}
		if err := p.Set(set); err != nil {
			m.printErr(err.Error())
			return
		}
	}
	m.println(m.styles.cda.Render, fmt.Sprintf("%s: %s", label, p.String()))
}

// returns true if debugger is to quit
func (m *debugger) commands(cmd []string) bool {
	if len(cmd) == 0 {
		return false
	}

	switch strings.ToUpper(cmd[0]) {
	case "T", "TICK":
		n, err := parseCount(cmd)
		if err != nil {
			m.printErr(fmt.Sprintf("tick: %s", err.Error()))
			break // switch
		}
		m.tick(uint(n))

	case "F", "FRAME":
		n, err := parseCount(cmd)
		if err != nil {
			m.printErr(fmt.Sprintf("frame: %s", err.Error()))
			break // switch
		}
		m.frames(n)

	case "R", "RUN":
		return m.run()

	case "RESET":
		random := len(cmd) > 1 && strings.ToUpper(cmd[1]) == "RANDOM"
		if len(cmd) > 1 && !random {
			m.printErr(fmt.Sprintf("unrecognised argument for RESET command: %s", cmd[1]))
			break // switch
		}
		m.reset(random)

	case "LOAD":
		if len(cmd) < 2 {
			m.printErr("LOAD requires a filename")
			break // switch
		}
		m.loader = cmd[1]
		m.reset(false)

	case "CDA":
		m.println(m.styles.cda.Render, fmt.Sprintf("%s %v", m.console.CDA.Label(), m.console.CDA.Identity()))
		m.println(m.styles.cda.Render, m.console.CDA.Status())

	case "MODE":
		mode := "graphics"
		if m.console.CDA.IsTextMode() {
			mode = "text"
		}
		m.println(m.styles.video.Render, fmt.Sprintf("video mode %d (%s)", m.console.CDA.VideoMode(), mode))

	case "SETUP":
		address, _ := cda.SetupAddress(m.console.CDA.Slot())
		if len(cmd) > 1 {
			v, err := parseValue(cmd[1])
			if err != nil {
				m.printErr(fmt.Sprintf("setup: %s", err.Error()))
				break // switch
			}
			err = m.console.Mem.Write(address, v)
			if err != nil {
				m.printErr(fmt.Sprintf("setup: %s", err.Error()))
				break // switch
			}
		}
		m.println(m.styles.video.Render, fmt.Sprintf("SETUP $%08x = $%02x", address, m.console.CDA.Setup()))

	case "VSYNC":
		m.setSwitch(cmd, "vsync interrupt", &m.prefs.VSyncInterrupt)

	case "BLINK":
		m.setSwitch(cmd, "blink attribute", &m.prefs.BlinkAttribute)

	case "FONT":
		m.setSwitch(cmd, "user font", &m.prefs.UserFont)

	case "POLICY":
		if len(cmd) > 1 {
			err := m.prefs.Policy.Set(strings.ToUpper(cmd[1]))
			if err != nil {
				m.printErr(err.Error())
				break // switch
			}
		}
		m.println(m.styles.cda.Render, fmt.Sprintf("policy: %v", m.console.CDA.Policy()))

	case "CLOCK":
		if len(cmd) > 1 {
			hz, err := clocks.Parse(cmd[1])
			if err != nil {
				m.printErr(err.Error())
				break // switch
			}
			err = m.console.SetClock(hz)
			if err != nil {
				m.printErr(err.Error())
				break // switch
			}
		}
		m.println(m.styles.cda.Render, fmt.Sprintf("clock: %s (%d cycles per refresh)",
			clocks.String(m.console.Clock()), cda.Threshold(m.console.Clock())))

	case "INTS":
		ints := m.console.Interrupts()
		if len(ints) == 0 {
			m.println(m.styles.interrupt.Render, "no interrupts pending")
			break // switch
		}
		for _, msg := range ints {
			m.println(m.styles.interrupt.Render, fmt.Sprintf("interrupt %08x", msg))
		}

	case "DUMP":
		if len(cmd) < 3 {
			m.printErr("DUMP requires a 'from' and a 'to' address")
			break // switch
		}

		from, err := m.parseAddress(cmd[1])
		if err != nil {
			m.printErr(fmt.Sprintf("dump: %s", err.Error()))
			break // switch
		}

		to, err := m.parseAddress(cmd[2])
		if err != nil {
			m.printErr(fmt.Sprintf("dump: %s", err.Error()))
			break // switch
		}

		if to.address < from.address {
			m.printErr("dump: the 'to' address is less than the 'from' address")
			break // switch
		}

		if from.area != to.area {
			m.printErr("dump: the 'from' and 'to' addresses are in different memory areas")
			break // switch
		}

		var s strings.Builder
		var column int
		for address := uint64(from.address); address <= uint64(to.address); address++ {
			if column == 0 {
				s.WriteString(fmt.Sprintf("%08x", address))
			}

			data, err := memory.Read(from.area, uint32(address))
			if err != nil {
				m.printErr(fmt.Sprintf("dump address is not readable: %08x", address))
				break // for loop
			}
			s.WriteString(fmt.Sprintf(" %02x", data))

			column++
			if column > 15 {
				s.WriteString("\n")
				column = 0
			}
		}
		fmt.Fprintln(m.out, strings.TrimSuffix(s.String(), "\n"))

	case "PEEK":
		if len(cmd) < 2 {
			m.printErr("PEEK requires an address")
			break // switch
		}

		ma, err := m.parseAddress(cmd[1])
		if err != nil {
			m.printErr(fmt.Sprintf("peek: %s", err.Error()))
			break // switch
		}

		data, err := memory.Read(ma.area, ma.address)
		if err != nil {
			m.printErr(fmt.Sprintf("peek address is not readable: %s", cmd[1]))
			break // switch
		}

		m.println(m.styles.mem.Render, fmt.Sprintf("$%08x = $%02x (%s)", ma.address, data, ma.area.Label()))

	case "POKE":
		if len(cmd) < 3 {
			m.printErr("POKE requires an address and a value")
			break // switch
		}

		ma, err := m.parseAddress(cmd[1])
		if err != nil {
			m.printErr(fmt.Sprintf("poke: %s", err.Error()))
			break // switch
		}

		v, err := parseValue(cmd[2])
		if err != nil {
			m.printErr(fmt.Sprintf("poke: %s", err.Error()))
			break // switch
		}

		err = m.console.Mem.Write(ma.address, v)
		if err != nil {
			m.printErr(fmt.Sprintf("poke address is not writeable: %s", cmd[1]))
			break // switch
		}

		data, err := memory.Read(ma.area, ma.address)
		if err != nil {
			m.printErr(fmt.Sprintf("poke address is not readable: %s", cmd[1]))
			break // switch
		}

		m.println(m.styles.mem.Render, fmt.Sprintf("$%08x = $%02x (%s)", ma.address, data, ma.area.Label()))

	case "FILL":
		if len(cmd) < 2 {
			m.printErr("FILL requires a value")
			break // switch
		}

		v, err := parseValue(cmd[1])
		if err != nil {
			m.printErr(fmt.Sprintf("fill: %s", err.Error()))
			break // switch
		}

		m.console.CDA.FillVRAM(v)
		vram := m.console.CDA.MemoryAreas()[0].Window()
		m.println(m.styles.mem.Render, fmt.Sprintf("%s filled with $%02x", vram, v))

	case "WATCH":
		if len(cmd) < 2 {
			m.printErr("WATCH requires an address")
			break // switch
		}

		// we check the first argument for special keywords before assuming
		// it is an address. the keywords are case insensitive
		arg := strings.ToUpper(cmd[1])

		if arg == "DROP" {
			if len(cmd) < 3 {
				m.printErr("WATCH DROP requires an address")
				break // switch
			}

			if strings.ToUpper(cmd[2]) == "ALL" {
				clear(m.watches)
			} else {
				ma, err := m.parseAddress(cmd[2])
				if err != nil {
					m.printErr(fmt.Sprintf("watch: %s", err.Error()))
					break // switch
				}
				if _, ok := m.watches[ma.address]; !ok {
					m.println(m.styles.debugger.Render, fmt.Sprintf("watch for $%08x not present", ma.address))
					break // switch
				}
				delete(m.watches, ma.address)
				m.println(m.styles.debugger.Render, fmt.Sprintf("watch $%08x has been removed", ma.address))
			}
			break // switch
		}

		ma, err := m.parseAddress(cmd[1])
		if err != nil {
			m.printErr(fmt.Sprintf("watch: %s", err.Error()))
			break // switch
		}

		if _, ok := m.watches[ma.address]; ok {
			m.printErr(fmt.Sprintf("watch for %s already present", cmd[1]))
			break // switch
		}

		d, err := memory.Read(ma.area, ma.address)
		if err != nil {
			m.printErr(fmt.Sprintf("watch address is not readable: %s", cmd[1]))
			break // switch
		}

		m.watches[ma.address] = watch{
			ma:   ma,
			data: d,
		}
		m.println(m.styles.debugger.Render, fmt.Sprintf("added watch for $%08x", ma.address))

	case "LIST":
		m.println(m.styles.debugger.Render, "watches")
		if len(m.watches) == 0 {
			fmt.Fprintln(m.out, "none")
		} else {
			for _, a := range m.watchedAddresses() {
				fmt.Fprintf(m.out, "$%08x (%s)\n", a, m.watches[a].ma.area.Label())
			}
		}

	case "MAP":
		m.println(m.styles.mem.Render, m.console.Mem.String())

	case "LOG":
		switch len(cmd) {
		case 1:
			logger.Write(m.out)
		case 2, 3:
			c := strings.ToUpper(cmd[1])
			switch c {
			case "ECHO":
				logger.SetEcho(m.out, false)
			case "NOECHO":
				logger.SetEcho(nil, false)
			case "RECENT":
				logger.WriteRecent(m.out)
			case "CLEAR":
				logger.Clear()
			case "TAIL":
				n, err := parseCount(cmd[1:])
				if err != nil {
					m.printErr(err.Error())
					break
				}
				logger.Tail(m.out, n)
			default:
				m.printErr(fmt.Sprintf("unrecognised argument for LOG command: %s", c))
			}
		default:
			m.printErr("too many arguments to LOG command")
		}

	case "PREFS":
		if len(cmd) == 1 {
			fmt.Fprint(m.out, m.prefs.String())
			break // switch
		}

		c := strings.ToUpper(cmd[1])
		switch c {
		case "SAVE":
			if err := m.prefs.Save(); err != nil {
				m.printErr(err.Error())
				break // switch
			}
			m.println(m.styles.debugger.Render, "preferences saved")
		case "LOAD":
			if err := m.prefs.Load(); err != nil {
				m.printErr(err.Error())
				break // switch
			}
			m.println(m.styles.debugger.Render, "preferences loaded")
		case "RESET":
			if err := m.prefs.Reset(); err != nil {
				m.printErr(err.Error())
				break // switch
			}
			m.println(m.styles.debugger.Render, "preferences reset")
		case "SET":
			if len(cmd) < 4 {
				m.printErr("PREFS SET requires a key and a value")
				break // switch
			}
			key := strings.ToLower(cmd[2])
			if err := m.prefs.Set(key, strings.Join(cmd[3:], " ")); err != nil {
				m.printErr(err.Error())
				break // switch
			}
			m.println(m.styles.debugger.Render, fmt.Sprintf("%s set", key))
		default:
			m.printErr(fmt.Sprintf("unrecognised argument for PREFS command: %s", c))
		}

	case "STATE":
		spew.Fdump(m.out, m.console.CDA.State())

	case "MEMVIZ":
		if len(cmd) < 2 {
			m.printErr("MEMVIZ requires a filename")
			break // switch
		}

		f, err := os.Create(cmd[1])
		if err != nil {
			m.printErr(fmt.Sprintf("memviz: %s", err.Error()))
			break // switch
		}

		state := m.console.CDA.State()
		memviz.Map(f, &state)

		err = f.Close()
		if err != nil {
			m.printErr(fmt.Sprintf("memviz: %s", err.Error()))
			break // switch
		}
		m.println(m.styles.debugger.Render, fmt.Sprintf("CDA state written to %s", cmd[1]))

	case "HELP":
		keys := make([]string, 0, len(commandHelp))
		for k := range commandHelp {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintln(m.out, commandHelp[k])
		}

	case "QUIT":
		return true

	default:
		m.printErr(fmt.Sprintf("unrecognised command: %s", strings.Join(cmd, " ")))
	}

	return false
}
