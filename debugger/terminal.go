//go:build !windows

package debugger

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// terminal switches the input terminal between canonical mode and cbreak
// mode. in cbreak mode a single keypress is delivered to the input goroutine
// without waiting for the return key
type terminal struct {
	input *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

func newTerminal(input *os.File) (*terminal, error) {
	t := &terminal{
		input: input,
	}

	err := termios.Tcgetattr(t.input.Fd(), &t.canAttr)
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}

	t.cbreakAttr = t.canAttr
	termios.Cfmakecbreak(&t.cbreakAttr)

	return t, nil
}

func (t *terminal) canonicalMode() {
	if t == nil {
		return
	}
	termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.canAttr)
}

func (t *terminal) cbreakMode() {
	if t == nil {
		return
	}
	termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.cbreakAttr)
}
