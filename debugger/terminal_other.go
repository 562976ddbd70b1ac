//go:build windows

package debugger

import (
	"fmt"
	"os"
)

type terminal struct{}

func newTerminal(_ *os.File) (*terminal, error) {
	return nil, fmt.Errorf("terminal: cbreak mode not supported")
}

func (t *terminal) canonicalMode() {
}

func (t *terminal) cbreakMode() {
}
