package cda

import (
	"fmt"

	"github.com/rc3200/cda/hardware/memory"
	"github.com/rc3200/cda/logger"
)

// the SETUP register is the only way the emulated program can change the
// video mode. the register value is stored as written and decoded as:
//
//	bit 0-1	video mode
//	bit 2	graphics mode (text mode when clear)
//
// the remaining bits are stored but otherwise ignored
type setupRegister struct {
	window    memory.Region
	value     uint8
	videoMode uint8
	textMode  bool
}

func newSetupRegister(origin uint32) setupRegister {
	reg := setupRegister{
		window: memory.Region{
			Begin: origin,
			Size:  1,
		},
	}
	reg.reset()
	return reg
}

func (reg *setupRegister) reset() {
	reg.value = 0
	reg.videoMode, reg.textMode = decodeSetup(reg.value)
}

func decodeSetup(data uint8) (videoMode uint8, textMode bool) {
	return data & 0x03, data&0x04 == 0x00
}

// Label implements the memory.Area interface
func (reg *setupRegister) Label() string {
	return "CDA SETUP"
}

// Window implements the memory.Area interface
func (reg *setupRegister) Window() memory.Region {
	return reg.window
}

// Read implements the memory.Area interface
func (reg *setupRegister) Read(address uint32) (uint8, error) {
	if _, err := reg.window.Index(address); err != nil {
		return 0, err
	}
	return reg.value, nil
}

// Write implements the memory.Area interface
func (reg *setupRegister) Write(address uint32, data uint8) error {
	if _, err := reg.window.Index(address); err != nil {
		return err
	}

	videoMode, textMode := decodeSetup(data)
	if videoMode != reg.videoMode || textMode != reg.textMode {
		logger.Logf(logger.Allow, "cda", "video mode %d (%s)", videoMode, modeName(textMode))
	}

	reg.value = data
	reg.videoMode = videoMode
	reg.textMode = textMode

	return nil
}

func modeName(textMode bool) string {
	if textMode {
		return "text"
	}
	return "graphics"
}

func (reg *setupRegister) String() string {
	return fmt.Sprintf("setup=%02x mode=%d %s", reg.value, reg.videoMode, modeName(reg.textMode))
}
