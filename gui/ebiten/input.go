package ebiten

import (
	input "github.com/quasilyte/ebitengine-input"

	"github.com/rc3200/cda/gui"
)

const (
	ActionPause = input.Action(gui.Pause)
	ActionStep  = input.Action(gui.Step)
	ActionQuit  = input.Action(gui.Quit)
)

func (eg *guiEbiten) initialise() {
	keymap := input.Keymap{
		ActionPause: {input.KeySpace, input.KeyP, input.KeyGamepadStart},
		ActionStep:  {input.KeyS, input.KeyGamepadA},
		ActionQuit:  {input.KeyEscape, input.KeyGamepadBack},
	}
	eg.inputHandler = eg.inputSystem.NewHandler(uint8(0), keymap)
	eg.started = true
}

func (eg *guiEbiten) input() {
	eg.inputSystem.Update()

	for _, a := range []input.Action{ActionPause, ActionStep, ActionQuit} {
		if eg.inputHandler.ActionIsJustPressed(a) {
			select {
			case eg.g.UserInput <- gui.Input{Action: gui.Action(a)}:
			default:
			}
		}
	}
}
