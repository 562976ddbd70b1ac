package gui

// Action is a user request that the GUI passes on to the emulation
type Action int

// List of valid Action values
const (
	Nothing Action = iota
	Pause
	Step
	Quit
)

func (a Action) String() string {
	switch a {
	case Pause:
		return "pause"
	case Step:
		return "step"
	case Quit:
		return "quit"
	}
	return "nothing"
}

// Input is sent on the GUI.UserInput channel
type Input struct {
	Action Action
}
