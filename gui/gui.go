// Package gui defines the channels between the emulation and a GUI
// implementation. The emulation never waits on the GUI. Images are sent with a
// non-blocking send and are dropped if the GUI has not collected the previous
// image.
package gui

// State of the emulation as far as the GUI is concerned
type State int

// List of valid State values
const (
	StateRunning State = iota
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	}
	return "unknown state"
}

// Image is a copy of the exposed buffer of a display adapter and the video
// mode at the time the copy was made. The GUI is free to keep the Data slice
type Image struct {
	Data      []uint8
	VideoMode uint8
	TextMode  bool
	Frame     uint64
}

// GUI is the collection of channels used to communicate with the GUI
type GUI struct {
	SetImage  chan Image
	State     chan State
	UserInput chan Input
}

// NewGUI is the preferred method of initialisation for the GUI type
func NewGUI() *GUI {
	return &GUI{
		SetImage:  make(chan Image, 1),
		State:     make(chan State, 1),
		UserInput: make(chan Input, 10),
	}
}

// SetState sends the state to the GUI. If the GUI has not collected an
// earlier state then that state is replaced
func (g *GUI) SetState(s State) {
	for {
		select {
		case g.State <- s:
			return
		default:
		}
		select {
		case <-g.State:
		default:
		}
	}
}
