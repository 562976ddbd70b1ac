package main

import (
	"fmt"
	"os"

	"github.com/rc3200/cda/debugger"
	"github.com/rc3200/cda/gui"
	"github.com/rc3200/cda/gui/ebiten"
	"github.com/rc3200/cda/version"
)

func main() {
	opts, err := debugger.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Printf("*** %s\n", err)
		os.Exit(2)
	}

	if opts.Version {
		fmt.Printf("%s %v\n", version.ApplicationName, version.Version())
		return
	}

	g := gui.NewGUI()

	if !opts.GUI {
		if err := debugger.Launch(nil, g, opts); err != nil {
			fmt.Printf("*** %s\n", err)
			os.Exit(1)
		}
		return
	}

	var endGui chan bool
	var endDebugger chan bool
	var resultGui chan error
	var resultDebugger chan error

	// buffered channels. this means we don't have to worry about the gui closing
	// before the debugger and vice versa
	endGui = make(chan bool, 1)
	endDebugger = make(chan bool, 1)

	// similarly, the result channels are buffered because we don't know the
	// order in which the gui and debugger will end
	resultGui = make(chan error, 1)
	resultDebugger = make(chan error, 1)

	go func() {
		resultDebugger <- debugger.Launch(endDebugger, g, opts)
		endGui <- true
	}()

	// ebiten wants to run on the main thread
	resultGui <- ebiten.Launch(endGui, g)
	endDebugger <- true

	var failed bool
	if err := <-resultGui; err != nil {
		fmt.Printf("*** %s\n", err)
		failed = true
	}
	if err := <-resultDebugger; err != nil {
		fmt.Printf("*** %s\n", err)
		failed = true
	}
	if failed {
		os.Exit(1)
	}
}
