// Package ebiten hosts the byte view of the display adapter in a window
// created with the Ebitengine game library.
package ebiten

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	input "github.com/quasilyte/ebitengine-input"

	"github.com/rc3200/cda/gui"
	"github.com/rc3200/cda/logger"
	"github.com/rc3200/cda/version"
)

type windowGeometry struct {
	x, y int
	w, h int
}

func (g windowGeometry) valid() bool {
	return g.x >= 0 && g.y >= 0 && g.w > 0 && g.h > 0
}

type guiEbiten struct {
	g    *gui.GUI
	geom windowGeometry

	started bool
	endGui  chan bool

	state gui.State

	// the most recent image from the emulation and the byte view created
	// from it
	img  gui.Image
	view *image.RGBA
	main *ebiten.Image

	inputSystem  input.System
	inputHandler *input.Handler
}

// the size of each byte in the byte view
const pixelScale = 4

func (eg *guiEbiten) Update() error {
	// deal with quit condition
	select {
	case <-eg.endGui:
		return ebiten.Termination
	default:
	}

	if !eg.started {
		eg.initialise()
	}

	eg.input()

	// change state if necessary
	select {
	case eg.state = <-eg.g.State:
	default:
	}

	// retrieve any pending images
	select {
	case eg.img = <-eg.g.SetImage:
		eg.view = eg.img.View(eg.view)
		if eg.main == nil || eg.main.Bounds() != eg.view.Bounds() {
			eg.main = ebiten.NewImage(eg.view.Bounds().Dx(), eg.view.Bounds().Dy())
		}
		eg.main.WritePixels(eg.view.Pix)
	default:
	}

	return nil
}

func (eg *guiEbiten) status() string {
	mode := "graphics"
	if eg.img.TextMode {
		mode = "text"
	}
	s := fmt.Sprintf("mode %d %s\nframe %d", eg.img.VideoMode, mode, eg.img.Frame)
	if eg.state == gui.StatePaused {
		s = fmt.Sprintf("%s\n%v", s, eg.state)
	}
	return s
}

func (eg *guiEbiten) Draw(screen *ebiten.Image) {
	if eg.main != nil {
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(pixelScale, pixelScale)
		if eg.state == gui.StatePaused {
			op.ColorScale.Scale(0.5, 0.5, 0.5, 1.0)
		}
		screen.DrawImage(eg.main, &op)
	}

	ebitenutil.DebugPrint(screen, eg.status())

	eg.geom.x, eg.geom.y = ebiten.WindowPosition()
	eg.geom.w, eg.geom.h = ebiten.WindowSize()
}

func (eg *guiEbiten) Layout(width, height int) (int, int) {
	if eg.main != nil {
		return eg.main.Bounds().Dx() * pixelScale, eg.main.Bounds().Dy() * pixelScale
	}
	return width, height
}

// Launch the GUI. The function returns when a value is received on the endGui
// channel or when the window is closed
func Launch(endGui chan bool, g *gui.GUI) error {
	ebiten.SetWindowTitle(version.Title())
	ebiten.SetVsyncEnabled(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowPosition(10, 10)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	eg := &guiEbiten{
		endGui: endGui,
		g:      g,
		state:  gui.StatePaused,
	}

	eg.inputSystem.Init(input.SystemConfig{
		DevicesEnabled: input.AnyDevice,
	})

	var err error

	eg.geom, err = onWindowOpen()
	if err != nil {
		logger.Log(logger.Allow, "gui", err.Error())
	}
	if eg.geom.valid() {
		ebiten.SetWindowPosition(eg.geom.x, eg.geom.y)
		ebiten.SetWindowSize(eg.geom.w, eg.geom.h)
	}

	defer func() {
		err := onWindowClose(eg.geom)
		if err != nil {
			logger.Log(logger.Allow, "gui", err.Error())
			return
		}
	}()

	return ebiten.RunGame(eg)
}
