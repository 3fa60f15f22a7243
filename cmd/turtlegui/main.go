// Command turtlegui is a thin graphical collaborator: one window, a
// canvas bound to the live render buffer, a source entry, and a run
// button. No menus, no general editor — everything beyond "load an
// example and watch it draw" stays out of scope.
package main

import (
	"fmt"
	"image"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/andycking/turtlego/config"
	"github.com/andycking/turtlego/loader"
	"github.com/andycking/turtlego/raster"
	"github.com/andycking/turtlego/render"
	"github.com/andycking/turtlego/service"
)

type gui struct {
	app     fyne.App
	window  fyne.Window
	runtime *service.Runtime

	buf   *raster.PixBuf
	image *canvas.Image
	pos   render.Point

	sourceEntry *widget.Entry
	status      *widget.Label
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		cfg = config.DefaultConfig()
	}
	g := newGUI(cfg, app.New())
	g.window.ShowAndRun()
}

// newGUI builds the window against an injected fyne.App so tests can
// pass fyne.io/fyne/v2/test's headless app instead of a real one.
func newGUI(cfg *config.Config, myApp fyne.App) *gui {
	myWindow := myApp.NewWindow("turtlego")

	rt := service.New(cfg.Execution.SinkBuffer, cfg.Execution.DefaultSpeed, cfg.Execution.MinSpeed, cfg.Execution.MaxSpeed, cfg.Execution.MaxRenderCommands)
	buf := raster.New(cfg.Canvas.Width, cfg.Canvas.Height)

	backing := &image.RGBA{
		Pix:    buf.Bytes(),
		Stride: buf.Width() * 4,
		Rect:   image.Rect(0, 0, buf.Width(), buf.Height()),
	}
	canvasImage := canvas.NewImageFromImage(backing)
	canvasImage.FillMode = canvas.ImageFillOriginal

	g := &gui{
		app:     myApp,
		window:  myWindow,
		runtime: rt,
		buf:     buf,
		image:   canvasImage,
		status:  widget.NewLabel("ready"),
	}

	g.sourceEntry = widget.NewMultiLineEntry()
	g.sourceEntry.SetPlaceHolder("turtle program source")

	examplePicker := widget.NewSelect(loader.Names(), func(name string) {
		if src, err := loader.Load(name); err == nil {
			g.sourceEntry.SetText(src)
		}
	})

	runButton := widget.NewButtonWithIcon("Run", theme.MediaPlayIcon(), g.run)

	toolbar := container.NewHBox(examplePicker, runButton, g.status)
	split := container.NewHSplit(g.image, container.NewScroll(g.sourceEntry))
	split.SetOffset(0.6)

	myWindow.SetContent(container.NewBorder(toolbar, nil, nil, nil, split))
	myWindow.Resize(fyne.NewSize(900, 700))

	go g.drainSink()
	go g.repaintLoop()

	return g
}

func (g *gui) run() {
	if !g.runtime.Go(g.sourceEntry.Text) {
		g.status.SetText("a run is already in progress")
	}
}

// drainSink applies render commands directly to the canvas's backing
// pixel slice as they arrive; repaintLoop is what actually redraws.
func (g *gui) drainSink() {
	for cmd := range g.runtime.Sink().Recv() {
		switch c := cmd.(type) {
		case render.MoveTo:
			if render.IsPenDown(c.Flags) {
				raster.Line(g.buf, g.pos, c.Pos, c.Color)
			}
			g.pos = c.Pos
		case render.Fill:
			raster.FloodFill(g.buf, c.Pos, c.Color)
		}
	}
}

// repaintLoop redraws at a fixed tick rather than per command, the
// frame-paced consumer spec.md describes.
func (g *gui) repaintLoop() {
	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()
	for range ticker.C {
		g.image.Refresh()
		if g.runtime.Running() {
			g.status.SetText("running...")
		} else {
			g.status.SetText(g.runtime.Output())
		}
	}
}
