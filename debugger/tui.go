// Package debugger is a terminal trace viewer for a turtle program
// run: live pose, a scrolling render-command log, and a command line
// that loads bundled examples and re-runs them.
package debugger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/andycking/turtlego/loader"
	"github.com/andycking/turtlego/render"
	"github.com/andycking/turtlego/service"
)

// TUI is the text user interface wrapping one service.Runtime.
type TUI struct {
	Runtime *service.Runtime
	App     *tview.Application
	Pages   *tview.Pages

	MainLayout   *tview.Flex
	SourceView   *tview.TextView
	PoseView     *tview.TextView
	LogView      *tview.TextView
	CommandInput *tview.InputField

	mu     sync.Mutex
	source string
	pose   pose
	log    []string
}

// pose is the turtle snapshot the TUI renders, derived from the most
// recent render.MoveTo command observed on the runtime's sink.
type pose struct {
	Angle   float64
	X, Y    float64
	PenDown bool
}

// NewTUI creates a TUI bound to a real terminal screen.
func NewTUI(rt *service.Runtime) *TUI {
	return newTUI(rt)
}

// NewTUIWithScreen creates a TUI bound to an explicit tcell.Screen,
// used by tests to drive the application without a real terminal.
func NewTUIWithScreen(rt *service.Runtime, screen tcell.Screen) *TUI {
	t := newTUI(rt)
	t.App.SetScreen(screen)
	return t
}

func newTUI(rt *service.Runtime) *TUI {
	t := &TUI{
		Runtime: rt,
		App:     tview.NewApplication(),
	}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	go t.drainSink()
	return t
}

func (t *TUI) initializeViews() {
	t.SourceView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.SourceView.SetBorder(true).SetTitle(" Source ")

	t.PoseView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	t.PoseView.SetBorder(true).SetTitle(" Pose ")

	t.LogView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.LogView.SetBorder(true).SetTitle(" Render log ")

	t.CommandInput = tview.NewInputField().
		SetLabel("> ").
		SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	rightPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.PoseView, 6, 0, false).
		AddItem(t.LogView, 0, 1, false)

	mainContent := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.SourceView, 0, 2, false).
		AddItem(rightPanel, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 1, false).
		AddItem(t.CommandInput, 3, 0, true)

	t.Pages = tview.NewPages().AddPage("main", t.MainLayout, true, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF5:
			t.executeCommand("run")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := t.CommandInput.GetText()
	t.CommandInput.SetText("")
	if cmd == "" {
		return
	}
	go t.executeCommand(cmd)
}

// executeCommand parses and runs a single command line. Recognized
// forms: "load <name>", "run", "speed +", "speed -", "quit".
func (t *TUI) executeCommand(cmd string) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "load":
		if len(fields) != 2 {
			t.appendLog("usage: load <name>")
			return
		}
		src, err := loader.Load(fields[1])
		if err != nil {
			t.appendLog(fmt.Sprintf("[red]%v[white]", err))
			return
		}
		t.mu.Lock()
		t.source = src
		t.mu.Unlock()
		t.refresh()

	case "run":
		t.mu.Lock()
		src := t.source
		t.mu.Unlock()
		if src == "" {
			t.appendLog("no source loaded")
			return
		}
		if !t.Runtime.Go(src) {
			t.appendLog("a run is already in progress")
		}

	case "speed":
		if len(fields) != 2 {
			t.appendLog("usage: speed +|-")
			return
		}
		switch fields[1] {
		case "+":
			t.Runtime.DoubleSpeed()
		case "-":
			t.Runtime.HalveSpeed()
		}
		t.refresh()

	case "quit":
		t.App.Stop()

	default:
		t.appendLog(fmt.Sprintf("unrecognized command %q", fields[0]))
	}
}

// drainSink consumes render commands off the runtime's sink, updating
// the pose snapshot and render log as they arrive.
func (t *TUI) drainSink() {
	for cmd := range t.Runtime.Sink().Recv() {
		t.observe(cmd)
		t.refresh()
	}
}

func (t *TUI) observe(cmd render.Command) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch c := cmd.(type) {
	case render.MoveTo:
		t.pose = pose{Angle: c.Angle, X: c.Pos.X, Y: c.Pos.Y, PenDown: render.IsPenDown(c.Flags)}
		t.log = append(t.log, fmt.Sprintf("move (%.1f, %.1f) angle=%.1f", c.Pos.X, c.Pos.Y, c.Angle))
	case render.ShowTurtle:
		t.log = append(t.log, fmt.Sprintf("showturtle=%v", c.Show))
	case render.Fill:
		t.log = append(t.log, fmt.Sprintf("fill (%.1f, %.1f)", c.Pos.X, c.Pos.Y))
	}
}

func (t *TUI) appendLog(line string) {
	t.mu.Lock()
	t.log = append(t.log, line)
	t.mu.Unlock()
	t.refresh()
}

// refresh repaints every panel from current state. Safe to call from
// any goroutine; tview serializes the actual draw.
func (t *TUI) refresh() {
	t.mu.Lock()
	source := t.source
	p := t.pose
	lines := append([]string(nil), t.log...)
	t.mu.Unlock()

	t.App.QueueUpdateDraw(func() {
		t.SourceView.SetText(source)
		t.PoseView.SetText(fmt.Sprintf(
			"angle: %.2f\npos: (%.2f, %.2f)\npen down: %v\nspeed: %d\nrunning: %v\noutput: %s",
			p.Angle, p.X, p.Y, p.PenDown, t.Runtime.Speed(), t.Runtime.Running(), t.Runtime.Output(),
		))
		t.LogView.SetText(strings.Join(lines, "\n"))
		t.LogView.ScrollToEnd()
	})
}

// Run starts the application event loop; it blocks until the user
// quits.
func (t *TUI) Run() error {
	return t.App.SetRoot(t.Pages, true).Run()
}

// LoadSource preloads source text directly, bypassing the "load
// <name>" bundled-example command — used by the CLI to hand off a
// file passed on the command line.
func (t *TUI) LoadSource(src string) {
	t.mu.Lock()
	t.source = src
	t.mu.Unlock()
	t.refresh()
}
