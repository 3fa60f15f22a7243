// Command turtlego runs a turtle-graphics program directly, or as a
// TUI trace viewer or HTTP API server front end, all built around the
// same service.Runtime core.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/andycking/turtlego/api"
	"github.com/andycking/turtlego/config"
	"github.com/andycking/turtlego/debugger"
	"github.com/andycking/turtlego/lexer"
	"github.com/andycking/turtlego/parser"
	"github.com/andycking/turtlego/raster"
	"github.com/andycking/turtlego/render"
	"github.com/andycking/turtlego/service"
)

// Version is overridden at build time with -ldflags "-X main.Version=v1.2.3".
var Version = "dev"

func main() {
	var (
		runFile     = flag.String("run", "", "Path to a turtle program to run directly")
		speed       = flag.Uint("speed", 0, "Pacing override (0 = use config default)")
		tuiMode     = flag.Bool("tui", false, "Start the TUI trace viewer")
		apiServer   = flag.Bool("api-server", false, "Start the HTTP API server")
		apiPort     = flag.Int("port", 8080, "API server port (used with -api-server)")
		configPath  = flag.String("config", "", "Config file path (default: platform config dir)")
		showVersion = flag.Bool("version", false, "Show version information")
		dumpAST     = flag.Bool("dump-ast", false, "Parse -run and print its AST instead of running it")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("turtlego %s\n", Version)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if *dumpAST {
		runDumpAST(*runFile)
		return
	}

	if *apiServer {
		runAPIServer(cfg, *apiPort)
		return
	}

	if *tuiMode {
		runTUI(cfg, *runFile)
		return
	}

	runDirect(cfg, *runFile, uint32(*speed))
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func runDumpAST(path string) {
	if path == "" {
		fmt.Fprintln(os.Stderr, "-dump-ast requires -run FILE")
		os.Exit(1)
	}
	src, err := os.ReadFile(path) // #nosec G304 -- user-provided program path
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", path, err)
		os.Exit(1)
	}
	toks, err := lexer.Lex(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "lex error: %v\n", err)
		os.Exit(1)
	}
	out, err := parser.Parse(toks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		os.Exit(1)
	}
	for _, node := range out.List {
		fmt.Printf("%#v\n", node)
	}
}

// runDirect runs a program to completion, rasterizing its render
// commands to an in-memory canvas and printing the final value or
// error, per spec's output-slot contract.
func runDirect(cfg *config.Config, path string, speedOverride uint32) {
	if path == "" {
		fmt.Fprintln(os.Stderr, "-run FILE is required outside -tui/-api-server mode")
		os.Exit(1)
	}
	src, err := os.ReadFile(path) // #nosec G304 -- user-provided program path
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", path, err)
		os.Exit(1)
	}

	rt := service.New(cfg.Execution.SinkBuffer, cfg.Execution.DefaultSpeed, cfg.Execution.MinSpeed, cfg.Execution.MaxSpeed, cfg.Execution.MaxRenderCommands)
	if speedOverride > 0 {
		rt.SetSpeed(speedOverride)
	}

	buf := raster.New(cfg.Canvas.Width, cfg.Canvas.Height)
	var drainWG sync.WaitGroup
	drainWG.Add(1)
	go func() {
		defer drainWG.Done()
		rasterize(buf, rt.Sink())
	}()

	if !rt.Go(string(src)) {
		fmt.Fprintln(os.Stderr, "a run is already in progress")
		os.Exit(1)
	}
	for rt.Running() {
		time.Sleep(time.Millisecond)
	}
	rt.Sink().Close()
	drainWG.Wait()

	if err := savePNG(buf, path); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save canvas: %v\n", err)
	}

	fmt.Println(rt.Output())
	if rt.Failed() {
		os.Exit(1)
	}
}

// rasterize consumes render commands until the sink is closed,
// drawing each MoveTo/Fill onto buf.
func rasterize(buf *raster.PixBuf, sink interface{ Recv() <-chan render.Command }) {
	pos := render.Point{}
	for cmd := range sink.Recv() {
		switch c := cmd.(type) {
		case render.MoveTo:
			if render.IsPenDown(c.Flags) {
				raster.Line(buf, pos, c.Pos, c.Color)
			}
			pos = c.Pos
		case render.Fill:
			raster.FloodFill(buf, c.Pos, c.Color)
		}
	}
}

func savePNG(buf *raster.PixBuf, sourcePath string) error {
	img := &image.RGBA{
		Pix:    buf.Bytes(),
		Stride: buf.Width() * 4,
		Rect:   image.Rect(0, 0, buf.Width(), buf.Height()),
	}
	out := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + ".png"
	f, err := os.Create(out) // #nosec G304 -- derived from user-provided program path
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func runTUI(cfg *config.Config, path string) {
	rt := service.New(cfg.Execution.SinkBuffer, cfg.Execution.DefaultSpeed, cfg.Execution.MinSpeed, cfg.Execution.MaxSpeed, cfg.Execution.MaxRenderCommands)
	t := debugger.NewTUI(rt)
	if path != "" {
		src, err := os.ReadFile(path) // #nosec G304 -- user-provided program path
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading %s: %v\n", path, err)
			os.Exit(1)
		}
		t.LoadSource(string(src))
	}
	if err := t.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui error: %v\n", err)
		os.Exit(1)
	}
}

func runAPIServer(cfg *config.Config, port int) {
	server := api.NewServer(port, cfg.Execution.SinkBuffer, cfg.Execution.DefaultSpeed, cfg.Execution.MinSpeed, cfg.Execution.MaxSpeed, cfg.Execution.MaxRenderCommands)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var shutdownOnce sync.Once
	shutdown := func() {
		shutdownOnce.Do(func() {
			fmt.Println("\nshutting down turtlego api server...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "error during shutdown: %v\n", err)
				os.Exit(1)
			}
		})
	}

	go func() {
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "api server error: %v\n", err)
		}
	}()

	<-sigChan
	shutdown()
}
