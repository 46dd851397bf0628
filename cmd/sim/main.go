package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wlkit/wlkit/backend"
	"github.com/wlkit/wlkit/handle"
	"github.com/wlkit/wlkit/input"
	"github.com/wlkit/wlkit/manager"
	"github.com/wlkit/wlkit/output"
	"github.com/wlkit/wlkit/scenario"
	"github.com/wlkit/wlkit/surface"
)

func main() {
	var (
		scenarioFile = flag.String("scenario", "", "Path to scenario yaml file")
		devDir       = flag.String("devdir", "", "Directory of device descriptors to watch for hotplug")
		verbose      = flag.Bool("v", false, "Verbose logging")
		interactive  = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *scenarioFile == "" && !*interactive && *devDir == "" {
		fmt.Fprintln(os.Stderr, "Usage: sim -scenario <file.yaml> [-devdir <dir>] [-v]")
		fmt.Fprintln(os.Stderr, "       sim [-scenario <file.yaml>] -i  (interactive mode)")
		os.Exit(1)
	}

	setupLogging(*verbose && !*interactive)

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*scenarioFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*scenarioFile, *devDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	if !verbose {
		return
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	handle.SetLogger(logger.Named("handle"))
	backend.SetLogger(logger.Named("backend"))
	output.SetLogger(logger.Named("output"))
	manager.SetLogger(logger.Named("manager"))
	scenario.SetLogger(logger.Named("scenario"))
}

// loggingHandlers prints every bridge callback, the way a compositor
// skeleton would react to them.
type loggingHandlers struct {
	manager.NoOpInputManagerHandler
}

func (loggingHandlers) OutputAdded(h output.Handle) manager.OutputHandler {
	name, _ := h.Name()
	fmt.Printf("output added: %s (%s)\n", name, h.ID())
	return outputPrinter{}
}

type outputPrinter struct {
	manager.NoOpOutputHandler
}

func (outputPrinter) OnFrame(h output.Handle) {
	h.Run(func(o *output.Output) error {
		fmt.Printf("frame on %s, damage pending: %v\n", o.Name(), o.Damage().Pending())
		return nil
	})
}

func (outputPrinter) OnMode(h output.Handle, ev backend.ModeEvent) {
	fmt.Printf("mode change on %s: %dx%d@%d\n",
		h.ID(), ev.Mode.Size.Width, ev.Mode.Size.Height, ev.Mode.Refresh)
}

func (outputPrinter) Destroyed(h output.Handle) {
	name, _ := h.Name()
	fmt.Printf("output gone: %s\n", name)
}

func (loggingHandlers) TabletPadAdded(h input.PadHandle) manager.TabletPadHandler {
	if dev, err := h.Device(); err == nil {
		fmt.Printf("tablet pad added: %s (%s)\n", dev.Name(), h.ID())
	}
	return padPrinter{}
}

type padPrinter struct {
	manager.NoOpTabletPadHandler
}

func (padPrinter) OnButton(h input.PadHandle, ev backend.PadButtonEvent) {
	fmt.Printf("pad button %d %v on %s\n", ev.Button, ev.State, h.ID())
}

func (padPrinter) OnRing(h input.PadHandle, ev backend.PadRingEvent) {
	fmt.Printf("pad ring %d at %.1f on %s\n", ev.Ring, ev.Position, h.ID())
}

func (padPrinter) Destroyed(h input.PadHandle) {
	if dev, err := h.Device(); err == nil {
		fmt.Printf("tablet pad gone: %s\n", dev.Name())
	}
}

func (loggingHandlers) KeyboardAdded(h input.KeyboardHandle) manager.KeyboardHandler {
	if dev, err := h.Device(); err == nil {
		fmt.Printf("keyboard added: %s (%s)\n", dev.Name(), h.ID())
	}
	return keyboardPrinter{}
}

type keyboardPrinter struct {
	manager.NoOpKeyboardHandler
}

func (keyboardPrinter) OnKey(h input.KeyboardHandle, ev backend.KeyEvent) {
	fmt.Printf("key %d %v on %s\n", ev.KeyCode, ev.State, h.ID())
}

func (loggingHandlers) PointerAdded(h input.PointerHandle) manager.PointerHandler {
	if dev, err := h.Device(); err == nil {
		fmt.Printf("pointer added: %s (%s)\n", dev.Name(), h.ID())
	}
	return nil
}

func (loggingHandlers) SurfaceAdded(h surface.Handle) manager.SurfaceHandler {
	fmt.Printf("surface added: %s\n", h.ID())
	return nil
}

func run(scenarioFile, devDir string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	be := backend.New()
	defer be.Close()

	layout := output.NewLayout()
	defer layout.Drop()

	handlers := loggingHandlers{}
	bridge := manager.New(be, manager.Config{
		Outputs:   handlers,
		Inputs:    handlers,
		Surfaces:  handlers,
		Layout:    layout.WeakReference(),
		UseLayout: true,
	})
	defer bridge.Close()

	if scenarioFile != "" {
		sc, err := scenario.Load(scenarioFile)
		if err != nil {
			return err
		}
		player := scenario.NewPlayer(be, sc)
		if err := player.Setup(); err != nil {
			return err
		}
		if err := player.Run(ctx); err != nil {
			return err
		}

		ext := layout.Extents()
		fmt.Printf("\nLayout extents: %dx%d at (%d,%d)\n",
			ext.Size.Width, ext.Size.Height, ext.Origin.X, ext.Origin.Y)
		fmt.Printf("Live outputs: %d, live devices: %d\n",
			len(bridge.Outputs()), len(bridge.Devices()))
	}

	if devDir != "" {
		watcher, err := backend.NewDevWatcher(be, devDir)
		if err != nil {
			return err
		}
		defer watcher.Close()
		fmt.Printf("Watching %s for device descriptors, ctrl-c to stop.\n", devDir)
		if err := watcher.Run(ctx); err != nil && err != context.Canceled {
			return err
		}
	}

	return nil
}
