// Command holidaytree draws the particle tree in the terminal. Space or Enter toggles
// between the scattered cloud and the formed tree; q, Esc or Ctrl-C quits.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/Carmen-Shannon/oxy-tree/engine"
	"github.com/Carmen-Shannon/oxy-tree/engine/camera"
	"github.com/Carmen-Shannon/oxy-tree/engine/config"
	"github.com/Carmen-Shannon/oxy-tree/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tree/engine/scene"
	"github.com/Carmen-Shannon/oxy-tree/engine/window"
)

var (
	configPath = flag.String("config", "", "TOML settings file (defaults are used for missing keys)")
	seed       = flag.Uint64("seed", 0, "sampling seed, overrides the config file")
	fps        = flag.Float64("fps", 0, "frame rate, overrides the config file")
	formed     = flag.Bool("formed", false, "start with the tree formed")
	profile    = flag.Bool("profile", false, "log frame timings and memory once per second")
	logPath    = flag.String("log", "", "write log output to this file instead of discarding it")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "holidaytree: %v\n", err)
		os.Exit(1)
	}
}

// run builds the scene and engine from flags and config, then blocks until quit.
func run() (err error) {
	closeLog, err := setupLog(*logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	toggle := scene.NewSignal(cfg.Formed)
	opts, err := cfg.SceneOptions(toggle)
	if err != nil {
		return err
	}
	s, err := scene.NewScene("holidaytree", opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	w, err := window.NewWindow(window.WithTitle("holidaytree"))
	if err != nil {
		return err
	}
	defer w.Close()
	// The screen is in raw mode from here on; restore it before reporting a crash.
	defer func() {
		if r := recover(); r != nil {
			_ = w.Close()
			err = fmt.Errorf("crashed: %v\n%s", r, debug.Stack())
		}
	}()

	r := renderer.NewRenderer(renderer.BackendTypeTerminal, w,
		renderer.WithCamera(camera.NewCamera(cfg.CameraOptions()...)),
	)
	eng := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithRenderer(r),
		engine.WithScene(0, s),
		engine.WithTickRate(cfg.FPS),
		engine.WithProfiling(*profile),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		log.Printf("[Main] signal received, quitting")
		eng.Quit()
	}()

	log.Printf("[Main] running at %.0f fps, seed %d, formed %v", cfg.FPS, cfg.Seed, cfg.Formed)
	eng.Run()
	return nil
}

// loadConfig reads the config file when given and applies flags that were set explicitly.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seed
		case "fps":
			cfg.FPS = *fps
		case "formed":
			cfg.Formed = *formed
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLog points the standard logger at a file, or discards output so it cannot
// corrupt the terminal screen.
func setupLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	return func() { _ = f.Close() }, nil
}
