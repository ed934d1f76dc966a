package main

import (
	"errors"
	"flag"
	"log"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/wenyi616/GameofLife/life"
)

func main() {
	flag.Parse()
	runtime.GOMAXPROCS(runtime.NumCPU())
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if *cpuProfileFlag != "" {
		stop, err := startCPUProfile(*cpuProfileFlag)
		if err != nil {
			return err
		}
		defer stop()
		log.Printf("Recording CPU profile to %s", *cpuProfileFlag)
	}

	if *headlessFlag {
		return runHeadless(cfg, *generationsFlag)
	}
	return runWindow(cfg)
}

// loadConfig merges the flags with the optional config file and validates
// the result before anything is built from it.
func loadConfig() (life.Config, error) {
	delay := *spinFlag
	if delay < 0 {
		delay = life.DefaultDelay(*sizeFlag)
	}
	cfg := life.Config{
		Size:    *sizeFlag,
		Threads: *threadsFlag,
		Delay:   delay,
		Glider:  *gliderFlag,
	}
	if *configFlag != "" {
		fileCfg, err := life.LoadConfigFile(*configFlag)
		if err != nil {
			return life.Config{}, err
		}
		cfg = fileCfg.Apply(cfg)
		log.Printf("Loaded configuration from %s", *configFlag)
	}
	if err := cfg.Validate(); err != nil {
		return life.Config{}, err
	}
	return cfg, nil
}

func runWindow(cfg life.Config) error {
	g, err := newGame(cfg, *saveFlag)
	if err != nil {
		return err
	}
	defer g.close()

	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Life")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
