package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wenyi616/GameofLife/life"
)

// runHeadless starts the simulation immediately and prints a millisecond
// timestamp every tenth generation. It returns after limit generations, or
// on SIGINT/SIGTERM when limit is zero.
func runHeadless(cfg life.Config, limit int) error {
	reporter := life.NewThroughputReporter(os.Stdout, throughputEvery, limit)
	ctrl, err := life.NewController(cfg, reporter.Observe)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	if err := ctrl.Run(); err != nil {
		return err
	}
	select {
	case <-reporter.Done():
	case <-ctx.Done():
	}
	ctrl.Stop()
	fmt.Println()

	elapsed := time.Since(start)
	gens := ctrl.Generation()
	log.Printf("Headless run finished: %d generations with %d workers in %v", gens, cfg.Threads, elapsed)
	if gens > 0 {
		log.Printf("Average %.2f ms per generation", elapsed.Seconds()*1000/float64(gens))
	}
	return nil
}
