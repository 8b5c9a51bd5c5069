package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/outbreakgames/obx/internal/config"
	"github.com/outbreakgames/obx/internal/log"
	"github.com/outbreakgames/obx/internal/replay"
	"github.com/outbreakgames/obx/internal/runner"
	"github.com/outbreakgames/obx/internal/strategy"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "serve":
		runServe(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  obx serve [--addr HOST:PORT] [--transport tcp|ws] [--config FILE] [--replay DIR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve    Connect your bot to an engine; requires the engine to be running there")
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", "", "engine address (overrides config)")
	transportKind := fs.String("transport", "", "transport kind: tcp or ws (overrides config)")
	configPath := fs.String("config", "obx.yaml", "path to config file")
	replayDir := fs.String("replay", "", "directory for match recordings (overrides config)")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *transportKind != "" {
		cfg.Transport = *transportKind
	}
	if *replayDir != "" {
		cfg.ReplayDir = *replayDir
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		fatal(err)
	}

	var transport runner.Transport
	switch cfg.Transport {
	case "tcp":
		transport = &runner.TCPTransport{Addr: cfg.Addr}
	case "ws":
		transport = &runner.WSTransport{URL: cfg.Addr}
	default:
		fatal(fmt.Errorf("unknown transport %q", cfg.Transport))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Connecting to engine at %s...\n", cfg.Addr)
	if err := transport.Connect(ctx); err != nil {
		fatal(err)
	}
	defer transport.Close()

	logger := log.NewTextLogger(os.Stdout)
	logger.Log(log.NewConnectedEvent(cfg.Addr))

	sess := &runner.Session{
		Transport:       transport,
		Provider:        strategy.Default,
		Logger:          logger,
		DecisionTimeout: timeout,
	}

	if cfg.ReplayDir != "" {
		rec, err := replay.NewRecorder(cfg.ReplayDir)
		if err != nil {
			fatal(err)
		}
		defer rec.Close()
		fmt.Printf("Recording match to %s\n", rec.Path())
		sess.Recorder = rec
	}

	if err := sess.Run(ctx); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
