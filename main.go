package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/getlantern/systray"
	"github.com/joho/godotenv"

	"github.com/victor141516/espoquen/internal/audio"
	"github.com/victor141516/espoquen/pkg/logger"
)

func main() {
	// A .env next to the binary is honored for OPENAI_API_KEY and friends.
	_ = godotenv.Load()

	console := flag.Bool("console", false, "log to the console instead of the log file")
	flag.Parse()

	log, err := logger.New(logger.Config{
		Level:   os.Getenv("ESPOQUEN_LOG_LEVEL"),
		Console: *console,
		File:    defaultLogPath(),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := audio.Initialize(); err != nil {
		log.Error("audio subsystem init failed", logger.Error(err))
		os.Exit(1)
	}
	defer audio.Terminate()

	app, err := NewApp(log)
	if err != nil {
		log.Error("startup failed", logger.Error(err))
		os.Exit(1)
	}

	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
		<-signals
		systray.Quit()
	}()

	systray.Run(func() {
		app.TrayReady()
		app.Start()
	}, app.Stop)
}

func defaultLogPath() string {
	cache, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(cache, "espoquen", "espoquen.log")
}
