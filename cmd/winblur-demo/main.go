package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"winblur/internal/app"
	"winblur/internal/wm"
	"winblur/pkg/config"
	"winblur/pkg/global"
	"winblur/pkg/logger"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file (.json or .yaml)")
	debug := flag.Bool("debug", false, "enable debug logging and the debug panel")
	flag.Parse()

	// Setup logging level
	logLevel := zerolog.InfoLevel
	if *debug {
		logLevel = zerolog.DebugLevel
	}

	opts := []logger.Option{
		logger.WithConsole(),
		logger.WithLevel(logLevel),
	}

	var debugWriter *app.DebugWriter
	if *debug {
		debugWriter = app.NewDebugWriter()
		opts = append(opts, logger.WithWriter(zerolog.ConsoleWriter{
			Out:        debugWriter,
			TimeFormat: time.Kitchen,
			NoColor:    true,
		}))
	}

	log, err := logger.NewLogger(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting winblur",
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"debug", *debug)

	cfg, err := config.FindConfig(*configPath, log)
	if err != nil {
		log.Error("Failed to load configuration", err, "provided_path", *configPath)
		os.Exit(1)
	}
	log.Info("Configuration loaded successfully",
		"effect", cfg.GetEffect().String(),
		"resolve", cfg.GetResolve().String(),
		"socket_path", cfg.GetSocketPath())

	global.InitGlobals(cfg, log)

	// Load the native binding once; a failure leaves every effect call a
	// logged no-op.
	lib := wm.Load(wm.Options{TintColor: cfg.GetTintColor()}, log)

	if err := app.NewWinBlur(cfg, log, lib, debugWriter).Run(); err != nil {
		log.Fatal("Application error", err)
	}
}
