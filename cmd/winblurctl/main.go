package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"winblur/internal/ipc"
	"winblur/pkg/config"
	"winblur/pkg/effect"
	"winblur/pkg/global"
	"winblur/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (.json or .yaml)")
	effectName := flag.String("effect", "", "effect to apply: none, blur-behind or acrylic")
	status := flag.Bool("status", false, "print the current effect instead of applying one")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logLevel := zerolog.WarnLevel
	if *debug {
		logLevel = zerolog.DebugLevel
	}

	log, err := logger.NewLogger(
		logger.WithConsole(),
		logger.WithLevel(logLevel),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	cfg, err := config.FindConfig(*configPath, log)
	if err != nil {
		log.Error("Failed to load configuration", err, "provided_path", *configPath)
		os.Exit(1)
	}
	global.InitGlobals(cfg, log)

	req := ipc.Request{Command: "status"}
	if !*status {
		if _, err := effect.ParseKind(*effectName); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			flag.Usage()
			os.Exit(2)
		}
		req = ipc.Request{Command: "apply", Effect: *effectName}
	}

	resp, err := ipc.SendCommand(cfg.GetSocketPath(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "winblur is not running: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(resp.Message)
	if resp.Status != "success" {
		os.Exit(1)
	}
}
