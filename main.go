package main

import (
	"flag"
	"log/slog"

	"github.com/soocke/pixel-stream-go/app"
	"github.com/soocke/pixel-stream-go/config"
)

func main() {
	cfgPath := flag.String("config", "config.json", "path to the JSON config file")
	debugFlag := flag.Bool("debug", false, "enable debug logging and runtime stats")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if *debugFlag {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}

	logger := NewLogger(ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}

	c := app.BuildContainer(cfg, *cfgPath, logger)
	application := app.NewApp("Pixel Stream", 820, 720, c)
	application.Start()
}
