// Package main is the entry point for the panel-less scene viewer.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/lodscene/internal/app"
	"github.com/Faultbox/lodscene/internal/config"
	"github.com/Faultbox/lodscene/internal/logger"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Warn("config not saved", zap.Error(err))
		} else {
			logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		}
	}

	logger.Info("=== LOD Scene Viewer ===")

	v, err := app.NewViewer(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
