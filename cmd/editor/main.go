// Package main is the entry point for the LOD scene editor.
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
	// OpenGL and SDL calls must stay on the main thread.
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

	logger.Info("=== LOD Scene Editor ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ed, err := app.NewEditor(cfg)
	if err != nil {
		logger.Error("failed to create editor", zap.Error(err))
		os.Exit(1)
	}
	defer ed.Close()

	if err := ed.Run(); err != nil {
		logger.Error("editor error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("editor closed normally")
}
