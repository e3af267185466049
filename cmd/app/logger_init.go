package main

import (
	"github.com/devjjun/commu/internal/config"
	"github.com/devjjun/commu/internal/handler"
	"github.com/devjjun/commu/internal/logger"
)

const serviceName = "commu"

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Source info only in dev, it is noise in production JSON logs
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		serviceName,
		handler.Version,
		cfg.Environment,
		addSource,
	)

	logger.InitLogger(loggerConfig)
}
