package logger

import (
	"go.uber.org/zap"
)

// New builds a development logger (console, debug level) or a production
// logger (JSON, info level).
func New(dev bool) (*zap.Logger, error) {
	if dev {
		cfg := zap.NewDevelopmentConfig()
		return cfg.Build()
	}
	return zap.NewProduction()
}
