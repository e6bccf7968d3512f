package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Init initializes the global logger.
// Environment can be "dev", "uat", or "prod". Every entry carries the service name.
func Init(service, env, level string) {
	var cfg zap.Config

	if env == "dev" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	built, err := cfg.Build(zap.AddCaller(), zap.Fields(zap.String("service", service)))
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	log = built
	log.Debug("logger initialized",
		zap.String("env", env),
		zap.String("level", level))
}

// L returns the global structured logger, initializing a dev logger on first use.
func L() *zap.Logger {
	if log == nil {
		Init("escher-client", "dev", "info")
	}
	return log
}

// S returns the sugared form of L.
func S() *zap.SugaredLogger {
	return L().Sugar()
}

// Sync flushes any buffered logs.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
