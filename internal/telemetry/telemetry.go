// Package telemetry bootstraps the agent's structured logger. All agent
// I/O besides engine commands is limited to this logger (spec §5).
//
// Grounded on rackaracka123-terraforming-mars/backend/internal/logger's
// zap.Config selection by environment, adapted to this module's simpler
// single-process bootstrap.
package telemetry

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *zap.Logger = zap.NewNop()

// Init builds and installs the package-level logger. level selects the
// minimum severity ("debug", "info", "warn", "error"); production
// switches to JSON encoding and disables stack traces on info logs,
// matching the teacher's production/development split.
func Init(level string, production bool) error {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	switch level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	global = logger
	return nil
}

// L returns the package-level logger, which is a no-op logger if Init
// was never called (e.g. in tests).
func L() *zap.Logger {
	return global
}

// Sync flushes any buffered log entries. Errors writing to stderr/stdout
// sync calls are expected on some platforms and are intentionally
// ignored, matching the teacher's shutdown-path logging convention.
func Sync() {
	_ = global.Sync()
}

func init() {
	if os.Getenv("HEARTHOLD_LOG_LEVEL") != "" {
		_ = Init(os.Getenv("HEARTHOLD_LOG_LEVEL"), os.Getenv("GO_ENV") == "production")
	}
}
