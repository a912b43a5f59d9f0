package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLog returns a logger appending to dest, or writing to stderr when dest
// is "stderr". The name is attached to every entry.
func InitLog(dest string, name string, debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{dest}
	cfg.ErrorOutputPaths = []string{dest}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil

	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("error opening log %s: %w", dest, err)
	}

	return logger.Named(name), nil
}
