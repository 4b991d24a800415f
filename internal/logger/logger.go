package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"customerlib/internal/config"
)

// New builds a zap logger from LogConfig.
// Unknown levels fall back to info; unknown encodings fall back to json.
func New(c config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoding := c.Encoding
	if encoding != "console" {
		encoding = "json"
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	if encoding == "console" {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zc := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Encoding:          encoding,
		EncoderConfig:     encCfg,
		DisableCaller:     c.DisableCaller,
		DisableStacktrace: c.DisableStacktrace,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	return zc.Build()
}

// Must is like New but falls back to a no-op logger when the config cannot be built.
func Must(c config.LogConfig) *zap.Logger {
	l, err := New(c)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
