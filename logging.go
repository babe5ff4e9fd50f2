package main

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func parseConfigLevelEncoder(levelEncoderName string) zapcore.LevelEncoder {
	switch levelEncoderName {
	case "capitalColor":
		return zapcore.CapitalColorLevelEncoder
	case "capital":
		return zapcore.CapitalLevelEncoder
	case "lowercase":
		return zapcore.LowercaseLevelEncoder
	default:
		return zapcore.CapitalLevelEncoder
	}
}

func newEncoder(logFormat string, cfg zapcore.EncoderConfig) zapcore.Encoder {
	if logFormat == "json" {
		return zapcore.NewJSONEncoder(cfg)
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// SetGlobalLogger replaces zap's global logger. Logs go to stderr, stdout is
// kept for map listings.
func SetGlobalLogger(levelName string, levelEncoderName string, logFormat string) error {
	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return err
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:  "message",
		LevelKey:    "level",
		EncodeLevel: parseConfigLevelEncoder(levelEncoderName),
		TimeKey:     "time",
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000000Z"))
		},
		NameKey:          "name",
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: "\t",
	}

	core := zapcore.NewCore(newEncoder(logFormat, encoderCfg), zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(level))
	zap.ReplaceGlobals(zap.New(core))
	return nil
}
