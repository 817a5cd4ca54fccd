package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log levels accepted by --log-level.
const (
	logLevelNone   = "none"
	logLevelNormal = "normal"
	logLevelDebug  = "debug"
)

// buildLogger creates the console logger from koanf state. --verbose raises
// an unset log level to debug.
func buildLogger() (*zap.Logger, error) {
	level := getStringWithFallback("log-level", "log-level", logLevelNone)
	if !k.Exists("log-level") && getBoolWithFallback("verbose", "verbose", false) {
		level = logLevelDebug
	}
	return newLogger(level)
}

// newLogger returns a console logger: errors go to stderr, everything else
// to stdout. Level "none" disables logging.
func newLogger(level string) (*zap.Logger, error) {
	var lowest zapcore.Level
	switch level {
	case logLevelNone, "":
		return zap.NewNop(), nil
	case logLevelNormal:
		lowest = zapcore.InfoLevel
	case logLevelDebug:
		lowest = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("unknown log level %q (want none, normal or debug)", level)
	}

	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lowest <= lvl && lvl < zapcore.ErrorLevel
	})
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder(os.Stdout), zapcore.Lock(os.Stdout), lowPriority),
		zapcore.NewCore(consoleEncoder(os.Stderr), zapcore.Lock(os.Stderr), highPriority),
	)
	return zap.New(core).Named("pxscale"), nil
}

func consoleEncoder(stream *os.File) zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if isatty.IsTerminal(stream.Fd()) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(ec)
}
