// Package logger holds the viewer's process-wide zap logger.
// Until Init is called every call goes to a no-op core, so library
// packages and their tests can log unconditionally.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RootName prefixes every component logger name.
const RootName = "viewer"

// Log is the root logger. Components log through For.
var Log = zap.NewNop()

// helper backs the package-level Debug/Info/Warn/Error so the caller
// field points at the call site rather than this file.
var helper = Log

// Options configures Setup.
type Options struct {
	Level string

	// File enables a rotated log file when non-empty.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// Quiet turns off stdout output.
	Quiet bool
}

// Defaults returns Options for level with lumberjack limits suited to a
// desktop session.
func Defaults(level, file string) Options {
	return Options{
		Level:      level,
		File:       file,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Init configures logging from the config's level and log file.
func Init(level, logFile string) error {
	return Setup(Defaults(level, logFile))
}

// Setup replaces the global logger. Console lines are colored with a
// short clock; file lines carry full ISO8601 timestamps.
func Setup(o Options) error {
	lvl, err := ParseLevel(o.Level)
	if err != nil {
		return err
	}

	var cores []zapcore.Core
	if !o.Quiet {
		enc := encoderConfig()
		enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stdout), lvl))
	}
	if o.File != "" {
		w := &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    o.MaxSizeMB,
			MaxBackups: o.MaxBackups,
			MaxAge:     o.MaxAgeDays,
			Compress:   o.Compress,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(w), lvl))
	}

	install(zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Named(RootName))
	return nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

func install(l *zap.Logger) {
	Log = l
	helper = l.WithOptions(zap.AddCallerSkip(1))
}

// For returns the logger for one component, e.g. "asset" or "renderer".
// Call it at log time; Init may swap the root after package init.
func For(component string) *zap.Logger {
	return Log.Named(component)
}

// Model tags an entry with the model handle it concerns.
func Model(handle string) zap.Field {
	return zap.String("model", handle)
}

// Seq tags an entry with a load request's sequence number.
func Seq(n uint64) zap.Field {
	return zap.Uint64("seq", n)
}

// ParseLevel maps a config level name to a zap level. Empty means info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
}

// Reset flushes and drops back to the no-op logger.
func Reset() {
	Sync()
	install(zap.NewNop())
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func Sync() {
	_ = Log.Sync()
}

// Debug logs at debug level on the root logger.
func Debug(msg string, fields ...zap.Field) { helper.Debug(msg, fields...) }

// Info logs at info level on the root logger.
func Info(msg string, fields ...zap.Field) { helper.Info(msg, fields...) }

// Warn logs at warn level on the root logger.
func Warn(msg string, fields ...zap.Field) { helper.Warn(msg, fields...) }

// Error logs at error level on the root logger.
func Error(msg string, fields ...zap.Field) { helper.Error(msg, fields...) }
