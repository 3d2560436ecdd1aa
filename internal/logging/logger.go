// Package logging configures FAP's structured logger. The agent never
// logs through a package-global logger implicitly — every subsystem
// receives a *zap.Logger at construction — but this package builds that
// logger once, the way a host application builds one before wiring the
// agent in.
package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"fap/internal/ferrors"
)

// DefaultDirPerms is the permission mode used for created log directories.
const DefaultDirPerms = 0o750

// Options configures logger construction.
type Options struct {
	// Level is one of "debug", "info", "warn", "error". Defaults to "info".
	Level string

	// Structured selects JSON encoding for file output and a
	// non-colorized console encoder. When false, output favors a
	// human-readable development encoder.
	Structured bool

	// FilePath is the log file path. When empty and file logging is
	// enabled, a default under the user's home directory is used.
	FilePath string

	// DisableFileLogging skips the file core entirely, logging only to
	// stdout. Useful for tests and short-lived CLI invocations.
	DisableFileLogging bool

	// MaxSizeMB, MaxBackups, and MaxAgeDays configure lumberjack rotation.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	mu      sync.Mutex
	logFile *lumberjack.Logger
)

// New builds a *zap.Logger per opts. Each call first closes any
// rotation file opened by a prior call made through this package,
// mirroring the teacher's Init/Close pairing.
func New(opts Options) (*zap.Logger, error) {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		if err := logFile.Close(); err != nil {
			return nil, ferrors.Wrap(err, ferrors.CodeLoggingFailed, "failed to close existing log file")
		}

		logFile = nil
	}

	level := levelFromString(opts.Level)

	consoleEncoderConfig, fileEncoderConfig := encoderConfigs(opts.Structured)

	consoleEncoder := zapcore.NewConsoleEncoder(consoleEncoderConfig)
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level),
	}

	if !opts.DisableFileLogging {
		core, err := fileCore(opts, fileEncoderConfig, level)
		if err != nil {
			return nil, err
		}

		cores = append(cores, core)
	}

	core := zapcore.NewTee(cores...)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func levelFromString(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func encoderConfigs(structured bool) (zapcore.EncoderConfig, zapcore.EncoderConfig) {
	var consoleCfg, fileCfg zapcore.EncoderConfig
	if structured {
		consoleCfg = zap.NewProductionEncoderConfig()
		fileCfg = zap.NewProductionEncoderConfig()
	} else {
		consoleCfg = zap.NewDevelopmentEncoderConfig()
		fileCfg = zap.NewDevelopmentEncoderConfig()
	}

	consoleCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if structured {
		consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	return consoleCfg, fileCfg
}

func fileCore(opts Options, fileEncoderConfig zapcore.EncoderConfig, level zapcore.Level) (zapcore.Core, error) {
	path := opts.FilePath
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, ferrors.Wrap(err, ferrors.CodeLoggingFailed, "failed to get home directory")
		}

		path = filepath.Join(homeDir, ".fap", "logs", "agent.log")
	}

	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPerms); err != nil {
		return nil, ferrors.Wrap(err, ferrors.CodeLoggingFailed, "failed to create log directory")
	}

	logFile = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}

	var encoder zapcore.Encoder
	if opts.Structured {
		encoder = zapcore.NewJSONEncoder(fileEncoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(fileEncoderConfig)
	}

	return zapcore.NewCore(encoder, zapcore.AddSync(logFile), level), nil
}

// Close flushes and closes any rotation file opened by New. Safe to call
// even when no file logging was configured.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}

	err := logFile.Close()
	logFile = nil

	if err != nil && !strings.Contains(err.Error(), "invalid argument") {
		return ferrors.Wrap(err, ferrors.CodeLoggingFailed, "failed to close log file")
	}

	return nil
}

// Nop returns a logger that discards everything, for tests and
// contexts that don't want log output.
func Nop() *zap.Logger {
	return zap.NewNop()
}
