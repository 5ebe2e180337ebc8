// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package commons

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the logging contract shared by every component of the service.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})

	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})

	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	Sync() error
}

type loggerOptions struct {
	name        string
	path        string
	level       string
	development bool
	maxSizeMB   int
	maxBackups  int
	maxAgeDays  int
}

// LoggerOption configures NewApplicationLogger.
type LoggerOption func(*loggerOptions)

// Name sets the service name, used as the log file name.
func Name(name string) LoggerOption {
	return func(o *loggerOptions) { o.name = name }
}

// Path sets the directory for rotated log files. Empty disables file output.
func Path(path string) LoggerOption {
	return func(o *loggerOptions) { o.path = path }
}

// Level sets the minimum level (debug, info, warn, error).
func Level(level string) LoggerOption {
	return func(o *loggerOptions) { o.level = level }
}

// Development switches the console encoder to a human readable format.
func Development(development bool) LoggerOption {
	return func(o *loggerOptions) { o.development = development }
}

type applicationLogger struct {
	*zap.SugaredLogger
}

// NewApplicationLogger builds a zap backed logger writing to stdout and,
// when a path is configured, to a lumberjack rotated file.
func NewApplicationLogger(opts ...LoggerOption) (Logger, error) {
	o := &loggerOptions{
		name:       "voice-api",
		level:      "debug",
		maxSizeMB:  100,
		maxBackups: 5,
		maxAgeDays: 14,
	}
	for _, opt := range opts {
		opt(o)
	}

	level, err := zapcore.ParseLevel(strings.ToLower(o.level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", o.level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var consoleEncoder zapcore.Encoder
	if o.development {
		devCfg := zap.NewDevelopmentEncoderConfig()
		devCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEncoder = zapcore.NewConsoleEncoder(devCfg)
	} else {
		consoleEncoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), level),
	}

	if o.path != "" {
		if err := os.MkdirAll(o.path, 0o755); err != nil {
			return nil, fmt.Errorf("unable to create log directory %s: %w", o.path, err)
		}
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(o.path, o.name+".log"),
			MaxSize:    o.maxSizeMB,
			MaxBackups: o.maxBackups,
			MaxAge:     o.maxAgeDays,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(rotator), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller()).
		Named(o.name)
	return &applicationLogger{SugaredLogger: logger.Sugar()}, nil
}
