package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface -.
type Interface interface {
	Debug(message interface{}, args ...interface{})
	Info(message string, args ...interface{})
	Warn(message string, args ...interface{})
	Error(message interface{}, args ...interface{})
	Fatal(message interface{}, args ...interface{})
}

// Logger -.
type Logger struct {
	logger *zap.SugaredLogger
	level  zapcore.Level
}

var _ Interface = (*Logger)(nil)

// New -.
func New(level string) *Logger {
	var l zapcore.Level

	switch strings.ToLower(level) {
	case "error":
		l = zapcore.ErrorLevel
	case "warn":
		l = zapcore.WarnLevel
	case "info":
		l = zapcore.InfoLevel
	case "debug":
		l = zapcore.DebugLevel
	default:
		l = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		zap.NewAtomicLevelAt(l),
	)

	return newWithCore(core, l)
}

// every exported method reaches zap through exactly one helper frame
const _callerSkip = 2

func newWithCore(core zapcore.Core, l zapcore.Level) *Logger {
	return &Logger{
		logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(_callerSkip)).Sugar(),
		level:  l,
	}
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *Logger {
	return &Logger{
		logger: zap.NewNop().Sugar(),
		level:  zapcore.InfoLevel,
	}
}

// Debug -.
func (l *Logger) Debug(message interface{}, args ...interface{}) {
	l.msg(zapcore.DebugLevel, message, args...)
}

// Info -.
func (l *Logger) Info(message string, args ...interface{}) {
	l.msg(zapcore.InfoLevel, message, args...)
}

// Warn -.
func (l *Logger) Warn(message string, args ...interface{}) {
	l.msg(zapcore.WarnLevel, message, args...)
}

// Error -.
func (l *Logger) Error(message interface{}, args ...interface{}) {
	l.msg(zapcore.ErrorLevel, message, args...)
}

// Fatal -.
func (l *Logger) Fatal(message interface{}, args ...interface{}) {
	l.msg(zapcore.FatalLevel, message, args...)

	os.Exit(1)
}

// msg accepts an error as message; args then carry the call site, e.g.
// l.Error(err, "restapi - v1 - selectImage"). It must call zap directly.
func (l *Logger) msg(level zapcore.Level, message interface{}, args ...interface{}) {
	var text string

	switch msg := message.(type) {
	case error:
		if len(args) > 0 {
			l.logger.Logw(level, msg.Error(), "where", fmt.Sprint(args...))

			return
		}
		text = msg.Error()
	case string:
		text = msg
	default:
		text = fmt.Sprintf("%s message %v has unknown type %T", level, message, message)
	}

	if len(args) == 0 {
		l.logger.Log(level, text)
	} else {
		l.logger.Logf(level, text, args...)
	}
}
