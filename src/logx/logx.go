package logx

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the part of zap's sugared logger the game and the front ends use.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	DPanic(args ...interface{})
	DPanicf(template string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(template string, args ...interface{})
	Sync() error
}

// Logx must be initialized with InitLogger before use, unless it came
// from NewNopLogx or NewLogxFromCore.
type Logx struct {
	*zap.SugaredLogger
	level   zapcore.Level
	dev     bool
	console bool
}

func NewLogx(lvl zapcore.Level, dev bool, console bool) *Logx {
	return &Logx{level: lvl, dev: dev, console: console}
}

// NewNopLogx discards everything.
func NewNopLogx() *Logx {
	return &Logx{SugaredLogger: zap.NewNop().Sugar(), level: zapcore.FatalLevel}
}

// NewLogxFromCore wraps an existing core, e.g. zaptest/observer in tests.
// DPanic does not panic on such a logger.
func NewLogxFromCore(core zapcore.Core) *Logx {
	return &Logx{SugaredLogger: zap.New(core).Sugar(), level: zapcore.DebugLevel}
}

var levels = map[string]zapcore.Level{
	"debug":  zapcore.DebugLevel,
	"info":   zapcore.InfoLevel,
	"warn":   zapcore.WarnLevel,
	"error":  zapcore.ErrorLevel,
	"dpanic": zapcore.DPanicLevel,
	"panic":  zapcore.PanicLevel,
	"fatal":  zapcore.FatalLevel,
}

// LevelByString reports whether lvl names a known level.
func LevelByString(lvl string) (zapcore.Level, bool) {
	level, ok := levels[lvl]
	return level, ok
}

// GetLoggerLevelByString falls back to debug for unknown names.
func GetLoggerLevelByString(lvl string) zapcore.Level {
	if level, ok := levels[lvl]; ok {
		return level
	}
	return zapcore.DebugLevel
}

// InitLogger writes to w, or to stdout in console mode. Dev mode uses the
// development encoder and makes DPanic panic.
func (l *Logx) InitLogger(w io.Writer) {
	sink := zapcore.AddSync(w)
	if l.console {
		sink = zapcore.AddSync(os.Stdout)
	}

	cfg := zap.NewProductionEncoderConfig()
	if l.dev {
		cfg = zap.NewDevelopmentEncoderConfig()
	}
	cfg.LevelKey = "LEVEL"
	cfg.CallerKey = "CALLER"
	cfg.TimeKey = "TIME"
	cfg.NameKey = "NAME"
	cfg.MessageKey = "MESSAGE"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	encoder := zapcore.NewJSONEncoder(cfg)
	if l.console {
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	opts := []zap.Option{zap.AddCaller()}
	if l.dev {
		opts = append(opts, zap.Development())
	}
	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(l.level))
	l.SugaredLogger = zap.New(core, opts...).Sugar()
}
