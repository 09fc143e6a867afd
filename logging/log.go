package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// A Level is a logging priority. Higher levels are more important.
type Level int8

// Logging levels (matching zap core internals).
const (
	// DebugLevel logs are typically voluminous, and are usually disabled in
	// production.
	DebugLevel Level = -1
	// InfoLevel is the default logging priority.
	InfoLevel Level = 0
	// WarnLevel logs are more important than Info, but don't need individual
	// human review.
	WarnLevel Level = 1
	// ErrorLevel logs are high-priority.
	ErrorLevel Level = 2
	// FatalLevel logs a message, then calls os.Exit(1).
	FatalLevel Level = 5
)

// ParseLevel parse a log level from a string.
func ParseLevel(l string) (Level, error) {
	switch strings.ToLower(l) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warning", "warn":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return Level(100), fmt.Errorf("log level \"%s\" is not supported", l)
	}
}

func (l Level) String() string {
	return zapcore.Level(l).String()
}

// UnmarshalText reads a level from the toml configuration.
func (l *Level) UnmarshalText(text []byte) error {
	lvl, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}

func (l *Level) UnmarshalFlag(s string) error {
	return l.UnmarshalText([]byte(s))
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

type Logger struct {
	*zap.Logger
	config *zap.Config
	name   string

	// ungated core and fields, kept so Clone can attach a new level
	base   zapcore.Core
	fields []zap.Field
}

func New(core zapcore.Core, cfg *zap.Config) *Logger {
	return &Logger{
		Logger: zap.New(&leveledCore{Core: core, level: cfg.Level}),
		config: cfg,
		base:   core,
	}
}

// Clone returns a logger with the same output, name and fields but its own
// level, changing one never affects the other.
func (log *Logger) Clone() *Logger {
	cfg := *log.config
	cfg.Level = zap.NewAtomicLevelAt(log.config.Level.Level())

	zl := zap.New(&leveledCore{Core: log.base, level: cfg.Level})
	if log.name != "" {
		zl = zl.Named(log.name)
	}
	return &Logger{
		Logger: zl.With(log.fields...),
		config: &cfg,
		name:   log.name,
		base:   log.base,
		fields: append([]zap.Field(nil), log.fields...),
	}
}

func (log *Logger) GetLevel() Level {
	return Level(log.config.Level.Level())
}

func (log *Logger) SetLevel(level Level) {
	log.config.Level.SetLevel(zapcore.Level(level))
}

func (log *Logger) GetName() string {
	return log.name
}

// Named adds a sub-scope to the logger's name.
func (log *Logger) Named(name string) *Logger {
	c := log.Clone()
	c.Logger = c.Logger.Named(name)
	if c.name == "" {
		c.name = name
	} else {
		c.name = fmt.Sprintf("%s.%s", c.name, name)
	}
	return c
}

func (log *Logger) With(fields ...zap.Field) *Logger {
	c := log.Clone()
	c.Logger = c.Logger.With(fields...)
	c.fields = append(c.fields, fields...)
	return c
}

// AtExit flushes the logs before exiting the process. This is meant to be used
// with defer when initializing your logger
func (log *Logger) AtExit() {
	if log.Logger != nil {
		_ = log.Logger.Sync()
	}
}

func newLogger(env string, level Level) *Logger {
	var encoderConfig zapcore.EncoderConfig
	var encoder zapcore.Encoder
	var encoding string

	switch env {
	case "dev":
		encoderConfig = zapcore.EncoderConfig{
			CallerKey:      "C",
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			LevelKey:       "L",
			LineEnding:     "\n",
			MessageKey:     "M",
			NameKey:        "N",
			TimeKey:        "T",
		}
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
		encoding = "console"
	default:
		encoderConfig = zapcore.EncoderConfig{
			CallerKey:      "caller",
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeName:     zapcore.FullNameEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			LevelKey:       "level",
			LineEnding:     "\n",
			MessageKey:     "message",
			NameKey:        "logger",
			StacktraceKey:  "stacktrace",
			TimeKey:        "@timestamp",
		}
		encoder = zapcore.NewJSONEncoder(encoderConfig)
		encoding = "json"
	}

	atom := zap.NewAtomicLevelAt(zapcore.Level(level))
	config := zap.Config{
		Level:            atom,
		Development:      env == "dev",
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	// logs go to stderr, stdout carries the match report
	return New(zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zapcore.DebugLevel), &config)
}

// NewLoggerFromConfig builds the logger described by the package configuration.
func NewLoggerFromConfig(cfg Config) *Logger {
	return newLogger(cfg.Environment, cfg.Level)
}

func NewDevLogger() *Logger {
	return newLogger("dev", DebugLevel)
}

func NewProdLogger() *Logger {
	return newLogger("prod", InfoLevel)
}

// NewTestLogger logs everything, errors only are worth reading in test output.
func NewTestLogger() *Logger {
	return newLogger("dev", DebugLevel)
}

// NewNopLogger discards every entry.
func NewNopLogger() *Logger {
	cfg := zap.NewProductionConfig()
	return New(zapcore.NewNopCore(), &cfg)
}

// leveledCore gates a core behind a level owned by one Logger.
type leveledCore struct {
	zapcore.Core
	level zap.AtomicLevel
}

func (c *leveledCore) Enabled(lvl zapcore.Level) bool {
	return c.level.Enabled(lvl) && c.Core.Enabled(lvl)
}

func (c *leveledCore) Level() zapcore.Level {
	return c.level.Level()
}

func (c *leveledCore) With(fields []zapcore.Field) zapcore.Core {
	return &leveledCore{Core: c.Core.With(fields), level: c.level}
}

func (c *leveledCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.level.Enabled(ent.Level) {
		return ce
	}
	return c.Core.Check(ent, ce)
}
