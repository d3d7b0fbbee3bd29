package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	zl zerolog.Logger
}

type Config struct {
	Level      string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic"`
	Format     string `yaml:"format" default:"console" validate:"oneof=json console"`
	Output     string `yaml:"output" default:"stdout"` // stdout, stderr, or file path
	TimeFormat string `yaml:"time_format"`
}

func New(cfg *Config) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	var output io.Writer
	switch cfg.Output {
	case "", "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("could not open log file: %w", err)
		}
		output = file
	}

	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339Nano
	}
	zerolog.TimeFieldFormat = cfg.TimeFormat

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: cfg.TimeFormat,
			NoColor:    false,
		}
	}

	return NewWithWriter(output, level), nil
}

// NewWithWriter builds a JSON logger on w at the given level.
func NewWithWriter(w io.Writer, level zerolog.Level) *Logger {
	zl := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		CallerWithSkipFrameCount(3).
		Logger()
	return &Logger{zl: zl}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// With returns a child logger carrying fields on every event.
func (l *Logger) With(fields ...Field) *Logger {
	ctx := l.zl.With()
	for _, f := range fields {
		ctx = f.addToContext(ctx)
	}
	return &Logger{zl: ctx.Logger()}
}

// --- Logger methods ---

func (l *Logger) Info(msg string, fields ...Field) {
	l.emit(l.zl.Info(), msg, fields)
}

func (l *Logger) Error(msg string, fields ...Field) {
	l.emit(l.zl.Error(), msg, fields)
}

func (l *Logger) Debug(msg string, fields ...Field) {
	l.emit(l.zl.Debug(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...Field) {
	l.emit(l.zl.Warn(), msg, fields)
}

func (l *Logger) emit(event *zerolog.Event, msg string, fields []Field) {
	if event == nil {
		return
	}
	for _, field := range fields {
		field.AddTo(event)
	}
	event.Msg(msg)
}

// Field types for structured logging.
type Field interface {
	AddTo(event *zerolog.Event)
	addToContext(ctx zerolog.Context) zerolog.Context
}

type StringField struct {
	Key   string
	Value string
}

func (f StringField) AddTo(event *zerolog.Event) { event.Str(f.Key, f.Value) }

func (f StringField) addToContext(ctx zerolog.Context) zerolog.Context { return ctx.Str(f.Key, f.Value) }

type IntField struct {
	Key   string
	Value int
}

func (f IntField) AddTo(event *zerolog.Event) { event.Int(f.Key, f.Value) }

func (f IntField) addToContext(ctx zerolog.Context) zerolog.Context { return ctx.Int(f.Key, f.Value) }

type ErrorField struct {
	Value error
}

func (f ErrorField) AddTo(event *zerolog.Event) { event.Err(f.Value) }

func (f ErrorField) addToContext(ctx zerolog.Context) zerolog.Context { return ctx.Err(f.Value) }

type AnyField struct {
	Key   string
	Value interface{}
}

func (f AnyField) AddTo(event *zerolog.Event) { event.Interface(f.Key, f.Value) }

func (f AnyField) addToContext(ctx zerolog.Context) zerolog.Context {
	return ctx.Interface(f.Key, f.Value)
}

type BoolField struct {
	Key   string
	Value bool
}

func (f BoolField) AddTo(event *zerolog.Event) { event.Bool(f.Key, f.Value) }

func (f BoolField) addToContext(ctx zerolog.Context) zerolog.Context { return ctx.Bool(f.Key, f.Value) }

// --- Field constructors ---

func String(key, value string) Field {
	return StringField{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return IntField{Key: key, Value: value}
}

func Error(err error) Field {
	return ErrorField{Value: err}
}

func Any(key string, value interface{}) Field {
	return AnyField{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return IntField{Key: key, Value: int(value / time.Millisecond)}
}

func Strings(key string, value []string) Field {
	return String(key, strings.Join(value, ", "))
}

func Bool(key string, v bool) Field {
	return BoolField{Key: key, Value: v}
}

// Date logs t as an ISO calendar date.
func Date(key string, t time.Time) Field {
	return String(key, t.Format("2006-01-02"))
}
