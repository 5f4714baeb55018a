package logger

import (
	"os"
	"time"

	"github.com/korewaChino/midkb/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// severity orders contract levels for filtering. The contract enumeration
// order is not a severity order, so the mapping is explicit.
var severity = map[contracts.LogLevel]int{
	contracts.DebugLevel: 0,
	contracts.InfoLevel:  1,
	contracts.WarnLevel:  2,
	contracts.ErrorLevel: 3,
	contracts.FatalLevel: 4,
}

// ZapLogger is an implementation of the Logger contract backed by Uber's zap.
type ZapLogger struct {
	logger *zap.Logger
	level  contracts.LogLevel
}

// NewZapLogger creates a zap-backed logger writing to stderr.
func NewZapLogger() contracts.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	logger, err := cfg.Build()
	if err != nil {
		// zap's development config cannot fail to build under normal
		// conditions; bail loudly rather than run without logging.
		panic(err)
	}
	return &ZapLogger{logger: logger, level: contracts.InfoLevel}
}

// Info logs a message at the INFO level.
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.log(zapcore.InfoLevel, contracts.InfoLevel, msg, fields...)
}

// Error logs a message at the ERROR level.
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.log(zapcore.ErrorLevel, contracts.ErrorLevel, msg, fields...)
}

// Debug logs a message at the DEBUG level.
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.log(zapcore.DebugLevel, contracts.DebugLevel, msg, fields...)
}

// Warn logs a message at the WARN level.
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.log(zapcore.WarnLevel, contracts.WarnLevel, msg, fields...)
}

// Fatal logs a message at the FATAL level and terminates the application.
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.log(zapcore.FatalLevel, contracts.FatalLevel, msg, fields...)
	os.Exit(1)
}

// Field returns a new field builder.
func (z *ZapLogger) Field() contracts.Field {
	return &zapField{}
}

// SetLevel sets the minimum level that will be logged.
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level = level
}

func (z *ZapLogger) log(zl zapcore.Level, level contracts.LogLevel, msg string, fields ...contracts.Field) {
	if severity[level] < severity[z.level] {
		return
	}

	zfs := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if f, ok := field.(*zapField); ok {
			zfs = append(zfs, f.field)
		}
	}

	switch zl {
	case zapcore.InfoLevel:
		z.logger.Info(msg, zfs...)
	case zapcore.ErrorLevel:
		z.logger.Error(msg, zfs...)
	case zapcore.DebugLevel:
		z.logger.Debug(msg, zfs...)
	case zapcore.WarnLevel:
		z.logger.Warn(msg, zfs...)
	case zapcore.FatalLevel:
		z.logger.Fatal(msg, zfs...)
	}
}

// zapField implements contracts.Field on top of zap.Field.
type zapField struct {
	field zap.Field
}

func (f *zapField) Bool(key string, val bool) contracts.Field {
	return &zapField{zap.Bool(key, val)}
}

func (f *zapField) Int(key string, val int) contracts.Field {
	return &zapField{zap.Int(key, val)}
}

func (f *zapField) Int32(key string, val int32) contracts.Field {
	return &zapField{zap.Int32(key, val)}
}

func (f *zapField) String(key string, val string) contracts.Field {
	return &zapField{zap.String(key, val)}
}

func (f *zapField) Time(key string, val time.Time) contracts.Field {
	return &zapField{zap.Time(key, val)}
}

func (f *zapField) Error(key string, val error) contracts.Field {
	return &zapField{zap.NamedError(key, val)}
}

func (f *zapField) Uint16(key string, val uint16) contracts.Field {
	return &zapField{zap.Uint16(key, val)}
}

func (f *zapField) Uint8(key string, val uint8) contracts.Field {
	return &zapField{zap.Uint8(key, val)}
}
