// internal/logger/pretty.go
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Colors for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

// prettyEncoderConfig is the console layout used in plain mode
func prettyEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		CallerKey:      "",
		StacktraceKey:  "",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// customLevelEncoder formats log levels with colors
func customLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(fmt.Sprintf("%s[DEBUG]%s", ColorCyan, ColorReset))
	case zapcore.InfoLevel:
		enc.AppendString(fmt.Sprintf("%s[INFO]%s", ColorGreen, ColorReset))
	case zapcore.WarnLevel:
		enc.AppendString(fmt.Sprintf("%s[WARN]%s", ColorYellow, ColorReset))
	case zapcore.ErrorLevel:
		enc.AppendString(fmt.Sprintf("%s[ERROR]%s", ColorRed, ColorReset))
	case zapcore.FatalLevel:
		enc.AppendString(fmt.Sprintf("%s[FATAL]%s", ColorRed+ColorBold, ColorReset))
	default:
		enc.AppendString(fmt.Sprintf("[%s]", level.CapitalString()))
	}
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05"))
}

func levelFor(debug bool) zapcore.Level {
	if debug {
		return zap.DebugLevel
	}
	return zap.InfoLevel
}

// CreatePrettyLogger creates a human-friendly logger on stderr. Stdout is
// left to the plain transfer list.
func CreatePrettyLogger(debug bool) (*zap.Logger, error) {
	return newPrettyLogger(debug, os.Stderr), nil
}

func newPrettyLogger(debug bool, w io.Writer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(prettyEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		levelFor(debug),
	)
	return zap.New(&FieldFilterCore{core: core, keepFields: debug})
}

// FormatMessage turns well-known feed events into short readable lines
func FormatMessage(msg string, fields ...zap.Field) string {
	switch {
	case strings.Contains(msg, "Starting transfer poller"):
		interval := extractField(fields, "interval")
		return fmt.Sprintf("%s🚀 Watching token transfers every %s%s", ColorGreen, interval, ColorReset)

	case strings.Contains(msg, "Collected transfers"):
		count := extractField(fields, "transfers")
		skipped := extractField(fields, "skipped")
		return fmt.Sprintf("%s📋 Collected %s transfers (%s skipped)%s", ColorBlue, count, skipped, ColorReset)

	case strings.Contains(msg, "Failed to fetch signatures"):
		return fmt.Sprintf("%s⚠ Chain RPC unavailable, showing previous transfers%s", ColorYellow, ColorReset)

	case strings.Contains(msg, "Failed to fetch token metadata"):
		mint := extractField(fields, "mint")
		return fmt.Sprintf("%s⚠ No metadata for %s%s", ColorYellow, shortenAddress(mint), ColorReset)

	case strings.Contains(msg, "Transfers exported"):
		file := extractField(fields, "file")
		return fmt.Sprintf("%s💾 Transfers exported to %s%s", ColorPurple, file, ColorReset)

	case strings.Contains(msg, "Transfer poller stopped"):
		return fmt.Sprintf("%s✓ Transfer feed stopped%s", ColorGreen, ColorReset)

	default:
		return msg
	}
}

func extractField(fields []zap.Field, key string) string {
	for _, field := range fields {
		if field.Key != key {
			continue
		}
		switch field.Type {
		case zapcore.StringType:
			return field.String
		case zapcore.Int64Type, zapcore.Int32Type:
			return fmt.Sprintf("%d", field.Integer)
		case zapcore.DurationType:
			return time.Duration(field.Integer).String()
		default:
			return fmt.Sprintf("%v", field.Interface)
		}
	}
	return ""
}

func shortenAddress(addr string) string {
	if len(addr) > 8 {
		return addr[:4] + "..." + addr[len(addr)-4:]
	}
	return addr
}

// FieldFilterCore rewrites known messages and drops structured fields unless
// keepFields is set.
type FieldFilterCore struct {
	core       zapcore.Core
	keepFields bool
	fields     []zapcore.Field
}

func (c *FieldFilterCore) Enabled(level zapcore.Level) bool {
	return c.core.Enabled(level)
}

func (c *FieldFilterCore) With(fields []zapcore.Field) zapcore.Core {
	merged := append(append([]zapcore.Field(nil), c.fields...), fields...)
	return &FieldFilterCore{core: c.core, keepFields: c.keepFields, fields: merged}
}

func (c *FieldFilterCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *FieldFilterCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	all := append(append([]zapcore.Field(nil), c.fields...), fields...)

	cleanEntry := entry
	cleanEntry.Message = FormatMessage(entry.Message, all...)

	if c.keepFields {
		return c.core.Write(cleanEntry, all)
	}
	return c.core.Write(cleanEntry, nil)
}

func (c *FieldFilterCore) Sync() error {
	return c.core.Sync()
}

// CreateTUILogger creates a logger that never writes to the terminal: entries
// go to buffer for the log panels and, when file is set, to a JSON log file.
func CreateTUILogger(debug bool, buffer *LogBuffer, file zapcore.WriteSyncer) (*zap.Logger, error) {
	if buffer == nil {
		return nil, fmt.Errorf("buffer is required for TUI logger")
	}

	level := levelFor(debug)
	cores := []zapcore.Core{NewBufferCore(buffer, level)}

	if file != nil {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			file,
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
