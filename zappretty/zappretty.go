// Package zappretty is a zapcore.Encoder for humans reading a terminal.
//
// Entries are written on one line: an optional timestamp, the colored level,
// the logger name and caller, the message, then the fields as key=value pairs
// sorted by key.
package zappretty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const timeFormat = "2006-01-02 15:04:05 MST"

var (
	bufPool    = buffer.NewPool()
	levelColor = map[zapcore.Level]color.Attribute{
		zapcore.DebugLevel:  color.FgBlue,
		zapcore.InfoLevel:   color.FgGreen,
		zapcore.WarnLevel:   color.FgYellow,
		zapcore.ErrorLevel:  color.FgRed,
		zapcore.DPanicLevel: color.FgRed,
		zapcore.PanicLevel:  color.FgRed,
		zapcore.FatalLevel:  color.FgRed,
	}
)

// Register makes the encoder available to zap.Config as "cli".
func Register(cfg zapcore.EncoderConfig) error {
	return zap.RegisterEncoder("cli", func(_ zapcore.EncoderConfig) (zapcore.Encoder, error) {
		return NewCLIEncoder(cfg), nil
	})
}

// cliEncoder collects context fields in a MapObjectEncoder and only formats
// them when an entry is written.
type cliEncoder struct {
	*zapcore.MapObjectEncoder
	cfg *zapcore.EncoderConfig
}

func NewCLIEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	if cfg.SkipLineEnding {
		cfg.LineEnding = ""
	} else if cfg.LineEnding == "" {
		cfg.LineEnding = zapcore.DefaultLineEnding
	}

	return &cliEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		cfg:              &cfg,
	}
}

func (enc *cliEncoder) Clone() zapcore.Encoder {
	return enc.clone()
}

func (enc *cliEncoder) clone() *cliEncoder {
	clone := &cliEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		cfg:              enc.cfg,
	}
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return clone
}

func (enc *cliEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := enc.clone()
	for i := range fields {
		fields[i].AddTo(final)
	}

	buf := bufPool.Get()

	if enc.cfg.TimeKey != "" {
		buf.AppendString(color.New(color.FgWhite).Sprintf("[%s]", entry.Time.Format(timeFormat)))
		buf.AppendByte(' ')
	}

	if enc.cfg.LevelKey != "" {
		buf.AppendString(color.New(levelColor[entry.Level]).Sprintf("%-5s", entry.Level.CapitalString()))
		buf.AppendByte(' ')
	}

	if entry.LoggerName != "" && enc.cfg.NameKey != "" {
		buf.AppendString(color.New(color.FgHiBlack).Sprint(entry.LoggerName))
		buf.AppendByte(' ')
	}

	if entry.Caller.Defined && enc.cfg.CallerKey != "" {
		buf.AppendString(color.New(color.FgHiBlack).Sprintf("(%s)", entry.Caller.TrimmedPath()))
		buf.AppendByte(' ')
	}

	if enc.cfg.MessageKey != "" {
		buf.AppendString(color.New(color.FgHiWhite).Sprint(entry.Message))
	}

	for _, key := range final.keys() {
		buf.AppendByte(' ')
		buf.AppendString(color.New(color.FgBlue).Sprint(key))
		buf.AppendByte('=')
		buf.AppendString(formatValue(final.Fields[key]))
	}

	if entry.Stack != "" && enc.cfg.StacktraceKey != "" {
		buf.AppendByte('\n')
		buf.AppendString(entry.Stack)
	}

	buf.AppendString(enc.cfg.LineEnding)

	return buf, nil
}

// keys returns the field keys in order. The "Verbose" companions zap.Error
// adds for formattable errors are multi-line stack dumps and are skipped.
func (enc *cliEncoder) keys() []string {
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		if strings.HasSuffix(k, "Verbose") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return quoteIfNeeded(x)
	case []byte:
		return quoteIfNeeded(string(x))
	case time.Duration:
		return x.String()
	case time.Time:
		return x.Format(time.RFC3339)
	case []any:
		parts := make([]string, len(x))
		for i := range x {
			parts[i] = formatValue(x[i])
		}
		return "[" + strings.Join(parts, " ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + formatValue(x[k])
		}
		return "{" + strings.Join(parts, " ") + "}"
	case nil:
		return "<nil>"
	default:
		return fmt.Sprint(x)
	}
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\r\"=") || !strconv.CanBackquote(s) {
		return strconv.Quote(s)
	}
	return s
}
