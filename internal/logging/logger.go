// Package logging 根据命令行配置构建结构化日志。
// 日志统一写到 stderr，stdout 留给报表和 MCP 协议。
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level 是日志级别名称。
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format 是日志输出格式。
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config 是日志配置。
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
}

// DefaultConfig 默认只输出 warn 及以上级别，避免干扰报表。
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// Validate 检查级别与格式是否可识别。
func (c Config) Validate() error {
	if _, err := ParseLevel(string(c.Level)); err != nil {
		return err
	}
	switch Format(strings.ToLower(string(c.Format))) {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported log format %q, allowed values: text, json", c.Format)
	}
}

// New 创建 slog.Logger；未知的级别或格式回退到默认值。
func New(config Config) *slog.Logger {
	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	level, err := ParseLevel(string(config.Level))
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch Format(strings.ToLower(string(config.Format))) {
	case FormatJSON:
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler)
}

// ParseLevel 把级别名称转换为 slog.Level。
func ParseLevel(name string) (slog.Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(name))) {
	case LevelDebug:
		return slog.LevelDebug, nil
	case LevelInfo:
		return slog.LevelInfo, nil
	case LevelWarn, "warning":
		return slog.LevelWarn, nil
	case LevelError:
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported log level %q, allowed values: debug, info, warn, error", name)
	}
}

// OrDefault 在 logger 为 nil 时返回 slog.Default()。
func OrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// Discard 返回丢弃全部输出的 logger，供测试使用。
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
