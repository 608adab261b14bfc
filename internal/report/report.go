// Package report 提供 toksloc 的输出能力。
// 当前实现支持 text（逐行对齐）、table 控制台格式和 JSON 格式（含文件导出）。
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"toksloc/internal/model"
)

// Format 是输出格式名称。
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ErrUnknownFormat 表示不支持的输出格式。
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat 解析 --format 参数，大小写不敏感。
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatText, "":
		return FormatText, nil
	case FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, value)
	}
}

// Print 按指定格式输出扫描结果。
func Print(writer io.Writer, format Format, result model.ScanResult) error {
	switch format {
	case FormatText:
		return PrintText(writer, result)
	case FormatTable:
		return PrintTable(writer, result)
	case FormatJSON:
		return PrintJSON(writer, result)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// PrintText 按逐行对齐格式输出：
//
//	<path> sloc: <n>      tokens: <n>      wideness: <n>
//
// 路径补齐到最长文件名，最后一行是 total 汇总，随后列出被跳过的文件。
func PrintText(writer io.Writer, result model.ScanResult) error {
	width := 0
	for _, item := range result.Files {
		width = max(width, utf8.RuneCountInString(item.Path))
	}

	for _, item := range result.Files {
		if err := writeTextLine(writer, item.Path, width, item.SLOC, item.Tokens, item.RoundedWideness()); err != nil {
			return err
		}
	}

	if result.Total.Files > 0 {
		if err := writeTextLine(
			writer,
			"total",
			width,
			result.Total.SLOC,
			result.Total.Tokens,
			result.Total.AverageWideness(),
		); err != nil {
			return err
		}
	}

	for _, item := range result.Errors {
		if _, err := fmt.Fprintf(writer, "skipped: %s: %s\n", item.Path, item.Error); err != nil {
			return err
		}
	}
	return nil
}

func writeTextLine(writer io.Writer, name string, width int, sloc int64, tokens int64, wideness int64) error {
	padding := width - utf8.RuneCountInString(name)
	if padding < 0 {
		padding = 0
	}
	_, err := fmt.Fprintf(
		writer,
		"%s%s sloc: %-6d tokens: %-6d wideness: %d\n",
		name,
		strings.Repeat(" ", padding),
		sloc,
		tokens,
		wideness,
	)
	return err
}

// PrintTable 使用表格展示扫描结果。
func PrintTable(writer io.Writer, result model.ScanResult) error {
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "SCANNED PATH\t%s\nLANGUAGE\t%s\n\n", result.ScannedPath, result.Language); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(tw, "FILE\tSLOC\tTOKENS\tWIDENESS"); err != nil {
		return err
	}
	for _, item := range result.Files {
		if _, err := fmt.Fprintf(
			tw,
			"%s\t%d\t%d\t%d\n",
			item.Path,
			item.SLOC,
			item.Tokens,
			item.RoundedWideness(),
		); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(
		tw,
		"\nTOTAL (%d files)\t%d\t%d\t%d\n",
		result.Total.Files,
		result.Total.SLOC,
		result.Total.Tokens,
		result.Total.AverageWideness(),
	); err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		if _, err := fmt.Fprintln(tw, "\nSKIPPED FILE\tMESSAGE"); err != nil {
			return err
		}
		for _, item := range result.Errors {
			if _, err := fmt.Fprintf(tw, "%s\t%s\n", item.Path, item.Error); err != nil {
				return err
			}
		}
	}

	return tw.Flush()
}

// PrintJSON 把扫描结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result model.ScanResult) error {
	content, err := marshalResult(result)
	if err != nil {
		return err
	}

	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteJSONFile 将 JSON 结果导出到指定路径。
// 如果目录不存在会自动创建。
func WriteJSONFile(path string, result model.ScanResult) error {
	content, err := marshalResult(result)
	if err != nil {
		return err
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}

func marshalResult(result model.ScanResult) ([]byte, error) {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return append(content, '\n'), nil
}
