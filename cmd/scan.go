package cmd

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"toksloc/internal/model"
	"toksloc/internal/report"
	"toksloc/internal/scanner"
)

// scanOptions 存放 scan 与 watch 命令共用的可配置参数。
type scanOptions struct {
	format  string
	output  string
	workers int
	include []string
	exclude []string
}

// defaultScanOptions 返回默认参数：text 输出、CPU 核数个 worker。
func defaultScanOptions() scanOptions {
	return scanOptions{
		format:  string(report.FormatText),
		workers: runtime.NumCPU(),
	}
}

// bindFlags 把参数注册到命令上。
func (o *scanOptions) bindFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "format", o.format, "输出格式: text, table 或 json")
	cmd.Flags().IntVar(&o.workers, "workers", o.workers, "并发 worker 数量")
	cmd.Flags().StringSliceVar(&o.include, "include", nil, "只统计匹配的文件（doublestar 语法，相对扫描目录，可重复）")
	cmd.Flags().StringSliceVar(&o.exclude, "exclude", nil, "跳过匹配的文件或目录（doublestar 语法，相对扫描目录，可重复）")
}

// validate 检查参数并返回解析后的输出格式。
func (o *scanOptions) validate() (report.Format, error) {
	if o.workers <= 0 {
		return "", errors.New("workers must be greater than 0")
	}
	return report.ParseFormat(o.format)
}

// newService 按语言名称构建扫描服务。
func (a *app) newService(language string, options scanOptions, cache *scanner.ResultCache) (*scanner.Service, error) {
	profile, err := a.registry.Lookup(language)
	if err != nil {
		return nil, err
	}
	return scanner.NewService(profile, scanner.Options{
		Workers: options.workers,
		Include: options.include,
		Exclude: options.exclude,
		Cache:   cache,
	}, a.logger)
}

// noFilesError 构造"没有找到任何文件"的错误。
func noFilesError(language string, dir string) error {
	return fmt.Errorf("no %s files found in directory `%s`", language, dir)
}

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	toksloc scan . go
//	toksloc scan ./project python --format json --output result.json
//	toksloc scan ./project go --exclude 'vendor/**' --exclude '**/*_test.go'
func newScanCmd(application *app) *cobra.Command {
	options := defaultScanOptions()

	scanCmd := &cobra.Command{
		Use:   "scan <dir> <language>",
		Short: "扫描目录并输出每个文件的 SLOC、token 数与 wideness",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := options.validate()
			if err != nil {
				return err
			}

			service, err := application.newService(args[1], options, nil)
			if err != nil {
				return err
			}

			result, err := service.ScanPath(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			if result.Total.Files == 0 {
				return noFilesError(service.Profile().Name, args[0])
			}

			if err := report.Print(cmd.OutOrStdout(), format, result); err != nil {
				return err
			}
			return exportJSON(cmd, options.output, result)
		},
	}

	options.bindFlags(scanCmd)
	scanCmd.Flags().StringVar(&options.output, "output", "", "额外导出 JSON 结果的文件路径")

	return scanCmd
}

// exportJSON 在指定 --output 时导出 JSON 文件，提示信息写到 stderr，避免污染 stdout 上的报表。
func exportJSON(cmd *cobra.Command, output string, result model.ScanResult) error {
	outputPath := strings.TrimSpace(output)
	if outputPath == "" {
		return nil
	}
	if err := report.WriteJSONFile(outputPath, result); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "JSON exported to %s\n", outputPath)
	return nil
}

// commandContext 返回命令的 context；直接调用 RunE 时可能为 nil。
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
