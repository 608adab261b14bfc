// Package cmd 提供 toksloc 的命令行入口与子命令编排。
package cmd

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"toksloc/internal/languages"
	"toksloc/internal/logging"
)

// app 保存各子命令共享的依赖，由根命令的 PersistentPreRunE 初始化。
type app struct {
	registry *languages.Registry
	logger   *slog.Logger

	logLevel  string
	logFormat string
	profiles  string
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string) *cobra.Command {
	application := &app{
		registry:  languages.NewRegistry(),
		logger:    logging.Discard(),
		logLevel:  string(logging.LevelWarn),
		logFormat: string(logging.FormatText),
	}

	rootCmd := &cobra.Command{
		Use:   "toksloc",
		Short: "按 token 密度统计源码的工具",
		Long: "toksloc 递归扫描目录中某一种语言的源文件，\n" +
			"统计每个文件的有效行数（SLOC）、token 数以及 wideness（token/行）。",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return application.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&application.logLevel, "log-level", application.logLevel, "日志级别: debug, info, warn, error")
	flags.StringVar(&application.logFormat, "log-format", application.logFormat, "日志格式: text 或 json")
	flags.StringVar(&application.profiles, "profiles", "", "额外的语言配置 JSON 文件")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(application))
	rootCmd.AddCommand(newScanCmd(application))
	rootCmd.AddCommand(newWatchCmd(application))
	rootCmd.AddCommand(newMCPCmd(application, version))

	return rootCmd
}

// setup 根据全局参数构建 logger 并载入额外的语言配置。
func (a *app) setup(cmd *cobra.Command) error {
	config := logging.Config{
		Level:  logging.Level(a.logLevel),
		Format: logging.Format(a.logFormat),
		Output: cmd.ErrOrStderr(),
	}
	if err := config.Validate(); err != nil {
		return err
	}
	a.logger = logging.New(config)

	if path := strings.TrimSpace(a.profiles); path != "" {
		if err := a.registry.LoadFile(path); err != nil {
			return err
		}
		a.logger.Debug("loaded language profiles", "path", path)
	}
	return nil
}
