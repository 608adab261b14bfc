package cmd

import (
	"github.com/spf13/cobra"

	"toksloc/internal/mcpserver"
	"toksloc/internal/scanner"
)

// newMCPCmd 创建 mcp 子命令，在 stdin/stdout 上提供 MCP 工具。
// 协议占用 stdout，日志只能写到 stderr。
func newMCPCmd(application *app, version string) *cobra.Command {
	var workers int

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "以 MCP 服务形式（stdio）提供计数工具",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			server := mcpserver.NewServer(application.registry, mcpserver.Options{
				Version:   version,
				Workers:   workers,
				CacheSize: scanner.DefaultCacheSize,
			}, application.logger)

			application.logger.Info("mcp server starting", "version", version)
			return server.ServeStdio()
		},
	}

	mcpCmd.Flags().IntVar(&workers, "workers", 0, "count_directory 的并发 worker 数量，0 表示 CPU 核数")
	return mcpCmd
}
