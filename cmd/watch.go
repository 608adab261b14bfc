package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"toksloc/internal/model"
	"toksloc/internal/report"
	"toksloc/internal/scanner"
)

// newWatchCmd 创建 watch 子命令。
// 先输出一次完整报表，之后每次文件变化平息后重新输出，直到收到 SIGINT/SIGTERM。
//
//	toksloc watch ./project go --format table
func newWatchCmd(application *app) *cobra.Command {
	options := defaultScanOptions()
	debounce := scanner.DefaultDebounce

	watchCmd := &cobra.Command{
		Use:   "watch <dir> <language>",
		Short: "监听目录变化并持续输出统计结果",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := options.validate()
			if err != nil {
				return err
			}

			cache, err := scanner.NewResultCache(scanner.DefaultCacheSize)
			if err != nil {
				return err
			}
			service, err := application.newService(args[1], options, cache)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := service.ScanPath(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := report.Print(out, format, result); err != nil {
				return err
			}

			// 回调在 timer goroutine 中执行，输出需要串行化。
			var outMu sync.Mutex
			onResult := func(result model.ScanResult, err error) {
				outMu.Lock()
				defer outMu.Unlock()

				if err != nil {
					application.logger.Error("rescan failed", "path", args[0], "error", err)
					return
				}
				_, _ = fmt.Fprintf(out, "\n[%s] %s changed\n", time.Now().Format(time.TimeOnly), args[0])
				if err := report.Print(out, format, result); err != nil {
					application.logger.Error("print report failed", "error", err)
				}
			}

			watcher, err := scanner.NewWatcher(service, args[0], scanner.WatchOptions{
				Debounce: debounce,
				Cache:    cache,
			}, onResult, application.logger)
			if err != nil {
				return err
			}
			if err := watcher.Start(ctx); err != nil {
				return err
			}
			application.logger.Info("watching for changes", "path", args[0], "language", service.Profile().Name)

			<-ctx.Done()
			return watcher.Stop()
		},
	}

	options.bindFlags(watchCmd)
	watchCmd.Flags().DurationVar(&debounce, "debounce", debounce, "合并连续文件事件的等待时间")

	return watchCmd
}
