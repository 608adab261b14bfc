// Package scanner 提供并发扫描调度能力。
// 该层负责目录遍历、任务分发、并发执行和结果聚合，不负责词法细节。
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"toksloc/internal/languages"
	"toksloc/internal/logging"
	"toksloc/internal/model"
)

// Options 是扫描服务的可配置参数。
type Options struct {
	// Workers 是并发 worker 数量，<= 0 时使用 CPU 核数。
	Workers int
	// Include 非空时，只有匹配任一模式的文件才会被扫描。
	Include []string
	// Exclude 命中的文件被跳过，命中的目录整体跳过。
	Exclude []string
	// Cache 可选，用于 watch 与 MCP 场景下复用未变化文件的结果。
	Cache *ResultCache
}

// Service 是扫描服务对象。
type Service struct {
	files   *FileScanner
	workers int
	include []string
	exclude []string
	logger  *slog.Logger
}

// scanTask 表示一个待分析文件任务。
type scanTask struct {
	absolutePath string
	displayPath  string
}

// workerResult 表示 worker 的执行产物。
type workerResult struct {
	fileResult *model.FileResult
	scanError  *model.ScanError
}

// NewService 创建扫描服务。
// include/exclude 使用 doublestar 语法，相对扫描根目录、以 / 分隔匹配。
func NewService(profile languages.Profile, options Options, logger *slog.Logger) (*Service, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	for _, pattern := range options.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	for _, pattern := range options.Include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}

	workers := options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Service{
		files:   NewFileScanner(profile, options.Cache),
		workers: workers,
		include: options.Include,
		exclude: options.Exclude,
		logger:  logging.OrDefault(logger),
	}, nil
}

// Profile 返回扫描使用的语言配置。
func (s *Service) Profile() languages.Profile {
	return s.files.Profile()
}

// ScanPath 扫描目录或单文件。
// 单个文件读取失败只记录到 Errors 中，不影响其余文件；根路径不可用时返回错误。
func (s *Service) ScanPath(ctx context.Context, targetPath string) (model.ScanResult, error) {
	result := model.ScanResult{Language: s.Profile().Name}

	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return result, errors.New("scan path is empty")
	}

	absoluteTarget, err := filepath.Abs(trimmedPath)
	if err != nil {
		return result, fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(absoluteTarget)
	if err != nil {
		return result, fmt.Errorf("stat path: %w", err)
	}

	result.ScannedPath = absoluteTarget
	s.logger.Debug("scan started", "path", absoluteTarget, "language", result.Language, "workers", s.workers)

	tasks := make(chan scanTask, s.workers*4)
	results := make(chan workerResult, s.workers*4)
	walkErrChan := make(chan error, 1)

	var workerGroup sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			s.runWorker(tasks, results)
		}()
	}

	go func() {
		defer close(tasks)
		if info.IsDir() {
			walkErrChan <- s.enqueueDirectoryTasks(ctx, absoluteTarget, tasks)
			return
		}
		walkErrChan <- s.enqueueSingleFileTask(ctx, absoluteTarget, tasks)
	}()

	go func() {
		workerGroup.Wait()
		close(results)
	}()

	result.Files = make([]model.FileResult, 0)
	result.Errors = make([]model.ScanError, 0)

	for item := range results {
		if item.fileResult != nil {
			result.Files = append(result.Files, *item.fileResult)
		}
		if item.scanError != nil {
			result.Errors = append(result.Errors, *item.scanError)
		}
	}

	if walkErr := <-walkErrChan; walkErr != nil {
		return result, walkErr
	}

	result.Finalize()
	s.logger.Debug("scan finished",
		"path", absoluteTarget,
		"files", result.Total.Files,
		"skipped", len(result.Errors))
	return result, nil
}

// enqueueDirectoryTasks 遍历目录并把匹配语言后缀的文件推入任务队列。
func (s *Service) enqueueDirectoryTasks(ctx context.Context, root string, tasks chan<- scanTask) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			// 子目录不可读时跳过，继续扫描其他部分。
			s.logger.Warn("skipping unreadable path", "path", path, "error", walkErr)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath := displayPath(root, path)

		if path != root && s.excluded(relativePath) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			return nil
		}

		if !s.Profile().Matches(entry.Name()) || !s.included(relativePath) {
			return nil
		}

		select {
		case tasks <- scanTask{absolutePath: path, displayPath: relativePath}:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// enqueueSingleFileTask 在用户给定单文件路径时创建任务。
func (s *Service) enqueueSingleFileTask(ctx context.Context, filePath string, tasks chan<- scanTask) error {
	if !s.Profile().Matches(filepath.Base(filePath)) {
		return fmt.Errorf("unsupported file extension for %s: %s", s.Profile().Name, filepath.Ext(filePath))
	}

	select {
	case tasks <- scanTask{absolutePath: filePath, displayPath: filepath.Base(filePath)}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runWorker 执行真实的文件读取和计数。
func (s *Service) runWorker(tasks <-chan scanTask, results chan<- workerResult) {
	for task := range tasks {
		fileResult, err := s.files.Scan(task.absolutePath)
		if err != nil {
			s.logger.Warn("skipping unreadable file", "path", task.displayPath, "error", err)
			results <- workerResult{
				scanError: &model.ScanError{
					Path:  task.displayPath,
					Error: err.Error(),
				},
			}
			continue
		}

		fileResult.Path = task.displayPath
		results <- workerResult{fileResult: &fileResult}
	}
}

// excluded 判断相对路径是否命中任一排除模式。
func (s *Service) excluded(relativePath string) bool {
	return matchAny(s.exclude, relativePath)
}

// included 在未配置 include 时总是返回 true。
func (s *Service) included(relativePath string) bool {
	return len(s.include) == 0 || matchAny(s.include, relativePath)
}

func matchAny(patterns []string, relativePath string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, relativePath); matched {
			return true
		}
	}
	return false
}

// displayPath 返回相对根目录、以 / 分隔的路径。
func displayPath(root string, path string) string {
	relativePath, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(relativePath)
}
