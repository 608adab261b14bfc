package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"toksloc/internal/logging"
	"toksloc/internal/model"
)

// DefaultDebounce 是连续文件事件合并为一次重新扫描的等待时间。
const DefaultDebounce = 200 * time.Millisecond

// ResultHandler 接收每次重新扫描的结果。
type ResultHandler func(result model.ScanResult, err error)

// WatchOptions 是 Watcher 的配置。
type WatchOptions struct {
	Debounce time.Duration
	// Cache 与 Service 共享，文件变化时对应条目会被清除。
	Cache *ResultCache
}

// Watcher 监听目录树变化，在变化平息后重新扫描整个目录。
// 未变化的文件通过 ResultCache 命中，因此重新扫描的代价主要在遍历。
type Watcher struct {
	fsw      *fsnotify.Watcher
	service  *Service
	root     string
	options  WatchOptions
	onResult ResultHandler
	logger   *slog.Logger

	timerMu sync.Mutex
	timer   *time.Timer

	mu       sync.Mutex
	ctx      context.Context
	stopChan chan struct{}
	stopped  bool
}

// NewWatcher 创建监听器，但不会开始监听。
func NewWatcher(service *Service, root string, options WatchOptions, onResult ResultHandler, logger *slog.Logger) (*Watcher, error) {
	if onResult == nil {
		return nil, errors.New("watcher needs a result handler")
	}
	if options.Debounce <= 0 {
		options.Debounce = DefaultDebounce
	}

	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve absolute path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	return &Watcher{
		fsw:      fsw,
		service:  service,
		root:     absoluteRoot,
		options:  options,
		onResult: onResult,
		logger:   logging.OrDefault(logger),
		ctx:      context.Background(),
		stopChan: make(chan struct{}),
	}, nil
}

// Start 注册目录监听并在后台处理事件。
// ctx 结束时监听器自动停止。
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return errors.New("watcher already stopped")
	}
	w.ctx = ctx
	w.mu.Unlock()

	if err := w.addTree(w.root); err != nil {
		return err
	}

	w.logger.Info("file watcher started", "root", w.root)
	go w.eventLoop(ctx)
	return nil
}

// Stop 停止监听，可重复调用。
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.timerMu.Unlock()

	err := w.fsw.Close()
	w.logger.Info("file watcher stopped")
	return err
}

// addTree 为目录及其未被排除的子目录注册监听。
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == dir {
				return fmt.Errorf("watch %s: %w", path, walkErr)
			}
			w.logger.Warn("skipping unwatchable path", "path", path, "error", walkErr)
			return nil
		}
		if !entry.IsDir() {
			return nil
		}
		if path != w.root && w.service.excluded(displayPath(w.root, path)) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			if path == dir {
				return fmt.Errorf("watch %s: %w", path, err)
			}
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// eventLoop 是事件处理主循环。
func (w *Watcher) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// handleEvent 处理单个文件系统事件。
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	relativePath := displayPath(w.root, path)
	if w.service.excluded(relativePath) {
		return
	}

	// 新建目录需要补充监听，目录内已有的文件会在下一次扫描中被发现。
	if event.Has(fsnotify.Create) {
		if isDir(path) {
			if err := w.addTree(path); err != nil {
				w.logger.Warn("failed to watch new directory", "path", path, "error", err)
			}
			w.scheduleRescan()
			return
		}
	}

	if !w.service.Profile().Matches(filepath.Base(path)) {
		if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			// 可能是被删除的目录，其中的文件需要从结果中消失。
			w.scheduleRescan()
		}
		return
	}

	w.logger.Debug("file event", "op", event.Op.String(), "path", relativePath)
	if w.options.Cache != nil {
		w.options.Cache.Invalidate(path)
	}
	w.scheduleRescan()
}

// scheduleRescan 在防抖窗口结束后触发一次重新扫描。
func (w *Watcher) scheduleRescan() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.options.Debounce, w.rescan)
}

// rescan 重新扫描根目录并把结果交给回调。
func (w *Watcher) rescan() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	ctx := w.ctx
	w.mu.Unlock()

	result, err := w.service.ScanPath(ctx, w.root)
	w.onResult(result, err)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
