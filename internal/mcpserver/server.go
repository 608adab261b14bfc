// Package mcpserver 通过 MCP 协议（stdio）暴露计数能力，供编辑器和 agent 调用。
package mcpserver

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"toksloc/internal/languages"
	"toksloc/internal/logging"
	"toksloc/internal/scanner"
)

const serverName = "toksloc"

// Options 是 MCP 服务的配置。
type Options struct {
	// Version 是对客户端声明的服务版本。
	Version string
	// Workers 是 count_directory 的并发 worker 数量，<= 0 时使用 CPU 核数。
	Workers int
	// CacheSize 是每种语言结果缓存的条目上限，<= 0 时使用默认值。
	CacheSize int
}

// Server 是 MCP 服务对象。
type Server struct {
	mcpServer *server.MCPServer
	registry  *languages.Registry
	workers   int
	cacheSize int
	logger    *slog.Logger

	// 同一文件在不同语言配置下结果不同，因此按语言分别缓存。
	cacheMu sync.Mutex
	caches  map[string]*scanner.ResultCache
}

// NewServer 创建 MCP 服务并注册全部工具。
func NewServer(registry *languages.Registry, options Options, logger *slog.Logger) *Server {
	workers := options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	version := options.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		registry:  registry,
		workers:   workers,
		cacheSize: options.CacheSize,
		logger:    logging.OrDefault(logger),
		caches:    make(map[string]*scanner.ResultCache),
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(s.loggingMiddleware()),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: countDirectoryTool(), Handler: s.handleCountDirectory},
		server.ServerTool{Tool: countTextTool(), Handler: s.handleCountText},
		server.ServerTool{Tool: listLanguagesTool(), Handler: s.handleListLanguages},
	)

	return s
}

// ServeStdio 在 stdin/stdout 上运行 MCP 服务，直到输入结束。
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// cacheFor 返回某种语言的共享结果缓存，不存在时创建。
func (s *Server) cacheFor(language string) (*scanner.ResultCache, error) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if cache, ok := s.caches[language]; ok {
		return cache, nil
	}
	cache, err := scanner.NewResultCache(s.cacheSize)
	if err != nil {
		return nil, err
	}
	s.caches[language] = cache
	return cache, nil
}
