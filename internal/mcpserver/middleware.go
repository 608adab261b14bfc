package mcpserver

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// loggingMiddleware 为每次工具调用记录一条结构化日志。
func (s *Server) loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			result, err := next(ctx, req)

			attrs := []any{
				"tool", req.Params.Name,
				"arguments", len(req.GetArguments()),
				"duration_ms", time.Since(start).Milliseconds(),
				"response_bytes", responseBytes(result),
			}
			switch {
			case err != nil:
				s.logger.Error("tool call failed", append(attrs, "error", err)...)
			case result != nil && result.IsError:
				s.logger.Warn("tool call returned error", attrs...)
			default:
				s.logger.Info("tool call", attrs...)
			}

			return result, err
		}
	}
}

// responseBytes 统计结果中文本内容的字节数。
func responseBytes(result *mcp.CallToolResult) int {
	if result == nil {
		return 0
	}
	total := 0
	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok {
			total += len(text.Text)
		}
	}
	return total
}
