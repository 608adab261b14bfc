package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"toksloc/internal/languages"
	"toksloc/internal/lexer"
	"toksloc/internal/model"
	"toksloc/internal/scanner"
)

// textCounts 是 count_text 的返回结构。
type textCounts struct {
	SLOC     int64 `json:"sloc"`
	Tokens   int64 `json:"tokens"`
	Wideness int64 `json:"wideness"`
}

// languageInfo 是 list_languages 的单项返回结构。
type languageInfo struct {
	languages.Profile
	Countable bool `json:"countable"`
}

func (s *Server) handleCountDirectory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	language, err := req.RequireString("language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	profile, err := s.registry.Lookup(language)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cache, err := s.cacheFor(profile.Name)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}

	service, err := scanner.NewService(profile, scanner.Options{
		Workers: s.workers,
		Include: splitList(req.GetString("include", "")),
		Exclude: splitList(req.GetString("exclude", "")),
		Cache:   cache,
	}, s.logger)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := service.ScanPath(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if result.Total.Files == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("no %s files found in directory `%s`", profile.Name, path)), nil
	}

	return jsonResult(result)
}

func (s *Server) handleCountText(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	language, err := req.RequireString("language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	profile, err := s.registry.Lookup(language)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	counts := lexer.Count(lexer.NormalizeNewlines(text), profile)
	file := model.FileResult{SLOC: counts.SLOC, Tokens: counts.Tokens}
	return jsonResult(textCounts{
		SLOC:     file.SLOC,
		Tokens:   file.Tokens,
		Wideness: file.RoundedWideness(),
	})
}

func (s *Server) handleListLanguages(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profiles := s.registry.Languages()
	items := make([]languageInfo, 0, len(profiles))
	for _, profile := range profiles {
		items = append(items, languageInfo{Profile: profile, Countable: profile.Validate() == nil})
	}
	return jsonResult(items)
}

// jsonResult 把任意值编码为文本结果。
func jsonResult(value any) (*mcp.CallToolResult, error) {
	content, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(content)), nil
}

// splitList 解析逗号分隔的参数，忽略空项。
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
