package scanner

import (
	"fmt"
	"os"

	"toksloc/internal/languages"
	"toksloc/internal/lexer"
	"toksloc/internal/model"
)

// FileScanner 对单个文件执行切分与分类。
// Profile 在构造时传入且只读，因此同一个 FileScanner 可以被多个 worker 共享。
type FileScanner struct {
	profile languages.Profile
	cache   *ResultCache
}

// NewFileScanner 创建单文件扫描器；cache 可以为 nil。
func NewFileScanner(profile languages.Profile, cache *ResultCache) *FileScanner {
	return &FileScanner{profile: profile, cache: cache}
}

// Profile 返回扫描使用的语言配置。
func (s *FileScanner) Profile() languages.Profile {
	return s.profile
}

// Scan 读取文件并返回 SLOC 与 token 数。
// 文件不可读时返回错误，调用方应跳过该文件继续扫描。
func (s *FileScanner) Scan(path string) (model.FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.FileResult{}, fmt.Errorf("stat file: %w", err)
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(path, info); ok {
			return cached, nil
		}
	}

	text, err := readText(path)
	if err != nil {
		return model.FileResult{}, err
	}

	counts := lexer.Count(lexer.NormalizeNewlines(text), s.profile)
	result := model.FileResult{
		Path:   path,
		SLOC:   counts.SLOC,
		Tokens: counts.Tokens,
	}

	if s.cache != nil {
		s.cache.Put(path, info, result)
	}
	return result, nil
}
