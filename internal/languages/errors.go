package languages

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownLanguage        = errors.New("unknown file-extensions")
	ErrMissingLineComment     = errors.New("unknown line comment token")
	ErrMissingStringDelimiter = errors.New("unknown string delimiter")
	ErrIncompleteBlockComment = errors.New("incomplete block comment markers")
	ErrMissingExtensions      = errors.New("no file extensions")
)

// ConfigError 表示语言配置不可用。
// 这类错误在启动阶段出现，整个运行应当立即终止。
type ConfigError struct {
	Language string
	Err      error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v for %s", e.Err, e.Language)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
