package languages

import "strings"

// Profile 描述一种语言的词法约定。
// 计数核心只读取该结构，不做任何修改。
type Profile struct {
	Name              string   `json:"name"`
	Extensions        []string `json:"extensions"`
	LineComment       string   `json:"line_comment"`
	BlockCommentStart string   `json:"block_comment_start,omitempty"`
	BlockCommentEnd   string   `json:"block_comment_end,omitempty"`
	StringDelimiter   string   `json:"string_delimiter"`
}

// HasBlockComment 报告该语言是否定义了块注释。
func (p Profile) HasBlockComment() bool {
	return p.BlockCommentStart != ""
}

// Matches 判断文件名是否以任一后缀结尾。
// 与 filepath.Ext 不同，这里是大小写敏感的后缀匹配（例如 Fortran 的 .F）。
func (p Profile) Matches(fileName string) bool {
	for _, ext := range p.Extensions {
		if ext != "" && strings.HasSuffix(fileName, ext) {
			return true
		}
	}
	return false
}

// Validate 检查计数核心需要的字段是否齐全。
//
// 约束：
// - 必须有行注释标记和字符串分隔符
// - 块注释的起止标记要么同时存在，要么同时缺省
func (p Profile) Validate() error {
	switch {
	case p.LineComment == "":
		return &ConfigError{Language: p.Name, Err: ErrMissingLineComment}
	case p.StringDelimiter == "":
		return &ConfigError{Language: p.Name, Err: ErrMissingStringDelimiter}
	case (p.BlockCommentStart == "") != (p.BlockCommentEnd == ""):
		return &ConfigError{Language: p.Name, Err: ErrIncompleteBlockComment}
	}
	return nil
}

// clone 返回深拷贝，避免调用方修改注册表内部的切片。
func (p Profile) clone() Profile {
	p.Extensions = append([]string(nil), p.Extensions...)
	return p
}
